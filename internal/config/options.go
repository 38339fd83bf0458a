package config

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/meepzh/cgtools/internal/domain"
)

// Option-var names derive from the owning package path so installed tools
// never collide in the shared store.
const variablePrefix = "cgtools_fill_selection_"

// Store is the persistence surface an Option reads and writes, plus the
// warning channel for reporting bad stored values.
type Store interface {
	domain.OptionVars
	domain.Warner
}

// Option is a typed tool setting persisted in the host's option-var store
// under a fixed variable name.
type Option[T any] struct {
	// Variable is the option-var name the value is stored under.
	Variable string

	// Default is returned when no value is stored or the stored value fails
	// to deserialize.
	Default T

	format  func(T) string
	parse   func(string) (T, error)
	choices []string
}

// Get returns the stored value. A missing variable yields the default; an
// invalid stored value yields a host warning, a reset to the default, and the
// default.
func (o Option[T]) Get(store Store) T {
	raw, ok := store.OptionVar(o.Variable)
	if !ok {
		slog.Debug("Could not find optionVar", "variable", o.Variable)
		return o.Default
	}
	slog.Debug("Retrieved optionVar", "variable", o.Variable, "value", raw)

	value, err := o.parse(raw)
	if err != nil {
		options := ""
		if len(o.choices) > 0 {
			options = fmt.Sprintf("Please use: %s. ", strings.Join(o.choices, ", "))
		}
		store.Warn(fmt.Sprintf(
			"Failed to process the optionVar '%s'. The following is not a valid value: %q. %sThe value will be changed to: %q. The error is as follows: %v",
			o.Variable, raw, options, o.format(o.Default), err,
		))

		o.Set(store, o.Default)
		return o.Default
	}

	return value
}

// Set serializes the value into the option-var store.
func (o Option[T]) Set(store Store, value T) {
	serialized := o.format(value)
	slog.Debug("Serialized option value", "variable", o.Variable, "value", serialized)
	store.SetOptionVar(o.Variable, serialized)
}

// Tool settings. Each is read live wherever it is needed rather than cached,
// so users can adjust behavior while a session is running.
var (
	// ConvertFacesTo determines how face selections are used to determine
	// fill boundaries.
	ConvertFacesTo = enumOption(variablePrefix+"convert_faces_to",
		domain.EdgesFromPerimeter, domain.EdgesFromModes())

	// ConvertVerticesTo determines how vertex selections are used to
	// determine fill boundaries.
	ConvertVerticesTo = enumOption(variablePrefix+"convert_vertices_to",
		domain.EdgesFromContained, domain.EdgesFromModes())

	// ConvertVertexFacesTo determines how vertex face selections are used to
	// determine fill boundaries.
	ConvertVertexFacesTo = enumOption(variablePrefix+"convert_vertex_faces_to",
		domain.EdgesFromAll, domain.EdgesFromModes())

	// ExitCondition is the primary determination for when the temporary fill
	// selection is converted to typical polygon components and the
	// supporting nodes are cleaned.
	ExitCondition = enumOption(variablePrefix+"exit_condition",
		domain.ExitOnSelection, domain.ExitConditions())

	// ExitOnSelectModeTypeChange also exits the session when the user leaves
	// the UV-shell selection mode or type, since they may not be aware the
	// tool relies on it.
	ExitOnSelectModeTypeChange = boolOption(variablePrefix+"exit_on_select_modetype_change", true)

	// OutputType determines the type of polygon components to convert the
	// fill selection to.
	OutputType = enumOption(variablePrefix+"output_type",
		domain.ComponentFace, domain.ComponentTypes())

	// UseExistingSeams makes existing UV seams on the shapes' current UV set
	// also delineate fill boundaries.
	UseExistingSeams = boolOption(variablePrefix+"use_existing_seams", false)
)

func enumOption[T ~string](variable string, def T, valid []T) Option[T] {
	choices := make([]string, len(valid))
	for i, v := range valid {
		choices[i] = string(v)
	}
	return Option[T]{
		Variable: variable,
		Default:  def,
		format:   func(v T) string { return string(v) },
		parse: func(raw string) (T, error) {
			for _, v := range valid {
				if string(v) == raw {
					return v, nil
				}
			}
			return def, fmt.Errorf("unknown value %q", raw)
		},
		choices: choices,
	}
}

func boolOption(variable string, def bool) Option[bool] {
	return Option[bool]{
		Variable: variable,
		Default:  def,
		format: func(v bool) string {
			if v {
				return "1"
			}
			return "0"
		},
		parse:   strconv.ParseBool,
		choices: []string{"0", "1"},
	}
}
