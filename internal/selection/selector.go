// Package selection converts the user's mixed component selection into the
// per-shape edge boundaries that delineate fill regions.
package selection

import (
	"fmt"
	"log/slog"

	"github.com/meepzh/cgtools/internal/config"
	"github.com/meepzh/cgtools/internal/domain"
)

// Host is the scripting surface the selector consumes.
type Host interface {
	domain.Selections
	domain.Nodes
	domain.Converter
	domain.OptionVars
	domain.Warner
}

// Selector computes cut boundaries from the active selection.
type Selector struct {
	host Host
}

func NewSelector(host Host) *Selector {
	return &Selector{host: host}
}

// edgeConversion converts components of one kind to boundary edges under one
// conversion mode.
type edgeConversion func(converter domain.Converter, components []string) ([]string, error)

// edgeConversions maps every component type x conversion mode combination to
// its handler, keeping the matrix exhaustive.
var edgeConversions = map[domain.ComponentKind]map[domain.EdgesFrom]edgeConversion{
	domain.KindFace: {
		domain.EdgesFromAll: func(c domain.Converter, components []string) ([]string, error) {
			return c.ToEdges(components, domain.ConvertOption{})
		},
		domain.EdgesFromContained: func(c domain.Converter, components []string) ([]string, error) {
			return c.ToEdges(components, domain.ConvertOption{Internal: true})
		},
		domain.EdgesFromPerimeter: func(c domain.Converter, components []string) ([]string, error) {
			return c.ToEdges(components, domain.ConvertOption{Border: true})
		},
	},
	domain.KindVertex: {
		domain.EdgesFromAll: func(c domain.Converter, components []string) ([]string, error) {
			return c.ToEdges(components, domain.ConvertOption{})
		},
		domain.EdgesFromContained: func(c domain.Converter, components []string) ([]string, error) {
			return c.ToEdges(components, domain.ConvertOption{Internal: true})
		},
		domain.EdgesFromPerimeter: perimeterThroughFaces,
	},
	domain.KindVertexFace: {
		domain.EdgesFromAll: func(c domain.Converter, components []string) ([]string, error) {
			return c.ToEdges(components, domain.ConvertOption{VertexFaceAllEdges: true})
		},
		domain.EdgesFromContained: func(c domain.Converter, components []string) ([]string, error) {
			return c.ToEdges(components, domain.ConvertOption{Internal: true})
		},
		domain.EdgesFromPerimeter: perimeterThroughFaces,
	},
}

// perimeterThroughFaces projects the components through their faces and
// takes the face-border edges.
func perimeterThroughFaces(c domain.Converter, components []string) ([]string, error) {
	faces, err := c.ToFaces(components)
	if err != nil {
		return nil, err
	}
	return c.ToEdges(faces, domain.ConvertOption{Border: true})
}

// conversionSources pairs each non-edge component kind with the setting that
// selects its conversion mode, in the order their results are unioned.
var conversionSources = []struct {
	kind domain.ComponentKind
	mode config.Option[domain.EdgesFrom]
}{
	{domain.KindFace, config.ConvertFacesTo},
	{domain.KindVertex, config.ConvertVerticesTo},
	{domain.KindVertexFace, config.ConvertVertexFacesTo},
}

// EdgesFromSelection converts the current selection to boundary edges,
// partitioned by owning shape. Raw edge selections pass through unchanged;
// faces, vertices, and vertex faces are converted per their configured
// modes. Edge order within a shape preserves encounter order.
func (s *Selector) EdgesFromSelection() (*domain.ShapeEdges, error) {
	edges := s.host.SelectedComponents(domain.KindEdge)

	for _, source := range conversionSources {
		components := s.host.SelectedComponents(source.kind)
		if len(components) == 0 {
			continue
		}

		mode := source.mode.Get(s.host)
		convert := edgeConversions[source.kind][mode]

		converted, err := convert(s.host, components)
		if err != nil {
			return nil, fmt.Errorf("convert %s selection to edges: %w", source.kind, err)
		}
		slog.Debug("Converted components to edges",
			"kind", source.kind, "mode", mode, "in", len(components), "out", len(converted))
		edges = append(edges, converted...)
	}

	return s.partitionEdgesByShape(edges)
}

// SelectedShapes collapses the current selection to the mesh shapes it
// touches, resolving transforms to their shapes. Component selections across
// multiple objects can otherwise be reported inconsistently by the host.
func (s *Selector) SelectedShapes() []string {
	var shapes []string
	seen := make(map[string]struct{})

	add := func(shape string) {
		if _, ok := seen[shape]; ok {
			return
		}
		seen[shape] = struct{}{}
		shapes = append(shapes, shape)
	}

	for _, object := range s.host.SelectedObjects() {
		if s.host.IsMesh(object) {
			add(object)
		}
		if s.host.IsTransform(object) {
			for _, shape := range s.host.MeshShapes(object) {
				add(shape)
			}
		}
	}

	return shapes
}

// partitionEdgesByShape groups the edges by the shapes that own them,
// resolving any transform-level references down to their mesh shape.
func (s *Selector) partitionEdgesByShape(edges []string) (*domain.ShapeEdges, error) {
	mapping := domain.NewShapeEdges()

	for _, edge := range edges {
		object, component, ok := splitLastDot(edge)
		if !ok {
			return nil, fmt.Errorf("%q is not an edge component", edge)
		}

		if s.host.IsTransform(object) {
			// The host may report components against the transform when it
			// holds a single shape, so force everything to shapes
			meshShapes := s.host.MeshShapes(object)
			if len(meshShapes) == 0 {
				return nil, fmt.Errorf("transform %q holds no mesh shape", object)
			}
			object = meshShapes[0]
		}

		mapping.Add(object, object+"."+component)
	}

	return mapping, nil
}

func splitLastDot(item string) (head, tail string, ok bool) {
	for i := len(item) - 1; i >= 0; i-- {
		if item[i] == '.' {
			return item[:i], item[i+1:], true
		}
	}
	return item, "", false
}
