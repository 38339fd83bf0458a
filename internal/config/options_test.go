package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meepzh/cgtools/internal/domain"
)

// --- Mocks ---

type mockStore struct {
	vars     map[string]string
	warnings []string
}

func newMockStore() *mockStore {
	return &mockStore{vars: make(map[string]string)}
}

func (m *mockStore) OptionVar(name string) (string, bool) {
	v, ok := m.vars[name]
	return v, ok
}

func (m *mockStore) SetOptionVar(name, value string) {
	m.vars[name] = value
}

func (m *mockStore) Warn(message string) {
	m.warnings = append(m.warnings, message)
}

// --- Tests ---

func TestOption_GetReturnsDefaultWhenUnset(t *testing.T) {
	store := newMockStore()

	assert.Equal(t, domain.EdgesFromPerimeter, ConvertFacesTo.Get(store))
	assert.Equal(t, domain.EdgesFromContained, ConvertVerticesTo.Get(store))
	assert.Equal(t, domain.EdgesFromAll, ConvertVertexFacesTo.Get(store))
	assert.Equal(t, domain.ExitOnSelection, ExitCondition.Get(store))
	assert.True(t, ExitOnSelectModeTypeChange.Get(store))
	assert.Equal(t, domain.ComponentFace, OutputType.Get(store))
	assert.False(t, UseExistingSeams.Get(store))

	assert.Empty(t, store.warnings)
	assert.Empty(t, store.vars)
}

func TestOption_SetThenGetRoundTrips(t *testing.T) {
	store := newMockStore()

	ExitCondition.Set(store, domain.ExitOnReinvocation)
	assert.Equal(t, domain.ExitOnReinvocation, ExitCondition.Get(store))

	UseExistingSeams.Set(store, true)
	assert.True(t, UseExistingSeams.Get(store))
	assert.Equal(t, "1", store.vars[UseExistingSeams.Variable])

	ExitOnSelectModeTypeChange.Set(store, false)
	assert.False(t, ExitOnSelectModeTypeChange.Get(store))
	assert.Equal(t, "0", store.vars[ExitOnSelectModeTypeChange.Variable])
}

func TestOption_GetWarnsAndResetsOnInvalidEnumValue(t *testing.T) {
	store := newMockStore()
	store.vars[OutputType.Variable] = "polygon"

	assert.Equal(t, domain.ComponentFace, OutputType.Get(store))

	require.Len(t, store.warnings, 1)
	assert.Contains(t, store.warnings[0], OutputType.Variable)
	assert.Contains(t, store.warnings[0], `"polygon"`)
	assert.Contains(t, store.warnings[0], "Please use: edge, face, vertex.")

	// The bad value is replaced so the warning is not repeated
	assert.Equal(t, string(domain.ComponentFace), store.vars[OutputType.Variable])
	assert.Equal(t, domain.ComponentFace, OutputType.Get(store))
	assert.Len(t, store.warnings, 1)
}

func TestOption_GetWarnsAndResetsOnInvalidBoolValue(t *testing.T) {
	store := newMockStore()
	store.vars[UseExistingSeams.Variable] = "maybe"

	assert.False(t, UseExistingSeams.Get(store))
	require.Len(t, store.warnings, 1)
	assert.Equal(t, "0", store.vars[UseExistingSeams.Variable])
}

func TestOption_VariablesShareToolPrefix(t *testing.T) {
	for _, variable := range []string{
		ConvertFacesTo.Variable,
		ConvertVerticesTo.Variable,
		ConvertVertexFacesTo.Variable,
		ExitCondition.Variable,
		ExitOnSelectModeTypeChange.Variable,
		OutputType.Variable,
		UseExistingSeams.Variable,
	} {
		assert.Contains(t, variable, "cgtools_fill_selection_")
	}
}
