package sched

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pacer-org/pacer/internal/core"
)

func layerNames(layers [][]core.Unit) [][]string {
	out := make([][]string, len(layers))
	for i, layer := range layers {
		names := make([]string, len(layer))
		for j, u := range layer {
			names[j] = u.Name()
		}
		out[i] = names
	}
	return out
}

func TestBuildConsiderationQueue(t *testing.T) {
	t.Parallel()

	a, b, c := core.NamedUnit("A"), core.NamedUnit("B"), core.NamedUnit("C")
	d := core.NamedUnit("D")

	tests := []struct {
		name  string
		graph Graph
		want  [][]string
	}{
		{
			name:  "linear chain",
			graph: Graph{a: nil, b: {a}, c: {b}},
			want:  [][]string{{"A"}, {"B"}, {"C"}},
		},
		{
			name:  "diamond",
			graph: Graph{a: nil, b: {a}, c: {a}, d: {b, c}},
			want:  [][]string{{"A"}, {"B", "C"}, {"D"}},
		},
		{
			name:  "independent units share a layer",
			graph: Graph{a: nil, b: nil, c: nil},
			want:  [][]string{{"A", "B", "C"}},
		},
		{
			name:  "two roots one sink",
			graph: Graph{c: {a, b}},
			want:  [][]string{{"A", "B"}, {"C"}},
		},
		{
			name:  "self dependency ignored",
			graph: Graph{a: nil, b: {a, b}},
			want:  [][]string{{"A"}, {"B"}},
		},
		{
			name:  "duplicate dependencies collapse",
			graph: Graph{b: {a, a, a}},
			want:  [][]string{{"A"}, {"B"}},
		},
		{
			name:  "empty graph",
			graph: Graph{},
			want:  [][]string{},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			layers, err := buildConsiderationQueue(tt.graph)
			require.NoError(t, err)
			assert.Equal(t, tt.want, layerNames(layers))
		})
	}
}

func TestBuildConsiderationQueue_Cycle(t *testing.T) {
	t.Parallel()

	a, b, c := core.NamedUnit("A"), core.NamedUnit("B"), core.NamedUnit("C")

	tests := []struct {
		name  string
		graph Graph
	}{
		{"two cycle", Graph{a: {b}, b: {a}}},
		{"three cycle", Graph{a: {c}, b: {a}, c: {b}}},
		{"cycle behind a root", Graph{a: nil, b: {a, c}, c: {b}}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := buildConsiderationQueue(tt.graph)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrCyclicGraph)
		})
	}
}

func TestBuildConsiderationQueue_CycleErrorNamesUnits(t *testing.T) {
	t.Parallel()

	a, b, c := core.NamedUnit("A"), core.NamedUnit("B"), core.NamedUnit("C")
	_, err := buildConsiderationQueue(Graph{a: nil, b: {a, c}, c: {b}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "B, C")
	assert.NotContains(t, err.Error(), "A,")
}

func TestGraph_Units(t *testing.T) {
	t.Parallel()

	a, b, c := core.NamedUnit("A"), core.NamedUnit("B"), core.NamedUnit("C")

	// Dependency-only units count; result is sorted.
	units := Graph{c: {a, b}}.Units()
	require.Len(t, units, 3)
	assert.Equal(t, "A", units[0].Name())
	assert.Equal(t, "B", units[1].Name())
	assert.Equal(t, "C", units[2].Name())
}

func TestValidateOrdering(t *testing.T) {
	t.Parallel()

	a, b, c := core.NamedUnit("A"), core.NamedUnit("B"), core.NamedUnit("C")

	assert.NoError(t, validateOrdering(
		[]core.Unit{a, b, c},
		[][]core.Unit{{a}, {b, c}},
	))

	// A unit never mentioned by any layer is fine.
	assert.NoError(t, validateOrdering(
		[]core.Unit{a, b, c},
		[][]core.Unit{{a}},
	))

	err := validateOrdering(
		[]core.Unit{a, b},
		[][]core.Unit{{a}, {c}},
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownUnit)
	assert.Contains(t, err.Error(), "C")
}
