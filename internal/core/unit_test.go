package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamedUnit_Identity(t *testing.T) {
	t.Parallel()

	a1 := NamedUnit("A")
	a2 := NamedUnit("A")
	b := NamedUnit("B")

	assert.Equal(t, "A", a1.Name())
	assert.True(t, a1 == a2)
	assert.False(t, a1 == b)

	// Equal names collapse to a single map key.
	s := NewUnitSet(a1, a2, b)
	assert.Len(t, s, 2)
}

func TestUnitSet_AddHas(t *testing.T) {
	t.Parallel()

	s := NewUnitSet()
	assert.False(t, s.Has(NamedUnit("A")))

	s.Add(NamedUnit("A"))
	assert.True(t, s.Has(NamedUnit("A")))
	assert.False(t, s.Has(NamedUnit("B")))
}

func TestUnitSet_Equal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a    UnitSet
		b    UnitSet
		want bool
	}{
		{"both empty", NewUnitSet(), NewUnitSet(), true},
		{"same members", NewUnitSet(NamedUnit("A"), NamedUnit("B")), NewUnitSet(NamedUnit("B"), NamedUnit("A")), true},
		{"different size", NewUnitSet(NamedUnit("A")), NewUnitSet(NamedUnit("A"), NamedUnit("B")), false},
		{"disjoint", NewUnitSet(NamedUnit("A")), NewUnitSet(NamedUnit("B")), false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.a.Equal(tt.b))
		})
	}
}

func TestUnitSet_NamesSorted(t *testing.T) {
	t.Parallel()

	s := NewUnitSet(NamedUnit("C"), NamedUnit("A"), NamedUnit("B"))
	assert.Equal(t, []string{"A", "B", "C"}, s.Names())

	units := s.Units()
	require.Len(t, units, 3)
	assert.Equal(t, "A", units[0].Name())
	assert.Equal(t, "C", units[2].Name())
}
