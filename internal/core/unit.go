package core

import "sort"

// Unit is a schedulable entity. The scheduler never invokes a unit; it only
// decides when a unit is eligible and reports eligibility to the caller.
//
// Implementations are used as map keys throughout the scheduler, so the
// dynamic type must be comparable and two values must compare equal exactly
// when they denote the same unit.
type Unit interface {
	// Name returns a human-readable identifier used in logs and errors.
	Name() string
}

// NamedUnit is the minimal Unit: an identity carried entirely by its name.
// Two NamedUnits with the same name are the same unit.
type NamedUnit string

// Name implements Unit.
func (u NamedUnit) Name() string { return string(u) }

// UnitSet is an unordered collection of units. The zero value is not usable;
// construct with NewUnitSet.
type UnitSet map[Unit]struct{}

// NewUnitSet returns a set containing the given units.
func NewUnitSet(units ...Unit) UnitSet {
	s := make(UnitSet, len(units))
	for _, u := range units {
		s[u] = struct{}{}
	}
	return s
}

// Add inserts a unit into the set.
func (s UnitSet) Add(u Unit) { s[u] = struct{}{} }

// Has reports whether the set contains the unit.
func (s UnitSet) Has(u Unit) bool {
	_, ok := s[u]
	return ok
}

// Copy returns an independent set with the same members.
func (s UnitSet) Copy() UnitSet {
	out := make(UnitSet, len(s))
	for u := range s {
		out[u] = struct{}{}
	}
	return out
}

// Equal reports whether both sets contain exactly the same units.
func (s UnitSet) Equal(other UnitSet) bool {
	if len(s) != len(other) {
		return false
	}
	for u := range s {
		if !other.Has(u) {
			return false
		}
	}
	return true
}

// Names returns the sorted names of all units in the set.
func (s UnitSet) Names() []string {
	names := make([]string, 0, len(s))
	for u := range s {
		names = append(names, u.Name())
	}
	sort.Strings(names)
	return names
}

// Units returns the set's members sorted by name, for deterministic output.
func (s UnitSet) Units() []Unit {
	units := make([]Unit, 0, len(s))
	for u := range s {
		units = append(units, u)
	}
	sort.Slice(units, func(i, j int) bool { return units[i].Name() < units[j].Name() })
	return units
}
