package condition

import (
	"sort"

	"github.com/pacer-org/pacer/internal/core"
)

// Set maps each unit to the condition gating it. A set can be assembled
// standalone and attached to a scheduler later; attaching binds every
// condition already present, and conditions added afterwards are bound on
// arrival.
//
// A Set is not safe for concurrent use.
type Set struct {
	state      State
	conditions map[core.Unit]Condition
}

// NewSet returns an empty set.
func NewSet() *Set {
	return &Set{conditions: make(map[core.Unit]Condition)}
}

// Bind attaches the set, and every condition it holds, to the given
// scheduler state.
func (s *Set) Bind(state State) {
	s.state = state
	for owner, cond := range s.conditions {
		cond.Bind(state, owner)
	}
}

// Add sets the condition gating owner, replacing any previous one. If the
// set is attached to a scheduler the condition is bound immediately.
func (s *Set) Add(owner core.Unit, cond Condition) {
	if s.state != nil {
		cond.Bind(s.state, owner)
	}
	s.conditions[owner] = cond
}

// AddAll adds every owner-condition pair from the given map.
func (s *Set) AddAll(conditions map[core.Unit]Condition) {
	for owner, cond := range conditions {
		s.Add(owner, cond)
	}
}

// Has reports whether owner has an explicit condition.
func (s *Set) Has(owner core.Unit) bool {
	_, ok := s.conditions[owner]
	return ok
}

// Get returns the condition gating owner.
func (s *Set) Get(owner core.Unit) (Condition, bool) {
	cond, ok := s.conditions[owner]
	return cond, ok
}

// Len returns the number of units with explicit conditions.
func (s *Set) Len() int {
	return len(s.conditions)
}

// Owners returns the units with explicit conditions, sorted by name.
func (s *Set) Owners() []core.Unit {
	owners := make([]core.Unit, 0, len(s.conditions))
	for owner := range s.conditions {
		owners = append(owners, owner)
	}
	sort.Slice(owners, func(i, j int) bool { return owners[i].Name() < owners[j].Name() })
	return owners
}

// EnsureDefaults assigns Always to every listed unit that has no explicit
// condition and returns the units it defaulted, sorted by name.
func (s *Set) EnsureDefaults(units []core.Unit) []core.Unit {
	var defaulted []core.Unit
	for _, u := range units {
		if !s.Has(u) {
			s.Add(u, Always())
			defaulted = append(defaulted, u)
		}
	}
	sort.Slice(defaulted, func(i, j int) bool { return defaulted[i].Name() < defaulted[j].Name() })
	return defaulted
}
