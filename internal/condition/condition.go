// Package condition provides the gating predicates that decide when a unit
// is eligible to run. A condition never runs anything itself; the scheduler
// asks it, once per consideration, whether its owner may be included in the
// current time step.
//
// Conditions read scheduler state through the narrow State view. They are
// inert until the scheduler binds them to that view and to the unit they
// gate, which happens when the condition is added to a condition set.
package condition

import (
	"github.com/pacer-org/pacer/internal/core"
)

// State is the read-only view of scheduler bookkeeping that conditions
// consult. The scheduler owning the condition implements it.
type State interface {
	// TotalCalls returns how many times unit has run within the current
	// scope. Counts reset when the scope rolls over.
	TotalCalls(scope core.TimeScale, unit core.Unit) int

	// UsableCalls returns how many runs of dependency are still unconsumed
	// by consumer. The count resets to zero whenever consumer runs.
	UsableCalls(dependency, consumer core.Unit) int

	// Time returns how many units of scale have elapsed within the current
	// scope. Time(core.Trial, core.Pass) is the number of completed passes
	// in the current trial.
	Time(scope, scale core.TimeScale) int

	// Units returns every unit known to the scheduler.
	Units() []core.Unit
}

// Condition gates the eligibility of a single unit.
type Condition interface {
	// Bind attaches the condition to the scheduler state it reads and the
	// unit it gates. The scheduler calls Bind when the condition is added;
	// a later Bind replaces the earlier one.
	Bind(state State, owner core.Unit)

	// IsSatisfied reports whether the gate is open. It must only be called
	// after Bind.
	IsSatisfied() bool
}

// base carries the bound state shared by the built-in conditions.
type base struct {
	state State
	owner core.Unit
}

// Bind implements Condition.
func (b *base) Bind(state State, owner core.Unit) {
	b.state = state
	b.owner = owner
}

// sched returns the bound state, panicking on use before Bind. Conditions
// are only ever evaluated by a scheduler that has bound them first, so
// hitting this is a programming error, not a runtime condition.
func (b *base) sched() State {
	if b.state == nil {
		panic("condition: evaluated before being added to a scheduler")
	}
	return b.state
}

type funcCondition struct {
	base
	fn func(state State, owner core.Unit) bool
}

// Func adapts an arbitrary predicate into a Condition. The predicate
// receives the bound scheduler state and the unit the condition gates.
func Func(fn func(state State, owner core.Unit) bool) Condition {
	return &funcCondition{fn: fn}
}

// IsSatisfied implements Condition.
func (c *funcCondition) IsSatisfied() bool {
	return c.fn(c.sched(), c.owner)
}

// within resolves an optional scope argument against a default. Built-in
// constructors accept at most one trailing scope.
func within(def core.TimeScale, scope []core.TimeScale) core.TimeScale {
	if len(scope) > 0 {
		return scope[0]
	}
	return def
}
