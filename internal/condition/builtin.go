package condition

import (
	"github.com/pacer-org/pacer/internal/core"
)

type always struct{ base }

// Always is satisfied on every consideration. Units without an explicit
// condition are gated by Always.
func Always() Condition { return &always{} }

// IsSatisfied implements Condition.
func (c *always) IsSatisfied() bool { return true }

type never struct{ base }

// Never is never satisfied. It is the default run termination condition, so
// runs end only when the caller stops pulling.
func Never() Condition { return &never{} }

// IsSatisfied implements Condition.
func (c *never) IsSatisfied() bool { return false }

type everyNCalls struct {
	base
	dep core.Unit
	n   int
}

// EveryNCalls is satisfied once dependency has run n times since the owner
// last ran. Runs of the dependency are consumed: when the owner runs, its
// view of the dependency's count returns to zero and accumulation starts
// over. A unit may depend on itself; each of its runs then re-arms the gate.
func EveryNCalls(dependency core.Unit, n int) Condition {
	return &everyNCalls{dep: dependency, n: n}
}

// IsSatisfied implements Condition.
func (c *everyNCalls) IsSatisfied() bool {
	return c.sched().UsableCalls(c.dep, c.owner) >= c.n
}

type afterNCalls struct {
	base
	dep   core.Unit
	n     int
	scope core.TimeScale
}

// AfterNCalls is satisfied once dependency has run at least n times within
// the scope (default Trial). Unlike EveryNCalls, runs are not consumed.
func AfterNCalls(dependency core.Unit, n int, scope ...core.TimeScale) Condition {
	return &afterNCalls{dep: dependency, n: n, scope: within(core.Trial, scope)}
}

// IsSatisfied implements Condition.
func (c *afterNCalls) IsSatisfied() bool {
	return c.sched().TotalCalls(c.scope, c.dep) >= c.n
}

type atNCalls struct {
	base
	dep   core.Unit
	n     int
	scope core.TimeScale
}

// AtNCalls is satisfied while dependency has run exactly n times within the
// scope (default Trial).
func AtNCalls(dependency core.Unit, n int, scope ...core.TimeScale) Condition {
	return &atNCalls{dep: dependency, n: n, scope: within(core.Trial, scope)}
}

// IsSatisfied implements Condition.
func (c *atNCalls) IsSatisfied() bool {
	return c.sched().TotalCalls(c.scope, c.dep) == c.n
}

type beforeNCalls struct {
	base
	dep   core.Unit
	n     int
	scope core.TimeScale
}

// BeforeNCalls is satisfied while dependency has run fewer than n times
// within the scope (default Trial).
func BeforeNCalls(dependency core.Unit, n int, scope ...core.TimeScale) Condition {
	return &beforeNCalls{dep: dependency, n: n, scope: within(core.Trial, scope)}
}

// IsSatisfied implements Condition.
func (c *beforeNCalls) IsSatisfied() bool {
	return c.sched().TotalCalls(c.scope, c.dep) < c.n
}

type atPass struct {
	base
	n     int
	scope core.TimeScale
}

// AtPass is satisfied during pass n of the scope (default Trial). Passes
// are counted from zero, so AtPass(0) holds throughout the first pass.
func AtPass(n int, scope ...core.TimeScale) Condition {
	return &atPass{n: n, scope: within(core.Trial, scope)}
}

// IsSatisfied implements Condition.
func (c *atPass) IsSatisfied() bool {
	return c.sched().Time(c.scope, core.Pass) == c.n
}

type afterPass struct {
	base
	n     int
	scope core.TimeScale
}

// AfterPass is satisfied during every pass after pass n of the scope
// (default Trial).
func AfterPass(n int, scope ...core.TimeScale) Condition {
	return &afterPass{n: n, scope: within(core.Trial, scope)}
}

// IsSatisfied implements Condition.
func (c *afterPass) IsSatisfied() bool {
	return c.sched().Time(c.scope, core.Pass) > c.n
}

type beforePass struct {
	base
	n     int
	scope core.TimeScale
}

// BeforePass is satisfied during every pass before pass n of the scope
// (default Trial).
func BeforePass(n int, scope ...core.TimeScale) Condition {
	return &beforePass{n: n, scope: within(core.Trial, scope)}
}

// IsSatisfied implements Condition.
func (c *beforePass) IsSatisfied() bool {
	return c.sched().Time(c.scope, core.Pass) < c.n
}

type everyNPasses struct {
	base
	n     int
	scope core.TimeScale
}

// EveryNPasses is satisfied during pass 0 and every nth pass after it,
// counted within the scope (default Trial).
func EveryNPasses(n int, scope ...core.TimeScale) Condition {
	return &everyNPasses{n: n, scope: within(core.Trial, scope)}
}

// IsSatisfied implements Condition.
func (c *everyNPasses) IsSatisfied() bool {
	return c.sched().Time(c.scope, core.Pass)%c.n == 0
}

type afterNTrials struct {
	base
	n     int
	scope core.TimeScale
}

// AfterNTrials is satisfied once n trials have completed within the scope
// (default Run).
func AfterNTrials(n int, scope ...core.TimeScale) Condition {
	return &afterNTrials{n: n, scope: within(core.Run, scope)}
}

// IsSatisfied implements Condition.
func (c *afterNTrials) IsSatisfied() bool {
	return c.sched().Time(c.scope, core.Trial) >= c.n
}

type atTrial struct {
	base
	n     int
	scope core.TimeScale
}

// AtTrial is satisfied during trial n of the scope (default Run), counted
// from zero.
func AtTrial(n int, scope ...core.TimeScale) Condition {
	return &atTrial{n: n, scope: within(core.Run, scope)}
}

// IsSatisfied implements Condition.
func (c *atTrial) IsSatisfied() bool {
	return c.sched().Time(c.scope, core.Trial) == c.n
}

type allHaveRun struct {
	base
	deps  []core.Unit
	scope core.TimeScale
}

// AllHaveRun is satisfied once every listed unit has run at least once
// within the current trial. With no units listed, it covers every unit the
// scheduler knows, which makes it the default trial termination condition.
func AllHaveRun(dependencies ...core.Unit) Condition {
	return AllHaveRunWithin(core.Trial, dependencies...)
}

// AllHaveRunWithin is AllHaveRun counted over an explicit scope.
func AllHaveRunWithin(scope core.TimeScale, dependencies ...core.Unit) Condition {
	return &allHaveRun{deps: dependencies, scope: scope}
}

// IsSatisfied implements Condition.
func (c *allHaveRun) IsSatisfied() bool {
	state := c.sched()
	deps := c.deps
	if len(deps) == 0 {
		deps = state.Units()
	}
	for _, dep := range deps {
		if state.TotalCalls(c.scope, dep) < 1 {
			return false
		}
	}
	return true
}

type anyCondition struct {
	base
	children []Condition
}

// Any is satisfied when at least one child condition is satisfied. With no
// children it is never satisfied.
func Any(children ...Condition) Condition {
	return &anyCondition{children: children}
}

// Bind implements Condition, forwarding the binding to every child.
func (c *anyCondition) Bind(state State, owner core.Unit) {
	c.base.Bind(state, owner)
	for _, child := range c.children {
		child.Bind(state, owner)
	}
}

// IsSatisfied implements Condition.
func (c *anyCondition) IsSatisfied() bool {
	for _, child := range c.children {
		if child.IsSatisfied() {
			return true
		}
	}
	return false
}

type allCondition struct {
	base
	children []Condition
}

// All is satisfied when every child condition is satisfied. With no
// children it is always satisfied.
func All(children ...Condition) Condition {
	return &allCondition{children: children}
}

// Bind implements Condition, forwarding the binding to every child.
func (c *allCondition) Bind(state State, owner core.Unit) {
	c.base.Bind(state, owner)
	for _, child := range c.children {
		child.Bind(state, owner)
	}
}

// IsSatisfied implements Condition.
func (c *allCondition) IsSatisfied() bool {
	for _, child := range c.children {
		if !child.IsSatisfied() {
			return false
		}
	}
	return true
}

type notCondition struct {
	base
	child Condition
}

// Not inverts a condition.
func Not(child Condition) Condition {
	return &notCondition{child: child}
}

// Bind implements Condition, forwarding the binding to the child.
func (c *notCondition) Bind(state State, owner core.Unit) {
	c.base.Bind(state, owner)
	c.child.Bind(state, owner)
}

// IsSatisfied implements Condition.
func (c *notCondition) IsSatisfied() bool {
	return !c.child.IsSatisfied()
}
