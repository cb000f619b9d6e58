package sched

import (
	"context"

	"github.com/pacer-org/pacer/internal/condition"
	"github.com/pacer-org/pacer/internal/core"
	"github.com/pacer-org/pacer/internal/logger"
	"github.com/pacer-org/pacer/internal/logger/tag"
)

// genState tracks where in the run loop the generator resumes. The loop
// nests trials over passes over consideration layers; each Next call picks
// up exactly where the previous emission suspended it.
type genState int

const (
	// stateTrialTop is about to check termination and begin a pass.
	stateTrialTop genState = iota
	// stateConsider is about to consider the next queue layer.
	stateConsider
	// stateDeadPass decides whether the finished pass produced anything.
	stateDeadPass
	// statePassEnd closes out the pass and loops back to the trial top.
	statePassEnd
)

// Generator produces the time steps of one run, one eligibility set per
// Next call. It is a pull iterator: nothing advances until the caller asks,
// and clock ticks attached to an emitted step are applied when the caller
// comes back for the next one, so conditions evaluated between calls see
// time frozen at the emitted step.
//
// A Generator is not safe for concurrent use, and only the generator from
// the scheduler's most recent Run produces steps. When its context is
// canceled it stops without closing out the trial.
type Generator struct {
	s     *Scheduler
	ctx   context.Context
	gen   uint64
	runID string

	trialTerm condition.Condition
	runTerm   condition.Condition

	state       genState
	layerIdx    int
	passHadExec bool
	pendingStep bool
	done        bool

	execList []core.UnitSet
}

// Next returns the next time step's eligibility set. The second return is
// false once the run has terminated, the generator was superseded by a
// newer Run, or the context was canceled. An emitted set may be empty: a
// pass in which nothing was eligible contributes exactly one empty step.
func (g *Generator) Next() (core.UnitSet, bool) {
	if g.done {
		return nil, false
	}
	if g.gen != g.s.generation {
		logger.Debug(g.ctx, "Generator superseded by a newer run", tag.RunID(g.runID))
		g.done = true
		return nil, false
	}
	if g.ctx.Err() != nil {
		logger.Debug(g.ctx, "Run canceled", tag.RunID(g.runID), tag.Error(g.ctx.Err()))
		g.done = true
		return nil, false
	}

	if g.pendingStep {
		g.s.clock.increment(core.TimeStep)
		g.pendingStep = false
	}

	for {
		switch g.state {
		case stateTrialTop:
			if g.terminated() {
				g.s.clock.increment(core.Trial)
				g.done = true
				logger.Debug(g.ctx, "Run terminated",
					tag.RunID(g.runID),
					tag.Count(len(g.execList)),
				)
				return nil, false
			}
			g.s.counts.resetTotals(core.Pass)
			g.s.clock.reset(core.Pass)
			g.passHadExec = false
			g.layerIdx = 0
			g.state = stateConsider

		case stateConsider:
			if g.layerIdx >= len(g.s.queue) || g.terminated() {
				g.state = stateDeadPass
				continue
			}
			step := g.considerLayer()
			g.layerIdx++
			if len(step) > 0 {
				g.execList = append(g.execList, step)
				g.pendingStep = true
				return step.Copy(), true
			}

		case stateDeadPass:
			g.state = statePassEnd
			if !g.passHadExec {
				g.execList = append(g.execList, core.NewUnitSet())
				g.pendingStep = true
				return core.NewUnitSet(), true
			}

		case statePassEnd:
			logger.Debug(g.ctx, "Pass complete",
				tag.RunID(g.runID),
				tag.Pass(g.s.clock.time(core.Trial, core.Pass)),
				tag.Count(len(g.execList)),
			)
			g.s.clock.increment(core.Pass)
			g.state = stateTrialTop
		}
	}
}

// considerLayer runs the current layer to a fixed point. Each sweep admits
// every unit whose condition holds; an admission updates the counters other
// units in the layer may be gating on, so sweeps repeat until one admits
// nothing. A unit is admitted at most once per time step, which bounds the
// cascade by the layer size.
func (g *Generator) considerLayer() core.UnitSet {
	layer := g.s.queue[g.layerIdx]
	step := core.NewUnitSet()

	for {
		changed := false
		for _, unit := range layer {
			if step.Has(unit) {
				continue
			}
			cond, ok := g.s.conds.Get(unit)
			if !ok || !cond.IsSatisfied() {
				continue
			}

			step.Add(unit)
			g.passHadExec = true
			changed = true
			g.s.counts.recordRun(unit)

			logger.Debug(g.ctx, "Unit admitted to time step",
				tag.Unit(unit),
				tag.Layer(g.layerIdx),
				tag.Step(g.s.clock.time(core.Trial, core.TimeStep)),
			)
		}
		if !changed {
			break
		}
	}
	return step
}

func (g *Generator) terminated() bool {
	return g.trialTerm.IsSatisfied() || g.runTerm.IsSatisfied()
}

// RunID returns the identifier assigned to this run.
func (g *Generator) RunID() string {
	return g.runID
}

// ExecutionList returns a copy of every set emitted so far, in emission
// order.
func (g *Generator) ExecutionList() []core.UnitSet {
	out := make([]core.UnitSet, len(g.execList))
	for i, s := range g.execList {
		out[i] = s.Copy()
	}
	return out
}

// All drains the generator and returns the full execution list of the run.
// It stops early if the context is canceled or the generator is superseded.
func (g *Generator) All() []core.UnitSet {
	for {
		if _, ok := g.Next(); !ok {
			break
		}
	}
	return g.ExecutionList()
}
