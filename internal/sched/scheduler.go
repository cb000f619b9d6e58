// Package sched implements a conditionally gated dependency scheduler. A
// scheduler is built from a dependency graph (or an explicit layered
// ordering) over units, consults per-unit conditions to decide eligibility,
// and produces runs: streams of unit sets where each set holds the units
// that may execute simultaneously during one time step.
//
// The scheduler never executes anything. Callers pull eligibility sets from
// a Generator and do the running themselves, which keeps the pacing logic
// reusable regardless of what a unit actually is.
package sched

import (
	"context"

	"github.com/google/uuid"

	"github.com/pacer-org/pacer/internal/condition"
	"github.com/pacer-org/pacer/internal/core"
	"github.com/pacer-org/pacer/internal/logger"
	"github.com/pacer-org/pacer/internal/logger/tag"
)

// Scheduler holds the consideration queue, the condition set gating each
// unit, and the clocks and counters conditions read. It implements
// condition.State, so conditions added to it observe its bookkeeping
// directly.
//
// A Scheduler is not safe for concurrent use. State at the Run scope
// persists across runs; everything finer resets when a new run starts.
type Scheduler struct {
	units       []core.Unit
	queue       [][]core.Unit
	conds       *condition.Set
	termination map[core.TimeScale]condition.Condition

	clock  *clock
	counts *counters

	// generation identifies the latest run. A Generator created by an
	// earlier Run observes the mismatch and refuses to continue, so at most
	// one live generator mutates the scheduler.
	generation uint64
}

var _ condition.State = (*Scheduler)(nil)

// Option configures a Scheduler at construction.
type Option func(*Scheduler)

// WithConditions attaches a pre-assembled condition set. The set is bound
// to the scheduler, replacing the empty default.
func WithConditions(set *condition.Set) Option {
	return func(s *Scheduler) {
		s.conds = set
	}
}

// WithTerminationCondition replaces the default termination condition for
// the given scale. Only Run and Trial termination conditions are consulted.
func WithTerminationCondition(scale core.TimeScale, cond condition.Condition) Option {
	return func(s *Scheduler) {
		s.termination[scale] = cond
	}
}

// New builds a scheduler from a dependency graph. The consideration queue
// is derived by layering the graph; construction fails with ErrCyclicGraph
// when the dependencies cannot be layered.
func New(graph Graph, opts ...Option) (*Scheduler, error) {
	queue, err := buildConsiderationQueue(graph)
	if err != nil {
		return nil, err
	}
	return newScheduler(graph.Units(), queue, opts), nil
}

// NewFromOrdering builds a scheduler from an explicit layered ordering,
// bypassing graph analysis. Layers are considered in the given order and
// kept as given. A unit in the list but absent from every layer is tracked
// by the counters yet never considered for execution.
func NewFromOrdering(units []core.Unit, layers [][]core.Unit, opts ...Option) (*Scheduler, error) {
	if err := validateOrdering(units, layers); err != nil {
		return nil, err
	}

	queue := make([][]core.Unit, len(layers))
	for i, layer := range layers {
		queue[i] = append([]core.Unit(nil), layer...)
	}
	return newScheduler(core.NewUnitSet(units...).Units(), queue, opts), nil
}

func newScheduler(units []core.Unit, queue [][]core.Unit, opts []Option) *Scheduler {
	s := &Scheduler{
		units: units,
		queue: queue,
		conds: condition.NewSet(),
		termination: map[core.TimeScale]condition.Condition{
			core.Run:   condition.Never(),
			core.Trial: condition.AllHaveRun(),
		},
		clock:  newClock(),
		counts: newCounters(units),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.conds.Bind(s)
	for _, cond := range s.termination {
		cond.Bind(s, nil)
	}
	return s
}

// AddCondition sets the condition gating owner, replacing any previous one.
func (s *Scheduler) AddCondition(owner core.Unit, cond condition.Condition) {
	s.conds.Add(owner, cond)
}

// AddConditions adds every owner-condition pair from the given map.
func (s *Scheduler) AddConditions(conds map[core.Unit]condition.Condition) {
	s.conds.AddAll(conds)
}

// HasCondition reports whether owner has an explicit condition.
func (s *Scheduler) HasCondition(owner core.Unit) bool {
	return s.conds.Has(owner)
}

// Conditions returns the scheduler's condition set.
func (s *Scheduler) Conditions() *condition.Set {
	return s.conds
}

// UpdateTerminationConditions merges the given termination conditions into
// the scheduler's persistent set. Later runs keep using them until they are
// updated again.
func (s *Scheduler) UpdateTerminationConditions(conds map[core.TimeScale]condition.Condition) {
	for scale, cond := range conds {
		if cond == nil {
			continue
		}
		cond.Bind(s, nil)
		s.termination[scale] = cond
	}
}

// TerminationCondition returns the persistent termination condition for the
// given scale.
func (s *Scheduler) TerminationCondition(scale core.TimeScale) (condition.Condition, bool) {
	cond, ok := s.termination[scale]
	return cond, ok
}

// ConsiderationQueue returns a copy of the layered ordering units are
// considered in.
func (s *Scheduler) ConsiderationQueue() [][]core.Unit {
	queue := make([][]core.Unit, len(s.queue))
	for i, layer := range s.queue {
		queue[i] = append([]core.Unit(nil), layer...)
	}
	return queue
}

// TotalCalls implements condition.State.
func (s *Scheduler) TotalCalls(scope core.TimeScale, unit core.Unit) int {
	return s.counts.total(scope, unit)
}

// UsableCalls implements condition.State.
func (s *Scheduler) UsableCalls(dependency, consumer core.Unit) int {
	return s.counts.usableBy(dependency, consumer)
}

// Time implements condition.State.
func (s *Scheduler) Time(scope, scale core.TimeScale) int {
	return s.clock.time(scope, scale)
}

// Units implements condition.State.
func (s *Scheduler) Units() []core.Unit {
	return append([]core.Unit(nil), s.units...)
}

// Run starts a new run and returns the generator producing its time steps.
// Units without an explicit condition are given Always. The overrides, if
// any, replace the persistent termination conditions for this run only.
//
// Starting a run resets the usable-credit table and all bookkeeping at the
// Trial scope and below; Run-scoped counts and clocks keep accumulating for
// the life of the scheduler. Any generator from an earlier Run is
// superseded and stops producing.
func (s *Scheduler) Run(ctx context.Context, overrides map[core.TimeScale]condition.Condition) *Generator {
	if defaulted := s.conds.EnsureDefaults(s.units); len(defaulted) > 0 {
		names := make([]string, len(defaulted))
		for i, u := range defaulted {
			names[i] = u.Name()
		}
		logger.Info(ctx, "Units without conditions will always be eligible", "units", names)
	}

	term := make(map[core.TimeScale]condition.Condition, len(s.termination))
	for scale, cond := range s.termination {
		term[scale] = cond
	}
	for scale, cond := range overrides {
		if cond == nil {
			continue
		}
		cond.Bind(s, nil)
		term[scale] = cond
	}

	s.counts.resetUsable()
	s.counts.resetTotals(core.Trial)
	s.clock.reset(core.Trial)
	s.generation++

	runID := uuid.Must(uuid.NewRandom()).String()
	logger.Debug(ctx, "Run started",
		tag.RunID(runID),
		tag.Count(len(s.units)),
	)

	return &Generator{
		s:         s,
		ctx:       ctx,
		gen:       s.generation,
		runID:     runID,
		trialTerm: term[core.Trial],
		runTerm:   term[core.Run],
	}
}
