package sched

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pacer-org/pacer/internal/condition"
	"github.com/pacer-org/pacer/internal/core"
)

func TestNew_LinearGraph(t *testing.T) {
	t.Parallel()

	a, b, c, _ := testUnits()
	s, err := New(Graph{b: {a}, c: {b}})
	require.NoError(t, err)

	assert.Equal(t, [][]string{{"A"}, {"B"}, {"C"}}, layerNames(s.ConsiderationQueue()))
	require.Len(t, s.Units(), 3)
	assert.Equal(t, "A", s.Units()[0].Name())
}

func TestNew_CyclicGraph(t *testing.T) {
	t.Parallel()

	a, b, _, _ := testUnits()
	_, err := New(Graph{a: {b}, b: {a}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCyclicGraph)
}

func TestNewFromOrdering(t *testing.T) {
	t.Parallel()

	a, b, c, units := testUnits()
	s, err := NewFromOrdering(units, [][]core.Unit{{a, b}, {c}})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"A", "B"}, {"C"}}, layerNames(s.ConsiderationQueue()))
}

func TestNewFromOrdering_UnknownUnit(t *testing.T) {
	t.Parallel()

	a, b, c, _ := testUnits()
	_, err := NewFromOrdering([]core.Unit{a, b}, [][]core.Unit{{a}, {c}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownUnit)
}

func TestNewFromOrdering_KeepsLayerOrder(t *testing.T) {
	t.Parallel()

	a, b, _, _ := testUnits()
	s, err := NewFromOrdering([]core.Unit{a, b}, [][]core.Unit{{b, a}})
	require.NoError(t, err)

	// Explicit orderings are taken as given, not re-sorted.
	assert.Equal(t, [][]string{{"B", "A"}}, layerNames(s.ConsiderationQueue()))
}

func TestScheduler_ConditionManagement(t *testing.T) {
	t.Parallel()

	a, b, _, _ := testUnits()
	s, err := New(Graph{b: {a}})
	require.NoError(t, err)

	assert.False(t, s.HasCondition(b))
	s.AddCondition(b, condition.EveryNCalls(a, 2))
	assert.True(t, s.HasCondition(b))

	s.AddConditions(map[core.Unit]condition.Condition{
		a: condition.Always(),
	})
	assert.True(t, s.HasCondition(a))
	assert.Equal(t, 2, s.Conditions().Len())
}

func TestScheduler_ConditionsBoundOnAdd(t *testing.T) {
	t.Parallel()

	a, b, _, _ := testUnits()
	s, err := New(Graph{b: {a}})
	require.NoError(t, err)

	// The condition reads scheduler state as soon as it is added; no run
	// has happened, so nothing is usable yet.
	cond := condition.EveryNCalls(a, 1)
	s.AddCondition(b, cond)
	assert.False(t, cond.IsSatisfied())
}

func TestWithConditions(t *testing.T) {
	t.Parallel()

	a, b, _, _ := testUnits()

	set := condition.NewSet()
	set.Add(b, condition.Never())

	s, err := New(Graph{b: {a}}, WithConditions(set))
	require.NoError(t, err)

	assert.True(t, s.HasCondition(b))
	cond, ok := set.Get(b)
	require.True(t, ok)
	assert.False(t, cond.IsSatisfied())
}

func TestWithTerminationCondition(t *testing.T) {
	t.Parallel()

	a, _, _, _ := testUnits()
	s, err := New(Graph{a: nil}, WithTerminationCondition(core.Trial, condition.AfterPass(1)))
	require.NoError(t, err)

	cond, ok := s.TerminationCondition(core.Trial)
	require.True(t, ok)
	assert.False(t, cond.IsSatisfied())
}

func TestScheduler_DefaultTerminationConditions(t *testing.T) {
	t.Parallel()

	a, _, _, _ := testUnits()
	s, err := New(Graph{a: nil})
	require.NoError(t, err)

	run, ok := s.TerminationCondition(core.Run)
	require.True(t, ok)
	assert.False(t, run.IsSatisfied())

	trial, ok := s.TerminationCondition(core.Trial)
	require.True(t, ok)
	// Nothing has run yet, so AllHaveRun does not hold.
	assert.False(t, trial.IsSatisfied())
}

func TestUpdateTerminationConditions(t *testing.T) {
	t.Parallel()

	a, _, _, _ := testUnits()
	s, err := New(Graph{a: nil})
	require.NoError(t, err)

	s.UpdateTerminationConditions(map[core.TimeScale]condition.Condition{
		core.Trial: condition.AfterPass(1),
		core.Run:   nil, // ignored
	})

	cond, ok := s.TerminationCondition(core.Trial)
	require.True(t, ok)
	assert.False(t, cond.IsSatisfied())

	run, ok := s.TerminationCondition(core.Run)
	require.True(t, ok)
	assert.False(t, run.IsSatisfied())
}

func TestScheduler_StateView(t *testing.T) {
	t.Parallel()

	a, b, _, _ := testUnits()
	s, err := New(Graph{b: {a}})
	require.NoError(t, err)

	assert.Zero(t, s.TotalCalls(core.Trial, a))
	assert.Zero(t, s.UsableCalls(a, b))
	assert.Zero(t, s.Time(core.Trial, core.Pass))

	units := s.Units()
	require.Len(t, units, 2)

	// The returned slice is a copy.
	units[0] = core.NamedUnit("Z")
	assert.Equal(t, "A", s.Units()[0].Name())
}

func TestScheduler_RunAssignsDistinctIDs(t *testing.T) {
	t.Parallel()

	a, _, _, _ := testUnits()
	s, err := New(Graph{a: nil})
	require.NoError(t, err)

	g1 := s.Run(context.Background(), nil)
	g2 := s.Run(context.Background(), nil)
	assert.NotEmpty(t, g1.RunID())
	assert.NotEmpty(t, g2.RunID())
	assert.NotEqual(t, g1.RunID(), g2.RunID())
}
