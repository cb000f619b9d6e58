package sched

import (
	"github.com/pacer-org/pacer/internal/core"
)

// counters tracks how often units run. totals[scope][unit] accumulates runs
// within each scope and is trimmed back when the scope rolls over.
//
// usable[dep][consumer] is the credit table behind consumed dependencies:
// each run of dep deposits one credit with every unit, and a consumer
// spends its accumulated credits for dep the moment the consumer itself
// runs. A unit deposits a credit with itself too, which is what lets a unit
// gate on its own runs.
type counters struct {
	units  []core.Unit
	totals map[core.TimeScale]map[core.Unit]int
	usable map[core.Unit]map[core.Unit]int
}

func newCounters(units []core.Unit) *counters {
	c := &counters{
		units:  units,
		totals: make(map[core.TimeScale]map[core.Unit]int),
	}
	for _, scope := range core.TimeScales() {
		row := make(map[core.Unit]int, len(units))
		for _, u := range units {
			row[u] = 0
		}
		c.totals[scope] = row
	}
	c.resetUsable()
	return c
}

// total returns how many times unit has run within the current scope.
func (c *counters) total(scope core.TimeScale, unit core.Unit) int {
	return c.totals[scope][unit]
}

// usableBy returns dep's unspent credits held by consumer.
func (c *counters) usableBy(dep, consumer core.Unit) int {
	return c.usable[dep][consumer]
}

// recordRun books one run of unit: every scope's total goes up, the unit
// spends all credits it holds, and every unit (itself included) receives one
// fresh credit for this run.
func (c *counters) recordRun(unit core.Unit) {
	for _, scope := range core.TimeScales() {
		c.totals[scope][unit]++
	}
	for _, dep := range c.units {
		c.usable[dep][unit] = 0
	}
	for _, consumer := range c.units {
		c.usable[unit][consumer]++
	}
}

// resetTotals zeroes the totals of every scope at least as fine as scale.
func (c *counters) resetTotals(scale core.TimeScale) {
	for _, scope := range core.TimeScales() {
		if !scope.FinerOrEqual(scale) {
			continue
		}
		for _, u := range c.units {
			c.totals[scope][u] = 0
		}
	}
}

// resetUsable clears the whole credit table.
func (c *counters) resetUsable() {
	c.usable = make(map[core.Unit]map[core.Unit]int, len(c.units))
	for _, dep := range c.units {
		row := make(map[core.Unit]int, len(c.units))
		for _, consumer := range c.units {
			row[consumer] = 0
		}
		c.usable[dep] = row
	}
}
