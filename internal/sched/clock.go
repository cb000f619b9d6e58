package sched

import (
	"github.com/pacer-org/pacer/internal/core"
)

// clock is the multi-resolution logical clock. times[scope][scale] counts
// how many units of scale have elapsed within the current scope, so the
// same tick is visible at every scope simultaneously: finishing a pass bumps
// the pass cell of the trial row and of the run row alike.
type clock struct {
	times map[core.TimeScale]map[core.TimeScale]int
}

func newClock() *clock {
	c := &clock{times: make(map[core.TimeScale]map[core.TimeScale]int)}
	for _, scope := range core.TimeScales() {
		row := make(map[core.TimeScale]int)
		for _, scale := range core.TimeScales() {
			row[scale] = 0
		}
		c.times[scope] = row
	}
	return c
}

// time returns the number of scale ticks elapsed within the current scope.
func (c *clock) time(scope, scale core.TimeScale) int {
	return c.times[scope][scale]
}

// increment records one completed unit of scale in every scope row at once.
func (c *clock) increment(scale core.TimeScale) {
	for _, scope := range core.TimeScales() {
		c.times[scope][scale]++
	}
}

// reset zeroes the full row of every scope at least as fine as scale. A new
// trial therefore restarts the time step, pass, and trial rows while the run
// row keeps accumulating.
func (c *clock) reset(scale core.TimeScale) {
	for _, scope := range core.TimeScales() {
		if !scope.FinerOrEqual(scale) {
			continue
		}
		for _, s := range core.TimeScales() {
			c.times[scope][s] = 0
		}
	}
}
