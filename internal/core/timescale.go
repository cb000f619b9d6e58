package core

import (
	"fmt"
	"strings"
)

// TimeScale identifies one resolution in the scheduler's nested clock
// hierarchy. Scales are ordered finest to coarsest; a lower value always
// means a finer grain. Reset and rollup logic relies on this ordering, so
// the constant order must not change.
type TimeScale int

const (
	// TimeStep is one set of simultaneously eligible units.
	TimeStep TimeScale = iota
	// Pass is one full walk over the consideration queue.
	Pass
	// Trial is one or more passes, bounded by the trial termination condition.
	Trial
	// Run is one or more trials, bounded by the run termination condition.
	Run
)

// String returns the canonical lowercase token used across logs and
// definition files.
func (s TimeScale) String() string {
	switch s {
	case TimeStep:
		return "time_step"
	case Pass:
		return "pass"
	case Trial:
		return "trial"
	case Run:
		return "run"
	default:
		return "unknown"
	}
}

// FinerOrEqual reports whether s is at least as fine a grain as other.
// Resetting a scale resets every scale for which this holds.
func (s TimeScale) FinerOrEqual(other TimeScale) bool {
	return s <= other
}

// TimeScales returns all scales ordered finest to coarsest.
func TimeScales() []TimeScale {
	return []TimeScale{TimeStep, Pass, Trial, Run}
}

// ParseTimeScale parses a string into a TimeScale.
// The comparison is case-insensitive.
func ParseTimeScale(s string) (TimeScale, error) {
	switch strings.ToLower(s) {
	case "time_step", "timestep", "step":
		return TimeStep, nil
	case "pass":
		return Pass, nil
	case "trial":
		return Trial, nil
	case "run":
		return Run, nil
	default:
		return TimeStep, fmt.Errorf("unknown time scale: %q (expected time_step, pass, trial, or run)", s)
	}
}
