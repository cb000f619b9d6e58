// Package output renders dry-run schedules for the terminal.
package output

import (
	"strings"

	"github.com/fatih/color"

	"github.com/pacer-org/pacer/internal/core"
)

// Step symbols using Unicode characters for visual clarity.
const (
	SymbolExecuted = "●" // Filled circle for a step that admitted units
	SymbolIdle     = "○" // Empty circle for a dead pass's empty step
)

// StepSymbol returns the appropriate Unicode symbol for a time step.
func StepSymbol(units core.UnitSet) string {
	if len(units) == 0 {
		return SymbolIdle
	}
	return SymbolExecuted
}

// StepText returns the admitted unit names of a time step, sorted and
// comma-separated. An empty step renders as "(none)".
func StepText(units core.UnitSet) string {
	if len(units) == 0 {
		return "(none)"
	}
	return strings.Join(units.Names(), ", ")
}

// StepColorize applies color formatting to a string based on whether the
// step admitted any units.
func StepColorize(s string, units core.UnitSet) string {
	if len(units) == 0 {
		return color.New(color.Faint).Sprint(s)
	}
	return color.GreenString(s)
}
