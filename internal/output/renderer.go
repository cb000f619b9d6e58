package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"

	"github.com/pacer-org/pacer/internal/core"
)

// Format selects how a rendered schedule is laid out.
type Format int

const (
	// FormatTable lays the steps out as an aligned table with a header.
	FormatTable Format = iota
	// FormatPlain emits one "trial.pass.step: units" line per time step.
	FormatPlain
)

// ParseFormat converts a format name into a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "table":
		return FormatTable, nil
	case "plain":
		return FormatPlain, nil
	default:
		return FormatTable, fmt.Errorf("unknown output format: %q (expected table or plain)", s)
	}
}

// Config holds configuration for schedule rendering.
type Config struct {
	ColorEnabled bool   // Enable colored output using ANSI escape codes.
	Format       Format // Table or plain line layout.
}

// DefaultConfig returns the default rendering configuration.
func DefaultConfig() Config {
	return Config{
		ColorEnabled: true,
		Format:       FormatTable,
	}
}

// Row is one emitted time step together with its clock coordinates at the
// moment of emission.
type Row struct {
	Trial int
	Pass  int
	Step  int // index within the pass
	Units core.UnitSet
}

// Renderer renders the time steps of a dry run.
type Renderer struct {
	config Config
}

// NewRenderer creates a renderer with the given configuration.
func NewRenderer(config Config) *Renderer {
	return &Renderer{config: config}
}

// RenderRun formats an emitted step sequence under the schedule's name and
// description. Empty name and description lines are omitted.
func (r *Renderer) RenderRun(name, description string, rows []Row) string {
	if r.config.Format == FormatPlain {
		return r.renderPlain(rows)
	}
	return r.renderTable(name, description, rows)
}

var runHeader = table.Row{
	"#",
	"Trial",
	"Pass",
	"Step",
	"Units",
}

func (r *Renderer) renderTable(name, description string, rows []Row) string {
	var buf bytes.Buffer
	if name != "" {
		_, _ = fmt.Fprintf(&buf, "Schedule: %s\n", name)
	}
	if description != "" {
		_, _ = fmt.Fprintf(&buf, "%s\n", description)
	}

	runTable := table.NewWriter()
	runTable.AppendHeader(runHeader)
	for i, row := range rows {
		cell := StepSymbol(row.Units) + " " + StepText(row.Units)
		if r.config.ColorEnabled {
			cell = StepColorize(cell, row.Units)
		}
		runTable.AppendRow(table.Row{i + 1, row.Trial, row.Pass, row.Step, cell})
	}
	_, _ = buf.WriteString(runTable.Render())
	_, _ = buf.WriteString("\n")
	return buf.String()
}

func (r *Renderer) renderPlain(rows []Row) string {
	var buf bytes.Buffer
	for _, row := range rows {
		_, _ = fmt.Fprintf(&buf, "%d.%d.%d: %s\n", row.Trial, row.Pass, row.Step, StepText(row.Units))
	}
	return buf.String()
}

// RenderQueue formats the consideration queue's layers on one line, one
// bracketed group per layer in consideration order.
func RenderQueue(queue [][]core.Unit) string {
	layers := lo.Map(queue, func(layer []core.Unit, _ int) string {
		names := lo.Map(layer, func(u core.Unit, _ int) string {
			return u.Name()
		})
		return "[" + strings.Join(names, " ") + "]"
	})
	return strings.Join(layers, " ")
}
