package output

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pacer-org/pacer/internal/core"
)

func unitSet(names ...string) core.UnitSet {
	s := core.NewUnitSet()
	for _, n := range names {
		s.Add(core.NamedUnit(n))
	}
	return s
}

func TestStepSymbol(t *testing.T) {
	t.Parallel()

	assert.Equal(t, SymbolIdle, StepSymbol(unitSet()))
	assert.Equal(t, SymbolExecuted, StepSymbol(unitSet("A")))
}

func TestStepText(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "(none)", StepText(unitSet()))
	assert.Equal(t, "A", StepText(unitSet("A")))
	assert.Equal(t, "A, B", StepText(unitSet("B", "A")))
}

func TestStepColorize(t *testing.T) {
	saved := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = saved }()

	assert.Equal(t, "x", StepColorize("x", unitSet("A")))
	assert.Equal(t, "x", StepColorize("x", unitSet()))
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{input: "table", want: FormatTable},
		{input: "TABLE", want: FormatTable},
		{input: "plain", want: FormatPlain},
		{input: "json", wantErr: true},
		{input: "", wantErr: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unknown output format")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderer_Table(t *testing.T) {
	t.Parallel()

	r := NewRenderer(Config{Format: FormatTable})
	out := r.RenderRun("demo", "A small schedule.", []Row{
		{Trial: 0, Pass: 0, Step: 0, Units: unitSet("A", "B")},
		{Trial: 0, Pass: 1, Step: 0, Units: unitSet()},
	})

	assert.Contains(t, out, "Schedule: demo")
	assert.Contains(t, out, "A small schedule.")
	assert.Contains(t, out, "TRIAL")
	assert.Contains(t, out, "UNITS")
	assert.Contains(t, out, "● A, B")
	assert.Contains(t, out, "○ (none)")
}

func TestRenderer_TableOmitsEmptyHeader(t *testing.T) {
	t.Parallel()

	r := NewRenderer(Config{Format: FormatTable})
	out := r.RenderRun("", "", nil)
	assert.NotContains(t, out, "Schedule:")
}

func TestRenderer_Plain(t *testing.T) {
	t.Parallel()

	r := NewRenderer(Config{Format: FormatPlain})
	out := r.RenderRun("demo", "ignored in plain layout", []Row{
		{Trial: 0, Pass: 0, Step: 0, Units: unitSet("A")},
		{Trial: 0, Pass: 0, Step: 1, Units: unitSet("B", "C")},
		{Trial: 1, Pass: 0, Step: 0, Units: unitSet()},
	})

	assert.Equal(t, "0.0.0: A\n0.0.1: B, C\n1.0.0: (none)\n", out)
}

func TestRenderQueue(t *testing.T) {
	t.Parallel()

	queue := [][]core.Unit{
		{core.NamedUnit("A"), core.NamedUnit("B")},
		{core.NamedUnit("C")},
	}
	assert.Equal(t, "[A B] [C]", RenderQueue(queue))
	assert.Equal(t, "", RenderQueue(nil))
}
