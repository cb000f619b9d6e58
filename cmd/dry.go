package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pacer-org/pacer/internal/core"
	"github.com/pacer-org/pacer/internal/logger"
	"github.com/pacer-org/pacer/internal/logger/tag"
	"github.com/pacer-org/pacer/internal/output"
	"github.com/pacer-org/pacer/internal/sched"
	"github.com/pacer-org/pacer/internal/schedfile"
)

var dryFlags = []commandLineFlag{stepsFlag, formatFlag, nameFlag}

// CmdDry returns the cobra command for dry-run simulation.
func CmdDry() *cobra.Command {
	return NewCommand(
		&cobra.Command{
			Use:   "dry [flags] <schedule file>",
			Short: "Simulate a schedule without executing any units",
			Long: `Derive the full time-step schedule from a schedule file and print it.

The scheduler is run to completion, or to the step limit for schedules that
never terminate on their own. Nothing is executed; the command only shows
which units would be eligible at each time step.

Example:
  pacer dry my_schedule.yaml --steps 20 --format plain
`,
			Args: cobra.ExactArgs(1),
		}, dryFlags,
		runDry,
	)
}

// runDry executes a dry-run simulation of the specified schedule.
func runDry(ctx *Context, args []string) error {
	schedule, err := loadScheduleForDryRun(ctx, args)
	if err != nil {
		return err
	}

	limit, err := stepLimit(ctx)
	if err != nil {
		return err
	}
	format, err := outputFormat(ctx)
	if err != nil {
		return err
	}

	runID, err := genRunID()
	if err != nil {
		return fmt.Errorf("failed to generate run ID: %w", err)
	}

	sch := schedule.Scheduler
	logger.Info(ctx, "Dry-run started",
		tag.RunID(runID),
		tag.Name(schedule.Name),
		tag.File(args[0]),
	)
	logger.Debug(ctx, "Consideration queue derived",
		tag.RunID(runID),
		"layers", output.RenderQueue(sch.ConsiderationQueue()),
	)

	rows, truncated := collectRows(ctx, sch, limit)
	if truncated {
		logger.Warn(ctx, "Step limit reached before the run terminated",
			tag.RunID(runID),
			tag.Count(limit),
		)
	}

	renderer := output.NewRenderer(output.Config{
		ColorEnabled: true,
		Format:       format,
	})
	logger.Write(ctx, renderer.RenderRun(schedule.Name, schedule.Description, rows))

	logger.Info(ctx, "Dry-run finished",
		tag.RunID(runID),
		tag.Count(len(rows)),
	)

	return nil
}

// collectRows pulls time steps out of the scheduler until the run ends or
// limit steps have been collected. One scheduler run covers a single trial,
// so runs are started back to back; a fresh run that emits nothing means the
// whole simulation is over. The second return reports whether a step beyond
// the limit was cut off.
func collectRows(ctx *Context, sch *sched.Scheduler, limit int) ([]output.Row, bool) {
	var rows []output.Row
	for {
		gen := sch.Run(ctx, nil)
		emitted := 0
		for {
			step, ok := gen.Next()
			if !ok {
				break
			}
			if len(rows) == limit {
				return rows, true
			}
			// The clock is frozen at the emitted step until the next pull,
			// so these reads are the step's own coordinates.
			rows = append(rows, output.Row{
				Trial: sch.Time(core.Run, core.Trial),
				Pass:  sch.Time(core.Trial, core.Pass),
				Step:  sch.Time(core.Pass, core.TimeStep),
				Units: step,
			})
			emitted++
		}
		if emitted == 0 {
			return rows, false
		}
	}
}

// loadScheduleForDryRun loads the schedule, applying the name override flag.
func loadScheduleForDryRun(ctx *Context, args []string) (*schedfile.Schedule, error) {
	var loadOpts []schedfile.LoadOption

	nameOverride, err := ctx.StringParam("name")
	if err != nil {
		return nil, fmt.Errorf("failed to get name override: %w", err)
	}
	if nameOverride != "" {
		loadOpts = append(loadOpts, schedfile.WithName(nameOverride))
	}

	schedule, err := schedfile.Load(ctx, args[0], loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule from %s: %w", args[0], err)
	}

	return schedule, nil
}

// stepLimit resolves the step cap from the --steps flag, falling back to the
// configured limit.
func stepLimit(ctx *Context) (int, error) {
	raw, err := ctx.StringParam("steps")
	if err != nil {
		return 0, err
	}
	if raw == "" {
		return ctx.Config.StepLimit, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid value for --steps: %q (expected a positive integer)", raw)
	}
	return n, nil
}

// outputFormat resolves the layout from the --format flag, falling back to
// the configured format.
func outputFormat(ctx *Context) (output.Format, error) {
	raw, err := ctx.StringParam("format")
	if err != nil {
		return output.FormatTable, err
	}
	if raw == "" {
		return ctx.Config.OutputFormat, nil
	}
	return output.ParseFormat(raw)
}
