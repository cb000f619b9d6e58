package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pacer-org/pacer/internal/build"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   build.Slug,
	Short: "Condition-driven execution scheduler.",
	Long: `Pacer derives time-step schedules from dependency graphs and per-unit
conditions. It decides when each unit may run; executing the units is left
to the caller.
`,
}

// Execute adds all child commands to the root command and executes it. This
// is called by main.main() and only needs to happen once.
func Execute() error {
	return rootCmd.Execute()
}

func registerCommands() {
	rootCmd.AddCommand(CmdDry())
	rootCmd.AddCommand(CmdVersion())
}

func init() {
	registerCommands()
}
