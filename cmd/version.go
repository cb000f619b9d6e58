package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pacer-org/pacer/internal/build"
	"github.com/pacer-org/pacer/internal/logger"
)

// CmdVersion returns the cobra command printing the binary version.
func CmdVersion() *cobra.Command {
	return NewCommand(
		&cobra.Command{
			Use:   "version",
			Short: "Display the binary version",
			Long:  `Print the current version of the pacer executable.`,
		}, nil,
		func(ctx *Context, _ []string) error {
			logger.Write(ctx, build.Version)
			return nil
		},
	)
}
