package main

import (
	"os"

	"github.com/pacer-org/pacer/cmd"
	"github.com/pacer-org/pacer/internal/build"
)

// version is overridden at build time via -ldflags.
var version = "dev"

func init() {
	build.Version = version
}

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
