// Package config reads and merges the CLI configuration from its config
// file and environment variables.
package config

import (
	"fmt"

	"github.com/pacer-org/pacer/internal/output"
)

// Config holds the resolved CLI configuration.
type Config struct {
	// Debug enables debug-level logging.
	Debug bool
	// Quiet suppresses log output on the console.
	Quiet bool
	// LogFormat is the log encoder, "text" or "json".
	LogFormat string
	// StepLimit caps how many time steps a dry run may emit. It is the
	// safety net against schedules whose termination conditions are never
	// satisfied.
	StepLimit int
	// OutputFormat is the default dry-run layout.
	OutputFormat output.Format
	// ConfigFile is the path of the file the values came from, if any.
	ConfigFile string
	// Warnings collected while resolving the configuration. They are
	// reported once logging is up.
	Warnings []string
}

// DefaultStepLimit is the dry-run step cap applied when the configuration
// does not set one.
const DefaultStepLimit = 100

// Load creates a configuration by instantiating a ConfigLoader with the
// provided options and invoking its Load method.
func Load(opts ...ConfigLoaderOption) (*Config, error) {
	loader := NewConfigLoader(opts...)
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}
