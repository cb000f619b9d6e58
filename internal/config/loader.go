package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"

	"github.com/pacer-org/pacer/internal/build"
	"github.com/pacer-org/pacer/internal/output"
)

// ConfigLoader reads and merges configuration from the config file and
// environment variables. The internal mutex ensures thread-safety when
// loading the configuration.
type ConfigLoader struct {
	lock       sync.Mutex
	v          *viper.Viper
	configFile string
	warnings   []string
}

// ConfigLoaderOption defines a functional option for configuring a ConfigLoader.
type ConfigLoaderOption func(*ConfigLoader)

// WithConfigFile returns a ConfigLoaderOption that sets the configuration file path.
func WithConfigFile(configFile string) ConfigLoaderOption {
	return func(l *ConfigLoader) {
		l.configFile = configFile
	}
}

// NewConfigLoader creates a new ConfigLoader instance and applies all given options.
func NewConfigLoader(options ...ConfigLoaderOption) *ConfigLoader {
	loader := &ConfigLoader{v: viper.New()}
	for _, option := range options {
		option(loader)
	}
	return loader
}

// Load initializes viper, reads the configuration file, and returns a fully
// built and validated Config instance. A missing default config file is not
// an error; a missing explicit one is.
func (l *ConfigLoader) Load() (*Config, error) {
	l.lock.Lock()
	defer l.lock.Unlock()

	l.warnings = nil
	l.setupViper()

	if err := l.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var def definition
	if err := l.v.Unmarshal(&def); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg := l.buildConfig(def)
	cfg.ConfigFile = l.v.ConfigFileUsed()
	cfg.Warnings = l.warnings

	return cfg, nil
}

// setupViper configures the file location, environment variable handling,
// and defaults.
func (l *ConfigLoader) setupViper() {
	if l.configFile != "" {
		l.v.SetConfigFile(l.configFile)
	} else {
		l.v.AddConfigPath(filepath.Join(xdg.ConfigHome, build.Slug))
		l.v.SetConfigName("config")
	}
	l.v.SetConfigType("yaml")
	l.v.SetEnvPrefix(strings.ToUpper(build.Slug))
	l.v.AutomaticEnv()

	l.bindEnvironmentVariables()
	l.setDefaultValues()
}

// bindEnvironmentVariables binds configuration keys to their environment
// variables.
func (l *ConfigLoader) bindEnvironmentVariables() {
	l.bindEnv("debug", "DEBUG")
	l.bindEnv("quiet", "QUIET")
	l.bindEnv("logFormat", "LOG_FORMAT")
	l.bindEnv("stepLimit", "STEP_LIMIT")
	l.bindEnv("outputFormat", "OUTPUT_FORMAT")
}

func (l *ConfigLoader) bindEnv(key, env string) {
	prefix := strings.ToUpper(build.Slug) + "_"
	_ = l.v.BindEnv(key, prefix+env)
}

func (l *ConfigLoader) setDefaultValues() {
	l.v.SetDefault("debug", false)
	l.v.SetDefault("quiet", false)
	l.v.SetDefault("logFormat", "text")
	l.v.SetDefault("stepLimit", DefaultStepLimit)
	l.v.SetDefault("outputFormat", "table")
}

// buildConfig validates the raw definition, falling back to defaults and
// collecting a warning for each value it rejects.
func (l *ConfigLoader) buildConfig(def definition) *Config {
	cfg := &Config{
		Debug:     def.Debug,
		Quiet:     def.Quiet,
		LogFormat: def.LogFormat,
		StepLimit: def.StepLimit,
	}

	switch def.LogFormat {
	case "text", "json":
	default:
		l.warnings = append(l.warnings, fmt.Sprintf("invalid logFormat %q, using \"text\"", def.LogFormat))
		cfg.LogFormat = "text"
	}

	if def.StepLimit < 1 {
		l.warnings = append(l.warnings, fmt.Sprintf("stepLimit must be positive, using %d", DefaultStepLimit))
		cfg.StepLimit = DefaultStepLimit
	}

	format, err := output.ParseFormat(def.OutputFormat)
	if err != nil {
		l.warnings = append(l.warnings, fmt.Sprintf("invalid outputFormat %q, using \"table\"", def.OutputFormat))
		format = output.FormatTable
	}
	cfg.OutputFormat = format

	return cfg
}
