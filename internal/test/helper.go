// Package test provides shared helpers for command and integration tests.
package test

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pacer-org/pacer/internal/config"
	"github.com/pacer-org/pacer/internal/logger"
	"github.com/pacer-org/pacer/internal/schedfile"
)

var setupLock sync.Mutex

// HelperOption defines functional options for Helper
type HelperOption func(*Options)

type Options struct {
	CaptureLoggingOutput bool // CaptureLoggingOutput enables capturing of logging output
	ConfigYAML           string
}

// WithCaptureLoggingOutput creates a logging capture option
func WithCaptureLoggingOutput() HelperOption {
	return func(opts *Options) {
		opts.CaptureLoggingOutput = true
	}
}

// WithConfigYAML replaces the content of the config file the helper writes
// and loads.
func WithConfigYAML(content string) HelperOption {
	return func(opts *Options) {
		opts.ConfigYAML = content
	}
}

// Setup creates a new Helper instance for testing
func Setup(t *testing.T, opts ...HelperOption) Helper {
	setupLock.Lock()
	defer setupLock.Unlock()

	var options Options
	for _, opt := range opts {
		opt(&options)
	}

	tmpDir := t.TempDir()

	configYAML := options.ConfigYAML
	if configYAML == "" {
		configYAML = "debug: true\n"
	}
	configFile := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte(configYAML), 0600))

	cfg, err := config.Load(config.WithConfigFile(configFile))
	require.NoError(t, err)

	ctx := logger.WithLogger(context.Background(), logger.NewLogger(
		logger.WithDebug(),
		logger.WithFormat("text"),
	))

	helper := Helper{
		Context:    ctx,
		Config:     cfg,
		ConfigFile: configFile,

		tmpDir: tmpDir,
	}

	if options.CaptureLoggingOutput {
		helper.LoggingOutput = &SyncBuffer{buf: new(bytes.Buffer)}
		loggerInstance := logger.NewLogger(
			logger.WithDebug(),
			logger.WithFormat("text"),
			logger.WithWriter(helper.LoggingOutput),
		)
		helper.Context = logger.WithFixedLogger(helper.Context, loggerInstance)
	}

	ctx, cancel := context.WithCancel(helper.Context)
	helper.Context = ctx
	helper.Cancel = cancel

	t.Cleanup(helper.Cleanup)
	return helper
}

// Helper provides test utilities and configuration
type Helper struct {
	Context       context.Context
	Cancel        context.CancelFunc
	Config        *config.Config
	ConfigFile    string
	LoggingOutput *SyncBuffer

	tmpDir string
}

// Cleanup cancels the helper's context. The temp directory is removed by
// the testing package.
func (h Helper) Cleanup() {
	if h.Cancel != nil {
		h.Cancel()
	}
}

// TempFile creates a temp file with specified name and content.
func (h Helper) TempFile(t *testing.T, name string, data []byte) string {
	t.Helper()

	filename := filepath.Join(h.tmpDir, name)
	err := os.WriteFile(filename, data, 0600)
	require.NoError(t, err)
	return filename
}

// Schedule creates a test schedule from YAML content
func (h Helper) Schedule(t *testing.T, yamlContent string) *schedfile.Schedule {
	t.Helper()

	filename := fmt.Sprintf("%s.yaml", uuid.New().String())
	testFile := h.TempFile(t, filename, []byte(yamlContent))

	schedule, err := schedfile.Load(h.Context, testFile)
	require.NoError(t, err, "failed to load test schedule")

	return schedule
}

// ScheduleFile writes a schedule file and returns its path without loading it.
func (h Helper) ScheduleFile(t *testing.T, name string, yamlContent string) string {
	t.Helper()

	return h.TempFile(t, name, []byte(yamlContent))
}

// SyncBuffer provides thread-safe buffer operations
type SyncBuffer struct {
	buf  *bytes.Buffer
	lock sync.Mutex
}

func (b *SyncBuffer) Write(p []byte) (n int, err error) {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.buf.Write(p)
}

func (b *SyncBuffer) String() string {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.buf.String()
}
