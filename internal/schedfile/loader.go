package schedfile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/goccy/go-yaml"

	"github.com/pacer-org/pacer/internal/logger"
	"github.com/pacer-org/pacer/internal/logger/tag"
)

// Errors on locating and reading schedule files.
var (
	ErrPathRequired = errors.New("schedule file path is required")
)

// LoadOptions contains options for loading a schedule definition.
type LoadOptions struct {
	name string
}

// LoadOption is a functional option for Load and LoadYAML.
type LoadOption func(*LoadOptions)

// WithName sets the schedule name used when the file does not define one.
func WithName(name string) LoadOption {
	return func(o *LoadOptions) {
		o.name = name
	}
}

// Load reads, decodes, and builds the schedule definition at filePath.
// A path without an extension gets ".yaml" appended. The schedule name
// defaults to the file name without its extension.
func Load(ctx context.Context, filePath string, opts ...LoadOption) (*Schedule, error) {
	if filePath == "" {
		return nil, ErrPathRequired
	}
	filePath = resolveYamlFilePath(filePath)

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	options := LoadOptions{
		name: strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath)),
	}
	for _, opt := range opts {
		opt(&options)
	}

	logger.Debug(ctx, "Schedule file loaded", tag.File(filePath))

	return loadYAML(ctx, data, options)
}

// LoadYAML builds a schedule from YAML data already in memory.
func LoadYAML(ctx context.Context, data []byte, opts ...LoadOption) (*Schedule, error) {
	var options LoadOptions
	for _, opt := range opts {
		opt(&options)
	}
	return loadYAML(ctx, data, options)
}

func loadYAML(ctx context.Context, data []byte, opts LoadOptions) (*Schedule, error) {
	raw, err := unmarshalData(data)
	if err != nil {
		return nil, err
	}

	def, err := decode(raw)
	if err != nil {
		return nil, err
	}

	return build(ctx, def, opts)
}

// unmarshalData converts the YAML bytes into a raw key map. Empty input is
// a valid, empty definition.
func unmarshalData(data []byte) (map[string]any, error) {
	var raw map[string]any
	err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&raw)
	if errors.Is(err, io.EOF) {
		err = nil
	}
	return raw, err
}

// decode maps the raw key map onto the typed definition. Unknown keys are
// errors so typos in schedule files fail loudly.
func decode(raw map[string]any) (*definition, error) {
	def := new(definition)
	md, _ := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      def,
	})
	err := md.Decode(raw)

	return def, err
}

// resolveYamlFilePath appends the default extension when the path has none.
func resolveYamlFilePath(file string) string {
	if filepath.Ext(file) == "" {
		file += ".yaml"
	}
	return file
}
