// Package tag provides standardized tag functions for structured logging.
//
// All tag keys use kebab-case naming convention for consistency.
// Use these functions instead of raw strings to ensure consistent
// and type-safe log output across the codebase.
package tag

import (
	"log/slog"

	"github.com/pacer-org/pacer/internal/core"
)

// Error creates a tag for error objects.
func Error(err any) slog.Attr {
	return slog.Any("err", err)
}

// Unit creates a tag for unit names.
func Unit(u core.Unit) slog.Attr {
	if u == nil {
		return slog.String("unit", "")
	}
	return slog.String("unit", u.Name())
}

// Units creates a tag for a set of unit names.
func Units(s core.UnitSet) slog.Attr {
	return slog.Any("units", s.Names())
}

// Dependency creates a tag for dependency unit names.
func Dependency(u core.Unit) slog.Attr {
	if u == nil {
		return slog.String("dependency", "")
	}
	return slog.String("dependency", u.Name())
}

// Scale creates a tag for time scale values.
func Scale(s core.TimeScale) slog.Attr {
	return slog.String("scale", s.String())
}

// Scope creates a tag for the scope a counter or clock is read within.
func Scope(s core.TimeScale) slog.Attr {
	return slog.String("scope", s.String())
}

// Step creates a tag for time step indexes.
func Step(n int) slog.Attr {
	return slog.Int("step", n)
}

// Pass creates a tag for pass indexes.
func Pass(n int) slog.Attr {
	return slog.Int("pass", n)
}

// Trial creates a tag for trial indexes.
func Trial(n int) slog.Attr {
	return slog.Int("trial", n)
}

// Layer creates a tag for consideration queue layer indexes.
func Layer(n int) slog.Attr {
	return slog.Int("layer", n)
}

// RunID creates a tag for run execution IDs.
func RunID(id string) slog.Attr {
	return slog.String("run-id", id)
}

// Count creates a tag for numeric counts.
func Count(n int) slog.Attr {
	return slog.Int("count", n)
}

// File creates a tag for file paths.
func File(path string) slog.Attr {
	return slog.String("file", path)
}

// Name creates a tag for generic names (prefer specific tags like Unit).
func Name(name string) slog.Attr {
	return slog.String("name", name)
}

// Version creates a tag for version values.
func Version(v string) slog.Attr {
	return slog.String("version", v)
}

// Config creates a tag for configuration names or paths.
func Config(name string) slog.Attr {
	return slog.String("config", name)
}

// Reason creates a tag for reason for an action or state.
func Reason(r string) slog.Attr {
	return slog.String("reason", r)
}
