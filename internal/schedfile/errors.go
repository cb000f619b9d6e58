package schedfile

import (
	"errors"
	"fmt"
	"strings"
)

// Errors on building a schedule from a definition file.
var (
	ErrUnitNameRequired           = errors.New("unit name is required")
	ErrUnitNameDuplicate          = errors.New("unit name must be unique")
	ErrDependsMustBeStringOrArray = errors.New("depends must be a string or an array of strings")
	ErrDependsUnknownUnit         = errors.New("depends references an undefined unit")
	ErrConditionMustBeStringOrMap = errors.New("condition must be a string or a single-key map")
	ErrConditionUnknownType       = errors.New("unknown condition type")
	ErrConditionUnitRequired      = errors.New("condition requires a unit name")
	ErrConditionUnknownUnit       = errors.New("condition references an undefined unit")
	ErrConditionCountInvalid      = errors.New("n must not be negative")
	ErrConditionCountRequired     = errors.New("n must be at least 1")
	ErrConditionListRequired      = errors.New("condition list must not be empty")
	ErrTerminationScaleInvalid    = errors.New("termination scale must be trial or run")
)

// ErrorList collects the structural errors found while building a schedule
// so a single load reports every problem in the file at once.
type ErrorList []error

// Add appends an error to the list, ignoring nil.
func (e *ErrorList) Add(err error) {
	if err != nil {
		*e = append(*e, err)
	}
}

// Error implements the error interface. It joins all collected errors
// with a semicolon.
func (e ErrorList) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Unwrap lets errors.Is match against each collected error.
func (e ErrorList) Unwrap() []error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// fieldError annotates an error with the definition field it came from and
// the offending raw value.
type fieldError struct {
	Field string
	Value any
	Err   error
}

func (e *fieldError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("field %q: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("field %q: %v (value: %+v)", e.Field, e.Err, e.Value)
}

func (e *fieldError) Unwrap() error {
	return e.Err
}

func wrapError(field string, value any, err error) error {
	return &fieldError{Field: field, Value: value, Err: err}
}
