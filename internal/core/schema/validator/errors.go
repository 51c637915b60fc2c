package validator

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedVersion = errors.New("unsupported schema version")
	ErrMissingField       = errors.New("missing field")
	ErrWrongType          = errors.New("wrong type")
)

// FieldError is a single field-level violation.
type FieldError struct {
	Field    string
	Expected string // type name, empty for missing fields
	Kind     error  // ErrMissingField or ErrWrongType
}

func (e *FieldError) Error() string {
	if e.Expected != "" {
		return fmt.Sprintf("%s for %s: expected %s", e.Kind, e.Field, e.Expected)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Field)
}

func (e *FieldError) Unwrap() error { return e.Kind }
