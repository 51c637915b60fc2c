// Package validator checks records against the schema registry and reports
// every violation it finds in one pass.
package validator

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/zeusync/schemaver/internal/core/observability/log"
	"github.com/zeusync/schemaver/internal/core/schema/record"
	"github.com/zeusync/schemaver/internal/core/schema/registry"
)

// Result is the outcome of one validation call.
//
// Error is only set when the version itself could not be validated against
// (unknown or unreadable); Errors is empty in that case. Field-level
// violations go to Errors in the order they were found.
type Result struct {
	Valid   bool     `json:"valid" yaml:"valid"`
	Version int      `json:"version" yaml:"version"`
	Error   string   `json:"error,omitempty" yaml:"error,omitempty"`
	Errors  []string `json:"errors" yaml:"errors"`

	versionErr error
	fieldErrs  []error
}

// Unsupported reports whether the result is the version failure shape.
func (r Result) Unsupported() bool {
	return r.Error != ""
}

// Err converts the result to an error value, nil when valid.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	if r.versionErr != nil {
		return r.versionErr
	}
	return multierr.Combine(r.fieldErrs...)
}

type Validator struct {
	registry *registry.Registry
	logger   log.Log
}

func New(reg *registry.Registry, logger log.Log) *Validator {
	return &Validator{
		registry: reg,
		logger:   logger.With(log.String("component", "validator")),
	}
}

// Validate checks rec against the version named by its own tag, or version 1
// when untagged.
func (v *Validator) Validate(rec record.Record) Result {
	version, err := rec.Version()
	if err != nil {
		v.logger.Debug("unreadable version tag", log.Error(err))
		return Result{
			Valid:      false,
			Version:    0,
			Error:      err.Error(),
			Errors:     []string{},
			versionErr: fmt.Errorf("%w: %w", ErrUnsupportedVersion, err),
		}
	}
	return v.ValidateVersion(rec, version)
}

// ValidateVersion checks rec against an explicit version, ignoring its tag.
func (v *Validator) ValidateVersion(rec record.Record, version registry.Version) Result {
	def, ok := v.registry.DefinitionFor(version)
	if !ok {
		v.logger.Debug("unsupported schema version", log.Int("version", int(version)))
		err := fmt.Errorf("%w %d", ErrUnsupportedVersion, int(version))
		return Result{
			Valid:      false,
			Version:    int(version),
			Error:      err.Error(),
			Errors:     []string{},
			versionErr: err,
		}
	}

	var fieldErrs []error
	for _, name := range def.RequiredFields {
		if !rec.Has(name) {
			fieldErrs = append(fieldErrs, &FieldError{Field: name, Kind: ErrMissingField})
		}
	}
	for _, spec := range def.Fields {
		value, present := rec[spec.Name]
		if !present {
			continue
		}
		if !spec.Accepts(value) {
			fieldErrs = append(fieldErrs, &FieldError{Field: spec.Name, Expected: spec.TypeName(), Kind: ErrWrongType})
		}
	}

	messages := make([]string, len(fieldErrs))
	for i, err := range fieldErrs {
		messages[i] = err.Error()
	}

	res := Result{
		Valid:     len(messages) == 0,
		Version:   int(version),
		Errors:    messages,
		fieldErrs: fieldErrs,
	}
	if !res.Valid {
		v.logger.Debug("record failed validation",
			log.Int("version", int(version)),
			log.Strings("errors", messages),
		)
	}
	return res
}
