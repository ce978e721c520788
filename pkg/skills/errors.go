package skills

import (
	"fmt"

	"github.com/pkg/errors"
)

// Error kinds returned by the parser, validator and registry. Use errors.Is
// to classify a returned error.
var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidStructure  = errors.New("invalid structure")
	ErrValidation        = errors.New("validation failed")
	ErrConflict          = errors.New("conflict")
	ErrSecurityViolation = errors.New("security violation")
	ErrNotDirectory      = errors.New("not a directory")
)

// FieldError reports a metadata field that violates one of its rules.
type FieldError struct {
	Field string
	Rule  string
	Value string
}

func (e *FieldError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Rule)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Rule)
}

// Unwrap makes every FieldError match ErrValidation.
func (e *FieldError) Unwrap() error {
	return ErrValidation
}

func fieldError(field, value, rule string) error {
	return &FieldError{Field: field, Rule: rule, Value: value}
}
