package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound indicates the referenced record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a uniqueness constraint would be violated.
	ErrConflict = errors.New("conflict")

	// ErrInvalidReference indicates a foreign key points at a missing row.
	ErrInvalidReference = errors.New("referenced record does not exist")

	// ErrNotConfigured indicates an optional integration has no credentials.
	ErrNotConfigured = errors.New("integration not configured")
)

// FieldError describes one invalid field of a request body.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every field problem found while validating a record.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add records a problem with field.
func (e *ValidationError) Add(field, format string, args ...any) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// Err returns nil when no problems were recorded.
func (e *ValidationError) Err() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// Invalid is shorthand for a single-field validation error.
func Invalid(field, format string, args ...any) error {
	v := &ValidationError{}
	v.Add(field, format, args...)
	return v
}

func requireText(v *ValidationError, field, value string) {
	if strings.TrimSpace(value) == "" {
		v.Add(field, "is required")
	}
}

func checkContext(v *ValidationError, c Context) {
	if !c.Valid() {
		v.Add("context", "must be one of notrom, podcast, day_job, general")
	}
}
