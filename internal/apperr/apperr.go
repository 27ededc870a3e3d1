// Package apperr holds the error types shared across services.
package apperr

import (
	"fmt"
	"strings"
)

// FieldError describes a single violated input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every violated field of a request, never just the
// first one.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation error: " + strings.Join(parts, "; ")
}

// Add appends a violation.
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// Empty reports whether no violations were recorded.
func (e *ValidationError) Empty() bool { return len(e.Fields) == 0 }

// AsError returns nil when no violations were recorded, so callers can write
// `return v.AsError()`.
func (e *ValidationError) AsError() error {
	if e.Empty() {
		return nil
	}
	return e
}
