package resumes

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound covers both absent and not-owned documents.
	ErrNotFound     = errors.New("resume not found")
	ErrInvalidInput = errors.New("invalid input")
)

// FieldError names one rejected field by its JSON path.
type FieldError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

// ValidationError lists every rejected field. It matches ErrInvalidInput.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Issue)
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }
