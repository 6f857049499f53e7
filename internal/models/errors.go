package models

import (
	"errors"
	"strings"
)

var ErrValidation = errors.New("validation error")

// FieldError describes one rejected input value. Loc is the path to the value,
// e.g. ["body", "rating"] or ["query", "sort"].
type FieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// ValidationError carries every violation found in a request.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Msg)
	}
	return ErrValidation.Error() + ": " + strings.Join(msgs, " // ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError builds a ValidationError with a single violation.
func NewValidationError(loc []string, typ, msg string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Loc: loc, Msg: msg, Type: typ}}}
}
