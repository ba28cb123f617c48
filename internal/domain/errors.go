package domain

import (
	"errors"
	"strings"
)

// Sentinel errors shared by services and repositories. Callers match with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
	ErrInvalidInput = errors.New("invalid input")
	ErrDuplicate    = errors.New("already exists")
	ErrUnauthorized = errors.New("unauthorized")
)

// ValidationError carries field-level problems for a rejected input.
// It matches ErrInvalidInput with errors.Is.
type ValidationError struct {
	Problems []string
}

// NewValidationError returns a ValidationError with the given problems.
func NewValidationError(problems ...string) *ValidationError {
	return &ValidationError{Problems: problems}
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 0 {
		return ErrInvalidInput.Error()
	}
	return strings.Join(e.Problems, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}
