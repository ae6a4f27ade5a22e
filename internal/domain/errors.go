package domain

import (
	"errors"
	"strings"
)

// Sentinel errors shared by services, repositories and adapters.
// Backend failures are wrapped with the matching sentinel so callers can map them with errors.Is.
var (
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation failed")
	ErrPersistence        = errors.New("failed to persist event")
	ErrQuery              = errors.New("failed to query events")
	ErrDeletion           = errors.New("failed to delete event")
	ErrUpload             = errors.New("failed to upload images")
	ErrDispatch           = errors.New("failed to dispatch inquiry")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrOperatorExists     = errors.New("operator already exists")
)

// ValidationError lists the rule violations of a rejected input.
// It matches ErrValidation with errors.Is.
type ValidationError struct {
	Fields []string
}

func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	return strings.Join(e.Fields, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
