package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("Validation Error")
	ErrConflict     = errors.New("conflict")
	ErrUpstream     = errors.New("upstream failure")
	ErrPrecondition = errors.New("precondition failed")
)

type AppError struct {
	Err     error  // actual error
	Message string // Human-readable error message
	Field   string // Optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

func Conflict(resource, id string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: fmt.Sprintf("%s conflict with id %s", resource, id),
	}
}

// Upstream wraps a failure from an external provider (civic data lookup,
// email delivery). HTTP handlers map this to 502 Bad Gateway.
func Upstream(provider string, err error) *AppError {
	return &AppError{
		Err:     fmt.Errorf("%w: %s: %v", ErrUpstream, provider, err),
		Message: fmt.Sprintf("%s request failed", provider),
	}
}

// Precondition returns an AppError for an operation whose target exists but
// is not in a state that allows the operation to proceed.
// HTTP handlers map this to 422 Unprocessable Entity.
func Precondition(message string) *AppError {
	return &AppError{
		Err:     ErrPrecondition,
		Message: message,
	}
}
