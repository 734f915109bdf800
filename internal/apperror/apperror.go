// Package apperror defines the error taxonomy shared by the storage layer
// and the HTTP handlers: validation failures map to 400, missing rows to
// 404, and anything else from storage to a generic 500.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
)

// AppError wraps a sentinel with a human-readable message.
// Handlers return the message to the caller; internal details stay in logs.
type AppError struct {
	Err     error
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Validation returns an AppError for a missing or malformed parameter.
func Validation(message string) *AppError {
	return &AppError{Err: ErrValidation, Message: message}
}

// NotFound returns an AppError for a mutation that matched no row.
func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, id),
	}
}
