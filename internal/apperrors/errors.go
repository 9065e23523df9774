package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for common failure categories. Services wrap these with
// context via fmt.Errorf and %w; handlers match with errors.Is to pick the
// HTTP status.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrValidation   = errors.New("validation failed")
	ErrDuplicate    = errors.New("resource already exists")
	ErrForbidden    = errors.New("operation not allowed")
	ErrUnauthorized = errors.New("authentication required")
	ErrConflict     = errors.New("resource state conflict")
	ErrInternal     = errors.New("internal error")
)

// AppError carries an HTTP-ish code and a user-safe message alongside the
// underlying error.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping the given error.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches errors.Is(err, ErrNotFound).
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: message, Err: ErrNotFound}
}
