// Package apperrors provides a small structured error type shared across
// the benchmark harness, so configuration, persistence, and task failures
// can be distinguished by code without string-matching error messages.
package apperrors

import "fmt"

// AppError represents an application error with a stable code and a
// human-readable message.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is returns true if target is an *AppError with the same code.
func (e *AppError) Is(target error) bool {
	if t, ok := target.(*AppError); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a new AppError.
func New(message string, code string) *AppError {
	return &AppError{Code: code, Message: message}
}

// HandleError wraps a standard error into an AppError, unless it already is one.
func HandleError(err error, defaultMessage string) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	message := defaultMessage
	if message == "" {
		message = err.Error()
	}
	return &AppError{Code: "internal_error", Message: message}
}

// Common error codes used across configuration and persistence paths.
const (
	CodeConfig      = "config_error"
	CodePersistence = "persistence_error"
	CodeVendor      = "vendor_error"
)
