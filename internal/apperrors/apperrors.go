// Package apperrors defines the coded error taxonomy of the availability
// engine. Callers branch on the code, not the message.
package apperrors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a specific error type for engine operations.
type ErrorCode string

const (
	// ErrCodeInvalidInterval indicates an interval that failed validation.
	// Always reported to the caller, never retried.
	ErrCodeInvalidInterval ErrorCode = "INVALID_INTERVAL"
	// ErrCodeNotFound indicates a referenced interval or user does not exist.
	// A miss on read paths, an explicit result on update/delete paths.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeOwnerNotFound indicates a complete-view synthesis could not
	// resolve the owner. Distinct from NOT_FOUND because it implies an
	// upstream data-integrity issue.
	ErrCodeOwnerNotFound ErrorCode = "OWNER_NOT_FOUND"
)

// Error is a structured, coded engine error.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// InvalidInterval creates a validation error.
func InvalidInterval(msg string) *Error {
	return &Error{Code: ErrCodeInvalidInterval, Message: msg}
}

// InvalidIntervalf creates a validation error with a formatted message.
func InvalidIntervalf(format string, args ...any) *Error {
	return &Error{Code: ErrCodeInvalidInterval, Message: fmt.Sprintf(format, args...)}
}

// NotFound creates a not-found error.
func NotFound(msg string) *Error {
	return &Error{Code: ErrCodeNotFound, Message: msg}
}

// OwnerNotFound creates an owner-not-found error.
func OwnerNotFound(ownerID int32) *Error {
	return &Error{
		Code:    ErrCodeOwnerNotFound,
		Message: fmt.Sprintf("owner not found with id %d", ownerID),
	}
}

// Wrap wraps an existing error with a code and message.
func Wrap(cause error, code ErrorCode, msg string) *Error {
	return &Error{Code: code, Message: msg, Cause: cause}
}

// IsCode checks if an error carries a specific code anywhere in its chain.
func IsCode(err error, code ErrorCode) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
