package errors

import (
	"context"
	"errors"
	"fmt"
)

// ErrorCode represents a category of application error.
type ErrorCode string

const (
	// ErrCodeNotFound indicates a resource was not found.
	ErrCodeNotFound ErrorCode = "not_found"
	// ErrCodeConflict indicates a conflict with existing data.
	ErrCodeConflict ErrorCode = "conflict"
	// ErrCodeValidation indicates invalid input data caught before reaching the backend.
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodeRejected indicates the library backend answered ok:false.
	// Message holds the backend's text and is shown to the user as-is.
	ErrCodeRejected ErrorCode = "rejected"
	// ErrCodeUnavailable indicates a transport failure talking to a dependency.
	ErrCodeUnavailable ErrorCode = "unavailable"
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal ErrorCode = "internal"
	// ErrCodeTimeout indicates a timeout occurred.
	ErrCodeTimeout ErrorCode = "timeout"
	// ErrCodeCanceled indicates the operation was canceled.
	ErrCodeCanceled ErrorCode = "canceled"
)

// User-facing fallbacks.
const (
	MsgUnavailable = "No se pudo conectar con el servidor. Intenta nuevamente."
	MsgTimeout     = "El servidor tardó demasiado en responder. Intenta nuevamente."
	MsgUnexpected  = "Error inesperado"
)

// AppError represents a structured application error with a code, message, and optional cause.
// It supports error wrapping and unwrapping for use with errors.Is and errors.As.
type AppError struct {
	Code    ErrorCode
	Message string
	Cause   error
	// Field is the input that caused the error, for validation errors.
	Field string
	// Status is the HTTP status the backend answered with, when known.
	Status int
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause, enabling errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NotFound creates a new NotFound error.
func NotFound(message string) *AppError {
	return &AppError{Code: ErrCodeNotFound, Message: message}
}

// Conflict creates a new Conflict error.
func Conflict(message string) *AppError {
	return &AppError{Code: ErrCodeConflict, Message: message}
}

// Validation creates a new Validation error.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message}
}

// ValidationField creates a new Validation error for a specific field.
func ValidationField(field, message string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message, Field: field}
}

// Rejected creates an error carrying a backend rejection message.
func Rejected(message string, status int) *AppError {
	if message == "" {
		message = MsgUnexpected
	}
	return &AppError{Code: ErrCodeRejected, Message: message, Status: status}
}

// Unavailable wraps a transport failure.
func Unavailable(cause error) *AppError {
	return &AppError{Code: ErrCodeUnavailable, Message: MsgUnavailable, Cause: cause}
}

// Internal creates a new Internal error.
func Internal(message string) *AppError {
	return &AppError{Code: ErrCodeInternal, Message: message}
}

// Wrap wraps an existing error with an AppError, preserving the cause.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: message, Cause: err}
}

// FromContext maps context errors to Canceled/Timeout AppErrors.
// It returns nil when err is not a context error.
func FromContext(err error) *AppError {
	switch {
	case errors.Is(err, context.Canceled):
		return &AppError{Code: ErrCodeCanceled, Message: "Request was canceled.", Cause: err}
	case errors.Is(err, context.DeadlineExceeded):
		return &AppError{Code: ErrCodeTimeout, Message: MsgTimeout, Cause: err}
	default:
		return nil
	}
}

// isCode checks if an error has a specific error code.
func isCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsNotFound checks if an error is a NotFound error.
func IsNotFound(err error) bool {
	return isCode(err, ErrCodeNotFound)
}

// IsConflict checks if an error is a Conflict error.
func IsConflict(err error) bool {
	return isCode(err, ErrCodeConflict)
}

// IsValidation checks if an error is a Validation error.
func IsValidation(err error) bool {
	return isCode(err, ErrCodeValidation)
}

// IsRejected checks if an error is a backend rejection.
func IsRejected(err error) bool {
	return isCode(err, ErrCodeRejected)
}

// IsUnavailable checks if an error is a transport failure.
func IsUnavailable(err error) bool {
	return isCode(err, ErrCodeUnavailable)
}

// IsTimeout checks if an error is a Timeout error.
func IsTimeout(err error) bool {
	return isCode(err, ErrCodeTimeout)
}

// IsCanceled reports whether err is a cancellation, either classified or a bare context.Canceled.
func IsCanceled(err error) bool {
	return isCode(err, ErrCodeCanceled) || errors.Is(err, context.Canceled)
}

// GetCode returns the ErrorCode from an error, or empty string if not an AppError.
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// GetField returns the Field from an error, or empty string if not an AppError or no field set.
func GetField(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Field
	}
	return ""
}

// UserMessage returns the text a person should see for err.
// Rejections and validation errors keep their message verbatim; transport
// problems collapse to a generic fallback; cancellations yield "".
func UserMessage(err error) string {
	if err == nil || IsCanceled(err) {
		return ""
	}
	var appErr *AppError
	if !errors.As(err, &appErr) {
		if ctxErr := FromContext(err); ctxErr != nil {
			return ctxErr.Message
		}
		return MsgUnavailable
	}
	switch appErr.Code {
	case ErrCodeRejected, ErrCodeValidation, ErrCodeConflict, ErrCodeNotFound:
		if appErr.Message != "" {
			return appErr.Message
		}
		return MsgUnexpected
	case ErrCodeTimeout:
		return MsgTimeout
	case ErrCodeUnavailable:
		return MsgUnavailable
	default:
		return MsgUnexpected
	}
}
