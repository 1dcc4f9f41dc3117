// Defines the API error taxonomy shared by handlers and middleware.

// Package dto holds the request/response types of the HTTP API, their
// validation, and the structured error type handlers return.
package dto

import (
	"fmt"
	"net/http"
)

// ErrorCode identifies an error class to API clients.
type ErrorCode string

const (
	// ErrorCodeValidation is returned when request input fails validation.
	ErrorCodeValidation ErrorCode = "VALIDATION_FAILED"
	// ErrorCodeNotFound is returned when no record matches a lookup.
	ErrorCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrorCodeSourceNotFound is returned when the dataset source file is
	// absent at reload time.
	ErrorCodeSourceNotFound ErrorCode = "SOURCE_NOT_FOUND"
	// ErrorCodeRateLimited is returned when a client exceeds its rate limit.
	ErrorCodeRateLimited ErrorCode = "RATE_LIMITED"
	// ErrorCodeInternal is returned for unexpected failures. The response
	// never carries internal detail; that goes to the log only.
	ErrorCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// APIError is an error carrying an HTTP status and a machine-readable code.
type APIError struct {
	statusCode int
	code       ErrorCode
	message    string
	wrapped    error
}

// NewAPIError creates an APIError with the given status, code, and message.
func NewAPIError(statusCode int, code ErrorCode, message string) *APIError {
	return &APIError{statusCode: statusCode, code: code, message: message}
}

// Wrap attaches an underlying error for logging; it is never serialized.
func (e *APIError) Wrap(err error) *APIError {
	e.wrapped = err
	return e
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.wrapped != nil {
		return fmt.Sprintf("%s: %v", e.message, e.wrapped)
	}
	return e.message
}

// Message returns the client-facing message without wrapped detail.
func (e *APIError) Message() string {
	return e.message
}

// StatusCode returns the HTTP status to respond with.
func (e *APIError) StatusCode() int {
	return e.statusCode
}

// Code returns the machine-readable error code.
func (e *APIError) Code() ErrorCode {
	return e.code
}

// Unwrap returns the wrapped error, if any.
func (e *APIError) Unwrap() error {
	return e.wrapped
}

// BadRequest creates a 400 validation error.
func BadRequest(message string) *APIError {
	return NewAPIError(http.StatusBadRequest, ErrorCodeValidation, message)
}

// MissingField creates a 400 error for an absent required field.
func MissingField(field string) *APIError {
	return NewAPIError(http.StatusBadRequest, ErrorCodeValidation, fmt.Sprintf("Missing required field: %s", field))
}

// NotFound creates a 404 error.
func NotFound(resource string) *APIError {
	return NewAPIError(http.StatusNotFound, ErrorCodeNotFound, fmt.Sprintf("%s not found", resource))
}

// SourceNotFound creates a 500 error for a missing dataset source.
func SourceNotFound(err error) *APIError {
	return NewAPIError(http.StatusInternalServerError, ErrorCodeSourceNotFound, "Dataset source file not found").Wrap(err)
}

// Internal creates a generic 500 error.
func Internal(message string) *APIError {
	return NewAPIError(http.StatusInternalServerError, ErrorCodeInternal, message)
}

// InternalWithError creates a 500 error wrapping an underlying cause.
func InternalWithError(message string, err error) *APIError {
	return Internal(message).Wrap(err)
}
