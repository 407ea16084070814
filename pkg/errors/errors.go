// Package errors defines structured application errors for the Riskboard
// service. Every error carries a machine-readable code, the HTTP status it
// maps to, and optional field-level details.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/mspsec/riskboard/pkg/constants"
)

// AppError is the structured error type used across all layers.
type AppError struct {
	Code       constants.ErrorCode
	Message    string
	HTTPStatus int
	Details    map[string]string
	cause      error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause for errors.Is/As chains.
func (e *AppError) Unwrap() error {
	return e.cause
}

// WithCause attaches an underlying error and returns a copy.
func (e *AppError) WithCause(cause error) *AppError {
	clone := *e
	clone.cause = cause
	return &clone
}

// WithMessage overrides the message and returns a copy.
func (e *AppError) WithMessage(format string, args ...any) *AppError {
	clone := *e
	clone.Message = fmt.Sprintf(format, args...)
	return &clone
}

// WithDetails attaches field-level details and returns a copy.
func (e *AppError) WithDetails(details map[string]string) *AppError {
	clone := *e
	clone.Details = details
	return &clone
}

// New creates an AppError with an explicit code, HTTP status, and message.
func New(code constants.ErrorCode, httpStatus int, message string) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus}
}

// As extracts an *AppError from an error chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsNotFound reports whether err carries the not_found code.
func IsNotFound(err error) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == constants.ErrCodeNotFound
}

// IsConflict reports whether err carries the conflict code.
func IsConflict(err error) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == constants.ErrCodeConflict
}

// ================================================================================
// Predefined Error Constructors
// ================================================================================

// ErrInvalidRequest creates a 400 invalid_request error.
func ErrInvalidRequest(message string) *AppError {
	return New(constants.ErrCodeInvalidRequest, http.StatusBadRequest, message)
}

// ErrValidation creates a 400 validation_failed error with field details.
func ErrValidation(details map[string]string) *AppError {
	return New(constants.ErrCodeValidation, http.StatusBadRequest, "one or more fields failed validation").
		WithDetails(details)
}

// ErrUnauthorized creates a 401 unauthorized error.
func ErrUnauthorized(message string) *AppError {
	return New(constants.ErrCodeUnauthorized, http.StatusUnauthorized, message)
}

// ErrForbidden creates a 403 forbidden error.
func ErrForbidden(message string) *AppError {
	return New(constants.ErrCodeForbidden, http.StatusForbidden, message)
}

// ErrNotFound creates a 404 not_found error for a named resource.
func ErrNotFound(resource, id string) *AppError {
	return New(constants.ErrCodeNotFound, http.StatusNotFound,
		fmt.Sprintf("%s not found: %s", resource, id))
}

// ErrConflict creates a 409 conflict error.
func ErrConflict(message string) *AppError {
	return New(constants.ErrCodeConflict, http.StatusConflict, message)
}

// ErrRateLimited creates a 429 rate_limit_exceeded error.
func ErrRateLimited(message string) *AppError {
	return New(constants.ErrCodeRateLimited, http.StatusTooManyRequests, message)
}

// ErrDatabase wraps a storage failure as a 500 internal_error.
func ErrDatabase(cause error) *AppError {
	return New(constants.ErrCodeInternal, http.StatusInternalServerError, "database operation failed").
		WithCause(cause)
}

// ErrInternal creates a 500 internal_error.
func ErrInternal(message string) *AppError {
	return New(constants.ErrCodeInternal, http.StatusInternalServerError, message)
}

// ErrUpstreamUnreachable wraps a transport failure against the metrics backend.
func ErrUpstreamUnreachable(cause error) *AppError {
	return New(constants.ErrCodeUpstream, http.StatusBadGateway, "metrics backend unreachable").
		WithCause(cause)
}

// ErrUpstreamStatus reports a non-2xx response from the metrics backend.
func ErrUpstreamStatus(status int) *AppError {
	return New(constants.ErrCodeUpstream, http.StatusBadGateway,
		fmt.Sprintf("metrics backend returned status %d", status))
}

// ErrBadPayload reports a payload that failed to decode or validate at the
// fetch boundary.
func ErrBadPayload(cause error) *AppError {
	return New(constants.ErrCodeBadPayload, http.StatusBadGateway, "malformed metrics payload").
		WithCause(cause)
}

// ErrUnavailable creates a 503 service_unavailable error.
func ErrUnavailable(message string) *AppError {
	return New(constants.ErrCodeUnavailable, http.StatusServiceUnavailable, message)
}
