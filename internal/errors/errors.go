package errors

import (
	"fmt"
	"net/http"
)

// ErrorCode represents application-specific error codes. The string values
// are part of the webhook response contract and must stay stable.
type ErrorCode string

const (
	// Client errors
	ErrCodeMethodNotAllowed ErrorCode = "method_not_allowed"
	ErrCodeInvalidRequest   ErrorCode = "invalid_request"
	ErrCodeMissingFields    ErrorCode = "missing_fields"
	ErrCodeInvalidSecret    ErrorCode = "invalid_secret"

	// Upstream errors
	ErrCodeGitHubRequestFailed ErrorCode = "github_request_failed"

	// Server errors
	ErrCodeInternal ErrorCode = "internal"
)

// AppError represents an application error with additional context
type AppError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message,omitempty"`
	Details    string    `json:"details,omitempty"`
	Required   []string  `json:"required,omitempty"`
	StatusCode int       `json:"-"`
	Err        error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new application error
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: getStatusCodeForError(code),
	}
}

// Wrap wraps an existing error with application context
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: getStatusCodeForError(code),
		Err:        err,
	}
}

// getStatusCodeForError maps error codes to HTTP status codes
func getStatusCodeForError(code ErrorCode) int {
	switch code {
	case ErrCodeInvalidRequest, ErrCodeMissingFields:
		return http.StatusBadRequest
	case ErrCodeInvalidSecret:
		return http.StatusUnauthorized
	case ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case ErrCodeGitHubRequestFailed:
		return http.StatusBadGateway
	case ErrCodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// Common error constructors for convenience

// MethodNotAllowed creates a wrong-method error
func MethodNotAllowed() *AppError {
	return New(ErrCodeMethodNotAllowed, "only POST is accepted")
}

// InvalidSecret creates a shared-secret mismatch error
func InvalidSecret() *AppError {
	return New(ErrCodeInvalidSecret, "")
}

// MissingFields creates a missing-required-fields error naming the
// full set of required fields.
func MissingFields(required []string) *AppError {
	e := New(ErrCodeMissingFields, "")
	e.Required = required
	return e
}

// InvalidRequest creates an invalid request error
func InvalidRequest(message string) *AppError {
	return New(ErrCodeInvalidRequest, message)
}

// GitHubRequestFailed creates an upstream issue-creation error carrying
// the raw error body returned by the GitHub API.
func GitHubRequestFailed(details string) *AppError {
	e := New(ErrCodeGitHubRequestFailed, "")
	e.Details = details
	return e
}

// InternalError creates an internal server error
func InternalError(err error) *AppError {
	return Wrap(err, ErrCodeInternal, "internal server error")
}
