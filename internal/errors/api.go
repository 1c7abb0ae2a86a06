package errors

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"
)

// APIError represents a structured API error response
type APIError struct {
	StatusCode int         `json:"status_code"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// Render implements the render.Renderer interface for chi/render
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// New creates a new APIError with the given parameters
func New(statusCode int, errorCode, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

// NewWithDetails creates a new APIError with additional details
func NewWithDetails(statusCode int, errorCode, message string, details interface{}) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
		Details:    details,
	}
}

// ErrRateLimited is returned when a client exceeds the request rate limit.
var ErrRateLimited = New(http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", "Rate limit exceeded")

// InvalidRequestWithError creates an invalid request error with details
func InvalidRequestWithError(err error) *APIError {
	return NewWithDetails(http.StatusBadRequest, "INVALID_REQUEST", "Invalid request format", err.Error())
}

// ErrValidationField creates a validation error for a single field
func ErrValidationField(field, message string) *APIError {
	return NewWithDetails(http.StatusBadRequest, "VALIDATION_FAILED", message, map[string]string{"field": field})
}

// NotFoundError creates a not found error naming the missing resource
func NotFoundError(resource string) *APIError {
	return NewWithDetails(http.StatusNotFound, "NOT_FOUND", resource+" not found", resource)
}

// FromAppError maps an application error onto the HTTP surface. Terminal
// configuration and selection errors surface as 422 with the missing
// identifiers attached; anything else is a 500.
func FromAppError(err error) *APIError {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return NewWithDetails(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal server error", err.Error())
	}
	switch appErr.Type {
	case ErrTypeConfig, ErrTypeSelection:
		return NewWithDetails(http.StatusUnprocessableEntity, string(appErr.Type), appErr.Message, appErr.Context)
	case ErrTypeValidation:
		return NewWithDetails(http.StatusBadRequest, "VALIDATION_FAILED", appErr.Message, appErr.Context)
	case ErrTypeNotFound:
		return NewWithDetails(http.StatusNotFound, "NOT_FOUND", appErr.Message, appErr.Context)
	default:
		return NewWithDetails(http.StatusInternalServerError, string(appErr.Type), appErr.Message, appErr.Context)
	}
}
