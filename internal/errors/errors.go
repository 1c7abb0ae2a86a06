package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeConfig     ErrorType = "CONFIG"
	ErrTypeParsing    ErrorType = "PARSING"
	ErrTypeSelection  ErrorType = "SELECTION"
	ErrTypeValidation ErrorType = "VALIDATION"
	ErrTypeStorage    ErrorType = "STORAGE"
	ErrTypeNotFound   ErrorType = "NOT_FOUND"
)

// AppError represents an application-specific error.
//
// Configuration errors (missing sheets, unresolvable required columns, no
// qualifying sheet) are terminal for a run: no partial results are produced.
// Parse-level anomalies never become AppErrors; they degrade to defaulted
// cell values inside the normalizer.
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// NewParsingError creates a parsing-related error
func NewParsingError(message string, cause error) *AppError {
	return NewAppError(ErrTypeParsing, message, cause)
}

// NewStorageError creates a storage-related error
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewValidationError creates a validation error
func NewValidationError(message string) *AppError {
	return NewAppError(ErrTypeValidation, message, nil)
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *AppError {
	return NewAppError(ErrTypeNotFound, fmt.Sprintf("%s not found", resource), nil)
}

// NewMissingSheetsError reports workbook sheets required for a role that the
// workbook does not contain.
func NewMissingSheetsError(names []string) *AppError {
	return NewConfigError(
		fmt.Sprintf("workbook is missing required sheets: %s", strings.Join(names, ", ")),
		nil,
	).WithContext("missing_sheets", names)
}

// NewMissingColumnsError reports required canonical columns that could not be
// resolved in a sheet and have no permitted default.
func NewMissingColumnsError(sheet string, fields []string) *AppError {
	return NewConfigError(
		fmt.Sprintf("sheet %q is missing required columns: %s", sheet, strings.Join(fields, ", ")),
		nil,
	).WithContext("sheet", sheet).WithContext("missing_columns", fields)
}

// NewSelectionError reports that no sheet in the workbook satisfied any of
// the attempted required-column alternatives for a role.
func NewSelectionError(role string, attempted [][]string) *AppError {
	alts := make([]string, len(attempted))
	for i, set := range attempted {
		alts[i] = "{" + strings.Join(set, ", ") + "}"
	}
	return NewAppError(ErrTypeSelection,
		fmt.Sprintf("no sheet qualifies for role %q; attempted column sets: %s",
			role, strings.Join(alts, " | ")),
		nil,
	).WithContext("role", role).WithContext("attempted_sets", attempted)
}

// IsConfigError reports whether err is terminal for the run: a configuration
// or selection failure, as opposed to a recoverable parse anomaly.
func IsConfigError(err error) bool {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return false
	}
	return appErr.Type == ErrTypeConfig || appErr.Type == ErrTypeSelection
}
