// Package errors provides application-level error types and utilities.
// It defines the batch-level error taxonomy (schema, parse, store) alongside
// generic validation, not found, conflict, and internal errors.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation_error"
	ErrorTypeNotFound   ErrorType = "not_found"
	ErrorTypeConflict   ErrorType = "conflict"
	ErrorTypeBadRequest ErrorType = "bad_request"
	ErrorTypeInternal   ErrorType = "internal_error"

	// Batch-level failures: these abort the whole upload.
	ErrorTypeSchema ErrorType = "schema_error"
	ErrorTypeParse  ErrorType = "parse_error"
	ErrorTypeStore  ErrorType = "store_error"
)

// AppError represents an application error with additional context
type AppError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
	Code    int       `json:"code"`
	Details string    `json:"details,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(message string, details ...string) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
		Code:    http.StatusBadRequest,
		Details: firstDetail(details),
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string, details ...string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: message,
		Code:    http.StatusNotFound,
		Details: firstDetail(details),
	}
}

// NewConflictError creates a new conflict error
func NewConflictError(message string, details ...string) *AppError {
	return &AppError{
		Type:    ErrorTypeConflict,
		Message: message,
		Code:    http.StatusConflict,
		Details: firstDetail(details),
	}
}

// NewBadRequestError creates a new bad request error
func NewBadRequestError(message string, details ...string) *AppError {
	return &AppError{
		Type:    ErrorTypeBadRequest,
		Message: message,
		Code:    http.StatusBadRequest,
		Details: firstDetail(details),
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, details ...string) *AppError {
	return &AppError{
		Type:    ErrorTypeInternal,
		Message: message,
		Code:    http.StatusInternalServerError,
		Details: firstDetail(details),
	}
}

// NewSchemaError creates an error for an upload whose header is missing
// required columns. Fatal to the whole batch.
func NewSchemaError(missing []string) *AppError {
	return &AppError{
		Type:    ErrorTypeSchema,
		Message: "missing required columns",
		Code:    http.StatusBadRequest,
		Details: strings.Join(missing, ", "),
	}
}

// NewParseError creates an error for a payload that cannot be decoded as
// structured text. Fatal to the whole batch.
func NewParseError(message string, details ...string) *AppError {
	return &AppError{
		Type:    ErrorTypeParse,
		Message: message,
		Code:    http.StatusBadRequest,
		Details: firstDetail(details),
	}
}

// NewStoreError wraps a non-uniqueness store failure. Fatal to the batch;
// rows already committed are retained.
func NewStoreError(message string, err error) *AppError {
	detail := ""
	if err != nil {
		detail = err.Error()
	}
	return &AppError{
		Type:    ErrorTypeStore,
		Message: message,
		Code:    http.StatusInternalServerError,
		Details: detail,
	}
}

func firstDetail(details []string) string {
	if len(details) > 0 {
		return details[0]
	}
	return ""
}

// GetAppError extracts an AppError from an error chain, or returns nil.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsAppError checks whether the error is an AppError of the given type.
func IsAppError(err error, errType ErrorType) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == errType
}

// IsDuplicateError checks if the error is a database duplicate key error.
// Covers MySQL ("Duplicate entry"), Postgres ("duplicate key") and SQLite
// ("UNIQUE constraint failed") phrasing so callers can reclassify insert-time
// uniqueness violations as duplicates rather than failures.
func IsDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "Duplicate entry") ||
		strings.Contains(errStr, "duplicate key") ||
		strings.Contains(errStr, "UNIQUE constraint")
}
