// Package errors provides standardized error handling for the scoring engine.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeThemeNotFound    ErrorCode = "THEME_NOT_FOUND"

	ErrCodeStoreReadFailed     ErrorCode = "STORE_READ_FAILED"
	ErrCodeStoreWriteFailed    ErrorCode = "STORE_WRITE_FAILED"
	ErrCodeHistoryAppendFailed ErrorCode = "HISTORY_APPEND_FAILED"
	ErrCodeHistoryQueryFailed  ErrorCode = "HISTORY_QUERY_FAILED"

	ErrCodeSearchQueryFailed ErrorCode = "SEARCH_QUERY_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// NewValidationError creates a non-retryable validation error naming the
// offending field.
func NewValidationError(field, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   fmt.Sprintf("Validation failed for field '%s'", field),
		Details:   details,
		Retryable: false,
		Metadata:  map[string]interface{}{"field": field},
		Timestamp: time.Now().UTC(),
	}
}

// NewThemeNotFoundError creates a non-retryable lookup error.
func NewThemeNotFoundError(themeID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeThemeNotFound,
		Message:   "Theme not found",
		Details:   fmt.Sprintf("themeId: %s", themeID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewStoreReadError creates a retryable store read error.
func NewStoreReadError(entity string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStoreReadFailed,
		Message:   fmt.Sprintf("Store read failed for %s", entity),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewStoreWriteError creates a retryable store write error.
func NewStoreWriteError(entity string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStoreWriteFailed,
		Message:   fmt.Sprintf("Store write failed for %s", entity),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewHistoryAppendError creates a retryable history append error.
func NewHistoryAppendError(themeID string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeHistoryAppendFailed,
		Message:   "Score history append failed",
		Details:   fmt.Sprintf("themeId: %s, error: %s", themeID, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewHistoryQueryError creates a retryable history query error.
func NewHistoryQueryError(themeID string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeHistoryQueryFailed,
		Message:   "Score history query failed",
		Details:   fmt.Sprintf("themeId: %s, error: %s", themeID, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSearchQueryError creates a retryable search error.
func NewSearchQueryError(index string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchQueryFailed,
		Message:   "Theme search query failed",
		Details:   fmt.Sprintf("index: %s, error: %s", index, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// CodeOf extracts the ErrorCode from any error in the chain, or "" when the
// error is not a StandardError.
func CodeOf(err error) ErrorCode {
	var se *StandardError
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}

// IsRetryable reports whether the error is a retryable StandardError.
func IsRetryable(err error) bool {
	var se *StandardError
	if errors.As(err, &se) {
		return se.Retryable
	}
	return false
}

// IsValidation reports whether the error chain carries a validation failure.
func IsValidation(err error) bool {
	return CodeOf(err) == ErrCodeValidationFailed
}
