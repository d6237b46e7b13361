// Package errors provides standardized error handling for the NLU service.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeClassifierNotTrained ErrorCode = "CLASSIFIER_NOT_TRAINED"
	ErrCodeCorpusInvalid        ErrorCode = "CORPUS_INVALID"
	ErrCodeCorpusTooSmall       ErrorCode = "CORPUS_TOO_SMALL"

	ErrCodeInputParsingFailed ErrorCode = "INPUT_PARSING_FAILED"
	ErrCodeValidationFailed   ErrorCode = "VALIDATION_FAILED"

	ErrCodeCacheUnavailable ErrorCode = "CACHE_UNAVAILABLE"

	ErrCodeIntentParsingFailed ErrorCode = "INTENT_PARSING_FAILED"
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

// ==========================
// 2. Error Constructors
// ==========================

// NewClassifierNotTrainedError signals classification against a model that
// was never published.
func NewClassifierNotTrainedError() *StandardError {
	return &StandardError{
		Code:      ErrCodeClassifierNotTrained,
		Message:   "Intent classifier has no trained model",
		Details:   "train or retrain must complete before classification",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCorpusInvalidError creates a non-retryable corpus content error.
func NewCorpusInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeCorpusInvalid,
		Message:   "Training corpus failed validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCorpusTooSmallError creates a non-retryable corpus size error.
func NewCorpusTooSmallError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeCorpusTooSmall,
		Message:   "Training corpus is too small to build a model",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInputParsingFailedError creates a non-retryable request parsing error.
func NewInputParsingFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInputParsingFailed,
		Message:   "Request payload could not be parsed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewValidationFailedError creates a non-retryable payload validation error.
func NewValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Request payload validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCacheUnavailableError creates a retryable cache backend error.
func NewCacheUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCacheUnavailable,
		Message:   "Result cache is unavailable",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewIntentParsingFailedError creates a retryable pipeline error.
func NewIntentParsingFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeIntentParsingFailed,
		Message:   "Intent parsing error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// IsCode reports whether err is a StandardError carrying code.
func IsCode(err error, code ErrorCode) bool {
	stdErr, ok := err.(*StandardError)
	return ok && stdErr.Code == code
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "CORPUS") || strings.Contains(codeStr, "CLASSIFIER"):
		return "MODEL"
	case strings.Contains(codeStr, "CACHE"):
		return "CACHE"
	case strings.Contains(codeStr, "INTENT"):
		return "AI"
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "VALIDATION") || strings.Contains(codeStr, "PARSING"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
