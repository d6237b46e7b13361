package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

// ==========================
// Constructor Tests
// ==========================

func TestErrorConstructors(t *testing.T) {
	tests := []struct {
		name            string
		err             *StandardError
		expectedCode    ErrorCode
		expectRetryable bool
	}{
		{
			name:            "classifier not trained",
			err:             NewClassifierNotTrainedError(),
			expectedCode:    ErrCodeClassifierNotTrained,
			expectRetryable: true,
		},
		{
			name:            "corpus invalid",
			err:             NewCorpusInvalidError("bad label"),
			expectedCode:    ErrCodeCorpusInvalid,
			expectRetryable: false,
		},
		{
			name:            "corpus too small",
			err:             NewCorpusTooSmallError("only one class"),
			expectedCode:    ErrCodeCorpusTooSmall,
			expectRetryable: false,
		},
		{
			name:            "input parsing failed",
			err:             NewInputParsingFailedError(fmt.Errorf("unexpected EOF")),
			expectedCode:    ErrCodeInputParsingFailed,
			expectRetryable: false,
		},
		{
			name:            "validation failed",
			err:             NewValidationFailedError("message: required field missing"),
			expectedCode:    ErrCodeValidationFailed,
			expectRetryable: false,
		},
		{
			name:            "cache unavailable",
			err:             NewCacheUnavailableError(fmt.Errorf("connection refused")),
			expectedCode:    ErrCodeCacheUnavailable,
			expectRetryable: true,
		},
		{
			name:            "intent parsing failed",
			err:             NewIntentParsingFailedError(fmt.Errorf("boom")),
			expectedCode:    ErrCodeIntentParsingFailed,
			expectRetryable: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedCode, tt.err.Code)
			assert.Equal(t, tt.expectRetryable, tt.err.Retryable)
			assert.NotEmpty(t, tt.err.Message)
			assert.False(t, tt.err.Timestamp.IsZero())
			assert.Contains(t, tt.err.Error(), string(tt.expectedCode))
		})
	}
}

// ==========================
// Utility Function Tests
// ==========================

func TestIsCode(t *testing.T) {
	err := NewCorpusInvalidError("details")
	assert.True(t, IsCode(err, ErrCodeCorpusInvalid))
	assert.False(t, IsCode(err, ErrCodeCorpusTooSmall))
	assert.False(t, IsCode(fmt.Errorf("plain error"), ErrCodeCorpusInvalid))
	assert.False(t, IsCode(nil, ErrCodeCorpusInvalid))
}

func TestGetErrorCategory(t *testing.T) {
	tests := []struct {
		code     ErrorCode
		expected string
	}{
		{ErrCodeClassifierNotTrained, "MODEL"},
		{ErrCodeCorpusInvalid, "MODEL"},
		{ErrCodeCacheUnavailable, "CACHE"},
		{ErrCodeIntentParsingFailed, "AI"},
		{ErrCodeValidationFailed, "VALIDATION"},
		{ErrorCode("SOMETHING_ELSE"), "OTHER"},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.expected, GetErrorCategory(tt.code))
		})
	}
}

// ==========================
// HTTP Mapping Tests
// ==========================

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "not trained maps to unavailable",
			err:      NewClassifierNotTrainedError(),
			expected: http.StatusServiceUnavailable,
		},
		{
			name:     "cache unavailable maps to unavailable",
			err:      NewCacheUnavailableError(fmt.Errorf("down")),
			expected: http.StatusServiceUnavailable,
		},
		{
			name:     "corpus invalid maps to bad request",
			err:      NewCorpusInvalidError("bad"),
			expected: http.StatusBadRequest,
		},
		{
			name:     "validation failure maps to bad request",
			err:      NewValidationFailedError("bad"),
			expected: http.StatusBadRequest,
		},
		{
			name:     "pipeline failure maps to internal error",
			err:      NewIntentParsingFailedError(fmt.Errorf("boom")),
			expected: http.StatusInternalServerError,
		},
		{
			name:     "plain error maps to internal error",
			err:      fmt.Errorf("boom"),
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}
