package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// ==========================
// Test Helper Functions
// ==========================

func messageSchema() JSONSchema {
	maxLen := 10
	return JSONSchema{
		Type: "object",
		Properties: map[string]Property{
			"message": {Type: "string", MaxLength: &maxLen},
			"context": {Type: "object"},
		},
		Required: []string{"message"},
	}
}

// ==========================
// Schema Validation Tests
// ==========================

func TestValidateInput(t *testing.T) {
	tests := []struct {
		name         string
		input        map[string]interface{}
		expectValid  bool
		expectedCode string
	}{
		{
			name:        "valid payload",
			input:       map[string]interface{}{"message": "hello"},
			expectValid: true,
		},
		{
			name:        "valid payload with context",
			input:       map[string]interface{}{"message": "hello", "context": map[string]interface{}{"k": "v"}},
			expectValid: true,
		},
		{
			name:         "missing required field",
			input:        map[string]interface{}{},
			expectValid:  false,
			expectedCode: "REQUIRED_FIELD_MISSING",
		},
		{
			name:         "wrong type",
			input:        map[string]interface{}{"message": 42.0},
			expectValid:  false,
			expectedCode: "INVALID_TYPE",
		},
		{
			name:         "too long",
			input:        map[string]interface{}{"message": "this is well past ten characters"},
			expectValid:  false,
			expectedCode: "MAX_LENGTH_VIOLATION",
		},
		{
			name:         "undeclared field",
			input:        map[string]interface{}{"message": "hello", "rogue": true},
			expectValid:  false,
			expectedCode: "EXTRA_FIELD",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateInput(tt.input, messageSchema())
			assert.Equal(t, tt.expectValid, result.Valid)
			if !tt.expectValid {
				codes := make([]string, 0, len(result.Errors))
				for _, e := range result.Errors {
					codes = append(codes, e.Code)
				}
				assert.Contains(t, codes, tt.expectedCode)
			}
		})
	}
}

func TestFormatErrors(t *testing.T) {
	result := ValidateInput(map[string]interface{}{}, messageSchema())
	details := FormatErrors(result)
	assert.Contains(t, details, "message")
	assert.Contains(t, details, "required field missing")

	assert.Empty(t, FormatErrors(&ValidationResult{Valid: true}))
	assert.Empty(t, FormatErrors(nil))
}
