package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nia-nlu/internal/nlu/entity"
)

// ==========================
// Test Helper Functions
// ==========================

var extractBase = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func testExtractor() *Extractor {
	return New(nil, WithClock(func() time.Time { return extractBase }))
}

// ==========================
// Core Extraction Tests
// ==========================

func TestExtract_FullLeadUtterance(t *testing.T) {
	e := testExtractor()

	result := e.Extract("Create a lead for John Smith from TechCorp, email john@techcorp.com, phone +91 9876543210")

	bag := result.Entities
	assert.Equal(t, "John Smith", bag.Primary(entity.KindName))
	assert.Equal(t, "TechCorp", bag.Primary(entity.KindCompany))
	assert.Equal(t, "john@techcorp.com", bag.Primary(entity.KindEmail))
	assert.Equal(t, "+91 98765 43210", bag.Primary(entity.KindPhone), "phones normalize to international format")
	assert.Empty(t, result.Issues)
	assert.InDelta(t, 0.9, result.Confidence, 0.001, "four kinds hit the confidence cap")
}

func TestExtract_ConfidenceGrowsWithKinds(t *testing.T) {
	e := testExtractor()

	tests := []struct {
		name         string
		text         string
		expectedConf float64
	}{
		{
			name:         "nothing found",
			text:         "hmm",
			expectedConf: 0.3,
		},
		{
			name:         "one kind",
			text:         "reach me at john@techcorp.com",
			expectedConf: 0.45,
		},
		{
			name:         "two kinds",
			text:         "john@techcorp.com, phone +91 9876543210",
			expectedConf: 0.6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := e.Extract(tt.text)
			assert.InDelta(t, tt.expectedConf, result.Confidence, 0.001)
		})
	}
}

// ==========================
// Declared Value Tests
// ==========================

func TestExtract_DeclaredInvalidValuesAreKept(t *testing.T) {
	e := testExtractor()

	result := e.Extract("Create lead for Rajesh with email invalid-email and phone 123")

	bag := result.Entities
	assert.Equal(t, "Rajesh", bag.Primary(entity.KindName))
	assert.Equal(t, "invalid-email", bag.Primary(entity.KindEmail), "declared email survives for validation to flag")
	assert.Equal(t, "123", bag.Primary(entity.KindPhone), "declared phone survives for validation to flag")

	require.Len(t, result.Issues, 2)
	values := make(map[entity.Kind]string, 2)
	for _, issue := range result.Issues {
		values[issue.Kind] = issue.Value
	}
	assert.Equal(t, "invalid-email", values[entity.KindEmail])
	assert.Equal(t, "123", values[entity.KindPhone])
}

func TestExtract_EmailKeywordMustBeStandalone(t *testing.T) {
	e := testExtractor()

	// "email" inside a hyphenated word must not anchor the declared-email
	// rule
	result := e.Extract("the invalid-email note says email is raj@wipro.com")

	assert.Equal(t, "raj@wipro.com", result.Entities.Primary(entity.KindEmail))
	assert.Empty(t, result.Issues)
}

func TestExtract_DeclaredValidEmailIsDeduplicated(t *testing.T) {
	e := testExtractor()

	result := e.Extract("her email is Priya@Infosys.com")
	assert.Equal(t, []string{"priya@infosys.com"}, result.Entities.All(entity.KindEmail))
	assert.Empty(t, result.Issues)
}

// ==========================
// Phone Tests
// ==========================

func TestExtract_PhoneVariantsCollapse(t *testing.T) {
	e := testExtractor()

	result := e.Extract("call him on 9876543210 or +91 9876543210")
	assert.Equal(t, []string{"+91 98765 43210"}, result.Entities.All(entity.KindPhone))
}

// ==========================
// Auxiliary Rule Tests
// ==========================

func TestExtract_MoneyPriorityAndStatus(t *testing.T) {
	e := testExtractor()

	tests := []struct {
		name     string
		text     string
		kind     entity.Kind
		expected string
	}{
		{
			name:     "rupee amount",
			text:     "deal size is ₹50,000 per year",
			kind:     entity.KindMoney,
			expected: "₹50,000",
		},
		{
			name:     "explicit priority phrase",
			text:     "log this as low priority",
			kind:     entity.KindPriority,
			expected: "low",
		},
		{
			name:     "urgency implies high priority",
			text:     "need this done asap",
			kind:     entity.KindPriority,
			expected: "high",
		},
		{
			name:     "status keyword",
			text:     "the deal is closed won",
			kind:     entity.KindStatus,
			expected: "closed-won",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := e.Extract(tt.text)
			assert.Equal(t, tt.expected, result.Entities.Primary(tt.kind))
		})
	}
}

// ==========================
// Date Scanner Tests
// ==========================

func TestDateScanner_ResolvesRelativeDates(t *testing.T) {
	s := NewDateScanner(func() time.Time { return extractBase })

	spans := s.Scan("schedule it for tomorrow at 2pm")
	require.Len(t, spans, 1)
	assert.Equal(t, 16, spans[0].Start.Day())
	assert.Equal(t, 14, spans[0].Start.Hour(), "time words merge into the date span")
}

func TestDateScanner_FindsMultipleSpans(t *testing.T) {
	s := NewDateScanner(func() time.Time { return extractBase })

	spans := s.Scan("meet tomorrow and follow up next friday")
	require.Len(t, spans, 2)
	assert.True(t, spans[0].Start.After(extractBase))
	assert.True(t, spans[1].Start.After(spans[0].Start))
	assert.Less(t, spans[0].Offset, spans[1].Offset)
}

func TestDateScanner_NoDates(t *testing.T) {
	s := NewDateScanner(nil)
	assert.Empty(t, s.Scan("create a lead for john"))
}
