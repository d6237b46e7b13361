package nlu

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nia-nlu/internal/common/errors"
	"nia-nlu/internal/nlu/classify"
	"nia-nlu/internal/nlu/intent"
	"nia-nlu/internal/nlu/language"
)

// ==========================
// Test Helper Functions
// ==========================

var engineBase = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func testEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(Options{
		Clock: func() time.Time { return engineBase },
	})
	require.NoError(t, err)
	return e
}

func actionTypes(actions []Action) []string {
	types := make([]string, 0, len(actions))
	for _, a := range actions {
		types = append(types, a.Type)
	}
	return types
}

// ==========================
// Pipeline Scenario Tests
// ==========================

func TestEngine_CompleteLeadUtterance(t *testing.T) {
	e := testEngine(t)

	result := e.Classify(context.Background(), "Create a lead for John Smith from TechCorp, email john@techcorp.com, phone +91 9876543210")

	assert.Equal(t, intent.CreateLead, result.Intent)
	assert.Greater(t, result.Confidence, 0.5)
	assert.LessOrEqual(t, result.Confidence, 1.0)
	assert.Equal(t, language.TagEnglish, result.Language.Language)

	require.Len(t, result.Actions, 2)
	assert.Equal(t, ActionValidateLeadData, result.Actions[0].Type)
	assert.Equal(t, 1, result.Actions[0].Priority)
	assert.Equal(t, ActionCreateCRMLead, result.Actions[1].Type)
	assert.Equal(t, 2, result.Actions[1].Priority)
	assert.Equal(t, "John Smith", result.Actions[1].Parameters["name"])
	assert.Equal(t, "TechCorp", result.Actions[1].Parameters["company"])
}

func TestEngine_InvalidContactDetails(t *testing.T) {
	e := testEngine(t)

	result := e.Classify(context.Background(), "Create lead for Rajesh with email invalid-email and phone 123")

	assert.Equal(t, intent.CreateLead, result.Intent)
	require.NotNil(t, result.Validation)
	assert.False(t, result.Validation.IsValid)
	assert.Contains(t, actionTypes(result.Actions), ActionValidateLeadData)
	assert.NotContains(t, actionTypes(result.Actions), ActionCreateCRMLead, "incomplete leads must not reach the CRM")
}

func TestEngine_Greeting(t *testing.T) {
	e := testEngine(t)

	result := e.Classify(context.Background(), "hello nia")

	assert.Equal(t, intent.Greeting, result.Intent)
	assert.GreaterOrEqual(t, result.Confidence, 0.5)
	assert.Empty(t, result.Actions)
	assert.True(t, result.Validation.IsValid)
}

func TestEngine_ScheduleMeeting(t *testing.T) {
	e := testEngine(t)

	result := e.Classify(context.Background(), "Schedule a meeting with Sarah tomorrow at 2pm")

	assert.Equal(t, intent.ScheduleMeeting, result.Intent)
	require.Len(t, result.Actions, 2)
	assert.Equal(t, ActionCheckCalendarAvailability, result.Actions[0].Type)
	assert.Equal(t, ActionCreateCalendarEvent, result.Actions[1].Type)

	event := result.Actions[1].Parameters
	assert.Equal(t, "Sarah", event["participant"])
	assert.Equal(t, "2025-06-16T14:00:00Z", event["dateTime"])
}

func TestEngine_MixedScriptUtterance(t *testing.T) {
	e := testEngine(t)

	result := e.Classify(context.Background(), "नमस्ते, create a lead for Amit")

	assert.Equal(t, language.TagMixed, result.Language.Language)
	assert.InDelta(t, 0.8, result.Language.Confidence, 0.001)
}

func TestEngine_EmptyInput(t *testing.T) {
	e := testEngine(t)

	result := e.Classify(context.Background(), "")

	assert.Equal(t, intent.GeneralInquiry, result.Intent)
	assert.InDelta(t, 0.5, result.Confidence, 0.001)
	assert.True(t, result.FallbackUsed)
	assert.Empty(t, result.Actions)
}

func TestEngine_SearchDerivesQuery(t *testing.T) {
	e := testEngine(t)

	result := e.Classify(context.Background(), "find leads from Mumbai")

	assert.Equal(t, intent.SearchLead, result.Intent)
	require.Len(t, result.Actions, 1)
	assert.Equal(t, ActionSearchCRMRecords, result.Actions[0].Type)
	assert.Equal(t, "Mumbai", result.Actions[0].Parameters["query"])
}

// ==========================
// Degradation Tests
// ==========================

func TestEngine_UntrainedModelDegradesToFallback(t *testing.T) {
	e, err := NewEngine(Options{
		SkipSeedTraining: true,
		Clock:            func() time.Time { return engineBase },
	})
	require.NoError(t, err)

	result := e.Classify(context.Background(), "show my tasks")

	assert.Equal(t, intent.GetTasks, result.Intent)
	assert.True(t, result.FallbackUsed)
	assert.InDelta(t, classify.FallbackMatchConfidence, result.Confidence, 0.001)
}

func TestEngine_NeverPanicsOnOddInput(t *testing.T) {
	e := testEngine(t)

	inputs := []string{
		"",
		"   \t\n  ",
		"!!!???...",
		strings.Repeat("lead ", 500),
		"\x00\x01\x02",
		"😀🚀🎉",
	}
	for _, text := range inputs {
		result := e.Classify(context.Background(), text)
		require.NotNil(t, result)
		assert.True(t, intent.IsValid(string(result.Intent)))
		assert.GreaterOrEqual(t, result.Confidence, 0.0)
		assert.LessOrEqual(t, result.Confidence, 1.0)
	}
}

// ==========================
// Retraining Tests
// ==========================

func TestEngine_Retrain(t *testing.T) {
	e, err := NewEngine(Options{SkipSeedTraining: true})
	require.NoError(t, err)
	assert.False(t, e.ModelInfo().Trained)

	docs := []classify.Document{
		{Text: "hello there", Label: intent.Greeting},
		{Text: "bye for now", Label: intent.Goodbye},
	}
	require.NoError(t, e.Retrain(docs))

	info := e.ModelInfo()
	assert.True(t, info.Trained)
	assert.Equal(t, 2, info.Documents)
	assert.Equal(t, 2, info.Classes)
}

func TestEngine_RetrainRejectsBadCorpus(t *testing.T) {
	e := testEngine(t)

	err := e.Retrain([]classify.Document{{Text: "hello", Label: intent.Greeting}})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeCorpusTooSmall))
	assert.True(t, e.ModelInfo().Trained, "failed retrain keeps the old model")
}

func TestEngine_ConcurrentClassifyAndRetrain(t *testing.T) {
	e := testEngine(t)
	corpus := classify.BuiltinCorpus()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				result := e.Classify(context.Background(), "create a lead for john smith from techcorp")
				assert.NotNil(t, result)
			}
		}()
	}
	for i := 0; i < 10; i++ {
		require.NoError(t, e.Retrain(corpus))
	}
	wg.Wait()
}

// ==========================
// Confidence Combination Tests
// ==========================

func TestEngine_ConfidenceNeverExceedsValidation(t *testing.T) {
	e := testEngine(t)

	result := e.Classify(context.Background(), "Create lead for Rajesh with email invalid-email and phone 123")

	assert.LessOrEqual(t, result.Confidence, result.Validation.OverallConfidence+1e-9)
}
