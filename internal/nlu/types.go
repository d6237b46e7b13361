// Package nlu orchestrates the full understanding pipeline: language
// tagging, entity extraction, intent classification, validation and
// action derivation.
package nlu

import (
	"time"

	"nia-nlu/internal/nlu/classify"
	"nia-nlu/internal/nlu/intent"
	"nia-nlu/internal/nlu/language"
	"nia-nlu/internal/nlu/validate"
)

// Action is a downstream operation derived from a classified utterance.
// Lower priority numbers run first.
type Action struct {
	Type       string                 `json:"type"`
	Parameters map[string]interface{} `json:"parameters,omitempty"`
	Priority   int                    `json:"priority"`
}

// Action types emitted by the pipeline.
const (
	ActionValidateLeadData          = "validate_lead_data"
	ActionCreateCRMLead             = "create_crm_lead"
	ActionCheckCalendarAvailability = "check_calendar_availability"
	ActionCreateCalendarEvent       = "create_calendar_event"
	ActionCreateCRMTask             = "create_crm_task"
	ActionSearchCRMRecords          = "search_crm_records"
)

// IntentResult is the pipeline's complete answer for one utterance.
// Confidence is the min of the adopted intent confidence and the
// validation's overall confidence.
type IntentResult struct {
	Intent       intent.Intent          `json:"intent"`
	Confidence   float64                `json:"confidence"`
	Entities     map[string]interface{} `json:"entities"`
	Language     language.Detection     `json:"language"`
	Sentiment    language.Sentiment     `json:"sentiment"`
	Validation   *validate.Report       `json:"validation"`
	Actions      []Action               `json:"actions"`
	FallbackUsed bool                   `json:"fallbackUsed"`
	Alternatives []classify.Scored      `json:"alternatives,omitempty"`
	ProcessedAt  time.Time              `json:"processedAt"`
	DurationMs   int64                  `json:"durationMs"`
}
