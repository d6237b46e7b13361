// Package intent defines the closed intent vocabulary of the assistant.
package intent

// Intent is one of the fixed set of user intents the pipeline can produce.
type Intent string

const (
	CreateLead      Intent = "create_lead"
	UpdateLead      Intent = "update_lead"
	SearchLead      Intent = "search_lead"
	ScheduleMeeting Intent = "schedule_meeting"
	CreateTask      Intent = "create_task"
	GetTasks        Intent = "get_tasks"
	EmailSummary    Intent = "email_summary"
	GeneralInquiry  Intent = "general_inquiry"
	Greeting        Intent = "greeting"
	Goodbye         Intent = "goodbye"
)

// All lists every intent in a stable order.
func All() []Intent {
	return []Intent{
		CreateLead,
		UpdateLead,
		SearchLead,
		ScheduleMeeting,
		CreateTask,
		GetTasks,
		EmailSummary,
		GeneralInquiry,
		Greeting,
		Goodbye,
	}
}

// IsValid reports whether s is a member of the vocabulary.
func IsValid(s string) bool {
	switch Intent(s) {
	case CreateLead, UpdateLead, SearchLead, ScheduleMeeting, CreateTask,
		GetTasks, EmailSummary, GeneralInquiry, Greeting, Goodbye:
		return true
	}
	return false
}

func (i Intent) String() string {
	return string(i)
}
