package classify

import "nia-nlu/internal/nlu/intent"

// BuiltinCorpus returns the seed training set the service boots with.
// It mixes English and Hinglish phrasings per intent, mirroring how the
// assistant's users actually talk.
func BuiltinCorpus() []Document {
	return []Document{
		// create_lead
		{Text: "create a lead for john smith from techcorp", Label: intent.CreateLead},
		{Text: "add a new lead for priya sharma at infosys", Label: intent.CreateLead},
		{Text: "create lead for mike ross from pearson with email mike@pearson.com", Label: intent.CreateLead},
		{Text: "new lead rahul verma from tata motors", Label: intent.CreateLead},
		{Text: "add prospect anita desai from wipro to the pipeline", Label: intent.CreateLead},
		{Text: "naya lead banao for suresh from reliance", Label: intent.CreateLead},

		// update_lead
		{Text: "update the lead for john smith", Label: intent.UpdateLead},
		{Text: "change lead status to qualified", Label: intent.UpdateLead},
		{Text: "modify lead 4521 phone number", Label: intent.UpdateLead},
		{Text: "edit the lead details for acme corp", Label: intent.UpdateLead},
		{Text: "mark lead 883 as contacted", Label: intent.UpdateLead},

		// search_lead
		{Text: "search for leads from mumbai", Label: intent.SearchLead},
		{Text: "find the lead for sarah johnson", Label: intent.SearchLead},
		{Text: "show me all leads from techcorp", Label: intent.SearchLead},
		{Text: "list qualified leads", Label: intent.SearchLead},
		{Text: "get leads created this week", Label: intent.SearchLead},
		{Text: "leads dhundo from bangalore", Label: intent.SearchLead},

		// schedule_meeting
		{Text: "schedule a meeting with sarah johnson tomorrow at 2 pm", Label: intent.ScheduleMeeting},
		{Text: "book a call with the techcorp team next monday", Label: intent.ScheduleMeeting},
		{Text: "set up an appointment with dr mehta on friday", Label: intent.ScheduleMeeting},
		{Text: "arrange a demo meeting with the client next week", Label: intent.ScheduleMeeting},
		{Text: "meeting fix karo with amit kal subah", Label: intent.ScheduleMeeting},

		// create_task
		{Text: "remind me to follow up with john tomorrow", Label: intent.CreateTask},
		{Text: "create a task to send the proposal by friday", Label: intent.CreateTask},
		{Text: "add a todo to call the vendor", Label: intent.CreateTask},
		{Text: "set a reminder to review the contract", Label: intent.CreateTask},
		{Text: "task banao to email the quotation", Label: intent.CreateTask},

		// get_tasks
		{Text: "show my tasks", Label: intent.GetTasks},
		{Text: "what are my pending tasks today", Label: intent.GetTasks},
		{Text: "list all my todos", Label: intent.GetTasks},
		{Text: "what do i have due this week", Label: intent.GetTasks},
		{Text: "mere tasks dikhao", Label: intent.GetTasks},

		// email_summary
		{Text: "give me an email summary", Label: intent.EmailSummary},
		{Text: "summarize my inbox", Label: intent.EmailSummary},
		{Text: "any important emails today", Label: intent.EmailSummary},
		{Text: "email digest for this morning", Label: intent.EmailSummary},

		// general_inquiry
		{Text: "how does the crm handle duplicates", Label: intent.GeneralInquiry},
		{Text: "what can you do", Label: intent.GeneralInquiry},
		{Text: "tell me about lead scoring", Label: intent.GeneralInquiry},
		{Text: "how do i export my data", Label: intent.GeneralInquiry},
		{Text: "which plan includes automation", Label: intent.GeneralInquiry},

		// greeting
		{Text: "hello nia", Label: intent.Greeting},
		{Text: "hi there", Label: intent.Greeting},
		{Text: "hey good morning", Label: intent.Greeting},
		{Text: "namaste nia", Label: intent.Greeting},
		{Text: "good evening", Label: intent.Greeting},

		// goodbye
		{Text: "bye for now", Label: intent.Goodbye},
		{Text: "goodbye nia", Label: intent.Goodbye},
		{Text: "see you later", Label: intent.Goodbye},
		{Text: "talk to you tomorrow", Label: intent.Goodbye},
		{Text: "dhanyawad bye", Label: intent.Goodbye},
	}
}
