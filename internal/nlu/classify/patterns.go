package classify

import (
	"regexp"
	"strings"
	"time"

	"nia-nlu/internal/nlu/entity"
	"nia-nlu/internal/nlu/extract"
	"nia-nlu/internal/nlu/intent"
)

// Fallback confidences. A rule hit is a firm signal; no hit degrades to a
// general inquiry.
const (
	FallbackMatchConfidence   = 0.8
	FallbackNoMatchConfidence = 0.5
)

// FallbackResult is the pattern classifier's answer. It is always
// populated; the fallback cannot fail.
type FallbackResult struct {
	Intent     intent.Intent `json:"intent"`
	Confidence float64       `json:"confidence"`
	Entities   *entity.Bag   `json:"entities"`
}

type fallbackRule struct {
	label   intent.Intent
	pattern *regexp.Regexp
	extract func(f *Fallback, text string, bag *entity.Bag)
}

// Fallback is the ordered regex rule table used when the statistical
// classifier is unsure or unavailable. First matching rule wins.
type Fallback struct {
	rules []fallbackRule
	dates *extract.DateScanner
}

// NewFallback builds the rule table. A nil clock means time.Now; tests
// pin it for stable date resolution.
func NewFallback(now func() time.Time) *Fallback {
	f := &Fallback{dates: extract.NewDateScanner(now)}
	f.rules = []fallbackRule{
		{intent.CreateLead, regexp.MustCompile(`(?i)create.*lead|add.*lead|new\s+lead|lead\s+for`), (*Fallback).leadEntities},
		{intent.UpdateLead, regexp.MustCompile(`(?i)update.*lead|change.*lead|modify.*lead|edit.*lead|mark\s+lead`), (*Fallback).updateLeadEntities},
		{intent.SearchLead, regexp.MustCompile(`(?i)search.*lead|find.*lead|show.*lead|list.*lead|get.*lead|look\s*up.*lead`), (*Fallback).searchEntities},
		{intent.ScheduleMeeting, regexp.MustCompile(`(?i)schedule|meeting|appointment|book.*call|set\s*up.*(call|demo)`), (*Fallback).meetingEntities},
		{intent.CreateTask, regexp.MustCompile(`(?i)remind\s+me|create.*task|add.*(task|todo)|set.*reminder|follow[\s-]*up`), (*Fallback).taskEntities},
		{intent.GetTasks, regexp.MustCompile(`(?i)my\s+tasks|show\s+tasks|list\s+tasks|pending\s+tasks|my\s+todos|tasks\s+dikhao`), nil},
		{intent.EmailSummary, regexp.MustCompile(`(?i)email\s+summary|summari[sz]e.*(email|inbox)|inbox\s+summary|email\s+digest|important\s+emails`), nil},
		{intent.Greeting, regexp.MustCompile(`(?i)^\s*(hi|hello|hey|namaste|good\s+(morning|afternoon|evening))\b`), nil},
		{intent.Goodbye, regexp.MustCompile(`(?i)\b(bye|goodbye|alvida|see\s+you|talk\s+(to\s+you\s+)?later)\b`), nil},
	}
	return f
}

// Detect walks the rule table in order and returns the first hit at the
// fixed match confidence, or general_inquiry when nothing fires.
func (f *Fallback) Detect(text string) FallbackResult {
	bag := entity.NewBag()
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return FallbackResult{Intent: intent.GeneralInquiry, Confidence: FallbackNoMatchConfidence, Entities: bag}
	}

	for _, rule := range f.rules {
		if !rule.pattern.MatchString(trimmed) {
			continue
		}
		if rule.extract != nil {
			rule.extract(f, trimmed, bag)
		}
		return FallbackResult{Intent: rule.label, Confidence: FallbackMatchConfidence, Entities: bag}
	}
	return FallbackResult{Intent: intent.GeneralInquiry, Confidence: FallbackNoMatchConfidence, Entities: bag}
}

var (
	fbNameRe        = regexp.MustCompile(`(?:(?i:lead\s+for|for))\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`)
	fbCompanyRe     = regexp.MustCompile(`(?:(?i:from|at))\s+([A-Z][A-Za-z&.]*(?:\s+(?:[A-Z][A-Za-z&.]*|&))*)`)
	fbEmailRe       = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	fbPhoneRe       = regexp.MustCompile(`\+?\d[\d\s().-]{8,}\d`)
	fbParticipantRe = regexp.MustCompile(`(?:(?i:with|meet))\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`)
	fbTimeRe        = regexp.MustCompile(`(?i)\b(\d{1,2}(?::\d{2})?\s*(?:am|pm))\b`)
	fbTime24Re      = regexp.MustCompile(`\b([01]?\d|2[0-3]):([0-5]\d)\b`)
	fbDurationRe    = regexp.MustCompile(`(?i)\b(\d+\s*(?:minutes?|mins?|hours?|hrs?))\b`)
	fbDescRe        = regexp.MustCompile(`(?i)(?:remind\s+me\s+to|task\s+to|need\s+to|todo\s+to|reminder\s+to)\s+(.+?)(?:\s+by\s.*|\s+before\s.*|\s+tomorrow\b.*|\s+today\b.*|\s+next\s.*)?$`)
	fbLeadIDRe      = regexp.MustCompile(`(?i)lead\s+(?:id\s+)?#?(\d+)`)
	fbStatusRe      = regexp.MustCompile(`(?i)\b(new|contacted|qualified|proposal|negotiation|closed[ -]won|closed[ -]lost)\b`)
	fbSearchRe      = regexp.MustCompile(`(?i)(?:search|find|show|get|list)\s+(?:me\s+)?(?:all\s+)?(?:for\s+)?(?:the\s+)?(?:leads?\s*)?(?:for|from|named)?\s*(.*)$`)
	fbPriorityRe    = regexp.MustCompile(`(?i)\b(high|medium|low)\s+priority\b`)
	fbUrgentRe      = regexp.MustCompile(`(?i)\b(urgent|urgently|asap|immediately|critical)\b`)
	fbLowRe         = regexp.MustCompile(`(?i)\b(whenever|someday|no\s+rush|low\s+priority)\b`)
)

func (f *Fallback) leadEntities(text string, bag *entity.Bag) {
	if m := fbNameRe.FindStringSubmatch(text); m != nil {
		bag.Add(entity.KindName, strings.TrimSpace(m[1]))
	}
	if m := fbCompanyRe.FindStringSubmatch(text); m != nil {
		bag.Add(entity.KindCompany, strings.TrimSpace(m[1]))
	}
	if m := fbEmailRe.FindString(text); m != "" {
		bag.Add(entity.KindEmail, strings.ToLower(m))
	}
	if m := fbPhoneRe.FindString(text); m != "" {
		bag.Add(entity.KindPhone, strings.TrimSpace(m))
	}
	f.addPriority(text, bag)
}

func (f *Fallback) updateLeadEntities(text string, bag *entity.Bag) {
	if m := fbLeadIDRe.FindStringSubmatch(text); m != nil {
		bag.Add(entity.KindLeadID, m[1])
	}
	if m := fbStatusRe.FindStringSubmatch(text); m != nil {
		bag.Add(entity.KindStatus, strings.ReplaceAll(strings.ToLower(m[1]), " ", "-"))
	}
	if m := fbNameRe.FindStringSubmatch(text); m != nil {
		bag.Add(entity.KindName, strings.TrimSpace(m[1]))
	}
}

func (f *Fallback) searchEntities(text string, bag *entity.Bag) {
	if m := fbCompanyRe.FindStringSubmatch(text); m != nil {
		bag.Add(entity.KindCompany, strings.TrimSpace(m[1]))
	}
	if m := fbSearchRe.FindStringSubmatch(text); m != nil {
		term := strings.Trim(strings.TrimSpace(m[1]), ".!?")
		if term != "" {
			bag.Add(entity.KindSearchTerm, term)
		}
	}
	if !bag.Has(entity.KindSearchTerm) && bag.Has(entity.KindCompany) {
		bag.Add(entity.KindSearchTerm, bag.Primary(entity.KindCompany))
	}
}

func (f *Fallback) meetingEntities(text string, bag *entity.Bag) {
	if m := fbParticipantRe.FindStringSubmatch(text); m != nil {
		bag.Add(entity.KindParticipant, strings.TrimSpace(m[1]))
	}
	for _, span := range f.dates.Scan(text) {
		bag.AddDate(span)
	}
	if m := fbTimeRe.FindStringSubmatch(text); m != nil {
		bag.Add(entity.KindTime, strings.ToLower(strings.TrimSpace(m[1])))
	} else if m := fbTime24Re.FindString(text); m != "" {
		bag.Add(entity.KindTime, m)
	}
	if m := fbDurationRe.FindStringSubmatch(text); m != nil {
		bag.Add(entity.KindDuration, strings.ToLower(m[1]))
	}
}

func (f *Fallback) taskEntities(text string, bag *entity.Bag) {
	if m := fbDescRe.FindStringSubmatch(text); m != nil {
		desc := strings.Trim(strings.TrimSpace(m[1]), ".!?")
		bag.Add(entity.KindDescription, desc)
	}
	spans := f.dates.Scan(text)
	for _, span := range spans {
		bag.AddDate(span)
	}
	if len(spans) > 0 {
		bag.Add(entity.KindDueDate, spans[0].Text)
	}
	f.addPriority(text, bag)
}

func (f *Fallback) addPriority(text string, bag *entity.Bag) {
	switch {
	case fbPriorityRe.MatchString(text):
		m := fbPriorityRe.FindStringSubmatch(text)
		bag.Add(entity.KindPriority, strings.ToLower(m[1]))
	case fbUrgentRe.MatchString(text):
		bag.Add(entity.KindPriority, "high")
	case fbLowRe.MatchString(text):
		bag.Add(entity.KindPriority, "low")
	}
}
