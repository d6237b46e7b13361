// Package validate checks and enriches extracted entities against the
// adopted intent, and scores how complete and trustworthy the result is.
package validate

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/asaskevich/govalidator"
	"github.com/nyaruka/phonenumbers"
	"golang.org/x/text/cases"
	xlang "golang.org/x/text/language"

	"nia-nlu/internal/common/logger"
	"nia-nlu/internal/nlu/entity"
	"nia-nlu/internal/nlu/extract"
	"nia-nlu/internal/nlu/intent"
)

// FieldResult is the verdict for a single entity field. An invalid field
// always scores 0 so it can never carry a result past the confidence
// floor.
type FieldResult struct {
	IsValid     bool     `json:"isValid"`
	Errors      []string `json:"errors,omitempty"`
	Warnings    []string `json:"warnings,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
	Normalized  string   `json:"normalized,omitempty"`
	Confidence  float64  `json:"confidence"`
}

// Report is the full validation outcome for one utterance.
type Report struct {
	IsValid           bool                        `json:"isValid"`
	Fields            map[entity.Kind]FieldResult `json:"fields"`
	MissingRequired   []entity.Kind               `json:"missingRequired,omitempty"`
	Completeness      float64                     `json:"completeness"`
	OverallConfidence float64                     `json:"overallConfidence"`
	Enriched          map[string]interface{}      `json:"enriched,omitempty"`
}

// Field requirements per intent. Intents absent from both maps have no
// declared fields and score full completeness.
var requiredFields = map[intent.Intent][]entity.Kind{
	intent.CreateLead:      {entity.KindName, entity.KindCompany},
	intent.UpdateLead:      {entity.KindLeadID},
	intent.ScheduleMeeting: {entity.KindParticipant, entity.KindDate},
	intent.CreateTask:      {entity.KindDescription},
	intent.SearchLead:      {entity.KindSearchTerm},
}

var optionalFields = map[intent.Intent][]entity.Kind{
	intent.CreateLead:      {entity.KindEmail, entity.KindPhone, entity.KindTitle, entity.KindPriority, entity.KindSource},
	intent.UpdateLead:      {entity.KindName, entity.KindStatus},
	intent.ScheduleMeeting: {entity.KindTime, entity.KindDuration, entity.KindLocation},
	intent.CreateTask:      {entity.KindDueDate, entity.KindPriority, entity.KindAssignee},
	intent.SearchLead:      {entity.KindCompany, entity.KindStatus},
}

var personalEmailDomains = map[string]bool{
	"gmail.com":      true,
	"yahoo.com":      true,
	"yahoo.in":       true,
	"hotmail.com":    true,
	"outlook.com":    true,
	"rediffmail.com": true,
}

var leadStatuses = map[string]bool{
	"new":         true,
	"contacted":   true,
	"qualified":   true,
	"proposal":    true,
	"negotiation": true,
	"closed-won":  true,
	"closed-lost": true,
}

var (
	cleanNameRe = regexp.MustCompile(`^[a-zA-Z\s.'-]+$`)
	numericRe   = regexp.MustCompile(`^\d+$`)
	time24Re    = regexp.MustCompile(`^([01]?\d|2[0-3]):([0-5]\d)$`)
	time12Re    = regexp.MustCompile(`(?i)^(\d{1,2})(?::([0-5]\d))?\s*(am|pm)$`)
)

// Validator validates and enriches entity bags.
type Validator struct {
	log   logger.Logger
	dates *extract.DateScanner
	now   func() time.Time
}

// Option customizes a Validator.
type Option func(*Validator)

// WithClock pins the reference time used for past/future checks.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) { v.now = now }
}

// New builds a Validator. A nil logger gets the no-op logger.
func New(log logger.Logger, opts ...Option) *Validator {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	v := &Validator{log: log, now: time.Now}
	for _, opt := range opts {
		opt(v)
	}
	v.dates = extract.NewDateScanner(v.now)
	return v
}

// Validate checks every declared field of bag for the adopted intent,
// computes completeness and the overall confidence, and derives
// contextual enrichments.
func (v *Validator) Validate(it intent.Intent, bag *entity.Bag) *Report {
	report := &Report{
		Fields:   make(map[entity.Kind]FieldResult),
		Enriched: make(map[string]interface{}),
	}

	fields := bag.Fields()
	for kind, value := range fields {
		report.Fields[kind] = v.validateField(kind, value, bag)
	}

	report.IsValid = true
	var confSum float64
	for _, fr := range report.Fields {
		confSum += fr.Confidence
		if !fr.IsValid {
			report.IsValid = false
		}
	}
	meanConf := 1.0
	if len(report.Fields) > 0 {
		meanConf = confSum / float64(len(report.Fields))
	}

	report.Completeness = v.completeness(it, bag, report)
	if len(report.MissingRequired) > 0 {
		report.IsValid = false
	}

	report.OverallConfidence = 0.7*meanConf + 0.3*report.Completeness

	v.enrich(it, bag, report)

	v.log.Debug("entities validated", map[string]interface{}{
		"intent":            string(it),
		"fields":            len(report.Fields),
		"completeness":      report.Completeness,
		"overallConfidence": report.OverallConfidence,
		"isValid":           report.IsValid,
	})
	return report
}

func (v *Validator) validateField(kind entity.Kind, value string, bag *entity.Bag) FieldResult {
	switch kind {
	case entity.KindEmail:
		return v.validateEmail(value)
	case entity.KindPhone:
		return v.validatePhone(value)
	case entity.KindName, entity.KindParticipant, entity.KindAssignee:
		return v.validateName(value)
	case entity.KindCompany:
		return v.validateCompany(value)
	case entity.KindDate:
		return v.validateDate(value, bag)
	case entity.KindDueDate:
		return v.validateDate(value, nil)
	case entity.KindTime:
		return v.validateTime(value)
	case entity.KindPriority:
		return v.validatePriority(value)
	case entity.KindStatus:
		return v.validateStatus(value)
	case entity.KindURL:
		return v.validateURL(value)
	case entity.KindLeadID:
		return v.validateLeadID(value)
	default:
		return v.validateGeneric(value)
	}
}

func (v *Validator) validateEmail(value string) FieldResult {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if !govalidator.IsEmail(normalized) {
		return FieldResult{
			Errors:      []string{fmt.Sprintf("%q is not a valid email address", value)},
			Suggestions: []string{"use the form name@company.com"},
		}
	}

	fr := FieldResult{IsValid: true, Normalized: normalized, Confidence: 1.0}
	domain := normalized[strings.LastIndex(normalized, "@")+1:]
	local := normalized[:strings.LastIndex(normalized, "@")]
	switch {
	case strings.HasPrefix(local, "test") || domain == "example.com" || strings.HasPrefix(domain, "test."):
		fr.Warnings = append(fr.Warnings, "email looks like a test address")
		fr.Confidence = 0.6
	case personalEmailDomains[domain]:
		fr.Warnings = append(fr.Warnings, "personal email domain, business address preferred")
		fr.Confidence = 0.8
	}
	return fr
}

func (v *Validator) validatePhone(value string) FieldResult {
	num, err := phonenumbers.Parse(strings.TrimSpace(value), extract.DefaultRegion)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return FieldResult{
			Errors:      []string{fmt.Sprintf("%q is not a valid phone number", value)},
			Suggestions: []string{"include the country code, e.g. +91 98765 43210"},
		}
	}

	fr := FieldResult{
		IsValid:    true,
		Normalized: phonenumbers.Format(num, phonenumbers.INTERNATIONAL),
		Confidence: 1.0,
	}
	switch phonenumbers.GetNumberType(num) {
	case phonenumbers.MOBILE, phonenumbers.FIXED_LINE_OR_MOBILE:
	default:
		fr.Warnings = append(fr.Warnings, "number does not look like a mobile number")
		fr.Confidence = 0.9
	}
	return fr
}

func (v *Validator) validateName(value string) FieldResult {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) < 2 || len(trimmed) > 100 {
		return FieldResult{Errors: []string{"name must be between 2 and 100 characters"}}
	}

	fr := FieldResult{IsValid: true, Normalized: titleCase(trimmed), Confidence: 1.0}
	if !cleanNameRe.MatchString(trimmed) {
		fr.Warnings = append(fr.Warnings, "name contains unusual characters")
		fr.Confidence = 0.8
	}
	if looksLikePlaceholder(trimmed) {
		fr.Warnings = append(fr.Warnings, "name looks like a placeholder")
		fr.Confidence = 0.6
	}
	if trimmed == strings.ToLower(trimmed) {
		fr.Suggestions = append(fr.Suggestions, fmt.Sprintf("did you mean %q?", fr.Normalized))
	}
	return fr
}

func (v *Validator) validateCompany(value string) FieldResult {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) < 2 || len(trimmed) > 200 {
		return FieldResult{Errors: []string{"company name must be between 2 and 200 characters"}}
	}

	fr := FieldResult{IsValid: true, Normalized: capitalizeWords(trimmed), Confidence: 1.0}
	if looksLikePlaceholder(trimmed) {
		fr.Warnings = append(fr.Warnings, "company looks like a placeholder")
		fr.Confidence = 0.6
	}
	if trimmed == strings.ToLower(trimmed) {
		fr.Suggestions = append(fr.Suggestions, fmt.Sprintf("did you mean %q?", fr.Normalized))
	}
	return fr
}

func (v *Validator) validateDate(value string, bag *entity.Bag) FieldResult {
	var start time.Time
	if bag != nil {
		if span, ok := bag.PrimaryDate(); ok {
			start = span.Start
		}
	}
	if start.IsZero() {
		spans := v.dates.Scan(value)
		if len(spans) == 0 {
			return FieldResult{
				Errors:      []string{fmt.Sprintf("%q could not be understood as a date", value)},
				Suggestions: []string{"try phrasing like \"tomorrow\" or \"next friday\""},
			}
		}
		start = spans[0].Start
	}

	fr := FieldResult{IsValid: true, Normalized: start.Format(time.RFC3339), Confidence: 1.0}
	now := v.now()
	if start.Before(now.Add(-24 * time.Hour)) {
		fr.Warnings = append(fr.Warnings, "date is in the past")
		fr.Confidence = 0.7
	} else if start.After(now.AddDate(1, 0, 0)) {
		fr.Warnings = append(fr.Warnings, "date is more than a year away")
		fr.Confidence = 0.8
	}
	return fr
}

func (v *Validator) validateTime(value string) FieldResult {
	normalized, ok := normalizeTime(value)
	if !ok {
		return FieldResult{
			Errors:      []string{fmt.Sprintf("%q is not a recognizable time", value)},
			Suggestions: []string{"use a form like \"2pm\" or \"14:00\""},
		}
	}

	fr := FieldResult{IsValid: true, Normalized: normalized, Confidence: 1.0}
	hour, _ := strconv.Atoi(normalized[:2])
	if hour < 8 || hour >= 18 {
		fr.Warnings = append(fr.Warnings, "time is outside business hours")
		fr.Confidence = 0.9
	}
	return fr
}

func (v *Validator) validatePriority(value string) FieldResult {
	p := strings.ToLower(strings.TrimSpace(value))
	switch p {
	case "high", "medium", "low":
		return FieldResult{IsValid: true, Normalized: p, Confidence: 1.0}
	}
	return FieldResult{
		Errors:      []string{fmt.Sprintf("%q is not a valid priority", value)},
		Suggestions: []string{"use high, medium or low"},
	}
}

func (v *Validator) validateStatus(value string) FieldResult {
	s := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(value)), " ", "-")
	fr := FieldResult{IsValid: true, Normalized: s, Confidence: 1.0}
	if !leadStatuses[s] {
		fr.Warnings = append(fr.Warnings, "status is outside the recommended pipeline stages")
		fr.Confidence = 0.8
	}
	return fr
}

func (v *Validator) validateURL(value string) FieldResult {
	trimmed := strings.TrimSpace(value)
	if !govalidator.IsURL(trimmed) {
		return FieldResult{Errors: []string{fmt.Sprintf("%q is not a valid URL", value)}}
	}
	fr := FieldResult{IsValid: true, Normalized: trimmed, Confidence: 1.0}
	if !strings.HasPrefix(strings.ToLower(trimmed), "https://") {
		fr.Warnings = append(fr.Warnings, "URL is not HTTPS")
		fr.Confidence = 0.9
	}
	return fr
}

func (v *Validator) validateLeadID(value string) FieldResult {
	trimmed := strings.TrimSpace(value)
	if !numericRe.MatchString(trimmed) {
		return FieldResult{Errors: []string{fmt.Sprintf("%q is not a valid lead id", value)}}
	}
	return FieldResult{IsValid: true, Normalized: trimmed, Confidence: 1.0}
}

func (v *Validator) validateGeneric(value string) FieldResult {
	if strings.TrimSpace(value) == "" {
		return FieldResult{Errors: []string{"value is empty"}}
	}
	return FieldResult{IsValid: true, Normalized: strings.TrimSpace(value), Confidence: 0.8}
}

// completeness scores declared coverage of the intent's field lists and
// records which required fields are absent. Intents without field lists
// are complete by definition.
func (v *Validator) completeness(it intent.Intent, bag *entity.Bag, report *Report) float64 {
	required := requiredFields[it]
	optional := optionalFields[it]
	total := len(required) + len(optional)
	if total == 0 {
		return 1.0
	}

	present := 0
	for _, kind := range required {
		if bag.Has(kind) {
			present++
		} else {
			report.MissingRequired = append(report.MissingRequired, kind)
		}
	}
	for _, kind := range optional {
		if bag.Has(kind) {
			present++
		}
	}
	return float64(present) / float64(total)
}

func (v *Validator) enrich(it intent.Intent, bag *entity.Bag, report *Report) {
	switch it {
	case intent.CreateLead:
		name := normalizedOr(report, entity.KindName, bag.Primary(entity.KindName))
		company := normalizedOr(report, entity.KindCompany, bag.Primary(entity.KindCompany))
		if name != "" && company != "" {
			report.Enriched["leadTitle"] = name + " - " + company
		}
		if fr, ok := report.Fields[entity.KindEmail]; ok && fr.IsValid {
			domain := fr.Normalized[strings.LastIndex(fr.Normalized, "@")+1:]
			report.Enriched["emailDomain"] = domain
			report.Enriched["isBusinessEmail"] = !personalEmailDomains[domain]
		}

	case intent.ScheduleMeeting:
		span, ok := bag.PrimaryDate()
		if !ok {
			return
		}
		meetingAt := span.Start
		if fr, tok := report.Fields[entity.KindTime]; tok && fr.IsValid {
			hour, _ := strconv.Atoi(fr.Normalized[:2])
			minute, _ := strconv.Atoi(fr.Normalized[3:])
			meetingAt = time.Date(span.Start.Year(), span.Start.Month(), span.Start.Day(), hour, minute, 0, 0, span.Start.Location())
		}
		report.Enriched["meetingDateTime"] = meetingAt.Format(time.RFC3339)

	case intent.CreateTask:
		if !bag.Has(entity.KindPriority) {
			report.Enriched["priority"] = "medium"
		}
		if fr, ok := report.Fields[entity.KindDueDate]; ok && fr.IsValid {
			if due, err := time.Parse(time.RFC3339, fr.Normalized); err == nil {
				days := math.Ceil(due.Sub(v.now()).Hours() / 24)
				report.Enriched["daysUntilDue"] = int(days)
			}
		}
	}
}

func normalizedOr(report *Report, kind entity.Kind, raw string) string {
	if fr, ok := report.Fields[kind]; ok && fr.Normalized != "" {
		return fr.Normalized
	}
	return raw
}

// titleCase builds a fresh caser per call; caser instances are stateful
// and not safe to share.
func titleCase(s string) string {
	return cases.Title(xlang.English).String(strings.ToLower(s))
}

// capitalizeWords upper-cases the first letter of each word and leaves the
// rest alone, so brand casings like "TechCorp" survive.
func capitalizeWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

func looksLikePlaceholder(s string) bool {
	lower := strings.ToLower(s)
	return strings.Contains(lower, "test") || strings.Contains(lower, "example")
}

// normalizeTime converts 24h, 12h and bare meridiem forms to HH:MM.
func normalizeTime(value string) (string, bool) {
	trimmed := strings.TrimSpace(value)
	if m := time24Re.FindStringSubmatch(trimmed); m != nil {
		hour, _ := strconv.Atoi(m[1])
		return fmt.Sprintf("%02d:%s", hour, m[2]), true
	}
	if m := time12Re.FindStringSubmatch(trimmed); m != nil {
		hour, _ := strconv.Atoi(m[1])
		if hour < 1 || hour > 12 {
			return "", false
		}
		minute := "00"
		if m[2] != "" {
			minute = m[2]
		}
		if strings.EqualFold(m[3], "pm") && hour != 12 {
			hour += 12
		}
		if strings.EqualFold(m[3], "am") && hour == 12 {
			hour = 0
		}
		return fmt.Sprintf("%02d:%s", hour, minute), true
	}
	return "", false
}
