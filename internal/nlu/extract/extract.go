// Package extract pulls typed entities out of free-form utterances.
// Rules are independent and non-exclusive: every rule sees the whole
// utterance.
package extract

import (
	"regexp"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/nyaruka/phonenumbers"

	"nia-nlu/internal/common/logger"
	"nia-nlu/internal/nlu/entity"
)

// DefaultRegion is the phone parsing region for bare national numbers.
const DefaultRegion = "IN"

// Issue records a value that was kept in the bag even though it already
// looks wrong at extraction time. The validator settles it later.
type Issue struct {
	Kind    entity.Kind `json:"kind"`
	Value   string      `json:"value"`
	Message string      `json:"message"`
}

// Result is the outcome of one extraction pass.
type Result struct {
	Entities   *entity.Bag `json:"entities"`
	Confidence float64     `json:"confidence"`
	Issues     []Issue     `json:"issues,omitempty"`
}

var (
	nameRe    = regexp.MustCompile(`(?:(?i:lead\s+for|meeting\s+with|call))\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`)
	companyRe = regexp.MustCompile(`(?:(?i:from|at|company))\s+([A-Z][A-Za-z&.]*(?:\s+(?:[A-Z][A-Za-z&.]*|&))*)`)
	emailRe   = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

	declaredEmailRe = regexp.MustCompile(`(?i)(?:^|\s)email\s+(?:id\s+)?(?:is\s+)?([^\s,]+)`)
	declaredPhoneRe = regexp.MustCompile(`(?i)(?:^|\s)phone\s+(?:number\s+)?(?:is\s+)?(\+?\d[\d\s().-]{0,18}\d|\d+)`)

	phoneScanRes = []*regexp.Regexp{
		regexp.MustCompile(`\+91[\s-]?[6-9]\d{9}`),
		regexp.MustCompile(`\b[6-9]\d{9}\b`),
		regexp.MustCompile(`\b\d{3}[-.\s]\d{3}[-.\s]\d{4}\b`),
	}
	looseShapeRe = regexp.MustCompile(`^\+?[\d\s().-]{10,}$`)

	moneyRe          = regexp.MustCompile(`(?:\$|₹|USD|INR)\s*[\d,]+(?:\.\d{2})?`)
	priorityPhraseRe = regexp.MustCompile(`(?i)\b(high|medium|low)\s+priority\b`)
	urgencyRe        = regexp.MustCompile(`(?i)\b(urgent|urgently|asap|immediately|critical)\b`)
	statusRe         = regexp.MustCompile(`(?i)\b(new|contacted|qualified|proposal|negotiation|closed[ -]won|closed[ -]lost)\b`)
)

// Extractor runs the generic extraction rules.
type Extractor struct {
	log   logger.Logger
	dates *DateScanner
}

// Option customizes an Extractor.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock fixes the reference time for date resolution. Used in tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// New builds an Extractor. A nil logger gets the no-op logger.
func New(log logger.Logger, opts ...Option) *Extractor {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &Extractor{
		log:   log,
		dates: NewDateScanner(o.now),
	}
}

// Extract runs every rule over text and returns the bag with its
// confidence. Confidence grows with the number of distinct kinds found,
// capped at 0.9.
func (e *Extractor) Extract(text string) Result {
	bag := entity.NewBag()
	var issues []Issue

	for _, m := range nameRe.FindAllStringSubmatch(text, -1) {
		bag.Add(entity.KindName, strings.TrimSpace(m[1]))
	}
	for _, m := range companyRe.FindAllStringSubmatch(text, -1) {
		bag.Add(entity.KindCompany, strings.TrimSpace(m[1]))
	}

	for _, m := range emailRe.FindAllString(text, -1) {
		bag.Add(entity.KindEmail, strings.ToLower(m))
	}
	if m := declaredEmailRe.FindStringSubmatch(text); m != nil {
		cand := strings.Trim(m[1], ".,;:")
		switch {
		case govalidator.IsEmail(cand):
			bag.Add(entity.KindEmail, strings.ToLower(cand))
		case cand != "":
			// keep the declared value so validation can report on it
			bag.Add(entity.KindEmail, cand)
			issues = append(issues, Issue{
				Kind:    entity.KindEmail,
				Value:   cand,
				Message: "declared email is not a valid address",
			})
		}
	}

	e.extractPhones(text, bag, &issues)

	for _, span := range e.dates.Scan(text) {
		bag.AddDate(span)
	}

	for _, m := range moneyRe.FindAllString(text, -1) {
		bag.Add(entity.KindMoney, strings.TrimSpace(m))
	}

	if m := priorityPhraseRe.FindStringSubmatch(text); m != nil {
		bag.Add(entity.KindPriority, strings.ToLower(m[1]))
	} else if urgencyRe.MatchString(text) {
		bag.Add(entity.KindPriority, "high")
	}

	if m := statusRe.FindStringSubmatch(text); m != nil {
		bag.Add(entity.KindStatus, normalizeStatus(m[1]))
	}

	conf := 0.3 + 0.15*float64(bag.Len())
	if conf > 0.9 {
		conf = 0.9
	}

	e.log.Debug("entities extracted", map[string]interface{}{
		"kinds":      len(bag.Kinds()),
		"confidence": conf,
		"issues":     len(issues),
	})
	return Result{Entities: bag, Confidence: conf, Issues: issues}
}

func (e *Extractor) extractPhones(text string, bag *entity.Bag, issues *[]Issue) {
	seen := make(map[string]bool)
	add := func(raw string, declared bool) {
		cand := strings.TrimSpace(raw)
		if cand == "" {
			return
		}
		num, err := phonenumbers.Parse(cand, DefaultRegion)
		if err == nil && phonenumbers.IsValidNumber(num) {
			formatted := phonenumbers.Format(num, phonenumbers.INTERNATIONAL)
			if !seen[formatted] {
				seen[formatted] = true
				bag.Add(entity.KindPhone, formatted)
			}
			return
		}
		// unparseable: keep loose-shaped candidates, and anything the
		// user explicitly declared as a phone number
		if looseShapeRe.MatchString(cand) || declared {
			if !seen[cand] {
				seen[cand] = true
				bag.Add(entity.KindPhone, cand)
			}
			if declared {
				*issues = append(*issues, Issue{
					Kind:    entity.KindPhone,
					Value:   cand,
					Message: "declared phone number did not parse",
				})
			}
		}
	}

	for _, re := range phoneScanRes {
		for _, m := range re.FindAllString(text, -1) {
			add(m, false)
		}
	}
	if m := declaredPhoneRe.FindStringSubmatch(text); m != nil {
		add(m[1], true)
	}
}

func normalizeStatus(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "-")
	return s
}
