package extract

import (
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"

	"nia-nlu/internal/nlu/entity"
)

// DateScanner resolves natural-language date mentions against a reference
// clock. Adjacent date and time words ("tomorrow at 2pm") merge into a
// single span.
type DateScanner struct {
	w   *when.Parser
	now func() time.Time
}

// NewDateScanner builds a scanner with English and common rules. A nil
// clock means time.Now.
func NewDateScanner(now func() time.Time) *DateScanner {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	if now == nil {
		now = time.Now
	}
	return &DateScanner{w: w, now: now}
}

// Scan returns every date span found in text, in order of appearance.
func (s *DateScanner) Scan(text string) []entity.DateSpan {
	var spans []entity.DateSpan
	base := s.now()
	offset := 0
	rest := text

	// the parser reports one match at a time; walk the remainder
	for i := 0; i < 8; i++ {
		r, err := s.w.Parse(rest, base)
		if err != nil || r == nil {
			break
		}
		spans = append(spans, entity.DateSpan{
			Text:   r.Text,
			Start:  r.Time,
			Offset: offset + r.Index,
		})
		advance := r.Index + len(r.Text)
		if advance <= 0 || advance > len(rest) {
			break
		}
		offset += advance
		rest = rest[advance:]
		if rest == "" {
			break
		}
	}
	return spans
}
