// Package entity holds the typed entity bag produced by extraction and
// consumed by validation and action derivation.
package entity

import (
	"sort"
	"strings"
	"time"
)

// Kind identifies what a captured value represents. The set is closed;
// extraction rules and validators dispatch on it.
type Kind string

const (
	KindName        Kind = "name"
	KindCompany     Kind = "company"
	KindEmail       Kind = "email"
	KindPhone       Kind = "phone"
	KindDate        Kind = "date"
	KindTime        Kind = "time"
	KindDuration    Kind = "duration"
	KindMoney       Kind = "money"
	KindPriority    Kind = "priority"
	KindStatus      Kind = "status"
	KindParticipant Kind = "participant"
	KindDescription Kind = "description"
	KindSearchTerm  Kind = "searchTerm"
	KindLeadID      Kind = "leadId"
	KindDueDate     Kind = "dueDate"
	KindAssignee    Kind = "assignee"
	KindLocation    Kind = "location"
	KindSource      Kind = "source"
	KindTitle       Kind = "title"
	KindURL         Kind = "url"
)

// DateSpan is a natural-language date mention resolved against a reference
// time. End is zero when the mention names a single instant.
type DateSpan struct {
	Text   string    `json:"text"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end,omitempty"`
	Offset int       `json:"offset"`
}

// Bag is an ordered multi-map from Kind to captured values. The primary
// value of a kind is always the first one added; there is no separate
// primary slot to drift out of sync.
type Bag struct {
	values map[Kind][]string
	dates  []DateSpan
}

// NewBag returns an empty bag.
func NewBag() *Bag {
	return &Bag{values: make(map[Kind][]string)}
}

// Add appends value under kind. Values are stored trimmed; blank values
// and exact duplicates within the kind are ignored.
func (b *Bag) Add(kind Kind, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	for _, v := range b.values[kind] {
		if v == value {
			return
		}
	}
	b.values[kind] = append(b.values[kind], value)
}

// Set replaces all values of kind with the single given value. A blank
// value clears the kind.
func (b *Bag) Set(kind Kind, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		delete(b.values, kind)
		return
	}
	b.values[kind] = []string{value}
}

// AddDate appends a resolved date span. The first span added is the
// primary date.
func (b *Bag) AddDate(span DateSpan) {
	b.dates = append(b.dates, span)
}

// Primary returns the first value captured for kind, or "".
func (b *Bag) Primary(kind Kind) string {
	if vs := b.values[kind]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// All returns every value captured for kind in capture order.
func (b *Bag) All(kind Kind) []string {
	vs := b.values[kind]
	out := make([]string, len(vs))
	copy(out, vs)
	return out
}

// Has reports whether at least one value exists for kind.
func (b *Bag) Has(kind Kind) bool {
	if kind == KindDate {
		return len(b.dates) > 0 || len(b.values[KindDate]) > 0
	}
	return len(b.values[kind]) > 0
}

// Dates returns the captured date spans in capture order.
func (b *Bag) Dates() []DateSpan {
	out := make([]DateSpan, len(b.dates))
	copy(out, b.dates)
	return out
}

// PrimaryDate returns the first captured date span.
func (b *Bag) PrimaryDate() (DateSpan, bool) {
	if len(b.dates) == 0 {
		return DateSpan{}, false
	}
	return b.dates[0], true
}

// Kinds returns the distinct kinds present, sorted for determinism. Date
// spans count as KindDate.
func (b *Bag) Kinds() []Kind {
	seen := make(map[Kind]bool, len(b.values)+1)
	for k, vs := range b.values {
		if len(vs) > 0 {
			seen[k] = true
		}
	}
	if len(b.dates) > 0 {
		seen[KindDate] = true
	}
	kinds := make([]Kind, 0, len(seen))
	for k := range seen {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Len returns the number of distinct kinds present.
func (b *Bag) Len() int {
	return len(b.Kinds())
}

// IsEmpty reports whether nothing was captured.
func (b *Bag) IsEmpty() bool {
	return b.Len() == 0
}

// Fields returns the primary value per kind, with date spans contributing
// their mention text under KindDate. This is the view the validator walks.
func (b *Bag) Fields() map[Kind]string {
	out := make(map[Kind]string, len(b.values)+1)
	for k, vs := range b.values {
		if len(vs) > 0 {
			out[k] = vs[0]
		}
	}
	if _, ok := out[KindDate]; !ok && len(b.dates) > 0 {
		out[KindDate] = b.dates[0].Text
	}
	return out
}

// Map renders the bag as a plain JSON-friendly map: the primary value per
// kind under the singular key, the full list under "<kind>s" when more
// than one was captured, and date spans under "dates".
func (b *Bag) Map() map[string]interface{} {
	out := make(map[string]interface{})
	for _, k := range b.Kinds() {
		vs := b.values[k]
		if len(vs) == 0 {
			continue
		}
		out[string(k)] = vs[0]
		if len(vs) > 1 {
			all := make([]string, len(vs))
			copy(all, vs)
			out[string(k)+"s"] = all
		}
	}
	if len(b.dates) > 0 {
		out["date"] = b.dates[0].Text
		out["dates"] = b.Dates()
	}
	return out
}
