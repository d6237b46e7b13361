package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// ==========================
// Bag Core Tests
// ==========================

func TestBag_AddAndPrimary(t *testing.T) {
	bag := NewBag()
	bag.Add(KindName, "John Smith")
	bag.Add(KindName, "Sarah Johnson")

	assert.Equal(t, "John Smith", bag.Primary(KindName), "first added value stays primary")
	assert.Equal(t, []string{"John Smith", "Sarah Johnson"}, bag.All(KindName))
}

func TestBag_AddDeduplicates(t *testing.T) {
	bag := NewBag()
	bag.Add(KindEmail, "john@techcorp.com")
	bag.Add(KindEmail, "john@techcorp.com")

	assert.Len(t, bag.All(KindEmail), 1)
	assert.Equal(t, 1, bag.Len())
}

func TestBag_AddSkipsBlankValues(t *testing.T) {
	bag := NewBag()
	bag.Add(KindCompany, "")
	bag.Add(KindCompany, "   ")
	bag.Add(KindCompany, " \t\n ")

	assert.False(t, bag.Has(KindCompany))
	assert.True(t, bag.IsEmpty())
}

func TestBag_AddStoresTrimmedValues(t *testing.T) {
	bag := NewBag()
	bag.Add(KindCompany, "  TechCorp  ")
	bag.Add(KindCompany, "TechCorp")

	assert.Equal(t, []string{"TechCorp"}, bag.All(KindCompany), "trimmed duplicates collapse")
}

func TestBag_SetClearsOnBlank(t *testing.T) {
	bag := NewBag()
	bag.Add(KindStatus, "qualified")
	bag.Set(KindStatus, "   ")

	assert.False(t, bag.Has(KindStatus))
}

func TestBag_SetReplacesExistingValues(t *testing.T) {
	bag := NewBag()
	bag.Add(KindPriority, "low")
	bag.Set(KindPriority, "high")

	assert.Equal(t, []string{"high"}, bag.All(KindPriority))
}

func TestBag_MissingKind(t *testing.T) {
	bag := NewBag()

	assert.Empty(t, bag.Primary(KindPhone))
	assert.Empty(t, bag.All(KindPhone))
	assert.False(t, bag.Has(KindPhone))
}

// ==========================
// Date Handling Tests
// ==========================

func TestBag_Dates(t *testing.T) {
	bag := NewBag()
	start := time.Date(2025, 6, 16, 14, 0, 0, 0, time.UTC)
	bag.AddDate(DateSpan{Text: "tomorrow at 2pm", Start: start, Offset: 25})

	assert.True(t, bag.Has(KindDate))
	span, ok := bag.PrimaryDate()
	assert.True(t, ok)
	assert.Equal(t, "tomorrow at 2pm", span.Text)
	assert.Equal(t, start, span.Start)
	assert.Len(t, bag.Dates(), 1)
}

func TestBag_KindsIncludeDates(t *testing.T) {
	bag := NewBag()
	bag.Add(KindName, "John")
	bag.Add(KindCompany, "TechCorp")
	bag.AddDate(DateSpan{Text: "tomorrow", Start: time.Now()})

	kinds := bag.Kinds()
	assert.Equal(t, []Kind{KindCompany, KindDate, KindName}, kinds, "kinds are sorted")
	assert.Equal(t, 3, bag.Len())
}

// ==========================
// Export Tests
// ==========================

func TestBag_Fields(t *testing.T) {
	bag := NewBag()
	bag.Add(KindName, "John Smith")
	bag.Add(KindEmail, "john@techcorp.com")
	bag.AddDate(DateSpan{Text: "tomorrow", Start: time.Now()})

	fields := bag.Fields()
	assert.Equal(t, "John Smith", fields[KindName])
	assert.Equal(t, "john@techcorp.com", fields[KindEmail])
	assert.Equal(t, "tomorrow", fields[KindDate])
}

func TestBag_MapExposesSingularAndPlural(t *testing.T) {
	bag := NewBag()
	bag.Add(KindName, "John Smith")
	bag.Add(KindName, "Sarah Johnson")

	m := bag.Map()
	assert.Equal(t, "John Smith", m["name"])
	assert.Equal(t, []string{"John Smith", "Sarah Johnson"}, m["names"])
}
