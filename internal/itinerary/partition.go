package itinerary

import (
	"time"

	"cloud.google.com/go/civil"

	"github.com/01moynul/travelschedule-golang/internal/models"
)

// EntryKind tells a full plan entry apart from the stay markers.
type EntryKind string

const (
	EntryPlan     EntryKind = "plan"
	EntryCheckin  EntryKind = "checkin"
	EntryCheckout EntryKind = "checkout"
)

// Entry is one plan, or one stay marker, placed on a calendar day.
// Markers are views of their plan and share its pointer.
type Entry struct {
	Kind  EntryKind    `json:"kind"`
	At    time.Time    `json:"at"`
	Level int          `json:"level"`
	Plan  *models.Plan `json:"plan"`
}

// IsMarker reports whether e is a checkin or checkout marker.
func (e Entry) IsMarker() bool {
	return e.Kind == EntryCheckin || e.Kind == EntryCheckout
}

// DatedEntry is an Entry together with the day it belongs to.
type DatedEntry struct {
	Date  civil.Date
	Entry Entry
}

// Partition projects p onto the local calendar days it touches.
// Stay plans produce a checkin marker on the start day and a checkout marker on the end day;
// every other plan appears on each day from start to end inclusive.
// Plans missing either instant produce nothing.
func Partition(p *models.Plan, loc *time.Location) []DatedEntry {
	if p == nil || p.StartAt == nil || p.EndAt == nil {
		return nil
	}
	start, end := p.StartAt.In(loc), p.EndAt.In(loc)

	if rule, ok := ruleFor(p.Category); ok && rule.markers {
		return []DatedEntry{
			{Date: civil.DateOf(start), Entry: Entry{Kind: EntryCheckin, At: start, Plan: p}},
			{Date: civil.DateOf(end), Entry: Entry{Kind: EntryCheckout, At: end, Plan: p}},
		}
	}

	var out []DatedEntry
	for _, d := range DaysBetween(civil.DateOf(start), civil.DateOf(end)) {
		out = append(out, DatedEntry{Date: d, Entry: Entry{Kind: EntryPlan, At: start, Plan: p}})
	}
	return out
}

// DaysBetween lists every date from start to end inclusive. It is empty when end is before start.
func DaysBetween(start, end civil.Date) []civil.Date {
	var days []civil.Date
	for d := start; !d.After(end); d = d.AddDays(1) {
		days = append(days, d)
	}
	return days
}
