package itinerary

import (
	"sort"
	"time"

	"cloud.google.com/go/civil"

	"github.com/01moynul/travelschedule-golang/internal/models"
)

// Day is one calendar day of a schedule's timeline.
type Day struct {
	Date    civil.Date `json:"date"`
	Entries []Entry    `json:"entries"`
}

// Assemble builds the per-day timeline of a trip: plans are partitioned onto their days, each
// day is leveled, and every date of the range is present even when it has no entries.
// Entries falling outside the range are dropped.
func Assemble(trip DateRange, plans []models.Plan, loc *time.Location) []Day {
	sorted := make([]models.Plan, len(plans))
	copy(sorted, plans)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].StartAt, sorted[j].StartAt
		if a == nil || b == nil {
			return a != nil
		}
		return a.Before(*b)
	})

	byDate := make(map[civil.Date][]Entry)
	for i := range sorted {
		for _, de := range Partition(&sorted[i], loc) {
			if trip.Contains(de.Date) {
				byDate[de.Date] = append(byDate[de.Date], de.Entry)
			}
		}
	}

	days := make([]Day, 0, len(byDate))
	for _, d := range trip.Days() {
		entries := byDate[d]
		if entries == nil {
			entries = []Entry{}
		}
		AssignLevels(entries)
		days = append(days, Day{Date: d, Entries: entries})
	}
	return days
}

// IconMap maps each transportation method id to its display icon.
func IconMap(methods []models.TransportationMethod) map[int64]string {
	icons := make(map[int64]string, len(methods))
	for _, m := range methods {
		icons[m.ID] = m.Icon
	}
	return icons
}
