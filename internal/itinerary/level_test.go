package itinerary

import (
	"testing"

	"github.com/01moynul/travelschedule-golang/internal/models"
)

func rangeEntry(start, end int) Entry {
	p := &models.Plan{Category: models.CategorySightseeing, StartAt: at(2024, 5, 1, start/100, start%100), EndAt: at(2024, 5, 1, end/100, end%100)}
	return Entry{Kind: EntryPlan, At: *p.StartAt, Plan: p}
}

func levels(entries []Entry) []int {
	out := make([]int, len(entries))
	for i, e := range entries {
		out[i] = e.Level
	}
	return out
}

func TestAssignLevels(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
		want    []int
	}{
		{
			name:    "chained overlaps keep the stale end",
			entries: []Entry{rangeEntry(900, 1000), rangeEntry(930, 1100), rangeEntry(1030, 1200)},
			want:    []int{0, 1, 1},
		},
		{
			name:    "touching ranges do not overlap",
			entries: []Entry{rangeEntry(900, 1000), rangeEntry(1000, 1100)},
			want:    []int{0, 0},
		},
		{
			name:    "sorted by start before leveling",
			entries: []Entry{rangeEntry(1030, 1200), rangeEntry(900, 1100)},
			want:    []int{0, 1},
		},
		{
			name:    "nested ranges stack",
			entries: []Entry{rangeEntry(800, 1800), rangeEntry(900, 1700), rangeEntry(1000, 1100)},
			want:    []int{0, 1, 2},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			AssignLevels(tt.entries)
			got := levels(tt.entries)
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("expected levels %v, got %v", tt.want, got)
				}
			}
		})
	}
}

func TestAssignLevelsMarkersStayFlat(t *testing.T) {
	stay := &models.Plan{Category: models.CategoryStay, StartAt: at(2024, 5, 1, 9, 0), EndAt: at(2024, 5, 2, 10, 0)}
	entries := []Entry{
		rangeEntry(900, 1200),
		{Kind: EntryCheckin, At: *stay.StartAt, Plan: stay, Level: 5},
		rangeEntry(1000, 1100),
	}
	AssignLevels(entries)
	if entries[0].Kind != EntryPlan || entries[1].Kind != EntryCheckin {
		t.Fatalf("expected the earlier range first, then the marker (stable order)")
	}
	if got := levels(entries); got[0] != 0 || got[1] != 0 || got[2] != 1 {
		t.Fatalf("expected [0 0 1], got %v", got)
	}
}
