package itinerary

import (
	"testing"

	"github.com/01moynul/travelschedule-golang/internal/models"
)

func TestAssembleExample(t *testing.T) {
	plans := []models.Plan{
		{ID: 2, Category: models.CategoryStay, StartAt: at(2024, 6, 1, 15, 0), EndAt: at(2024, 6, 2, 11, 0)},
		{ID: 1, Category: models.CategoryMove, StartAt: at(2024, 6, 1, 9, 0), EndAt: at(2024, 6, 1, 10, 0)},
	}
	days := Assemble(DateRange{Start: date(2024, 6, 1), End: date(2024, 6, 2)}, plans, jst)
	if len(days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(days))
	}

	first := days[0]
	if first.Date != date(2024, 6, 1) || len(first.Entries) != 2 {
		t.Fatalf("unexpected first day %+v", first)
	}
	if first.Entries[0].Plan.ID != 1 || first.Entries[0].Kind != EntryPlan || first.Entries[0].Level != 0 {
		t.Fatalf("unexpected first entry %+v", first.Entries[0])
	}
	if first.Entries[1].Plan.ID != 2 || first.Entries[1].Kind != EntryCheckin || first.Entries[1].Level != 0 {
		t.Fatalf("unexpected second entry %+v", first.Entries[1])
	}

	second := days[1]
	if second.Date != date(2024, 6, 2) || len(second.Entries) != 1 {
		t.Fatalf("unexpected second day %+v", second)
	}
	if second.Entries[0].Plan.ID != 2 || second.Entries[0].Kind != EntryCheckout {
		t.Fatalf("unexpected checkout %+v", second.Entries[0])
	}
}

func TestAssembleKeepsEmptyDaysAndDropsOutside(t *testing.T) {
	plans := []models.Plan{
		{ID: 1, Category: models.CategorySightseeing, StartAt: at(2024, 6, 2, 9, 0), EndAt: at(2024, 6, 5, 10, 0)},
		{ID: 2, Category: models.CategoryMeal},
	}
	days := Assemble(DateRange{Start: date(2024, 6, 1), End: date(2024, 6, 3)}, plans, jst)
	if len(days) != 3 {
		t.Fatalf("expected 3 days, got %d", len(days))
	}
	if days[0].Entries == nil || len(days[0].Entries) != 0 {
		t.Fatalf("expected an empty, non-nil first day, got %+v", days[0].Entries)
	}
	if len(days[1].Entries) != 1 || len(days[2].Entries) != 1 {
		t.Fatalf("expected the plan on days 2 and 3, got %+v", days)
	}
	if days[1].Entries[0].Plan != days[2].Entries[0].Plan {
		t.Fatalf("days should share one plan reference")
	}
}

func TestIconMap(t *testing.T) {
	icons := IconMap(testTransportations)
	if icons[2] != "fa-train" || len(icons) != 2 {
		t.Fatalf("unexpected icons %v", icons)
	}
}
