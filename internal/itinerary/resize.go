package itinerary

import (
	"time"

	"cloud.google.com/go/civil"

	"github.com/01moynul/travelschedule-golang/internal/models"
)

// ResizeResult lists what a trip range change does to the schedule's plans.
type ResizeResult struct {
	// Shifted holds kept plans whose instants moved, already updated.
	Shifted []models.Plan
	// Deleted holds the ids of plans that no longer fit the range.
	Deleted []int64
}

// Empty reports whether the resize touches no plan.
func (r ResizeResult) Empty() bool {
	return len(r.Shifted) == 0 && len(r.Deleted) == 0
}

// Resize reconciles plans with a schedule moving from oldRange to newRange.
//
// Every plan is shifted by the number of days the first trip day moved, keeping its local time
// of day. Plans that then start before the new first day, end after the new last day, or (with no
// end) start after the new last day are deleted. The input slice is not modified.
func Resize(oldRange, newRange DateRange, plans []models.Plan, loc *time.Location) ResizeResult {
	delta := newRange.Start.DaysSince(oldRange.Start)

	var res ResizeResult
	for _, p := range plans {
		moved := p
		if delta != 0 {
			moved.StartAt = shiftDays(p.StartAt, delta, loc)
			moved.EndAt = shiftDays(p.EndAt, delta, loc)
		}

		if outOfRange(moved, newRange, loc) {
			res.Deleted = append(res.Deleted, p.ID)
			continue
		}
		if delta != 0 && (p.StartAt != nil || p.EndAt != nil) {
			res.Shifted = append(res.Shifted, moved)
		}
	}
	return res
}

func shiftDays(t *time.Time, days int, loc *time.Location) *time.Time {
	if t == nil {
		return nil
	}
	shifted := t.In(loc).AddDate(0, 0, days)
	return &shifted
}

func outOfRange(p models.Plan, r DateRange, loc *time.Location) bool {
	if p.StartAt == nil {
		return false
	}
	start := civil.DateOf(p.StartAt.In(loc))
	if start.Before(r.Start) {
		return true
	}
	if p.EndAt == nil {
		return start.After(r.End)
	}
	return civil.DateOf(p.EndAt.In(loc)).After(r.End)
}
