package itinerary

import (
	"sort"
	"time"
)

// AssignLevels orders one day's entries by display instant and sets their nesting level.
//
// A range entry's level is the number of earlier range entries whose end is still after its
// start. Ends are only ever appended, never expired, so the level is an accumulating upper bound
// for the day rather than a minimal packing. Markers stay at level 0 and are not counted.
func AssignLevels(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].At.Before(entries[j].At)
	})

	var activeEnds []time.Time
	for i := range entries {
		e := &entries[i]
		if e.IsMarker() || e.Plan == nil || e.Plan.StartAt == nil || e.Plan.EndAt == nil {
			e.Level = 0
			continue
		}
		start := *e.Plan.StartAt
		level := 0
		for _, end := range activeEnds {
			if end.After(start) {
				level++
			}
		}
		e.Level = level
		activeEnds = append(activeEnds, *e.Plan.EndAt)
	}
}
