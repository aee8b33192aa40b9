package itinerary

import (
	"strings"

	"cloud.google.com/go/civil"

	"github.com/01moynul/travelschedule-golang/internal/models"
)

// DateRange is an inclusive range of calendar dates.
type DateRange struct {
	Start civil.Date `json:"start"`
	End   civil.Date `json:"end"`
}

// RangeOf returns the trip range of s.
func RangeOf(s models.Schedule) DateRange {
	return DateRange{Start: s.TripStartDate, End: s.TripEndDate}
}

// Contains reports whether d falls inside r.
func (r DateRange) Contains(d civil.Date) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

// Days lists every date of r in order.
func (r DateRange) Days() []civil.Date {
	return DaysBetween(r.Start, r.End)
}

// ScheduleInput is the raw schedule form.
type ScheduleInput struct {
	Title         string `json:"title" validate:"max=20"`
	TripStartDate string `json:"tripStartDate"`
	TripEndDate   string `json:"tripEndDate"`
}

// ValidSchedule is a schedule form that passed validation.
type ValidSchedule struct {
	Title string
	Range DateRange
}

// ValidateSchedule checks the title and trip range of a schedule form.
func (v *Validator) ValidateSchedule(in ScheduleInput) (*ValidSchedule, error) {
	errs := FieldErrors{}
	if err := v.validate.Struct(in); err != nil {
		if ferr := collectTagErrors(err, errs); ferr != nil {
			return nil, ferr
		}
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		errs.Add("title", "Enter a title.")
	}

	start := parseDateField(in.TripStartDate, "tripStartDate", errs)
	if strings.TrimSpace(in.TripStartDate) == "" {
		errs.Add("tripStartDate", "Enter the first day of the trip.")
	}
	end := parseDateField(in.TripEndDate, "tripEndDate", errs)
	if strings.TrimSpace(in.TripEndDate) == "" {
		errs.Add("tripEndDate", "Enter the last day of the trip.")
	}
	if start != nil && end != nil && start.After(*end) {
		errs.Add("tripEndDate", "The last day must be on or after the first day.")
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return &ValidSchedule{Title: title, Range: DateRange{Start: *start, End: *end}}, nil
}
