package models

import "time"

// MaxPicturesPerPlan caps the pictures attached to one plan.
const MaxPicturesPerPlan = 10

// Plan defines the model for the 'plans' table.
// Start and end are nullable in storage; the engine tolerates either being missing.
type Plan struct {
	ID                int64      `json:"id" db:"id"`
	ScheduleID        int64      `json:"scheduleId" db:"schedule_id"`
	Category          Category   `json:"actionCategory" db:"action_category"`
	Name              string     `json:"name" db:"name"`
	Memo              string     `json:"memo" db:"memo"`
	DepartureLocation string     `json:"departureLocation,omitempty" db:"departure_location"`
	ArrivalLocation   string     `json:"arrivalLocation,omitempty" db:"arrival_location"`
	TransportationID  *int64     `json:"transportationId,omitempty" db:"transportation_id"`
	StartAt           *time.Time `json:"startDatetime" db:"start_datetime"`
	EndAt             *time.Time `json:"endDatetime" db:"end_datetime"`
	CreatedAt         time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time  `json:"updatedAt" db:"updated_at"`

	// Children (not in the 'plans' table, populated manually)
	Links    []Link    `json:"links" db:"-"`
	Pictures []Picture `json:"pictures" db:"-"`
}

// Link is the model for the 'links' table.
type Link struct {
	ID       int64  `json:"id" db:"id"`
	PlanID   int64  `json:"planId" db:"plan_id"`
	Title    string `json:"title" db:"title"`
	URL      string `json:"url" db:"url"`
	Position int    `json:"-" db:"position"`
}

// Picture is the model for the 'pictures' table.
type Picture struct {
	ID        int64     `json:"id" db:"id"`
	PlanID    int64     `json:"planId" db:"plan_id"`
	FileName  string    `json:"-" db:"file_name"`
	URL       string    `json:"url" db:"url"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
