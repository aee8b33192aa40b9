package models

import (
	"time"

	"cloud.google.com/go/civil"
)

// Schedule is a user's named trip over a fixed range of calendar dates.
type Schedule struct {
	ID            int64      `json:"id"`
	UserID        int64      `json:"userId"`
	Title         string     `json:"title"`
	TripStartDate civil.Date `json:"tripStartDate"`
	TripEndDate   civil.Date `json:"tripEndDate"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}
