package itinerary

import "github.com/01moynul/travelschedule-golang/internal/models"

// categoryRule is the per-category behaviour shared by validation and partitioning.
type categoryRule struct {
	requiresName  bool
	requiresRoute bool // departure, arrival and transportation
	defaultEndDay bool // a missing end date falls back to the start date
	markers       bool // projected as checkin/checkout markers instead of a range

	dateOrderMessage string
	timeOrderMessage string
}

var categoryRules = map[models.Category]categoryRule{
	models.CategoryMove: {
		requiresRoute:    true,
		dateOrderMessage: "Departure date must be on or before the arrival date.",
		timeOrderMessage: "Departure time must not be after the arrival time.",
	},
	models.CategorySightseeing: {
		requiresName:     true,
		dateOrderMessage: "Start date must be on or before the end date.",
		timeOrderMessage: "Start time must not be after the end time.",
	},
	models.CategoryMeal: {
		requiresName:     true,
		defaultEndDay:    true,
		dateOrderMessage: "Meal start date must be on or before the end date.",
		timeOrderMessage: "Meal start time must not be after the end time.",
	},
	models.CategoryStay: {
		requiresName:     true,
		markers:          true,
		dateOrderMessage: "Check-in date must be on or before the check-out date.",
		timeOrderMessage: "Check-in time must not be after the check-out time.",
	},
}

func ruleFor(c models.Category) (categoryRule, bool) {
	r, ok := categoryRules[c]
	return r, ok
}
