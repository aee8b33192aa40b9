package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/01moynul/travelschedule-golang/internal/itinerary"
	"github.com/01moynul/travelschedule-golang/internal/models"
	"github.com/01moynul/travelschedule-golang/internal/store"
)

//
// --- Schedule Handlers ---
//

// GetTransportations is the handler for GET /v1/transportations
func (h *Handlers) GetTransportations(c *gin.Context) {
	methods, err := h.Store.Transportations(c.Request.Context())
	if err != nil {
		fail(c, err, "load transportation methods")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"transportations": methods,
		"icons":           itinerary.IconMap(methods),
	})
}

// GetMySchedules is the handler for GET /v1/schedules
func (h *Handlers) GetMySchedules(c *gin.Context) {
	schedules, err := h.Store.Schedules(c.Request.Context(), currentUserID(c))
	if err != nil {
		fail(c, err, "load schedules")
		return
	}
	c.JSON(http.StatusOK, gin.H{"schedules": schedules})
}

// CreateSchedule is the handler for POST /v1/schedules
func (h *Handlers) CreateSchedule(c *gin.Context) {
	// 1. --- Bind & Validate ---
	var input itinerary.ScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	valid, err := h.Validator.ValidateSchedule(input)
	if err != nil {
		fail(c, err, "create schedule")
		return
	}

	// 2. --- Save ---
	now := h.now()
	schedule := &models.Schedule{
		UserID:        currentUserID(c),
		Title:         valid.Title,
		TripStartDate: valid.Range.Start,
		TripEndDate:   valid.Range.End,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := h.Store.CreateSchedule(c.Request.Context(), schedule); err != nil {
		fail(c, err, "create schedule")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"schedule": schedule})
}

// GetSchedule is the handler for GET /v1/schedules/:id
// It answers with the schedule and its day-by-day timeline.
func (h *Handlers) GetSchedule(c *gin.Context) {
	scheduleID, ok := paramID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	// 1. --- Load Schedule, Plans & Reference Data ---
	schedule, err := h.Store.Schedule(ctx, currentUserID(c), scheduleID)
	if err != nil {
		fail(c, err, "load schedule")
		return
	}
	plans, err := h.Store.Plans(ctx, schedule.ID)
	if err != nil {
		fail(c, err, "load plans")
		return
	}
	methods, err := h.Store.Transportations(ctx)
	if err != nil {
		fail(c, err, "load transportation methods")
		return
	}

	// 2. --- Build the Timeline ---
	days := itinerary.Assemble(itinerary.RangeOf(*schedule), localize(plans, h.location()), h.location())

	c.JSON(http.StatusOK, gin.H{
		"schedule":            schedule,
		"days":                days,
		"transportationIcons": itinerary.IconMap(methods),
	})
}

// UpdateSchedule is the handler for PUT /v1/schedules/:id
// Changing the trip range shifts or deletes plans in the same transaction as the schedule update.
func (h *Handlers) UpdateSchedule(c *gin.Context) {
	scheduleID, ok := paramID(c, "id")
	if !ok {
		return
	}

	// 1. --- Bind & Validate ---
	var input itinerary.ScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	valid, err := h.Validator.ValidateSchedule(input)
	if err != nil {
		fail(c, err, "update schedule")
		return
	}

	// 2. --- Update & Cascade (one transaction) ---
	var (
		schedule *models.Schedule
		result   itinerary.ResizeResult
		orphans  []string
	)
	now := h.now()
	err = h.Store.WithinTx(c.Request.Context(), func(tx store.Repository) error {
		ctx := c.Request.Context()
		var err error
		if schedule, err = loadOwnedSchedule(c, tx, scheduleID); err != nil {
			return err
		}
		plans, err := tx.Plans(ctx, schedule.ID)
		if err != nil {
			return err
		}

		result = itinerary.Resize(itinerary.RangeOf(*schedule), valid.Range, plans, h.location())

		schedule.Title = valid.Title
		schedule.TripStartDate = valid.Range.Start
		schedule.TripEndDate = valid.Range.End
		schedule.UpdatedAt = now
		if err := tx.UpdateSchedule(ctx, schedule); err != nil {
			return err
		}

		for _, p := range result.Shifted {
			p.UpdatedAt = now
			if err := tx.UpdatePlanTimes(ctx, p); err != nil {
				return err
			}
		}
		if err := tx.DeletePlans(ctx, schedule.ID, result.Deleted...); err != nil {
			return err
		}
		orphans = pictureFiles(plansByID(plans, result.Deleted)...)
		return nil
	})
	if err != nil {
		fail(c, err, "update schedule")
		return
	}
	h.removeFiles(orphans)

	c.JSON(http.StatusOK, gin.H{
		"schedule":       schedule,
		"shiftedPlans":   len(result.Shifted),
		"deletedPlanIds": nonNilIDs(result.Deleted),
	})
}

// DeleteSchedule is the handler for DELETE /v1/schedules/:id
func (h *Handlers) DeleteSchedule(c *gin.Context) {
	scheduleID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var orphans []string
	err := h.Store.WithinTx(c.Request.Context(), func(tx store.Repository) error {
		ctx := c.Request.Context()
		schedule, err := loadOwnedSchedule(c, tx, scheduleID)
		if err != nil {
			return err
		}
		plans, err := tx.Plans(ctx, schedule.ID)
		if err != nil {
			return err
		}
		if err := tx.DeleteSchedule(ctx, schedule.UserID, schedule.ID); err != nil {
			return err
		}
		orphans = pictureFiles(plans...)
		return nil
	})
	if err != nil {
		fail(c, err, "delete schedule")
		return
	}
	h.removeFiles(orphans)

	c.JSON(http.StatusOK, gin.H{"message": "Schedule deleted"})
}

// loadOwnedSchedule fetches a schedule scoped to the caller inside tx.
func loadOwnedSchedule(c *gin.Context, tx store.Repository, scheduleID int64) (*models.Schedule, error) {
	return tx.Schedule(c.Request.Context(), currentUserID(c), scheduleID)
}

func plansByID(plans []models.Plan, ids []int64) []models.Plan {
	wanted := make(map[int64]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var out []models.Plan
	for _, p := range plans {
		if wanted[p.ID] {
			out = append(out, p)
		}
	}
	return out
}

func nonNilIDs(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}
