package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/01moynul/travelschedule-golang/internal/itinerary"
	"github.com/01moynul/travelschedule-golang/internal/models"
	"github.com/01moynul/travelschedule-golang/internal/store"
)

//
// --- Plan Handlers ---
//

// validatePlan binds and validates the plan form. It answers the request itself on failure.
func (h *Handlers) validatePlan(c *gin.Context) (*itinerary.ValidPlan, bool) {
	var input itinerary.PlanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	methods, err := h.Store.Transportations(c.Request.Context())
	if err != nil {
		fail(c, err, "load transportation methods")
		return nil, false
	}
	valid, err := h.Validator.Validate(input, methods)
	if err != nil {
		fail(c, err, "validate plan")
		return nil, false
	}
	return valid, true
}

// CreatePlan is the handler for POST /v1/schedules/:id/plans
func (h *Handlers) CreatePlan(c *gin.Context) {
	scheduleID, ok := paramID(c, "id")
	if !ok {
		return
	}
	valid, ok := h.validatePlan(c)
	if !ok {
		return
	}

	now := h.now()
	plan := &models.Plan{ScheduleID: scheduleID, CreatedAt: now, UpdatedAt: now}
	valid.Apply(plan)

	err := h.Store.WithinTx(c.Request.Context(), func(tx store.Repository) error {
		ctx := c.Request.Context()
		if _, err := loadOwnedSchedule(c, tx, scheduleID); err != nil {
			return err
		}
		if err := tx.CreatePlan(ctx, plan); err != nil {
			return err
		}
		return tx.TouchSchedule(ctx, scheduleID, now)
	})
	if err != nil {
		fail(c, err, "create plan")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"plan": localize([]models.Plan{*plan}, h.location())[0]})
}

// UpdatePlan is the handler for PUT /v1/schedules/:id/plans/:planID
func (h *Handlers) UpdatePlan(c *gin.Context) {
	scheduleID, ok := paramID(c, "id")
	if !ok {
		return
	}
	planID, ok := paramID(c, "planID")
	if !ok {
		return
	}
	valid, ok := h.validatePlan(c)
	if !ok {
		return
	}

	now := h.now()
	var plan *models.Plan
	err := h.Store.WithinTx(c.Request.Context(), func(tx store.Repository) error {
		ctx := c.Request.Context()
		if _, err := loadOwnedSchedule(c, tx, scheduleID); err != nil {
			return err
		}
		var err error
		if plan, err = tx.Plan(ctx, scheduleID, planID); err != nil {
			return err
		}
		valid.Apply(plan)
		plan.UpdatedAt = now
		if err := tx.UpdatePlan(ctx, plan); err != nil {
			return err
		}
		return tx.TouchSchedule(ctx, scheduleID, now)
	})
	if err != nil {
		fail(c, err, "update plan")
		return
	}

	c.JSON(http.StatusOK, gin.H{"plan": localize([]models.Plan{*plan}, h.location())[0]})
}

// DeletePlan is the handler for DELETE /v1/schedules/:id/plans/:planID
func (h *Handlers) DeletePlan(c *gin.Context) {
	scheduleID, ok := paramID(c, "id")
	if !ok {
		return
	}
	planID, ok := paramID(c, "planID")
	if !ok {
		return
	}

	var orphans []string
	err := h.Store.WithinTx(c.Request.Context(), func(tx store.Repository) error {
		ctx := c.Request.Context()
		if _, err := loadOwnedSchedule(c, tx, scheduleID); err != nil {
			return err
		}
		plan, err := tx.Plan(ctx, scheduleID, planID)
		if err != nil {
			return err
		}
		if err := tx.DeletePlans(ctx, scheduleID, plan.ID); err != nil {
			return err
		}
		orphans = pictureFiles(*plan)
		return tx.TouchSchedule(ctx, scheduleID, h.now())
	})
	if err != nil {
		fail(c, err, "delete plan")
		return
	}
	h.removeFiles(orphans)

	c.JSON(http.StatusOK, gin.H{"message": "Plan deleted"})
}
