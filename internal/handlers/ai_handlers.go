package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/01moynul/travelschedule-golang/internal/ai"
	"github.com/01moynul/travelschedule-golang/internal/itinerary"
)

// AdviceInput is the optional body of an advice request.
type AdviceInput struct {
	Question string `json:"question" binding:"max=500"`
}

// ScheduleAdvice handles POST /v1/schedules/:id/advice
// The schedule's timeline is sent to the AI assistant for review.
func (h *Handlers) ScheduleAdvice(c *gin.Context) {
	if h.AIService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI Service unavailable"})
		return
	}
	scheduleID, ok := paramID(c, "id")
	if !ok {
		return
	}

	// 1. Parse Input (the body may be empty)
	var input AdviceInput
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	// 2. Build the Timeline the assistant will see
	ctx := c.Request.Context()
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
	days := itinerary.Assemble(itinerary.RangeOf(*schedule), localize(plans, h.location()), h.location())

	// 3. Call the AI Service
	advice, tokens, err := h.AIService.Advise(ctx, ai.AdviceRequest{
		Schedule:        *schedule,
		Days:            days,
		Transportations: methods,
		Question:        input.Question,
		Location:        h.location(),
	})
	if err != nil {
		log.Printf("ERROR: advice for schedule %d: %v", schedule.ID, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "AI Service unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"advice":     advice,
		"tokensUsed": tokens,
	})
}
