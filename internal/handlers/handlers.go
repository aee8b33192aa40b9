package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/01moynul/travelschedule-golang/internal/ai"
	"github.com/01moynul/travelschedule-golang/internal/auth"
	"github.com/01moynul/travelschedule-golang/internal/itinerary"
	"github.com/01moynul/travelschedule-golang/internal/models"
	"github.com/01moynul/travelschedule-golang/internal/store"
)

// Advisor reviews a schedule's timeline. *ai.AIService implements it.
type Advisor interface {
	Advise(ctx context.Context, req ai.AdviceRequest) (string, int, error)
}

// Handlers struct holds all dependencies for our handlers.
type Handlers struct {
	Store     store.Repository
	Validator *itinerary.Validator
	Issuer    *auth.Issuer
	AIService Advisor // nil when GEMINI_API_KEY is not configured
	UploadDir string
	BaseURL   string
	Now       func() time.Time
}

func (h *Handlers) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func (h *Handlers) location() *time.Location {
	return h.Validator.Location()
}

// currentUserID reads the ID stored by AuthMiddleware.
func currentUserID(c *gin.Context) int64 {
	return c.GetInt64("userID")
}

// paramID parses a positive integer path parameter, answering 400 when it is not one.
func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return id, true
}

// fail maps an error onto a JSON response: field errors are 400, missing rows 404,
// anything else is logged and answered with 500.
func fail(c *gin.Context, err error, action string) {
	var fields itinerary.FieldErrors
	switch {
	case errors.As(err, &fields):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "fields": fields})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	default:
		log.Printf("ERROR: failed to %s: %v", action, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
	}
}

// localize returns plans with their instants expressed in loc.
func localize(plans []models.Plan, loc *time.Location) []models.Plan {
	out := make([]models.Plan, len(plans))
	for i, p := range plans {
		if p.StartAt != nil {
			t := p.StartAt.In(loc)
			p.StartAt = &t
		}
		if p.EndAt != nil {
			t := p.EndAt.In(loc)
			p.EndAt = &t
		}
		out[i] = p
	}
	return out
}

// pictureFiles collects the stored file names of every picture of plans.
func pictureFiles(plans ...models.Plan) []string {
	var names []string
	for _, p := range plans {
		for _, pic := range p.Pictures {
			names = append(names, pic.FileName)
		}
	}
	return names
}

// removeFiles deletes uploaded files after the rows referencing them are gone.
// Failures are only logged; the database is already consistent.
func (h *Handlers) removeFiles(names []string) {
	for _, name := range names {
		if name == "" {
			continue
		}
		if err := os.Remove(filepath.Join(h.UploadDir, name)); err != nil && !os.IsNotExist(err) {
			log.Printf("WARNING: failed to remove upload %s: %v", name, err)
		}
	}
}
