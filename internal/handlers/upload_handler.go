package handlers

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"github.com/01moynul/travelschedule-golang/internal/itinerary"
	"github.com/01moynul/travelschedule-golang/internal/models"
	"github.com/01moynul/travelschedule-golang/internal/store"
)

var pictureExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

// UploadPictures handles POST /v1/schedules/:id/plans/:planID/pictures
// It saves the files to the upload folder and records them against the plan.
func (h *Handlers) UploadPictures(c *gin.Context) {
	scheduleID, ok := paramID(c, "id")
	if !ok {
		return
	}
	planID, ok := paramID(c, "planID")
	if !ok {
		return
	}

	// 1. Get the files from the request
	form, err := c.MultipartForm()
	if err != nil || len(form.File["pictures"]) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	files := form.File["pictures"]
	for _, file := range files {
		if !pictureExtensions[strings.ToLower(filepath.Ext(file.Filename))] {
			fail(c, itinerary.FieldErrors{"pictures": {file.Filename + " is not an image."}}, "upload pictures")
			return
		}
	}

	// 2. Create the upload directory if it doesn't exist
	if err := os.MkdirAll(h.UploadDir, 0755); err != nil {
		fail(c, err, "prepare upload directory")
		return
	}

	// 3. Save files and rows together; files are removed again if the rows are not committed
	now := h.now()
	var (
		saved    []string
		pictures []models.Picture
	)
	err = h.Store.WithinTx(c.Request.Context(), func(tx store.Repository) error {
		ctx := c.Request.Context()
		if _, err := loadOwnedSchedule(c, tx, scheduleID); err != nil {
			return err
		}
		if _, err := tx.Plan(ctx, scheduleID, planID); err != nil {
			return err
		}
		existing, err := tx.CountPictures(ctx, planID)
		if err != nil {
			return err
		}
		if err := itinerary.ValidatePictureCount(existing, len(files)); err != nil {
			return err
		}

		for _, file := range files {
			name := pictureFileName(file, planID)
			if err := c.SaveUploadedFile(file, filepath.Join(h.UploadDir, name)); err != nil {
				return fmt.Errorf("save %s: %w", file.Filename, err)
			}
			saved = append(saved, name)

			pic := models.Picture{
				PlanID:    planID,
				FileName:  name,
				URL:       fmt.Sprintf("%s/uploads/%s", h.BaseURL, name),
				CreatedAt: now,
			}
			if err := tx.CreatePicture(ctx, &pic); err != nil {
				return err
			}
			pictures = append(pictures, pic)
		}
		return tx.TouchSchedule(ctx, scheduleID, now)
	})
	if err != nil {
		h.removeFiles(saved)
		fail(c, err, "upload pictures")
		return
	}

	// 4. Return the stored pictures with their public URLs
	c.JSON(http.StatusCreated, gin.H{"pictures": pictures})
}

// DeletePicture handles DELETE /v1/schedules/:id/plans/:planID/pictures/:pictureID
func (h *Handlers) DeletePicture(c *gin.Context) {
	scheduleID, ok := paramID(c, "id")
	if !ok {
		return
	}
	planID, ok := paramID(c, "planID")
	if !ok {
		return
	}
	pictureID, ok := paramID(c, "pictureID")
	if !ok {
		return
	}

	var removed *models.Picture
	err := h.Store.WithinTx(c.Request.Context(), func(tx store.Repository) error {
		ctx := c.Request.Context()
		if _, err := loadOwnedSchedule(c, tx, scheduleID); err != nil {
			return err
		}
		if _, err := tx.Plan(ctx, scheduleID, planID); err != nil {
			return err
		}
		var err error
		if removed, err = tx.DeletePicture(ctx, planID, pictureID); err != nil {
			return err
		}
		return tx.TouchSchedule(ctx, scheduleID, h.now())
	})
	if err != nil {
		fail(c, err, "delete picture")
		return
	}
	h.removeFiles([]string{removed.FileName})

	c.JSON(http.StatusOK, gin.H{"message": "Picture deleted"})
}

// pictureFileName builds a safe unique name: the slugged original name, a uuid and the extension.
func pictureFileName(file *multipart.FileHeader, planID int64) string {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	base := slug.Make(strings.TrimSuffix(file.Filename, filepath.Ext(file.Filename)))
	if base == "" {
		base = fmt.Sprintf("plan-%d", planID)
	}
	return fmt.Sprintf("%s-%s%s", base, uuid.New().String(), ext)
}
