package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/01moynul/travelschedule-golang/internal/auth"
	"github.com/01moynul/travelschedule-golang/internal/itinerary"
	"github.com/01moynul/travelschedule-golang/internal/models"
	"github.com/01moynul/travelschedule-golang/internal/store"
)

// --- User Registration ---

// RegisterInput holds the *input* from the sign-up form.
// It is separate from 'models.User' because we never accept an 'id' or a hash from the user.
type RegisterInput struct {
	Name            string `json:"name" binding:"required"`
	Email           string `json:"email" binding:"required,email,max=255"`
	Password        string `json:"password" binding:"required"`
	PasswordConfirm string `json:"passwordConfirm" binding:"required"`
}

// Register is the handler for POST /v1/register
func (h *Handlers) Register(c *gin.Context) {
	// 1. --- Bind & Validate JSON ---
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// 2. --- Account Rules ---
	fields := itinerary.FieldErrors{}
	if msg := auth.CheckName(input.Name); msg != "" {
		fields.Add("name", msg)
	}
	if msg := auth.CheckPassword(input.Password); msg != "" {
		fields.Add("password", msg)
	}
	if input.Password != input.PasswordConfirm {
		fields.Add("passwordConfirm", "Passwords do not match.")
	}
	if len(fields) > 0 {
		fail(c, fields, "register")
		return
	}

	// 3. --- Hash the Password ---
	var password models.Password
	if err := password.Set(input.Password); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	// 4. --- Save ---
	now := h.now()
	user := &models.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: password.Hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := h.Store.CreateUser(c.Request.Context(), user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "That user name or email is already registered."})
			return
		}
		fail(c, err, "register")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registered successfully, please log in.",
		"user":    user,
	})
}

// --- Login ---

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login is the handler for POST /v1/login
func (h *Handlers) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.Store.UserByEmail(c.Request.Context(), strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		fail(c, err, "log in")
		return
	}
	if user == nil || !passwordMatches(user, input.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := h.Issuer.GenerateToken(user.ID)
	if err != nil {
		fail(c, err, "generate token")
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// --- My Page ---

// Me is the handler for GET /v1/me
func (h *Handlers) Me(c *gin.Context) {
	user, err := h.Store.UserByID(c.Request.Context(), currentUserID(c))
	if err != nil {
		fail(c, err, "load user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

type ChangeNameInput struct {
	Name string `json:"name" binding:"required"`
}

// ChangeName is the handler for PATCH /v1/me/name
func (h *Handlers) ChangeName(c *gin.Context) {
	var input ChangeNameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg := auth.CheckName(input.Name); msg != "" {
		fail(c, itinerary.FieldErrors{"name": {msg}}, "change name")
		return
	}
	h.updateUser(c, func(u *models.User) error {
		u.Name = strings.TrimSpace(input.Name)
		return nil
	})
}

type ChangeEmailInput struct {
	Email string `json:"email" binding:"required,email,max=255"`
}

// ChangeEmail is the handler for PATCH /v1/me/email
func (h *Handlers) ChangeEmail(c *gin.Context) {
	var input ChangeEmailInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.updateUser(c, func(u *models.User) error {
		u.Email = strings.ToLower(strings.TrimSpace(input.Email))
		return nil
	})
}

type ChangePasswordInput struct {
	CurrentPassword    string `json:"currentPassword" binding:"required"`
	NewPassword        string `json:"newPassword" binding:"required"`
	NewPasswordConfirm string `json:"newPasswordConfirm" binding:"required"`
}

// ChangePassword is the handler for PATCH /v1/me/password
func (h *Handlers) ChangePassword(c *gin.Context) {
	var input ChangePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	fields := itinerary.FieldErrors{}
	if msg := auth.CheckPassword(input.NewPassword); msg != "" {
		fields.Add("newPassword", msg)
	}
	if input.NewPassword != input.NewPasswordConfirm {
		fields.Add("newPasswordConfirm", "Passwords do not match.")
	}
	if len(fields) > 0 {
		fail(c, fields, "change password")
		return
	}

	h.updateUser(c, func(u *models.User) error {
		if !passwordMatches(u, input.CurrentPassword) {
			return itinerary.FieldErrors{"currentPassword": {"Current password is incorrect."}}
		}
		var password models.Password
		if err := password.Set(input.NewPassword); err != nil {
			return err
		}
		u.PasswordHash = password.Hash
		return nil
	})
}

// updateUser loads the caller, applies edit and saves, answering with the updated user.
func (h *Handlers) updateUser(c *gin.Context, edit func(u *models.User) error) {
	ctx := c.Request.Context()
	user, err := h.Store.UserByID(ctx, currentUserID(c))
	if err != nil {
		fail(c, err, "load user")
		return
	}
	if err := edit(user); err != nil {
		fail(c, err, "update user")
		return
	}
	user.UpdatedAt = h.now()
	if err := h.Store.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "That user name or email is already registered."})
			return
		}
		fail(c, err, "update user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func passwordMatches(u *models.User, plaintext string) bool {
	p := models.Password{Hash: u.PasswordHash}
	ok, err := p.Matches(plaintext)
	return err == nil && ok
}
