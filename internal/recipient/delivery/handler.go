package delivery

import (
	"errors"
	"net/http"

	"newspulse-backend/internal/recipient/domain"
	"newspulse-backend/internal/recipient/usecase"

	"github.com/gin-gonic/gin"
)

// PreferenceHandler handles preference and device token requests
type PreferenceHandler struct {
	preferenceUsecase usecase.PreferenceUsecase
}

func NewPreferenceHandler(preferenceUsecase usecase.PreferenceUsecase) *PreferenceHandler {
	return &PreferenceHandler{preferenceUsecase: preferenceUsecase}
}

type UpdatePreferenceRequest struct {
	Category string `json:"category" binding:"required"`
	Keyword  string `json:"keyword"`
}

type RegisterTokenRequest struct {
	Token string `json:"token" binding:"required"`
}

// GetPreference returns the caller's topic preference
// GET /api/preferences
func (h *PreferenceHandler) GetPreference(c *gin.Context) {
	pref, err := h.preferenceUsecase.GetPreference(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"preference": pref,
		"categories": domain.Categories(),
	})
}

// UpdatePreference stores category and keyword
// PUT /api/preferences
func (h *PreferenceHandler) UpdatePreference(c *gin.Context) {
	var req UpdatePreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pref, err := h.preferenceUsecase.UpdatePreference(c.Request.Context(), c.GetString("userID"), req.Category, req.Keyword)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCategory) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"preference": pref})
}

// RegisterToken stores the browser's FCM registration token
// POST /api/fcm/register
func (h *PreferenceHandler) RegisterToken(c *gin.Context) {
	var req RegisterTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.preferenceUsecase.RegisterDeviceToken(c.Request.Context(), c.GetString("userID"), req.Token); err != nil {
		if errors.Is(err, usecase.ErrEmptyDeviceToken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Device token registered"})
}

// UnregisterToken removes the device token, disabling pushes
// DELETE /api/fcm
func (h *PreferenceHandler) UnregisterToken(c *gin.Context) {
	if err := h.preferenceUsecase.UnregisterDeviceToken(c.Request.Context(), c.GetString("userID")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Device token removed"})
}
