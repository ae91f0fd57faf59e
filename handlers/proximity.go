package handlers

import (
	"errors"
	"net/http"
	"time"

	"studyon/models"
	"studyon/services/proximity"
	"studyon/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Session tokens outlive any realistic study session.
const sessionTokenTTL = 24 * time.Hour

// ProximityHandler serves the position-fix stream endpoints.
type ProximityHandler struct {
	Service *proximity.Service
	Logger  *zap.Logger
}

// NewProximityHandler builds a ProximityHandler.
func NewProximityHandler(svc *proximity.Service, logger *zap.Logger) *ProximityHandler {
	return &ProximityHandler{Service: svc, Logger: logger}
}

// CreateSessionHandler registers a monitoring session and returns its
// ID plus a signed token the fix endpoints require.
func (h *ProximityHandler) CreateSessionHandler(c *gin.Context) {
	var input struct {
		FCMToken string `json:"fcmToken"`
	}
	// The body is optional; a session without an FCM token still
	// surfaces prompts through the pending state.
	_ = c.ShouldBindJSON(&input)

	sessionID := h.Service.CreateSession(input.FCMToken)
	token, err := utils.GenerateSessionToken(sessionID, sessionTokenTTL)
	if err != nil {
		h.Logger.Error("failed to sign session token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"sessionID": sessionID,
		"token":     token,
	})
}

// RecordFixHandler feeds one position fix through the session's
// monitor.
func (h *ProximityHandler) RecordFixHandler(c *gin.Context) {
	sessionID := c.GetString("sessionID")

	var fix models.PositionFix
	if err := c.ShouldBindJSON(&fix); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if fix.Timestamp.IsZero() {
		fix.Timestamp = time.Now()
	}

	if err := h.Service.ObserveFix(c.Request.Context(), sessionID, fix); err != nil {
		if errors.Is(err, proximity.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
			return
		}
		h.Logger.Error("failed to process fix",
			zap.String("sessionID", sessionID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process fix"})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "ok"})
}

// SetModeHandler toggles the session between foreground (continuous
// updates) and background (significant changes only).
func (h *ProximityHandler) SetModeHandler(c *gin.Context) {
	sessionID := c.GetString("sessionID")

	var input struct {
		Mode string `json:"mode"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	var err error
	switch input.Mode {
	case "foreground":
		err = h.Service.EnterForeground(sessionID)
	case "background":
		err = h.Service.EnterBackground(sessionID)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Mode must be foreground or background"})
		return
	}
	if err != nil {
		if errors.Is(err, proximity.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
			return
		}
		h.Logger.Error("failed to set mode", zap.String("sessionID", sessionID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set mode"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"mode": input.Mode})
}

// PendingHandler returns the session's prompt state for the UI layer.
func (h *ProximityHandler) PendingHandler(c *gin.Context) {
	sessionID := c.GetString("sessionID")

	pending, err := h.Service.Pending(sessionID)
	if err != nil {
		if errors.Is(err, proximity.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
			return
		}
		h.Logger.Error("failed to read pending state",
			zap.String("sessionID", sessionID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read pending state"})
		return
	}
	c.JSON(http.StatusOK, pending)
}
