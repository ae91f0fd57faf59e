package handlers

import (
	"net/http"

	userSvc "studyon/services/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler serves the favorites and device token endpoints, scoped
// to the authenticated Firebase UID.
type UserHandler struct {
	Service userSvc.UserService
	Logger  *zap.Logger
}

// NewUserHandler builds a UserHandler.
func NewUserHandler(svc userSvc.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{Service: svc, Logger: logger}
}

func (h *UserHandler) userID(c *gin.Context) (string, bool) {
	uid, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return uid.(string), true
}

// GetFavoritesHandler returns the user's favorite location IDs.
func (h *UserHandler) GetFavoritesHandler(c *gin.Context) {
	uid, ok := h.userID(c)
	if !ok {
		return
	}
	favorites, err := h.Service.GetFavorites(c.Request.Context(), uid)
	if err != nil {
		h.Logger.Error("failed to get favorites", zap.String("uid", uid), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch favorites"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": favorites})
}

// AddFavoriteHandler adds a location to the user's favorites.
func (h *UserHandler) AddFavoriteHandler(c *gin.Context) {
	uid, ok := h.userID(c)
	if !ok {
		return
	}
	locationID := c.Param("id")
	if err := h.Service.AddFavorite(c.Request.Context(), uid, locationID); err != nil {
		h.Logger.Error("failed to add favorite", zap.String("uid", uid), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add favorite"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "added"})
}

// RemoveFavoriteHandler removes a location from the user's favorites.
func (h *UserHandler) RemoveFavoriteHandler(c *gin.Context) {
	uid, ok := h.userID(c)
	if !ok {
		return
	}
	locationID := c.Param("id")
	if err := h.Service.RemoveFavorite(c.Request.Context(), uid, locationID); err != nil {
		h.Logger.Error("failed to remove favorite", zap.String("uid", uid), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove favorite"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "removed"})
}

// UpdateFCMTokenHandler stores the device token prompts are pushed to.
func (h *UserHandler) UpdateFCMTokenHandler(c *gin.Context) {
	uid, ok := h.userID(c)
	if !ok {
		return
	}
	var input struct {
		FCMToken string `json:"fcmToken"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.FCMToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fcmToken is required"})
		return
	}
	if err := h.Service.RegisterFCMToken(c.Request.Context(), uid, input.FCMToken); err != nil {
		h.Logger.Error("failed to update FCM token", zap.String("uid", uid), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}
