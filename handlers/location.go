package handlers

import (
	"errors"
	"net/http"

	locationRepo "studyon/database/repository/location"
	"studyon/models"
	locationSvc "studyon/services/location"
	"studyon/services/proximity"
	"studyon/services/rating"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LocationHandler serves the location feed and submission endpoints.
type LocationHandler struct {
	Service   locationSvc.LocationService
	Rating    rating.RatingService
	Proximity *proximity.Service
	Logger    *zap.Logger
}

// NewLocationHandler builds a LocationHandler.
func NewLocationHandler(svc locationSvc.LocationService, ratingSvc rating.RatingService, prox *proximity.Service, logger *zap.Logger) *LocationHandler {
	return &LocationHandler{
		Service:   svc,
		Rating:    ratingSvc,
		Proximity: prox,
		Logger:    logger,
	}
}

// ListLocationsHandler returns all study locations with derived signals.
func (h *LocationHandler) ListLocationsHandler(c *gin.Context) {
	views, err := h.Service.ListLocations(c.Request.Context())
	if err != nil {
		h.Logger.Error("failed to list locations", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch locations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"locations": views})
}

// GetLocationHandler returns one study location by ID.
func (h *LocationHandler) GetLocationHandler(c *gin.Context) {
	id := c.Param("id")
	view, err := h.Service.GetLocation(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, locationRepo.ErrLocationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Location not found"})
			return
		}
		h.Logger.Error("failed to get location", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch location"})
		return
	}
	c.JSON(http.StatusOK, view)
}

// CreateLocationHandler inserts a new venue document.
func (h *LocationHandler) CreateLocationHandler(c *gin.Context) {
	var loc models.StudyLocation
	if err := c.ShouldBindJSON(&loc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	id, err := h.Service.CreateLocation(c.Request.Context(), loc)
	if err != nil {
		h.Logger.Error("failed to create location", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create location"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// UpdateLocationHandler merges fields into an existing document.
func (h *LocationHandler) UpdateLocationHandler(c *gin.Context) {
	id := c.Param("id")
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if err := h.Service.UpdateLocation(c.Request.Context(), id, fields); err != nil {
		if errors.Is(err, locationRepo.ErrLocationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Location not found"})
			return
		}
		h.Logger.Error("failed to update location", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update location"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// SubmitRatingHandler folds a star submission into the running mean.
func (h *LocationHandler) SubmitRatingHandler(c *gin.Context) {
	id := c.Param("id")
	var input struct {
		Stars float64 `json:"stars"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	loc, err := h.Rating.SubmitRating(c.Request.Context(), id, input.Stars)
	if err != nil {
		switch {
		case errors.Is(err, rating.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, locationRepo.ErrLocationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Location not found"})
		default:
			h.Logger.Error("failed to submit rating", zap.String("id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit rating"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rating": loc.Rating,
		"num":    loc.Num,
	})
}

// SubmitSampleHandler appends a crowdedness/noise reading to the log.
// A session ID in the body clears that session's submission gate.
func (h *LocationHandler) SubmitSampleHandler(c *gin.Context) {
	id := c.Param("id")
	var input struct {
		Crowdedness float64 `json:"crowdedness"`
		Noise       float64 `json:"noise"`
		SessionID   string  `json:"sessionId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	err := h.Rating.SubmitDynamicSample(c.Request.Context(), id, input.Crowdedness, input.Noise)
	if err != nil {
		switch {
		case errors.Is(err, rating.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, locationRepo.ErrLocationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Location not found"})
		default:
			h.Logger.Error("failed to submit sample", zap.String("id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit sample"})
		}
		return
	}

	if input.SessionID != "" && h.Proximity != nil {
		if err := h.Proximity.MarkSubmitted(input.SessionID); err != nil {
			// An unknown session does not undo a landed submission.
			h.Logger.Warn("could not clear submission gate",
				zap.String("sessionID", input.SessionID), zap.Error(err))
		}
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "recorded"})
}

// AddCommentHandler appends a comment to the location document.
func (h *LocationHandler) AddCommentHandler(c *gin.Context) {
	id := c.Param("id")
	var comment models.Comment
	if err := c.ShouldBindJSON(&comment); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if comment.Name == "" || comment.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Comment requires name and content"})
		return
	}

	if err := h.Service.AddComment(c.Request.Context(), id, comment); err != nil {
		if errors.Is(err, locationRepo.ErrLocationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Location not found"})
			return
		}
		h.Logger.Error("failed to add comment", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add comment"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "added"})
}
