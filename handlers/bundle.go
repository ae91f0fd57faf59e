package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle collects every endpoint handed to route registration.
type HandlerBundle struct {
	// Location endpoints.
	ListLocationsHandler  gin.HandlerFunc
	GetLocationHandler    gin.HandlerFunc
	CreateLocationHandler gin.HandlerFunc
	UpdateLocationHandler gin.HandlerFunc
	SubmitRatingHandler   gin.HandlerFunc
	SubmitSampleHandler   gin.HandlerFunc
	AddCommentHandler     gin.HandlerFunc

	// Proximity endpoints.
	CreateSessionHandler gin.HandlerFunc
	RecordFixHandler     gin.HandlerFunc
	SetModeHandler       gin.HandlerFunc
	PendingHandler       gin.HandlerFunc

	// User endpoints.
	GetFavoritesHandler   gin.HandlerFunc
	AddFavoriteHandler    gin.HandlerFunc
	RemoveFavoriteHandler gin.HandlerFunc
	UpdateFCMTokenHandler gin.HandlerFunc
}
