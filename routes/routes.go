package routes

import (
	"net/http"
	"time"

	"studyon/handlers"
	"studyon/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterLocationRoutes registers the location feed and submission
// endpoints. Reads are public; submissions require a signed-in user.
func RegisterLocationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/locations")
	{
		api.GET("", hb.ListLocationsHandler)
		api.GET("/:id", hb.GetLocationHandler)

		protected := api.Group("")
		protected.Use(middleware.FirebaseAuthMiddleware())
		protected.POST("", hb.CreateLocationHandler)
		protected.PUT("/:id", hb.UpdateLocationHandler)
		protected.POST("/:id/rating", hb.SubmitRatingHandler)
		protected.POST("/:id/samples", hb.SubmitSampleHandler)
		protected.POST("/:id/comments", hb.AddCommentHandler)
	}
}

// RegisterProximityRoutes registers the position-fix stream endpoints.
// Everything after session creation requires the session token.
func RegisterProximityRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/proximity")
	{
		api.POST("/session", hb.CreateSessionHandler)

		protected := api.Group("")
		protected.Use(middleware.SessionAuthMiddleware())
		protected.POST("/fix", hb.RecordFixHandler)
		protected.POST("/mode", hb.SetModeHandler)
		protected.GET("/pending", hb.PendingHandler)
	}
}

// RegisterUserRoutes registers the favorites and device token
// endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.Use(middleware.FirebaseAuthMiddleware())
		api.GET("/favorites", hb.GetFavoritesHandler)
		api.PUT("/favorites/:id", hb.AddFavoriteHandler)
		api.DELETE("/favorites/:id", hb.RemoveFavoriteHandler)
		api.PUT("/fcm-token", hb.UpdateFCMTokenHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm StudyOn"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Session-Token"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterLocationRoutes(r, hb)
	RegisterProximityRoutes(r, hb)
	RegisterUserRoutes(r, hb)
	RegisterHealthRoute(r)
}
