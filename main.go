// File: studyon/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"studyon/config"
	"studyon/cron"
	"studyon/database"
	locationRepoPkg "studyon/database/repository/location"
	userRepoPkg "studyon/database/repository/user"
	"studyon/handlers"
	"studyon/middleware"
	"studyon/routes"
	locationSvc "studyon/services/location"
	"studyon/services/notification"
	"studyon/services/proximity"
	"studyon/services/rating"
	userSvc "studyon/services/user"
	"studyon/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.FirebaseInit()

	if config.AppConfig.SeedSampleData {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := database.SeedSampleData(ctx); err != nil {
			logger.Sugar().Warnf("main: failed to seed sample data: %v", err)
		}
		cancel()
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Repositories.
	locRepo := locationRepoPkg.NewMongoLocationRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()

	// Services.
	ratingService := &rating.DefaultRatingService{
		Repo:       locRepo,
		WindowSize: config.AppConfig.RollingWindowSize,
	}
	locationService := &locationSvc.DefaultLocationService{
		Repo:   locRepo,
		Rating: ratingService,
		Cache:  utils.GetCacheClient(),
	}
	ratingService.Invalidate = locationService.InvalidateFeed

	userService := &userSvc.DefaultUserService{
		Repo: userRepo,
	}

	promptQueue := notification.NewPromptQueue()
	defer promptQueue.Close()

	proximityService := proximity.NewService(
		locationService,
		promptQueue,
		config.AppConfig.ProximityRadiusMeters,
		time.Duration(config.AppConfig.DwellThresholdSeconds)*time.Second,
		config.AppConfig.ProximityNearest,
	)

	notificationService := &notification.DefaultNotificationService{}
	cron.InitPromptWorker(notificationService)

	bgCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()
	go cron.StartSampleCompactor(bgCtx, locRepo, config.AppConfig.MaxDynamicSamples)
	go func() {
		// Change streams drop the cached feed when another writer
		// touches a location document.
		if err := locationService.WatchChanges(bgCtx); err != nil {
			logger.Sugar().Warnf("main: location change stream ended: %v", err)
		}
	}()

	// Handlers.
	locationHandler := handlers.NewLocationHandler(locationService, ratingService, proximityService, logger)
	proximityHandler := handlers.NewProximityHandler(proximityService, logger)
	userHandler := handlers.NewUserHandler(userService, logger)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		// Location endpoints.
		ListLocationsHandler:  locationHandler.ListLocationsHandler,
		GetLocationHandler:    locationHandler.GetLocationHandler,
		CreateLocationHandler: locationHandler.CreateLocationHandler,
		UpdateLocationHandler: locationHandler.UpdateLocationHandler,
		SubmitRatingHandler:   locationHandler.SubmitRatingHandler,
		SubmitSampleHandler:   locationHandler.SubmitSampleHandler,
		AddCommentHandler:     locationHandler.AddCommentHandler,

		// Proximity endpoints.
		CreateSessionHandler: proximityHandler.CreateSessionHandler,
		RecordFixHandler:     proximityHandler.RecordFixHandler,
		SetModeHandler:       proximityHandler.SetModeHandler,
		PendingHandler:       proximityHandler.PendingHandler,

		// User endpoints.
		GetFavoritesHandler:   userHandler.GetFavoritesHandler,
		AddFavoriteHandler:    userHandler.AddFavoriteHandler,
		RemoveFavoriteHandler: userHandler.RemoveFavoriteHandler,
		UpdateFCMTokenHandler: userHandler.UpdateFCMTokenHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
