package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mfalgas/christmas-planner-backend/config"
	"github.com/mfalgas/christmas-planner-backend/internal/app/controller"
	"github.com/mfalgas/christmas-planner-backend/internal/app/repository"
	"github.com/mfalgas/christmas-planner-backend/internal/app/service"
	"github.com/mfalgas/christmas-planner-backend/internal/db"
	"github.com/mfalgas/christmas-planner-backend/internal/middleware"
	"github.com/mfalgas/christmas-planner-backend/internal/router"
	"github.com/mfalgas/christmas-planner-backend/internal/scheduler"
	"github.com/mfalgas/christmas-planner-backend/internal/storage"
	"github.com/mfalgas/christmas-planner-backend/pkg/logger"
	"github.com/mfalgas/christmas-planner-backend/pkg/mailer"
	"github.com/mfalgas/christmas-planner-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting Christmas Planner Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Redis backs the logout token blacklist. The app still works without it;
	// logged-out tokens just stay valid until they expire.
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis unavailable, token revocation disabled", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer redis.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	wishRepo := repository.NewWishRepository(db.GetDB())
	assignmentRepo := repository.NewAssignmentRepository(db.GetDB())
	giftRepo := repository.NewSurpriseGiftRepository(db.GetDB())
	notificationRepo := repository.NewNotificationRepository(db.GetDB())

	// Initialize services
	mail := mailer.New(cfg.Email)
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.TokenExpiry)
	notificationService := service.NewNotificationService(notificationRepo, userRepo, mail, cfg.Server.BaseURL)
	wishService := service.NewWishService(wishRepo, assignmentRepo, notificationService)
	assignmentService := service.NewAssignmentService(assignmentRepo, wishRepo)
	giftService := service.NewSurpriseGiftService(giftRepo, userRepo)
	userService := service.NewUserService(userRepo, wishService, giftService)
	exportService := service.NewExportService(userRepo, wishRepo, assignmentRepo)

	// Initialize storage
	s3Storage := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	// Initialize controllers
	authController := controller.NewAuthController(authService)
	userController := controller.NewUserController(userService)
	wishController := controller.NewWishController(wishService)
	assignmentController := controller.NewAssignmentController(assignmentService)
	giftController := controller.NewSurpriseGiftController(giftService)
	notificationController := controller.NewNotificationController(notificationService)
	uploadController := controller.NewUploadController(s3Storage)
	exportController := controller.NewExportController(exportService)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Start the notification cleanup scheduler
	cleanupScheduler := scheduler.NewNotificationCleanupScheduler(notificationService)
	if err := cleanupScheduler.Start(); err != nil {
		logger.Fatal("Failed to start notification cleanup scheduler", err)
	}
	defer cleanupScheduler.Stop()

	// Setup router
	r := router.NewRouter(
		authController,
		userController,
		wishController,
		assignmentController,
		giftController,
		notificationController,
		uploadController,
		exportController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
