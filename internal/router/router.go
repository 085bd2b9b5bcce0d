package router

import (
	"github.com/gin-gonic/gin"
	"github.com/mfalgas/christmas-planner-backend/config"
	"github.com/mfalgas/christmas-planner-backend/internal/app/controller"
	"github.com/mfalgas/christmas-planner-backend/internal/middleware"
)

type Router struct {
	authController         *controller.AuthController
	userController         *controller.UserController
	wishController         *controller.WishController
	assignmentController   *controller.AssignmentController
	surpriseGiftController *controller.SurpriseGiftController
	notificationController *controller.NotificationController
	uploadController       *controller.UploadController
	exportController       *controller.ExportController
	authMiddleware         *middleware.AuthMiddleware
	config                 *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	userController *controller.UserController,
	wishController *controller.WishController,
	assignmentController *controller.AssignmentController,
	surpriseGiftController *controller.SurpriseGiftController,
	notificationController *controller.NotificationController,
	uploadController *controller.UploadController,
	exportController *controller.ExportController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:         authController,
		userController:         userController,
		wishController:         wishController,
		assignmentController:   assignmentController,
		surpriseGiftController: surpriseGiftController,
		notificationController: notificationController,
		uploadController:       uploadController,
		exportController:       exportController,
		authMiddleware:         authMiddleware,
		config:                 cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "Christmas planner API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/login", r.authController.Login)
			auth.POST("/logout", r.authMiddleware.Authenticate(), r.authController.Logout)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.GetMe)
		}

		profile := v1.Group("/profile")
		profile.Use(r.authMiddleware.Authenticate())
		{
			profile.PUT("/avatar", r.authController.UpdateAvatar)
		}

		members := v1.Group("/members")
		members.Use(r.authMiddleware.Authenticate())
		{
			members.GET("", r.userController.ListMembers)
			members.GET("/:id", r.userController.GetMemberPage)
		}

		wishes := v1.Group("/wishes")
		wishes.Use(r.authMiddleware.Authenticate())
		{
			wishes.GET("", r.wishController.ListWishes)
			wishes.POST("", r.wishController.CreateWish)
			wishes.PUT("/:id", r.wishController.UpdateWish)
			wishes.DELETE("/:id", r.wishController.DeleteWish)
		}

		assignments := v1.Group("/assignments")
		assignments.Use(r.authMiddleware.Authenticate())
		{
			assignments.GET("", r.assignmentController.ListMine)
			assignments.POST("", r.assignmentController.Claim)
			assignments.DELETE("", r.assignmentController.Unclaim)
		}

		gifts := v1.Group("/surprise-gifts")
		gifts.Use(r.authMiddleware.Authenticate())
		{
			gifts.GET("", r.surpriseGiftController.ListGifts)
			gifts.POST("", r.surpriseGiftController.CreateGift)
			gifts.DELETE("/:id", r.surpriseGiftController.DeleteGift)
		}

		notifications := v1.Group("/notifications")
		notifications.Use(r.authMiddleware.Authenticate())
		{
			notifications.GET("", r.notificationController.ListNotifications)
			notifications.PUT("/read", r.notificationController.MarkRead)
		}

		settings := v1.Group("/settings")
		settings.Use(r.authMiddleware.Authenticate())
		{
			settings.GET("/notifications", r.notificationController.GetSettings)
			settings.PUT("/notifications", r.notificationController.UpdateSettings)
		}

		uploads := v1.Group("/uploads")
		uploads.Use(r.authMiddleware.Authenticate())
		{
			uploads.POST("/avatar", r.uploadController.PresignAvatar)
		}

		exports := v1.Group("/exports")
		exports.Use(r.authMiddleware.Authenticate())
		{
			exports.GET("/wishes", r.exportController.ExportWishes)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
