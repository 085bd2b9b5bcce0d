package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mfalgas/christmas-planner-backend/internal/app/service"
	"github.com/mfalgas/christmas-planner-backend/internal/errors"
	"github.com/mfalgas/christmas-planner-backend/internal/middleware"
)

type NotificationController struct {
	notificationService service.NotificationService
}

func NewNotificationController(notificationService service.NotificationService) *NotificationController {
	return &NotificationController{
		notificationService: notificationService,
	}
}

type MarkReadRequest struct {
	NotificationIDs []uint `json:"notification_ids"`
	MarkAll         bool   `json:"mark_all"`
}

type UpdateSettingsRequest struct {
	EmailNotificationsEnabled *bool `json:"email_notifications_enabled" binding:"required"`
}

// ListNotifications returns the caller's notifications with the unread count
// GET /api/v1/notifications
func (ctrl *NotificationController) ListNotifications(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	limit := 0
	if limitParam := c.Query("limit"); limitParam != "" {
		parsed, err := strconv.Atoi(limitParam)
		if err != nil || parsed < 1 {
			errors.BadRequest(c, errors.ValidationInvalidRange, "El límite debe ser un número positivo")
			return
		}
		limit = parsed
	}
	unreadOnly := c.Query("unread_only") == "true"

	notifications, unreadCount, err := ctrl.notificationService.List(userID, limit, unreadOnly)
	if err != nil {
		log.Error("Failed to list notifications", err, map[string]interface{}{
			"user_id": userID,
		})
		errors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"unread_count":  unreadCount,
	})
}

// MarkRead marks the given notifications, or all of them, as read
// PUT /api/v1/notifications/read
func (ctrl *NotificationController) MarkRead(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	var req MarkReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Datos no válidos")
		return
	}

	if !req.MarkAll && len(req.NotificationIDs) == 0 {
		errors.BadRequest(c, errors.ValidationRequired, "Indica qué notificaciones marcar como leídas")
		return
	}

	var err error
	if req.MarkAll {
		err = ctrl.notificationService.MarkAllRead(userID)
	} else {
		err = ctrl.notificationService.MarkRead(userID, req.NotificationIDs)
	}
	if err != nil {
		log.Error("Failed to mark notifications read", err, map[string]interface{}{
			"user_id":  userID,
			"mark_all": req.MarkAll,
		})
		errors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Notificaciones marcadas como leídas",
	})
}

// GetSettings returns the caller's notification preferences
// GET /api/v1/settings/notifications
func (ctrl *NotificationController) GetSettings(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	prefs, err := ctrl.notificationService.GetPreferences(userID)
	if err != nil {
		log.Error("Failed to fetch notification settings", err, map[string]interface{}{
			"user_id": userID,
		})
		errors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"settings": prefs,
	})
}

// UpdateSettings toggles the caller's email notifications
// PUT /api/v1/settings/notifications
func (ctrl *NotificationController) UpdateSettings(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Datos no válidos")
		return
	}

	prefs, err := ctrl.notificationService.UpdatePreferences(userID, *req.EmailNotificationsEnabled)
	if err != nil {
		log.Error("Failed to update notification settings", err, map[string]interface{}{
			"user_id": userID,
		})
		errors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"settings": prefs,
	})
}
