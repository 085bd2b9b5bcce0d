package scheduler

import (
	"time"

	"github.com/mfalgas/christmas-planner-backend/internal/app/service"
	"github.com/mfalgas/christmas-planner-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// Read notifications older than this are purged.
const notificationRetention = 30 * 24 * time.Hour

// NotificationCleanupScheduler purges old read notifications once a day.
type NotificationCleanupScheduler struct {
	cron                *cron.Cron
	notificationService service.NotificationService
}

func NewNotificationCleanupScheduler(notificationService service.NotificationService) *NotificationCleanupScheduler {
	return &NotificationCleanupScheduler{
		cron:                cron.New(),
		notificationService: notificationService,
	}
}

func (s *NotificationCleanupScheduler) Start() error {
	// Daily at 04:00, when nobody is browsing wishlists.
	_, err := s.cron.AddFunc("0 4 * * *", func() {
		logger.Info("Starting scheduled notification cleanup", nil)

		deleted, err := s.notificationService.CleanupRead(notificationRetention)
		if err != nil {
			logger.Error("Failed to clean up notifications from scheduler", err)
			return
		}

		logger.Info("Finished scheduled notification cleanup", map[string]interface{}{
			"deleted": deleted,
		})
	})

	if err != nil {
		logger.Error("Failed to add cron job for notification cleanup", err)
		return err
	}

	s.cron.Start()
	logger.Info("Notification cleanup scheduler started successfully (daily at 4:00 AM)", nil)

	return nil
}

func (s *NotificationCleanupScheduler) Stop() {
	logger.Info("Stopping notification cleanup scheduler...", nil)
	s.cron.Stop()
	logger.Info("Notification cleanup scheduler stopped", nil)
}
