package repository

import (
	"errors"
	"time"

	"github.com/mfalgas/christmas-planner-backend/internal/app/model"
	"github.com/mfalgas/christmas-planner-backend/pkg/logger"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	CreateBatch(notifications []model.Notification) error
	FindByUser(userID uint, limit int, unreadOnly bool) ([]model.Notification, error)
	CountUnread(userID uint) (int64, error)
	MarkRead(userID uint, ids []uint) error
	MarkAllRead(userID uint) error
	DeleteReadOlderThan(cutoff time.Time) (int64, error)

	// UserPreferences operations
	FindPreferences(userID uint) (*model.UserPreferences, error)
	CreatePreferences(prefs *model.UserPreferences) error
	UpsertPreferences(userID uint, emailEnabled bool) (*model.UserPreferences, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) CreateBatch(notifications []model.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	if err := r.db.Create(&notifications).Error; err != nil {
		logger.Error("Failed to create notifications in database", err, map[string]interface{}{
			"count": len(notifications),
		})
		return err
	}

	logger.Debug("Notifications created in database", map[string]interface{}{
		"count": len(notifications),
	})
	return nil
}

func (r *notificationRepository) FindByUser(userID uint, limit int, unreadOnly bool) ([]model.Notification, error) {
	query := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit)

	if unreadOnly {
		query = query.Where("read_at IS NULL")
	}

	var notifications []model.Notification
	if err := query.Find(&notifications).Error; err != nil {
		logger.Error("Failed to find notifications in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return notifications, nil
}

func (r *notificationRepository) CountUnread(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Count(&count).Error
	if err != nil {
		logger.Error("Failed to count unread notifications in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return 0, err
	}
	return count, nil
}

// MarkRead stamps the given notifications as read. Only rows owned by the
// user and still unread are touched; foreign or already-read ids are ignored.
func (r *notificationRepository) MarkRead(userID uint, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}

	now := time.Now()
	err := r.db.Model(&model.Notification{}).
		Where("user_id = ? AND id IN ? AND read_at IS NULL", userID, ids).
		Update("read_at", now).Error
	if err != nil {
		logger.Error("Failed to mark notifications as read in database", err, map[string]interface{}{
			"user_id": userID,
			"count":   len(ids),
		})
		return err
	}
	return nil
}

func (r *notificationRepository) MarkAllRead(userID uint) error {
	now := time.Now()
	err := r.db.Model(&model.Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Update("read_at", now).Error
	if err != nil {
		logger.Error("Failed to mark all notifications as read in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return err
	}
	return nil
}

// DeleteReadOlderThan drops read notifications created before the cutoff.
// The cleanup scheduler calls this daily.
func (r *notificationRepository) DeleteReadOlderThan(cutoff time.Time) (int64, error) {
	result := r.db.Where("read_at IS NOT NULL AND created_at < ?", cutoff).
		Delete(&model.Notification{})
	if result.Error != nil {
		logger.Error("Failed to delete old notifications from database", result.Error, map[string]interface{}{
			"cutoff": cutoff,
		})
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *notificationRepository) FindPreferences(userID uint) (*model.UserPreferences, error) {
	var prefs model.UserPreferences
	if err := r.db.Where("user_id = ?", userID).First(&prefs).Error; err != nil {
		return nil, err
	}
	return &prefs, nil
}

func (r *notificationRepository) CreatePreferences(prefs *model.UserPreferences) error {
	if err := r.db.Create(prefs).Error; err != nil {
		logger.Error("Failed to create user preferences in database", err, map[string]interface{}{
			"user_id": prefs.UserID,
		})
		return err
	}
	return nil
}

// UpsertPreferences writes the settings row, creating it if the member never
// opened the settings page before.
func (r *notificationRepository) UpsertPreferences(userID uint, emailEnabled bool) (*model.UserPreferences, error) {
	var prefs model.UserPreferences
	err := r.db.Where("user_id = ?", userID).First(&prefs).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Failed to upsert user preferences in database", err, map[string]interface{}{
				"user_id": userID,
			})
			return nil, err
		}
		prefs = model.UserPreferences{
			UserID:                    userID,
			EmailNotificationsEnabled: emailEnabled,
		}
		if err := r.db.Create(&prefs).Error; err != nil {
			return nil, err
		}
		return &prefs, nil
	}

	prefs.EmailNotificationsEnabled = emailEnabled
	if err := r.db.Save(&prefs).Error; err != nil {
		return nil, err
	}
	return &prefs, nil
}
