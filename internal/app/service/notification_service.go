package service

import (
	"fmt"
	"time"

	"github.com/mfalgas/christmas-planner-backend/internal/app/model"
	"github.com/mfalgas/christmas-planner-backend/internal/app/repository"
	"github.com/mfalgas/christmas-planner-backend/pkg/logger"
	"github.com/mfalgas/christmas-planner-backend/pkg/mailer"
)

// NotificationService owns the in-app feed, the per-member settings and the
// new-wish fan-out. The fan-out is fire-and-forget: it runs after the wish
// response is already on the wire and only ever logs its failures.
type NotificationService interface {
	List(userID uint, limit int, unreadOnly bool) ([]model.Notification, int64, error)
	MarkRead(userID uint, ids []uint) error
	MarkAllRead(userID uint) error
	FanOutNewWish(creatorID uint, wish *model.Wish)
	CleanupRead(olderThan time.Duration) (int64, error)

	GetPreferences(userID uint) (*model.UserPreferences, error)
	UpdatePreferences(userID uint, emailEnabled bool) (*model.UserPreferences, error)
}

type notificationService struct {
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
	mail             *mailer.Mailer
	appBaseURL       string
}

func NewNotificationService(
	notificationRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	mail *mailer.Mailer,
	appBaseURL string,
) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		mail:             mail,
		appBaseURL:       appBaseURL,
	}
}

func (s *notificationService) List(userID uint, limit int, unreadOnly bool) ([]model.Notification, int64, error) {
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	notifications, err := s.notificationRepo.FindByUser(userID, limit, unreadOnly)
	if err != nil {
		return nil, 0, err
	}

	unread, err := s.notificationRepo.CountUnread(userID)
	if err != nil {
		return nil, 0, err
	}

	return notifications, unread, nil
}

func (s *notificationService) MarkRead(userID uint, ids []uint) error {
	return s.notificationRepo.MarkRead(userID, ids)
}

func (s *notificationService) MarkAllRead(userID uint) error {
	return s.notificationRepo.MarkAllRead(userID)
}

// FanOutNewWish notifies every member except the creator that a wish
// appeared: an in-app notification always, an email only for members who
// kept email notifications on.
func (s *notificationService) FanOutNewWish(creatorID uint, wish *model.Wish) {
	creator, err := s.userRepo.FindByID(creatorID)
	if err != nil {
		logger.Error("Fan-out aborted: creator not found", err, map[string]interface{}{
			"user_id": creatorID,
		})
		return
	}

	recipients, err := s.userRepo.FindAllExcept(creatorID)
	if err != nil {
		logger.Error("Fan-out aborted: could not list family members", err, map[string]interface{}{
			"user_id": creatorID,
		})
		return
	}
	if len(recipients) == 0 {
		return
	}

	link := fmt.Sprintf("/family/%d", creator.ID)
	notifications := make([]model.Notification, len(recipients))
	for i, member := range recipients {
		notifications[i] = model.Notification{
			UserID:  member.ID,
			Type:    model.NotificationTypeNewWish,
			Title:   fmt.Sprintf("%s ha añadido un regalo", creator.Name),
			Message: wish.Title,
			Link:    &link,
		}
	}

	if err := s.notificationRepo.CreateBatch(notifications); err != nil {
		logger.Error("Fan-out failed to create notifications", err, map[string]interface{}{
			"wish_id": wish.ID,
			"count":   len(notifications),
		})
		// Keep going: email delivery is independent of the in-app feed.
	}

	emailed := 0
	for _, member := range recipients {
		if !s.emailEnabledFor(member.ID) {
			continue
		}

		subject, html := mailer.NewWishEmail(creator.Name, wish.Title, s.appBaseURL+link)
		if err := s.mail.Send(member.Email, subject, html); err != nil {
			logger.Error("Fan-out failed to send email", err, map[string]interface{}{
				"user_id": member.ID,
			})
			continue
		}
		emailed++
	}

	logger.Info("New wish fan-out completed", map[string]interface{}{
		"wish_id":       wish.ID,
		"notifications": len(notifications),
		"emails":        emailed,
	})
}

func (s *notificationService) emailEnabledFor(userID uint) bool {
	prefs, err := s.notificationRepo.FindPreferences(userID)
	if err != nil {
		// No settings row yet means the default: email on.
		return true
	}
	return prefs.EmailNotificationsEnabled
}

// CleanupRead purges read notifications older than the retention window.
func (s *notificationService) CleanupRead(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)
	deleted, err := s.notificationRepo.DeleteReadOlderThan(cutoff)
	if err != nil {
		return 0, err
	}

	logger.Info("Old notifications cleaned up", map[string]interface{}{
		"deleted": deleted,
		"cutoff":  cutoff,
	})
	return deleted, nil
}

// GetPreferences reads a member's settings, creating the default row on
// first access.
func (s *notificationService) GetPreferences(userID uint) (*model.UserPreferences, error) {
	prefs, err := s.notificationRepo.FindPreferences(userID)
	if err == nil {
		return prefs, nil
	}

	prefs = &model.UserPreferences{
		UserID:                    userID,
		EmailNotificationsEnabled: true,
	}
	if err := s.notificationRepo.CreatePreferences(prefs); err != nil {
		return nil, err
	}

	logger.Debug("Default preferences created", map[string]interface{}{
		"user_id": userID,
	})
	return prefs, nil
}

func (s *notificationService) UpdatePreferences(userID uint, emailEnabled bool) (*model.UserPreferences, error) {
	prefs, err := s.notificationRepo.UpsertPreferences(userID, emailEnabled)
	if err != nil {
		return nil, err
	}

	logger.Info("Preferences updated", map[string]interface{}{
		"user_id":                     userID,
		"email_notifications_enabled": emailEnabled,
	})
	return prefs, nil
}
