package repository

import (
	"github.com/mfalgas/christmas-planner-backend/internal/app/model"
	"github.com/mfalgas/christmas-planner-backend/pkg/logger"
	"gorm.io/gorm"
)

type SurpriseGiftRepository interface {
	Create(gift *model.SurpriseGift) error
	FindByRecipient(recipientID uint) ([]model.SurpriseGift, error)
	FindByGiver(giverID uint) ([]model.SurpriseGift, error)
	DeleteByIDAndGiver(giftID, giverID uint) (int64, error)
}

type surpriseGiftRepository struct {
	db *gorm.DB
}

func NewSurpriseGiftRepository(db *gorm.DB) SurpriseGiftRepository {
	return &surpriseGiftRepository{db: db}
}

func (r *surpriseGiftRepository) Create(gift *model.SurpriseGift) error {
	if err := r.db.Create(gift).Error; err != nil {
		logger.Error("Failed to create surprise gift in database", err, map[string]interface{}{
			"giver_id":     gift.GiverID,
			"recipient_id": gift.RecipientID,
		})
		return err
	}

	logger.Debug("Surprise gift created in database", map[string]interface{}{
		"surprise_gift_id": gift.ID,
		"giver_id":         gift.GiverID,
		"recipient_id":     gift.RecipientID,
	})
	return nil
}

func (r *surpriseGiftRepository) FindByRecipient(recipientID uint) ([]model.SurpriseGift, error) {
	var gifts []model.SurpriseGift
	err := r.db.Where("recipient_id = ?", recipientID).
		Preload("Giver").
		Order("created_at DESC").
		Find(&gifts).Error
	if err != nil {
		logger.Error("Failed to find surprise gifts by recipient in database", err, map[string]interface{}{
			"recipient_id": recipientID,
		})
		return nil, err
	}
	return gifts, nil
}

// FindByGiver returns the gifts a member is giving, recipient preloaded for
// the "gifts I'm giving" list.
func (r *surpriseGiftRepository) FindByGiver(giverID uint) ([]model.SurpriseGift, error) {
	var gifts []model.SurpriseGift
	err := r.db.Where("giver_id = ?", giverID).
		Preload("Recipient").
		Order("created_at DESC").
		Find(&gifts).Error
	if err != nil {
		logger.Error("Failed to find surprise gifts by giver in database", err, map[string]interface{}{
			"giver_id": giverID,
		})
		return nil, err
	}
	return gifts, nil
}

// DeleteByIDAndGiver removes a gift only when the requester is its giver.
// Zero rows affected is silent success, same passive denial as unclaim.
func (r *surpriseGiftRepository) DeleteByIDAndGiver(giftID, giverID uint) (int64, error) {
	result := r.db.Where("id = ? AND giver_id = ?", giftID, giverID).
		Delete(&model.SurpriseGift{})
	if result.Error != nil {
		logger.Error("Failed to delete surprise gift from database", result.Error, map[string]interface{}{
			"surprise_gift_id": giftID,
			"giver_id":         giverID,
		})
		return 0, result.Error
	}

	logger.Debug("Surprise gift delete executed in database", map[string]interface{}{
		"surprise_gift_id": giftID,
		"giver_id":         giverID,
		"rows_affected":    result.RowsAffected,
	})
	return result.RowsAffected, nil
}
