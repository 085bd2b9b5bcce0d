package repository

import (
	"github.com/mfalgas/christmas-planner-backend/internal/app/model"
	"github.com/mfalgas/christmas-planner-backend/pkg/logger"
	"gorm.io/gorm"
)

type WishRepository interface {
	Create(wish *model.Wish) error
	FindByID(id uint) (*model.Wish, error)
	FindByUserID(userID uint) ([]model.Wish, error)
	Update(wish *model.Wish) error
	DeleteWithAssignments(wishID uint) error
}

type wishRepository struct {
	db *gorm.DB
}

func NewWishRepository(db *gorm.DB) WishRepository {
	return &wishRepository{db: db}
}

func (r *wishRepository) Create(wish *model.Wish) error {
	if err := r.db.Create(wish).Error; err != nil {
		logger.Error("Failed to create wish in database", err, map[string]interface{}{
			"user_id": wish.UserID,
			"title":   wish.Title,
		})
		return err
	}

	logger.Debug("Wish created in database", map[string]interface{}{
		"wish_id": wish.ID,
		"user_id": wish.UserID,
	})
	return nil
}

func (r *wishRepository) FindByID(id uint) (*model.Wish, error) {
	var wish model.Wish
	if err := r.db.First(&wish, id).Error; err != nil {
		return nil, err
	}
	return &wish, nil
}

// FindByUserID returns a member's wishes, most wanted first: priority
// descending, then newest first within the same priority.
func (r *wishRepository) FindByUserID(userID uint) ([]model.Wish, error) {
	var wishes []model.Wish
	err := r.db.Where("user_id = ?", userID).
		Order("priority DESC").
		Order("created_at DESC").
		Find(&wishes).Error
	if err != nil {
		logger.Error("Failed to find wishes by user ID in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Debug("Wishes found by user ID in database", map[string]interface{}{
		"user_id": userID,
		"count":   len(wishes),
	})
	return wishes, nil
}

func (r *wishRepository) Update(wish *model.Wish) error {
	if err := r.db.Save(wish).Error; err != nil {
		logger.Error("Failed to update wish in database", err, map[string]interface{}{
			"wish_id": wish.ID,
		})
		return err
	}

	logger.Debug("Wish updated in database", map[string]interface{}{
		"wish_id": wish.ID,
	})
	return nil
}

// DeleteWithAssignments removes a wish and any claim on it in one
// transaction, so a deleted wish never leaves an orphaned assignment behind.
func (r *wishRepository) DeleteWithAssignments(wishID uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("wish_id = ?", wishID).Delete(&model.Assignment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Wish{}, wishID).Error
	})
	if err != nil {
		logger.Error("Failed to delete wish from database", err, map[string]interface{}{
			"wish_id": wishID,
		})
		return err
	}

	logger.Debug("Wish deleted from database", map[string]interface{}{
		"wish_id": wishID,
	})
	return nil
}
