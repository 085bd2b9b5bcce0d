package repository

import (
	"github.com/mfalgas/christmas-planner-backend/internal/app/model"
	"github.com/mfalgas/christmas-planner-backend/pkg/logger"
	"gorm.io/gorm"
)

type AssignmentRepository interface {
	Create(assignment *model.Assignment) error
	FindByWishID(wishID uint) (*model.Assignment, error)
	FindByWishIDs(wishIDs []uint) ([]model.Assignment, error)
	FindByClaimer(userID uint) ([]model.Assignment, error)
	DeleteByWishAndClaimer(wishID, claimerID uint) (int64, error)
}

type assignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

// Create inserts a claim. The unique index on wish_id rejects a second claim
// on the same wish; callers map that violation to the already-assigned error.
func (r *assignmentRepository) Create(assignment *model.Assignment) error {
	if err := r.db.Create(assignment).Error; err != nil {
		logger.Error("Failed to create assignment in database", err, map[string]interface{}{
			"wish_id": assignment.WishID,
		})
		return err
	}

	logger.Debug("Assignment created in database", map[string]interface{}{
		"assignment_id": assignment.ID,
		"wish_id":       assignment.WishID,
		"external":      assignment.IsExternal(),
	})
	return nil
}

func (r *assignmentRepository) FindByWishID(wishID uint) (*model.Assignment, error) {
	var assignment model.Assignment
	if err := r.db.Where("wish_id = ?", wishID).First(&assignment).Error; err != nil {
		return nil, err
	}
	return &assignment, nil
}

// FindByWishIDs loads the claims for a batch of wishes, one query for a whole
// list view.
func (r *assignmentRepository) FindByWishIDs(wishIDs []uint) ([]model.Assignment, error) {
	if len(wishIDs) == 0 {
		return nil, nil
	}

	var assignments []model.Assignment
	if err := r.db.Where("wish_id IN ?", wishIDs).Find(&assignments).Error; err != nil {
		logger.Error("Failed to find assignments by wish IDs in database", err, map[string]interface{}{
			"wish_count": len(wishIDs),
		})
		return nil, err
	}
	return assignments, nil
}

func (r *assignmentRepository) FindByClaimer(userID uint) ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := r.db.Where("assigned_by = ?", userID).
		Preload("Wish").
		Preload("Wish.User").
		Order("created_at DESC").
		Find(&assignments).Error
	if err != nil {
		logger.Error("Failed to find assignments by claimer in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Debug("Assignments found by claimer in database", map[string]interface{}{
		"user_id": userID,
		"count":   len(assignments),
	})
	return assignments, nil
}

// DeleteByWishAndClaimer removes a claim only when both the wish and the
// claimer match. Zero rows affected is not an error: unclaiming something you
// never claimed is a silent no-op.
func (r *assignmentRepository) DeleteByWishAndClaimer(wishID, claimerID uint) (int64, error) {
	result := r.db.Where("wish_id = ? AND assigned_by = ?", wishID, claimerID).
		Delete(&model.Assignment{})
	if result.Error != nil {
		logger.Error("Failed to delete assignment from database", result.Error, map[string]interface{}{
			"wish_id": wishID,
			"user_id": claimerID,
		})
		return 0, result.Error
	}

	logger.Debug("Assignment delete executed in database", map[string]interface{}{
		"wish_id":       wishID,
		"user_id":       claimerID,
		"rows_affected": result.RowsAffected,
	})
	return result.RowsAffected, nil
}
