package repository

import (
	"strings"

	"github.com/mfalgas/christmas-planner-backend/internal/app/model"
	"github.com/mfalgas/christmas-planner-backend/pkg/logger"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *model.User) error
	FindByID(id uint) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	FindAll() ([]model.User, error)
	FindAllExcept(userID uint) ([]model.User, error)
	UpdateAvatarURL(userID uint, avatarURL string) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	if err := r.db.Create(user).Error; err != nil {
		logger.Error("Failed to create user in database", err, map[string]interface{}{
			"email": user.Email,
		})
		return err
	}

	logger.Debug("User created in database", map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
	})
	return nil
}

func (r *userRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail looks up a member by email, case-insensitively. Emails are
// stored lowercase so lowering the input is enough.
func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	normalized := strings.ToLower(strings.TrimSpace(email))
	if err := r.db.Where("email = ?", normalized).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindAll() ([]model.User, error) {
	var users []model.User
	if err := r.db.Order("name").Find(&users).Error; err != nil {
		logger.Error("Failed to list users from database", err)
		return nil, err
	}
	return users, nil
}

// FindAllExcept returns every member but one. The notification fan-out uses
// it to reach the whole family except the actor.
func (r *userRepository) FindAllExcept(userID uint) ([]model.User, error) {
	var users []model.User
	if err := r.db.Where("id <> ?", userID).Order("name").Find(&users).Error; err != nil {
		logger.Error("Failed to list users from database", err, map[string]interface{}{
			"except_user_id": userID,
		})
		return nil, err
	}
	return users, nil
}

func (r *userRepository) UpdateAvatarURL(userID uint, avatarURL string) error {
	result := r.db.Model(&model.User{}).Where("id = ?", userID).Update("avatar_url", avatarURL)
	if result.Error != nil {
		logger.Error("Failed to update avatar URL in database", result.Error, map[string]interface{}{
			"user_id": userID,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	logger.Debug("Avatar URL updated in database", map[string]interface{}{
		"user_id": userID,
	})
	return nil
}
