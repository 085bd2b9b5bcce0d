package service

import (
	"context"
	"errors"
	"time"

	"github.com/mfalgas/christmas-planner-backend/internal/app/model"
	"github.com/mfalgas/christmas-planner-backend/internal/app/repository"
	"github.com/mfalgas/christmas-planner-backend/pkg/logger"
	"github.com/mfalgas/christmas-planner-backend/pkg/redis"
	"github.com/mfalgas/christmas-planner-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrEmailNotAllowed = errors.New("email is not in the family allowlist")
	ErrUserNotFound    = errors.New("user not found")
)

// AuthService implements login by email allowlist: whoever the seed command
// created may log in, nobody else. There are no passwords; possession of the
// family email is the whole credential, as in the original household setup.
type AuthService interface {
	Login(email string) (*model.User, string, error)
	Logout(ctx context.Context, token string) error
	GetUserByID(userID uint) (*model.User, error)
	UpdateAvatar(userID uint, avatarURL string) (*model.User, error)
}

type authService struct {
	userRepo    repository.UserRepository
	jwtSecret   string
	tokenExpiry time.Duration
}

func NewAuthService(userRepo repository.UserRepository, jwtSecret string, tokenExpiry time.Duration) AuthService {
	return &authService{
		userRepo:    userRepo,
		jwtSecret:   jwtSecret,
		tokenExpiry: tokenExpiry,
	}
}

func (s *authService) Login(email string) (*model.User, string, error) {
	logger.Info("Login attempt", map[string]interface{}{
		"email": email,
	})

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Login rejected: email not in allowlist", map[string]interface{}{
				"email": email,
			})
			return nil, "", ErrEmailNotAllowed
		}
		logger.Error("Failed to look up user for login", err, map[string]interface{}{
			"email": email,
		})
		return nil, "", err
	}

	token, err := util.GenerateToken(user.ID, user.Email, s.jwtSecret, s.tokenExpiry)
	if err != nil {
		logger.Error("Failed to generate session token", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, "", err
	}

	logger.Info("Login successful", map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
	})
	return user, token, nil
}

// Logout blacklists the token for its remaining lifetime. Best effort: with
// Redis down the token simply rides out its expiry.
func (s *authService) Logout(ctx context.Context, token string) error {
	claims, err := util.ValidateToken(token, s.jwtSecret)
	if err != nil {
		// Expired or garbage tokens have nothing left to revoke.
		return nil
	}

	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining <= 0 {
		return nil
	}

	if err := redis.BlacklistToken(ctx, token, remaining); err != nil {
		logger.Warn("Failed to blacklist token on logout", map[string]interface{}{
			"user_id": claims.UserID,
			"error":   err.Error(),
		})
		return err
	}

	logger.Info("Logout successful", map[string]interface{}{
		"user_id": claims.UserID,
	})
	return nil
}

func (s *authService) GetUserByID(userID uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) UpdateAvatar(userID uint, avatarURL string) (*model.User, error) {
	logger.Info("Updating avatar", map[string]interface{}{
		"user_id": userID,
	})

	if err := s.userRepo.UpdateAvatarURL(userID, avatarURL); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return s.userRepo.FindByID(userID)
}
