package service

import (
	"errors"
	"strings"

	"github.com/mfalgas/christmas-planner-backend/internal/app/model"
	"github.com/mfalgas/christmas-planner-backend/internal/app/repository"
	"github.com/mfalgas/christmas-planner-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrSelfGift          = errors.New("cannot create a surprise gift for yourself")
	ErrGiftTitleRequired = errors.New("surprise gift title is required")
	ErrRecipientNotFound = errors.New("recipient not found")
)

// CreateSurpriseGiftInput is the payload for recording an unlisted gift.
type CreateSurpriseGiftInput struct {
	RecipientID uint
	Title       string
	Description string
	URL         string
}

// SurpriseGiftService keeps the one hard rule of surprise gifts: the
// recipient never sees them.
type SurpriseGiftService interface {
	Create(giverID uint, input CreateSurpriseGiftInput) (*model.SurpriseGift, error)
	Delete(giftID, requesterID uint) error
	ListFor(recipientID, viewerID uint) ([]model.SurpriseGift, error)
	ListGivenBy(giverID uint) ([]model.SurpriseGift, error)
}

type surpriseGiftService struct {
	giftRepo repository.SurpriseGiftRepository
	userRepo repository.UserRepository
}

func NewSurpriseGiftService(
	giftRepo repository.SurpriseGiftRepository,
	userRepo repository.UserRepository,
) SurpriseGiftService {
	return &surpriseGiftService{
		giftRepo: giftRepo,
		userRepo: userRepo,
	}
}

func (s *surpriseGiftService) Create(giverID uint, input CreateSurpriseGiftInput) (*model.SurpriseGift, error) {
	logger.Info("Creating surprise gift", map[string]interface{}{
		"giver_id":     giverID,
		"recipient_id": input.RecipientID,
	})

	if input.RecipientID == giverID {
		logger.Warn("Cannot create surprise gift: giver is the recipient", map[string]interface{}{
			"giver_id": giverID,
		})
		return nil, ErrSelfGift
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrGiftTitleRequired
	}

	if _, err := s.userRepo.FindByID(input.RecipientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot create surprise gift: recipient not found", map[string]interface{}{
				"recipient_id": input.RecipientID,
			})
			return nil, ErrRecipientNotFound
		}
		return nil, err
	}

	gift := &model.SurpriseGift{
		GiverID:     giverID,
		RecipientID: input.RecipientID,
		Title:       title,
		Description: normalizeOptional(input.Description),
		URL:         normalizeOptional(input.URL),
	}

	if err := s.giftRepo.Create(gift); err != nil {
		return nil, err
	}

	logger.Info("Surprise gift created successfully", map[string]interface{}{
		"surprise_gift_id": gift.ID,
		"giver_id":         giverID,
		"recipient_id":     input.RecipientID,
	})
	return gift, nil
}

// Delete removes a gift only if the requester is its giver; anything else is
// a silent no-op.
func (s *surpriseGiftService) Delete(giftID, requesterID uint) error {
	logger.Info("Deleting surprise gift", map[string]interface{}{
		"surprise_gift_id": giftID,
		"user_id":          requesterID,
	})

	rows, err := s.giftRepo.DeleteByIDAndGiver(giftID, requesterID)
	if err != nil {
		return err
	}

	if rows == 0 {
		logger.Debug("Surprise gift delete matched nothing", map[string]interface{}{
			"surprise_gift_id": giftID,
			"user_id":          requesterID,
		})
	}
	return nil
}

// ListFor returns the surprise gifts waiting for a member, unless the
// member themselves is asking, in which case it is always empty.
func (s *surpriseGiftService) ListFor(recipientID, viewerID uint) ([]model.SurpriseGift, error) {
	if recipientID == viewerID {
		logger.Debug("Recipient asked for their own surprise gifts, returning none", map[string]interface{}{
			"user_id": viewerID,
		})
		return []model.SurpriseGift{}, nil
	}

	gifts, err := s.giftRepo.FindByRecipient(recipientID)
	if err != nil {
		logger.Error("Failed to list surprise gifts for recipient", err, map[string]interface{}{
			"recipient_id": recipientID,
		})
		return nil, err
	}
	return gifts, nil
}

func (s *surpriseGiftService) ListGivenBy(giverID uint) ([]model.SurpriseGift, error) {
	gifts, err := s.giftRepo.FindByGiver(giverID)
	if err != nil {
		logger.Error("Failed to list surprise gifts by giver", err, map[string]interface{}{
			"giver_id": giverID,
		})
		return nil, err
	}
	return gifts, nil
}
