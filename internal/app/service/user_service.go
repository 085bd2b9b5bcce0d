package service

import (
	"errors"

	"github.com/mfalgas/christmas-planner-backend/internal/app/model"
	"github.com/mfalgas/christmas-planner-backend/internal/app/repository"
	"github.com/mfalgas/christmas-planner-backend/pkg/logger"
	"gorm.io/gorm"
)

// MemberPage is everything the family page needs for one member as seen by
// a viewer: the member, their annotated wishes and the surprise gifts others
// are giving them (empty when the member views their own page).
type MemberPage struct {
	Member        *model.User           `json:"member"`
	Wishes        []model.AnnotatedWish `json:"wishes"`
	SurpriseGifts []model.SurpriseGift  `json:"surprise_gifts"`
}

type UserService interface {
	ListMembers() ([]model.User, error)
	GetMemberPage(targetID, viewerID uint) (*MemberPage, error)
}

type userService struct {
	userRepo    repository.UserRepository
	wishService WishService
	giftService SurpriseGiftService
}

func NewUserService(
	userRepo repository.UserRepository,
	wishService WishService,
	giftService SurpriseGiftService,
) UserService {
	return &userService{
		userRepo:    userRepo,
		wishService: wishService,
		giftService: giftService,
	}
}

func (s *userService) ListMembers() ([]model.User, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		logger.Error("Failed to list members", err)
		return nil, err
	}
	return users, nil
}

func (s *userService) GetMemberPage(targetID, viewerID uint) (*MemberPage, error) {
	member, err := s.userRepo.FindByID(targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	wishes, err := s.wishService.ViewWishesOf(targetID, viewerID)
	if err != nil {
		return nil, err
	}

	gifts, err := s.giftService.ListFor(targetID, viewerID)
	if err != nil {
		return nil, err
	}

	return &MemberPage{
		Member:        member,
		Wishes:        wishes,
		SurpriseGifts: gifts,
	}, nil
}
