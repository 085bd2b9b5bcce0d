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
	ErrWishNotFound        = errors.New("wish not found")
	ErrWishForbidden       = errors.New("not the owner of this wish")
	ErrWishTitleRequired   = errors.New("wish title is required")
	ErrWishInvalidPriority = errors.New("wish priority must be between 1 and 3")
)

// CreateWishInput is the payload for a new wish. Description and URL are
// optional; empty strings are normalized to absent.
type CreateWishInput struct {
	Title       string
	Description string
	URL         string
	Priority    *model.WishPriority
}

// UpdateWishInput carries partial updates, nil means "leave as is".
type UpdateWishInput struct {
	Title       *string
	Description *string
	URL         *string
	Priority    *model.WishPriority
}

type WishService interface {
	ListByOwner(ownerID uint) ([]model.Wish, error)
	ViewWishesOf(targetID, viewerID uint) ([]model.AnnotatedWish, error)
	Create(ownerID uint, input CreateWishInput) (*model.Wish, error)
	Update(wishID, requesterID uint, input UpdateWishInput) (*model.Wish, error)
	Delete(wishID, requesterID uint) error
}

type wishService struct {
	wishRepo       repository.WishRepository
	assignmentRepo repository.AssignmentRepository
	notifier       NotificationService
}

// NewWishService builds the wish service. notifier may be nil in tests that
// don't care about the fan-out.
func NewWishService(
	wishRepo repository.WishRepository,
	assignmentRepo repository.AssignmentRepository,
	notifier NotificationService,
) WishService {
	return &wishService{
		wishRepo:       wishRepo,
		assignmentRepo: assignmentRepo,
		notifier:       notifier,
	}
}

func (s *wishService) ListByOwner(ownerID uint) ([]model.Wish, error) {
	wishes, err := s.wishRepo.FindByUserID(ownerID)
	if err != nil {
		logger.Error("Failed to list wishes", err, map[string]interface{}{
			"user_id": ownerID,
		})
		return nil, err
	}
	return wishes, nil
}

// ViewWishesOf returns targetID's wishes annotated with the claim state as
// seen by viewerID. The full list is returned for any viewer; deciding what
// to show is a display concern, not data access control.
func (s *wishService) ViewWishesOf(targetID, viewerID uint) ([]model.AnnotatedWish, error) {
	wishes, err := s.wishRepo.FindByUserID(targetID)
	if err != nil {
		return nil, err
	}

	wishIDs := make([]uint, len(wishes))
	for i, w := range wishes {
		wishIDs[i] = w.ID
	}

	assignments, err := s.assignmentRepo.FindByWishIDs(wishIDs)
	if err != nil {
		return nil, err
	}

	byWish := make(map[uint]*model.Assignment, len(assignments))
	for i := range assignments {
		byWish[assignments[i].WishID] = &assignments[i]
	}

	annotated := make([]model.AnnotatedWish, len(wishes))
	for i, w := range wishes {
		aw := model.AnnotatedWish{Wish: w}
		if a, ok := byWish[w.ID]; ok {
			aw.Assignment = a
			aw.IsAssigned = true
			aw.AssignedByMe = a.AssignedBy != nil && *a.AssignedBy == viewerID
			aw.IsExternalAssignment = a.IsExternal()
		}
		annotated[i] = aw
	}

	logger.Debug("Annotated wishes computed", map[string]interface{}{
		"target_id": targetID,
		"viewer_id": viewerID,
		"count":     len(annotated),
	})
	return annotated, nil
}

func (s *wishService) Create(ownerID uint, input CreateWishInput) (*model.Wish, error) {
	logger.Info("Creating wish", map[string]interface{}{
		"user_id": ownerID,
		"title":   input.Title,
	})

	title := strings.TrimSpace(input.Title)
	if title == "" {
		logger.Warn("Cannot create wish: empty title", map[string]interface{}{
			"user_id": ownerID,
		})
		return nil, ErrWishTitleRequired
	}

	priority := model.PriorityMedium
	if input.Priority != nil {
		priority = *input.Priority
		if priority < model.PriorityLow || priority > model.PriorityHigh {
			return nil, ErrWishInvalidPriority
		}
	}

	wish := &model.Wish{
		UserID:      ownerID,
		Title:       title,
		Description: normalizeOptional(input.Description),
		URL:         normalizeOptional(input.URL),
		Priority:    priority,
	}

	if err := s.wishRepo.Create(wish); err != nil {
		return nil, err
	}

	// Fire-and-forget fan-out: a failed notification never fails the wish.
	if s.notifier != nil {
		go s.notifier.FanOutNewWish(ownerID, wish)
	}

	logger.Info("Wish created successfully", map[string]interface{}{
		"wish_id": wish.ID,
		"user_id": ownerID,
	})
	return wish, nil
}

func (s *wishService) Update(wishID, requesterID uint, input UpdateWishInput) (*model.Wish, error) {
	logger.Info("Updating wish", map[string]interface{}{
		"wish_id": wishID,
		"user_id": requesterID,
	})

	wish, err := s.wishRepo.FindByID(wishID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWishNotFound
		}
		return nil, err
	}

	if wish.UserID != requesterID {
		logger.Warn("Cannot update wish: requester is not the owner", map[string]interface{}{
			"wish_id":  wishID,
			"user_id":  requesterID,
			"owner_id": wish.UserID,
		})
		return nil, ErrWishForbidden
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrWishTitleRequired
		}
		wish.Title = title
	}
	if input.Description != nil {
		wish.Description = normalizeOptional(*input.Description)
	}
	if input.URL != nil {
		wish.URL = normalizeOptional(*input.URL)
	}
	if input.Priority != nil {
		if *input.Priority < model.PriorityLow || *input.Priority > model.PriorityHigh {
			return nil, ErrWishInvalidPriority
		}
		wish.Priority = *input.Priority
	}

	if err := s.wishRepo.Update(wish); err != nil {
		return nil, err
	}

	logger.Info("Wish updated successfully", map[string]interface{}{
		"wish_id": wish.ID,
	})
	return wish, nil
}

// Delete removes a wish and, atomically with it, any claim on it.
func (s *wishService) Delete(wishID, requesterID uint) error {
	logger.Info("Deleting wish", map[string]interface{}{
		"wish_id": wishID,
		"user_id": requesterID,
	})

	wish, err := s.wishRepo.FindByID(wishID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrWishNotFound
		}
		return err
	}

	if wish.UserID != requesterID {
		logger.Warn("Cannot delete wish: requester is not the owner", map[string]interface{}{
			"wish_id":  wishID,
			"user_id":  requesterID,
			"owner_id": wish.UserID,
		})
		return ErrWishForbidden
	}

	if err := s.wishRepo.DeleteWithAssignments(wishID); err != nil {
		return err
	}

	logger.Info("Wish deleted successfully", map[string]interface{}{
		"wish_id": wishID,
	})
	return nil
}

// normalizeOptional trims an optional field and maps the empty result to
// absent.
func normalizeOptional(s string) *string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
