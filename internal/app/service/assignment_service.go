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
	ErrSelfAssignment  = errors.New("cannot claim your own wish")
	ErrAlreadyAssigned = errors.New("wish is already assigned")
)

// AssignmentService mediates claiming and unclaiming of wishes. Precondition
// order on claim is part of the contract: wish exists, then not the
// claimer's own wish, then not already claimed. The first failure wins.
type AssignmentService interface {
	Claim(wishID, claimerID uint) (*model.Assignment, error)
	ClaimExternal(wishID, actorID uint) (*model.Assignment, error)
	Unclaim(wishID, requesterID uint) error
	ListByClaimer(userID uint) ([]model.Assignment, error)
}

type assignmentService struct {
	assignmentRepo repository.AssignmentRepository
	wishRepo       repository.WishRepository
}

func NewAssignmentService(
	assignmentRepo repository.AssignmentRepository,
	wishRepo repository.WishRepository,
) AssignmentService {
	return &assignmentService{
		assignmentRepo: assignmentRepo,
		wishRepo:       wishRepo,
	}
}

// Claim records that claimerID will give the wish to its owner.
func (s *assignmentService) Claim(wishID, claimerID uint) (*model.Assignment, error) {
	logger.Info("Claiming wish", map[string]interface{}{
		"wish_id": wishID,
		"user_id": claimerID,
	})

	claimer := claimerID
	return s.claim(wishID, claimerID, &claimer)
}

// ClaimExternal records a claim on behalf of someone outside the app. The
// actor only appears in the logs; the stored claimer is NULL.
func (s *assignmentService) ClaimExternal(wishID, actorID uint) (*model.Assignment, error) {
	logger.Info("Recording external claim on wish", map[string]interface{}{
		"wish_id": wishID,
		"user_id": actorID,
	})

	return s.claim(wishID, actorID, nil)
}

func (s *assignmentService) claim(wishID, actorID uint, claimer *uint) (*model.Assignment, error) {
	wish, err := s.wishRepo.FindByID(wishID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot claim: wish not found", map[string]interface{}{
				"wish_id": wishID,
				"user_id": actorID,
			})
			return nil, ErrWishNotFound
		}
		logger.Error("Failed to fetch wish for claim", err, map[string]interface{}{
			"wish_id": wishID,
		})
		return nil, err
	}

	if wish.UserID == actorID {
		logger.Warn("Cannot claim: wish belongs to the claimer", map[string]interface{}{
			"wish_id": wishID,
			"user_id": actorID,
		})
		return nil, ErrSelfAssignment
	}

	// Read-before-insert keeps the error deterministic; the unique index on
	// wish_id closes the race two concurrent claims would otherwise win
	// together.
	existing, err := s.assignmentRepo.FindByWishID(wishID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check existing assignment", err, map[string]interface{}{
			"wish_id": wishID,
		})
		return nil, err
	}
	if existing != nil {
		logger.Warn("Cannot claim: wish already assigned", map[string]interface{}{
			"wish_id": wishID,
			"user_id": actorID,
		})
		return nil, ErrAlreadyAssigned
	}

	assignment := &model.Assignment{
		WishID:     wishID,
		AssignedBy: claimer,
	}
	if err := s.assignmentRepo.Create(assignment); err != nil {
		if isUniqueViolation(err) {
			logger.Warn("Lost claim race, wish already assigned", map[string]interface{}{
				"wish_id": wishID,
				"user_id": actorID,
			})
			return nil, ErrAlreadyAssigned
		}
		return nil, err
	}

	logger.Info("Wish claimed successfully", map[string]interface{}{
		"assignment_id": assignment.ID,
		"wish_id":       wishID,
		"user_id":       actorID,
		"external":      assignment.IsExternal(),
	})
	return assignment, nil
}

// Unclaim releases a claim. It only matches the requester's own claim; when
// nothing matches (never claimed, already unclaimed, claimed by someone else,
// or an external claim) it succeeds without touching anything.
func (s *assignmentService) Unclaim(wishID, requesterID uint) error {
	logger.Info("Unclaiming wish", map[string]interface{}{
		"wish_id": wishID,
		"user_id": requesterID,
	})

	rows, err := s.assignmentRepo.DeleteByWishAndClaimer(wishID, requesterID)
	if err != nil {
		return err
	}

	if rows == 0 {
		logger.Debug("Unclaim matched nothing", map[string]interface{}{
			"wish_id": wishID,
			"user_id": requesterID,
		})
	} else {
		logger.Info("Wish unclaimed successfully", map[string]interface{}{
			"wish_id": wishID,
			"user_id": requesterID,
		})
	}
	return nil
}

// ListByClaimer returns the wishes a member has committed to give, with the
// wish and its owner resolved.
func (s *assignmentService) ListByClaimer(userID uint) ([]model.Assignment, error) {
	assignments, err := s.assignmentRepo.FindByClaimer(userID)
	if err != nil {
		logger.Error("Failed to list assignments by claimer", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return assignments, nil
}

// isUniqueViolation detects a unique index violation from Postgres (23505)
// or SQLite (tests).
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
