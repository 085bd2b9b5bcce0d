package service

import (
	"testing"

	"github.com/mfalgas/christmas-planner-backend/internal/app/model"
	"github.com/mfalgas/christmas-planner-backend/internal/app/repository"
	"github.com/mfalgas/christmas-planner-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAssignmentServiceTest(t *testing.T) (AssignmentService, *model.User, *model.User, *model.Wish, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	assignmentRepo := repository.NewAssignmentRepository(testDB)
	wishRepo := repository.NewWishRepository(testDB)
	assignmentService := NewAssignmentService(assignmentRepo, wishRepo)

	owner := &model.User{Email: "maria@example.com", Name: "María"}
	testDB.Create(owner)

	claimer := &model.User{Email: "jose@example.com", Name: "José"}
	testDB.Create(claimer)

	wish := &model.Wish{
		UserID:   owner.ID,
		Title:    "Bufanda de lana",
		Priority: model.PriorityMedium,
	}
	testDB.Create(wish)

	return assignmentService, owner, claimer, wish, testDB
}

func TestAssignmentService_Claim_Success(t *testing.T) {
	assignmentService, _, claimer, wish, _ := setupAssignmentServiceTest(t)

	assignment, err := assignmentService.Claim(wish.ID, claimer.ID)
	require.NoError(t, err)
	assert.Equal(t, wish.ID, assignment.WishID)
	require.NotNil(t, assignment.AssignedBy)
	assert.Equal(t, claimer.ID, *assignment.AssignedBy)
	assert.False(t, assignment.IsExternal())
}

func TestAssignmentService_Claim_OwnWish(t *testing.T) {
	assignmentService, owner, _, wish, _ := setupAssignmentServiceTest(t)

	_, err := assignmentService.Claim(wish.ID, owner.ID)
	assert.ErrorIs(t, err, ErrSelfAssignment)
}

func TestAssignmentService_Claim_WishNotFound(t *testing.T) {
	assignmentService, _, claimer, _, _ := setupAssignmentServiceTest(t)

	_, err := assignmentService.Claim(9999, claimer.ID)
	assert.ErrorIs(t, err, ErrWishNotFound)
}

func TestAssignmentService_Claim_AlreadyAssigned(t *testing.T) {
	assignmentService, _, claimer, wish, testDB := setupAssignmentServiceTest(t)

	other := &model.User{Email: "ana@example.com", Name: "Ana"}
	testDB.Create(other)

	_, err := assignmentService.Claim(wish.ID, claimer.ID)
	require.NoError(t, err)

	_, err = assignmentService.Claim(wish.ID, other.ID)
	assert.ErrorIs(t, err, ErrAlreadyAssigned)
}

// A claimed wish owned by the caller reports self assignment, not conflict.
func TestAssignmentService_Claim_SelfCheckBeforeConflict(t *testing.T) {
	assignmentService, owner, claimer, wish, _ := setupAssignmentServiceTest(t)

	_, err := assignmentService.Claim(wish.ID, claimer.ID)
	require.NoError(t, err)

	_, err = assignmentService.Claim(wish.ID, owner.ID)
	assert.ErrorIs(t, err, ErrSelfAssignment)
}

func TestAssignmentService_ClaimExternal(t *testing.T) {
	assignmentService, _, claimer, wish, _ := setupAssignmentServiceTest(t)

	assignment, err := assignmentService.ClaimExternal(wish.ID, claimer.ID)
	require.NoError(t, err)
	assert.Nil(t, assignment.AssignedBy)
	assert.True(t, assignment.IsExternal())

	// The external claim blocks everyone, including the actor who recorded it.
	_, err = assignmentService.Claim(wish.ID, claimer.ID)
	assert.ErrorIs(t, err, ErrAlreadyAssigned)
}

func TestAssignmentService_ClaimExternal_OwnWish(t *testing.T) {
	assignmentService, owner, _, wish, _ := setupAssignmentServiceTest(t)

	_, err := assignmentService.ClaimExternal(wish.ID, owner.ID)
	assert.ErrorIs(t, err, ErrSelfAssignment)
}

func TestAssignmentService_Unclaim(t *testing.T) {
	assignmentService, _, claimer, wish, _ := setupAssignmentServiceTest(t)

	_, err := assignmentService.Claim(wish.ID, claimer.ID)
	require.NoError(t, err)

	err = assignmentService.Unclaim(wish.ID, claimer.ID)
	require.NoError(t, err)

	// The wish is claimable again.
	_, err = assignmentService.Claim(wish.ID, claimer.ID)
	assert.NoError(t, err)
}

func TestAssignmentService_Unclaim_NotClaimed(t *testing.T) {
	assignmentService, _, claimer, wish, _ := setupAssignmentServiceTest(t)

	// Releasing a wish that was never claimed succeeds without effect.
	err := assignmentService.Unclaim(wish.ID, claimer.ID)
	assert.NoError(t, err)
}

func TestAssignmentService_Unclaim_SomeoneElsesClaim(t *testing.T) {
	assignmentService, _, claimer, wish, testDB := setupAssignmentServiceTest(t)

	other := &model.User{Email: "ana@example.com", Name: "Ana"}
	testDB.Create(other)

	_, err := assignmentService.Claim(wish.ID, claimer.ID)
	require.NoError(t, err)

	// Another member releasing someone else's claim is a silent no-op.
	err = assignmentService.Unclaim(wish.ID, other.ID)
	require.NoError(t, err)

	_, err = assignmentService.Claim(wish.ID, other.ID)
	assert.ErrorIs(t, err, ErrAlreadyAssigned)
}

func TestAssignmentService_Unclaim_ExternalClaimStays(t *testing.T) {
	assignmentService, _, claimer, wish, _ := setupAssignmentServiceTest(t)

	_, err := assignmentService.ClaimExternal(wish.ID, claimer.ID)
	require.NoError(t, err)

	// External claims have no claimer, so nobody can release them this way.
	err = assignmentService.Unclaim(wish.ID, claimer.ID)
	require.NoError(t, err)

	_, err = assignmentService.Claim(wish.ID, claimer.ID)
	assert.ErrorIs(t, err, ErrAlreadyAssigned)
}

func TestAssignmentService_ListByClaimer(t *testing.T) {
	assignmentService, owner, claimer, wish, testDB := setupAssignmentServiceTest(t)

	second := &model.Wish{
		UserID:   owner.ID,
		Title:    "Libro de cocina",
		Priority: model.PriorityHigh,
	}
	testDB.Create(second)

	_, err := assignmentService.Claim(wish.ID, claimer.ID)
	require.NoError(t, err)
	_, err = assignmentService.Claim(second.ID, claimer.ID)
	require.NoError(t, err)

	assignments, err := assignmentService.ListByClaimer(claimer.ID)
	require.NoError(t, err)
	require.Len(t, assignments, 2)
	require.NotNil(t, assignments[0].Wish)
	assert.NotNil(t, assignments[0].Wish.User)
}

func TestAssignmentService_ListByClaimer_ExcludesExternal(t *testing.T) {
	assignmentService, _, claimer, wish, _ := setupAssignmentServiceTest(t)

	_, err := assignmentService.ClaimExternal(wish.ID, claimer.ID)
	require.NoError(t, err)

	assignments, err := assignmentService.ListByClaimer(claimer.ID)
	require.NoError(t, err)
	assert.Len(t, assignments, 0)
}
