package repository

import (
	"testing"

	"github.com/mfalgas/christmas-planner-backend/internal/app/model"
	"github.com/mfalgas/christmas-planner-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAssignmentRepositoryTest(t *testing.T) (AssignmentRepository, *model.Wish, *model.User, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	owner := &model.User{Email: "maria@example.com", Name: "María"}
	testDB.Create(owner)

	claimer := &model.User{Email: "jose@example.com", Name: "José"}
	testDB.Create(claimer)

	wish := &model.Wish{UserID: owner.ID, Title: "Bufanda", Priority: model.PriorityMedium}
	testDB.Create(wish)

	return NewAssignmentRepository(testDB), wish, claimer, testDB
}

// The wish_id unique index is the last line of defense against two members
// claiming the same wish at once.
func TestAssignmentRepository_Create_DuplicateWish(t *testing.T) {
	repo, wish, claimer, testDB := setupAssignmentRepositoryTest(t)

	other := &model.User{Email: "ana@example.com", Name: "Ana"}
	testDB.Create(other)

	claimerID := claimer.ID
	err := repo.Create(&model.Assignment{WishID: wish.ID, AssignedBy: &claimerID})
	require.NoError(t, err)

	otherID := other.ID
	err = repo.Create(&model.Assignment{WishID: wish.ID, AssignedBy: &otherID})
	assert.Error(t, err)
}

func TestAssignmentRepository_DeleteByWishAndClaimer(t *testing.T) {
	repo, wish, claimer, _ := setupAssignmentRepositoryTest(t)

	claimerID := claimer.ID
	require.NoError(t, repo.Create(&model.Assignment{WishID: wish.ID, AssignedBy: &claimerID}))

	rows, err := repo.DeleteByWishAndClaimer(wish.ID, claimer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	rows, err = repo.DeleteByWishAndClaimer(wish.ID, claimer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)
}

// External claims carry no claimer, so a member-scoped delete never matches.
func TestAssignmentRepository_DeleteByWishAndClaimer_External(t *testing.T) {
	repo, wish, claimer, _ := setupAssignmentRepositoryTest(t)

	require.NoError(t, repo.Create(&model.Assignment{WishID: wish.ID}))

	rows, err := repo.DeleteByWishAndClaimer(wish.ID, claimer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)
}

func TestAssignmentRepository_FindByWishIDs(t *testing.T) {
	repo, wish, claimer, testDB := setupAssignmentRepositoryTest(t)

	second := &model.Wish{UserID: wish.UserID, Title: "Libro", Priority: model.PriorityLow}
	testDB.Create(second)
	third := &model.Wish{UserID: wish.UserID, Title: "Perfume", Priority: model.PriorityHigh}
	testDB.Create(third)

	claimerID := claimer.ID
	require.NoError(t, repo.Create(&model.Assignment{WishID: wish.ID, AssignedBy: &claimerID}))
	require.NoError(t, repo.Create(&model.Assignment{WishID: second.ID}))

	assignments, err := repo.FindByWishIDs([]uint{wish.ID, second.ID, third.ID})
	require.NoError(t, err)
	assert.Len(t, assignments, 2)

	assignments, err = repo.FindByWishIDs(nil)
	require.NoError(t, err)
	assert.Len(t, assignments, 0)
}
