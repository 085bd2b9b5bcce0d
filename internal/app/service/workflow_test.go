package service

import (
	"testing"

	"github.com/mfalgas/christmas-planner-backend/config"
	"github.com/mfalgas/christmas-planner-backend/internal/app/model"
	"github.com/mfalgas/christmas-planner-backend/internal/app/repository"
	"github.com/mfalgas/christmas-planner-backend/internal/db"
	"github.com/mfalgas/christmas-planner-backend/pkg/mailer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServices struct {
	wishes        WishService
	assignments   AssignmentService
	gifts         SurpriseGiftService
	notifications NotificationService
	users         UserService
}

func setupWorkflowTest(t *testing.T) (testServices, *model.User, *model.User, *model.User) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	userRepo := repository.NewUserRepository(testDB)
	wishRepo := repository.NewWishRepository(testDB)
	assignmentRepo := repository.NewAssignmentRepository(testDB)
	giftRepo := repository.NewSurpriseGiftRepository(testDB)
	notificationRepo := repository.NewNotificationRepository(testDB)

	mail := mailer.New(config.EmailConfig{Enabled: false})
	notificationService := NewNotificationService(notificationRepo, userRepo, mail, "https://navidad.example.com")
	wishService := NewWishService(wishRepo, assignmentRepo, nil)
	assignmentService := NewAssignmentService(assignmentRepo, wishRepo)
	giftService := NewSurpriseGiftService(giftRepo, userRepo)
	userService := NewUserService(userRepo, wishService, giftService)

	maria := &model.User{Email: "maria@example.com", Name: "María"}
	testDB.Create(maria)
	jose := &model.User{Email: "jose@example.com", Name: "José"}
	testDB.Create(jose)
	ana := &model.User{Email: "ana@example.com", Name: "Ana"}
	testDB.Create(ana)

	return testServices{
		wishes:        wishService,
		assignments:   assignmentService,
		gifts:         giftService,
		notifications: notificationService,
		users:         userService,
	}, maria, jose, ana
}

// A wish goes through its whole life: created, claimed by a sibling, deleted
// by the owner, recreated and claimed again.
func TestWorkflow_WishClaimDeleteRecreate(t *testing.T) {
	svc, maria, jose, ana := setupWorkflowTest(t)

	wish, err := svc.wishes.Create(maria.ID, CreateWishInput{Title: "Bufanda de lana"})
	require.NoError(t, err)

	_, err = svc.assignments.Claim(wish.ID, jose.ID)
	require.NoError(t, err)

	// Ana arrives late.
	_, err = svc.assignments.Claim(wish.ID, ana.ID)
	require.ErrorIs(t, err, ErrAlreadyAssigned)

	// María changes her mind; the claim dies with the wish.
	require.NoError(t, svc.wishes.Delete(wish.ID, maria.ID))

	// José's claims list is empty again.
	claims, err := svc.assignments.ListByClaimer(jose.ID)
	require.NoError(t, err)
	assert.Len(t, claims, 0)

	// She re-adds it and this time Ana gets there first.
	recreated, err := svc.wishes.Create(maria.ID, CreateWishInput{Title: "Bufanda de lana"})
	require.NoError(t, err)
	_, err = svc.assignments.Claim(recreated.ID, ana.ID)
	assert.NoError(t, err)
}

// The member page shows each viewer a different picture of the same data.
func TestWorkflow_MemberPagePerViewer(t *testing.T) {
	svc, maria, jose, ana := setupWorkflowTest(t)

	wish, err := svc.wishes.Create(maria.ID, CreateWishInput{Title: "Bufanda"})
	require.NoError(t, err)
	_, err = svc.assignments.Claim(wish.ID, jose.ID)
	require.NoError(t, err)

	_, err = svc.gifts.Create(jose.ID, CreateSurpriseGiftInput{
		RecipientID: maria.ID,
		Title:       "Entradas de concierto",
	})
	require.NoError(t, err)

	// José sees the claim as his and the surprise gift he planned.
	page, err := svc.users.GetMemberPage(maria.ID, jose.ID)
	require.NoError(t, err)
	require.Len(t, page.Wishes, 1)
	assert.True(t, page.Wishes[0].AssignedByMe)
	assert.Len(t, page.SurpriseGifts, 1)

	// Ana sees the wish claimed by someone else, and the surprise too.
	page, err = svc.users.GetMemberPage(maria.ID, ana.ID)
	require.NoError(t, err)
	assert.True(t, page.Wishes[0].IsAssigned)
	assert.False(t, page.Wishes[0].AssignedByMe)
	assert.Len(t, page.SurpriseGifts, 1)

	// María herself sees no claim details leak and no surprises at all.
	page, err = svc.users.GetMemberPage(maria.ID, maria.ID)
	require.NoError(t, err)
	assert.False(t, page.Wishes[0].AssignedByMe)
	assert.Len(t, page.SurpriseGifts, 0)
}

// Claim lifecycle as three siblings see it.
func TestWorkflow_ClaimVisibilityAndRelease(t *testing.T) {
	svc, maria, jose, ana := setupWorkflowTest(t)

	high := model.PriorityHigh
	wish, err := svc.wishes.Create(maria.ID, CreateWishInput{Title: "Bicicleta", Priority: &high})
	require.NoError(t, err)

	_, err = svc.assignments.Claim(wish.ID, jose.ID)
	require.NoError(t, err)

	joseView, err := svc.wishes.ViewWishesOf(maria.ID, jose.ID)
	require.NoError(t, err)
	require.Len(t, joseView, 1)
	assert.True(t, joseView[0].IsAssigned)
	assert.True(t, joseView[0].AssignedByMe)

	anaView, err := svc.wishes.ViewWishesOf(maria.ID, ana.ID)
	require.NoError(t, err)
	assert.True(t, anaView[0].IsAssigned)
	assert.False(t, anaView[0].AssignedByMe)

	_, err = svc.assignments.Claim(wish.ID, ana.ID)
	require.ErrorIs(t, err, ErrAlreadyAssigned)

	// José backs out and the wish is unclaimed for everyone again.
	require.NoError(t, svc.assignments.Unclaim(wish.ID, jose.ID))

	anaView, err = svc.wishes.ViewWishesOf(maria.ID, ana.ID)
	require.NoError(t, err)
	assert.False(t, anaView[0].IsAssigned)

	_, err = svc.assignments.Claim(wish.ID, ana.ID)
	assert.NoError(t, err)
}

// A surprise gift is visible to everyone except the person it is for, and
// vanishes for all once the giver deletes it.
func TestWorkflow_SurpriseGiftLifecycle(t *testing.T) {
	svc, maria, jose, ana := setupWorkflowTest(t)

	gift, err := svc.gifts.Create(jose.ID, CreateSurpriseGiftInput{
		RecipientID: maria.ID,
		Title:       "Bufanda",
	})
	require.NoError(t, err)

	anaSees, err := svc.gifts.ListFor(maria.ID, ana.ID)
	require.NoError(t, err)
	require.Len(t, anaSees, 1)
	assert.Equal(t, "Bufanda", anaSees[0].Title)

	mariaSees, err := svc.gifts.ListFor(maria.ID, maria.ID)
	require.NoError(t, err)
	assert.Len(t, mariaSees, 0)

	page, err := svc.users.GetMemberPage(maria.ID, maria.ID)
	require.NoError(t, err)
	assert.Len(t, page.SurpriseGifts, 0)

	require.NoError(t, svc.gifts.Delete(gift.ID, jose.ID))

	anaSees, err = svc.gifts.ListFor(maria.ID, ana.ID)
	require.NoError(t, err)
	assert.Len(t, anaSees, 0)
}

// Fan-out wired through the wish service: creating a wish notifies the rest
// of the family.
func TestWorkflow_NewWishNotifiesFamily(t *testing.T) {
	svc, maria, jose, ana := setupWorkflowTest(t)

	wish, err := svc.wishes.Create(maria.ID, CreateWishInput{Title: "Bufanda"})
	require.NoError(t, err)

	// The controller path runs this in a goroutine; call it directly here to
	// avoid racing the assertions.
	svc.notifications.FanOutNewWish(maria.ID, wish)

	_, unread, err := svc.notifications.List(jose.ID, 0, false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)

	_, unread, err = svc.notifications.List(ana.ID, 0, false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)

	_, unread, err = svc.notifications.List(maria.ID, 0, false)
	require.NoError(t, err)
	assert.Equal(t, int64(0), unread)
}
