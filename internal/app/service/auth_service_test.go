package service

import (
	"context"
	"testing"
	"time"

	"github.com/mfalgas/christmas-planner-backend/internal/app/model"
	"github.com/mfalgas/christmas-planner-backend/internal/app/repository"
	"github.com/mfalgas/christmas-planner-backend/internal/db"
	"github.com/mfalgas/christmas-planner-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret"

func setupAuthServiceTest(t *testing.T) (AuthService, *model.User) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	userRepo := repository.NewUserRepository(testDB)
	authService := NewAuthService(userRepo, testJWTSecret, time.Hour)

	user := &model.User{Email: "maria@example.com", Name: "María"}
	require.NoError(t, userRepo.Create(user))

	return authService, user
}

func TestAuthService_Login(t *testing.T) {
	authService, user := setupAuthServiceTest(t)

	loggedIn, token, err := authService.Login("maria@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	require.NotEmpty(t, token)

	claims, err := util.ValidateToken(token, testJWTSecret)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "maria@example.com", claims.Email)
}

func TestAuthService_Login_CaseInsensitiveEmail(t *testing.T) {
	authService, user := setupAuthServiceTest(t)

	loggedIn, _, err := authService.Login("MARIA@Example.COM")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
}

func TestAuthService_Login_NotInAllowlist(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	_, _, err := authService.Login("intruso@example.com")
	assert.ErrorIs(t, err, ErrEmailNotAllowed)
}

func TestAuthService_GetUserByID(t *testing.T) {
	authService, user := setupAuthServiceTest(t)

	found, err := authService.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, found.Email)

	_, err = authService.GetUserByID(9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthService_UpdateAvatar(t *testing.T) {
	authService, user := setupAuthServiceTest(t)

	updated, err := authService.UpdateAvatar(user.ID, "https://cdn.example.com/avatars/maria.png")
	require.NoError(t, err)
	require.NotNil(t, updated.AvatarURL)
	assert.Equal(t, "https://cdn.example.com/avatars/maria.png", *updated.AvatarURL)

	_, err = authService.UpdateAvatar(9999, "https://cdn.example.com/avatars/nadie.png")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

// Logout with a bad token is a no-op rather than an error; there is nothing
// left to revoke.
func TestAuthService_Logout_InvalidToken(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	err := authService.Logout(context.Background(), "not-a-token")
	assert.NoError(t, err)
}
