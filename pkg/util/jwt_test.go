package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func TestGenerateToken(t *testing.T) {
	token, err := GenerateToken(1, "maria@example.com", testSecret, 15*time.Minute)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestValidateToken(t *testing.T) {
	token, err := GenerateToken(42, "maria@example.com", testSecret, 15*time.Minute)
	require.NoError(t, err)

	claims, err := ValidateToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "maria@example.com", claims.Email)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken(1, "maria@example.com", testSecret, 15*time.Minute)
	require.NoError(t, err)

	claims, err := ValidateToken(token, "another-secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, claims)
}

func TestValidateToken_Expired(t *testing.T) {
	token, err := GenerateToken(1, "maria@example.com", testSecret, -1*time.Minute)
	require.NoError(t, err)

	claims, err := ValidateToken(token, testSecret)
	assert.ErrorIs(t, err, ErrExpiredToken)
	assert.Nil(t, claims)
}

func TestValidateToken_Garbage(t *testing.T) {
	claims, err := ValidateToken("not-a-token", testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, claims)
}
