package services

import (
	"testing"
	"time"

	"BakeryApp/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	f := newFixture(t)
	auth := NewAuthService(f.db, time.Hour)

	user, err := auth.Register("Ana", "Ana@Example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", user.Email)
	assert.NotEqual(t, "secret1", user.PasswordHash)

	token, err := auth.Login("ana@example.com", "secret1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	f := newFixture(t)
	auth := NewAuthService(f.db, time.Hour)

	_, err := auth.Register("Ana", "ana@example.com", "secret1")
	require.NoError(t, err)

	_, err = auth.Login("ana@example.com", "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = auth.Login("nobody@example.com", "secret1")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestRegisterValidation(t *testing.T) {
	f := newFixture(t)
	auth := NewAuthService(f.db, time.Hour)

	var validationErr *ValidationError
	_, err := auth.Register("", "ana@example.com", "secret1")
	require.ErrorAs(t, err, &validationErr)
	_, err = auth.Register("Ana", "not-an-email", "secret1")
	require.ErrorAs(t, err, &validationErr)
	_, err = auth.Register("Ana", "ana@example.com", "short")
	require.ErrorAs(t, err, &validationErr)

	_, err = auth.Register("Ana", "ana@example.com", "secret1")
	require.NoError(t, err)
	_, err = auth.Register("Other Ana", "ana@example.com", "secret2")
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "email", validationErr.Field)
}

func TestValidateTokenExpiry(t *testing.T) {
	f := newFixture(t)
	auth := NewAuthService(f.db, time.Hour)

	_, err := auth.ValidateToken("")
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = auth.ValidateToken("unknown")
	assert.ErrorIs(t, err, ErrUnauthorized)

	session := models.Session{
		UserID:    f.user.ID,
		Token:     "expired-token",
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	require.NoError(t, f.db.Create(&session).Error)

	_, err = auth.ValidateToken("expired-token")
	assert.ErrorIs(t, err, ErrUnauthorized)
}
