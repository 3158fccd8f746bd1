package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("Sup3rsecret")
	require.NoError(t, err)
	assert.NotEqual(t, "Sup3rsecret", hash)

	assert.NoError(t, ComparePassword(hash, "Sup3rsecret"))
	assert.Error(t, ComparePassword(hash, "wrong password"))
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{"valid", "Sup3rsecret", nil},
		{"too short", "S3cret", ErrWeakPassword},
		{"no uppercase", "sup3rsecret", ErrWeakPassword},
		{"no digit", "Supersecret", ErrWeakPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("user@example.com"))
	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail("@example.com"))
}

func TestTokenManager_Pair(t *testing.T) {
	tm := NewTokenManager("access-secret", "refresh-secret", 15*time.Minute, 24*time.Hour)

	access, refresh, expiresIn, err := tm.GenerateTokenPair("user-1", "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(900), expiresIn)

	claims, err := tm.ValidateAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)

	// refresh не проходит как access и наоборот
	_, err = tm.ValidateAccessToken(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = tm.ValidateRefreshToken(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_Expired(t *testing.T) {
	tm := NewTokenManager("access-secret", "refresh-secret", -time.Minute, 24*time.Hour)

	access, _, _, err := tm.GenerateTokenPair("user-1", "user@example.com")
	require.NoError(t, err)

	_, err = tm.ValidateAccessToken(access)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	tm := NewTokenManager("access-secret", "refresh-secret", 15*time.Minute, 24*time.Hour)
	other := NewTokenManager("other-secret", "other-refresh", 15*time.Minute, 24*time.Hour)

	access, _, _, err := tm.GenerateTokenPair("user-1", "user@example.com")
	require.NoError(t, err)

	_, err = other.ValidateAccessToken(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
