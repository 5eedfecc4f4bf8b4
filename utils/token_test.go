package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	token, err := issuer.GenerateToken("user_001", "demo@example.com", "Demo User")
	require.NoError(t, err)

	claims, err := issuer.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user_001", claims.UserID)
	assert.Equal(t, "demo@example.com", claims.Email)
	assert.Equal(t, "Demo User", claims.Name)
}

func TestTokenIssuer_RejectsOtherSecret(t *testing.T) {
	token, err := NewTokenIssuer("one", time.Hour).GenerateToken("user_001", "a@b.c", "A")
	require.NoError(t, err)

	_, err = NewTokenIssuer("two", time.Hour).ValidateToken(token)
	assert.Error(t, err)
}

func TestTokenIssuer_RejectsExpired(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Minute)
	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := issuer.GenerateToken("user_001", "a@b.c", "A")
	require.NoError(t, err)

	issuer.now = time.Now
	_, err = issuer.ValidateToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestTokenIssuer_RejectsMissingUser(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	token, err := issuer.GenerateToken("", "a@b.c", "A")
	require.NoError(t, err)

	_, err = issuer.ValidateToken(token)
	assert.ErrorIs(t, err, ErrTokenMissingUser)
}

func TestTokenExpired(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	token, err := issuer.GenerateToken("user_001", "a@b.c", "A")
	require.NoError(t, err)

	assert.False(t, TokenExpired(token, time.Now()))
	assert.True(t, TokenExpired(token, time.Now().Add(2*time.Hour)))
	assert.False(t, TokenExpired("opaque-token", time.Now().Add(100*time.Hour)))
}
