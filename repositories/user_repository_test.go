package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_Authenticate(t *testing.T) {
	r, err := NewDemoUserRepository()
	require.NoError(t, err)

	user, err := r.Authenticate("Demo@Example.com", "demo123")
	require.NoError(t, err)
	assert.Equal(t, "user_001", user.ID)
	assert.Equal(t, "Demo User", user.Name)

	_, err = r.Authenticate("demo@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = r.Authenticate("nobody@example.com", "demo123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserRepository_DemoIdentities(t *testing.T) {
	r, err := NewDemoUserRepository()
	require.NoError(t, err)

	ids := r.DemoIdentities()
	require.Len(t, ids, 3)
	assert.Equal(t, "demo@example.com", ids[0].Email)
	assert.Equal(t, "Alice Smith", ids[2].Name)
}

func TestUserRepository_CreateDuplicate(t *testing.T) {
	r := NewUserRepository()

	_, err := r.Create("u1", "a@example.com", "A", "secret1")
	require.NoError(t, err)

	_, err = r.Create("u2", "A@example.com", "B", "secret2")
	assert.ErrorIs(t, err, ErrUserExists)

	user, err := r.FindByID("u1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", user.PasswordHash)

	_, err = r.FindByID("u9")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
