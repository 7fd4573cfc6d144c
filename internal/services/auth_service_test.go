package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/timesheet-api/internal/models"
)

func TestAuthService_SignupAndLogin(t *testing.T) {
	env := setupServiceTestEnv(t)

	user, err := env.auth.Signup(SignupInput{Username: "  alice ", Password: "password123", Email: "alice@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.NotEqual(t, "password123", user.PasswordHash)

	result, err := env.auth.Login(LoginInput{Username: "alice", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, result.User.ID)

	claims, err := env.auth.Validate(result.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, models.RoleUser, claims.Role)
	assert.Equal(t, user.ID, claims.ID)
}

func TestAuthService_Signup_Errors(t *testing.T) {
	env := setupServiceTestEnv(t)

	_, err := env.auth.Signup(SignupInput{Username: "bob", Password: "12345"})
	assert.ErrorIs(t, err, ErrPasswordTooShort)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.auth.Signup(SignupInput{Username: "   ", Password: "password123"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.auth.Signup(SignupInput{Username: "bob", Password: "password123"})
	require.NoError(t, err)

	_, err = env.auth.Signup(SignupInput{Username: "bob", Password: "password123"})
	assert.ErrorIs(t, err, ErrUsernameTaken)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestAuthService_Login_WrongCredentials(t *testing.T) {
	env := setupServiceTestEnv(t)
	env.createUser(t, "alice")

	_, err := env.auth.Login(LoginInput{Username: "alice", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = env.auth.Login(LoginInput{Username: "nobody", Password: "password123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthService_CreateAdmin(t *testing.T) {
	env := setupServiceTestEnv(t)

	admin, err := env.auth.CreateAdmin("root", "password123", "root@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)

	stored, err := env.auth.GetUser(admin.ID)
	require.NoError(t, err)
	assert.Equal(t, "root@example.com", stored.Email)

	_, err = env.auth.GetUser(admin.ID + 100)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestTokenService_Verify(t *testing.T) {
	user := &models.User{ID: 9, Username: "alice", Role: models.RoleAdmin}
	tokens := NewTokenService("secret-one", time.Hour)

	token, err := tokens.Issue(user)
	require.NoError(t, err)

	claims, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, uint64(9), claims.ID)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)

	other := NewTokenService("secret-two", time.Hour)
	_, err = other.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = tokens.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_Verify_Expired(t *testing.T) {
	user := &models.User{ID: 1, Username: "alice", Role: models.RoleUser}
	tokens := NewTokenService("secret", time.Hour)
	tokens.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := tokens.Issue(user)
	require.NoError(t, err)

	tokens.now = time.Now
	_, err = tokens.Verify(token)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}
