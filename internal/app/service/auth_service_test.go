package service

import (
	"testing"
	"time"

	"github.com/shlee-dev/veloura-backend/config"
	"github.com/shlee-dev/veloura-backend/internal/app/repository"
	"github.com/shlee-dev/veloura-backend/internal/db"
	"github.com/shlee-dev/veloura-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthServiceTest(t *testing.T) AuthService {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	userRepo := repository.NewUserRepository(testDB)
	return NewAuthService(userRepo, config.JWTConfig{
		Secret:             "test-secret",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 7 * 24 * time.Hour,
	})
}

func TestAuthService_Register(t *testing.T) {
	authService := setupAuthServiceTest(t)

	user, tokens, err := authService.Register(RegisterInput{
		Email:    "new@example.com",
		Password: "password123",
		Name:     "New User",
	})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	// Password is never stored in the clear
	assert.NotEqual(t, "password123", user.PasswordHash)

	claims, err := util.ValidateToken(tokens.AccessToken, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	authService := setupAuthServiceTest(t)

	_, _, err := authService.Register(RegisterInput{
		Email: "new@example.com", Password: "password123", Name: "New User",
	})
	require.NoError(t, err)

	_, _, err = authService.Register(RegisterInput{
		Email: "new@example.com", Password: "other", Name: "Impostor",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthService_Login(t *testing.T) {
	authService := setupAuthServiceTest(t)

	registered, _, err := authService.Register(RegisterInput{
		Email: "new@example.com", Password: "password123", Name: "New User",
	})
	require.NoError(t, err)

	user, tokens, err := authService.Login("new@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.NotEmpty(t, tokens.AccessToken)

	_, _, err = authService.Login("new@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = authService.Login("unknown@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_GetUser(t *testing.T) {
	authService := setupAuthServiceTest(t)

	registered, _, err := authService.Register(RegisterInput{
		Email: "new@example.com", Password: "password123", Name: "New User",
	})
	require.NoError(t, err)

	user, err := authService.GetUser(registered.ID)
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", user.Email)

	_, err = authService.GetUser(9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
