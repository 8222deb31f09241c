package service

import (
	"context"
	"testing"
	"time"

	"github.com/shlee-dev/veloura-backend/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memorySessionStore is an in-process SessionStore for tests
type memorySessionStore struct {
	expiries map[string]time.Time
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{expiries: make(map[string]time.Time)}
}

func (s *memorySessionStore) Save(_ context.Context, token string, ttl time.Duration) error {
	s.expiries[token] = time.Now().Add(ttl)
	return nil
}

func (s *memorySessionStore) Touch(_ context.Context, token string, ttl time.Duration) (bool, error) {
	expiry, ok := s.expiries[token]
	if !ok || time.Now().After(expiry) {
		delete(s.expiries, token)
		return false, nil
	}
	s.expiries[token] = time.Now().Add(ttl)
	return true, nil
}

func (s *memorySessionStore) Delete(_ context.Context, token string) error {
	delete(s.expiries, token)
	return nil
}

func newTestAdminService(t *testing.T) (AdminService, *memorySessionStore) {
	t.Helper()
	sessions := newMemorySessionStore()
	adminService, err := NewAdminService(sessions, config.AdminConfig{
		Password:   "opensesame",
		SessionTTL: time.Hour,
	})
	require.NoError(t, err)
	return adminService, sessions
}

func TestAdminService_RequiresPassword(t *testing.T) {
	_, err := NewAdminService(newMemorySessionStore(), config.AdminConfig{SessionTTL: time.Hour})
	assert.ErrorIs(t, err, ErrAdminNotConfigured)
}

func TestAdminService_Login(t *testing.T) {
	adminService, sessions := newTestAdminService(t)
	ctx := context.Background()

	_, err := adminService.Login(ctx, "wrong")
	assert.ErrorIs(t, err, ErrAdminPassword)

	token, err := adminService.Login(ctx, "opensesame")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Len(t, sessions.expiries, 1)
}

func TestAdminService_Validate(t *testing.T) {
	adminService, sessions := newTestAdminService(t)
	ctx := context.Background()

	assert.ErrorIs(t, adminService.Validate(ctx, ""), ErrAdminSessionInvalid)
	assert.ErrorIs(t, adminService.Validate(ctx, "no-such-token"), ErrAdminSessionInvalid)

	token, err := adminService.Login(ctx, "opensesame")
	require.NoError(t, err)
	assert.NoError(t, adminService.Validate(ctx, token))

	// Validation slides the expiry forward
	before := sessions.expiries[token]
	time.Sleep(2 * time.Millisecond)
	require.NoError(t, adminService.Validate(ctx, token))
	assert.True(t, sessions.expiries[token].After(before))
}

func TestAdminService_Validate_ExpiredSession(t *testing.T) {
	sessions := newMemorySessionStore()
	adminService, err := NewAdminService(sessions, config.AdminConfig{
		Password:   "opensesame",
		SessionTTL: -time.Second,
	})
	require.NoError(t, err)

	ctx := context.Background()
	token, err := adminService.Login(ctx, "opensesame")
	require.NoError(t, err)

	assert.ErrorIs(t, adminService.Validate(ctx, token), ErrAdminSessionInvalid)
}

func TestAdminService_Logout(t *testing.T) {
	adminService, _ := newTestAdminService(t)
	ctx := context.Background()

	token, err := adminService.Login(ctx, "opensesame")
	require.NoError(t, err)

	require.NoError(t, adminService.Logout(ctx, token))
	assert.ErrorIs(t, adminService.Validate(ctx, token), ErrAdminSessionInvalid)

	// Logging out an empty or unknown token is not an error
	assert.NoError(t, adminService.Logout(ctx, ""))
	assert.NoError(t, adminService.Logout(ctx, token))
}
