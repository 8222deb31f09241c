package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shlee-dev/veloura-backend/config"
	"github.com/shlee-dev/veloura-backend/pkg/logger"
	"github.com/shlee-dev/veloura-backend/pkg/util"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrAdminPassword       = errors.New("wrong admin password")
	ErrAdminSessionInvalid = errors.New("admin session invalid or expired")
	ErrAdminNotConfigured  = errors.New("admin password not configured")
)

// SessionStore persists opaque admin session tokens with a TTL.
// pkg/redis provides the production implementation.
type SessionStore interface {
	Save(ctx context.Context, token string, ttl time.Duration) error
	Touch(ctx context.Context, token string, ttl time.Duration) (bool, error)
	Delete(ctx context.Context, token string) error
}

type AdminService interface {
	// Login checks the password and mints a new session token.
	Login(ctx context.Context, password string) (string, error)
	// Validate checks the token and slides its expiry forward.
	Validate(ctx context.Context, token string) error
	Logout(ctx context.Context, token string) error
	SessionTTL() time.Duration
}

type adminService struct {
	sessions     SessionStore
	passwordHash string
	sessionTTL   time.Duration
}

func NewAdminService(sessions SessionStore, cfg config.AdminConfig) (AdminService, error) {
	hash := cfg.PasswordHash
	if hash == "" {
		if cfg.Password == "" {
			return nil, ErrAdminNotConfigured
		}
		derived, err := util.HashPassword(cfg.Password)
		if err != nil {
			return nil, err
		}
		hash = derived
	}

	return &adminService{
		sessions:     sessions,
		passwordHash: hash,
		sessionTTL:   cfg.SessionTTL,
	}, nil
}

func (s *adminService) Login(ctx context.Context, password string) (string, error) {
	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)); err != nil {
		logger.Warn("Admin login failed, wrong password")
		return "", ErrAdminPassword
	}

	token := uuid.NewString()
	if err := s.sessions.Save(ctx, token, s.sessionTTL); err != nil {
		logger.Error("Failed to save admin session", err, nil)
		return "", err
	}

	logger.Info("Admin session created")
	return token, nil
}

func (s *adminService) Validate(ctx context.Context, token string) error {
	if token == "" {
		return ErrAdminSessionInvalid
	}

	ok, err := s.sessions.Touch(ctx, token, s.sessionTTL)
	if err != nil {
		logger.Error("Failed to check admin session", err, nil)
		return err
	}
	if !ok {
		return ErrAdminSessionInvalid
	}
	return nil
}

func (s *adminService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, token); err != nil {
		logger.Error("Failed to delete admin session", err, nil)
		return err
	}

	logger.Info("Admin session revoked")
	return nil
}

func (s *adminService) SessionTTL() time.Duration {
	return s.sessionTTL
}
