package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shlee-dev/veloura-backend/config"
	"github.com/shlee-dev/veloura-backend/pkg/logger"
)

var client *redis.Client

// Init initializes the Redis connection
func Init(cfg *config.RedisConfig) error {
	logger.Info("Initializing Redis connection", map[string]interface{}{
		"host": cfg.Host,
		"port": cfg.Port,
		"db":   cfg.DB,
	})

	client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to Redis", err, map[string]interface{}{
			"host": cfg.Host,
			"port": cfg.Port,
		})
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis connection established successfully", nil)
	return nil
}

// GetClient returns the Redis client instance
func GetClient() *redis.Client {
	return client
}

// Close closes the Redis connection
func Close() error {
	if client != nil {
		logger.Info("Closing Redis connection", nil)
		return client.Close()
	}
	return nil
}

// SessionStore keeps admin session tokens in Redis. Token presence is the
// sole proof of an admin session; revocation deletes the key.
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore creates a session store backed by the shared client
func NewSessionStore(c *redis.Client) *SessionStore {
	return &SessionStore{client: c}
}

func sessionKey(token string) string {
	return fmt.Sprintf("admin:session:%s", token)
}

// Save stores a new session token with the given TTL
func (s *SessionStore) Save(ctx context.Context, token string, ttl time.Duration) error {
	if err := s.client.Set(ctx, sessionKey(token), "active", ttl).Err(); err != nil {
		logger.Error("Failed to store admin session", err, nil)
		return err
	}

	logger.Debug("Admin session stored", map[string]interface{}{
		"ttl": ttl.String(),
	})
	return nil
}

// Touch checks whether a session token exists and slides its TTL forward
func (s *SessionStore) Touch(ctx context.Context, token string, ttl time.Duration) (bool, error) {
	key := sessionKey(token)

	val, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		logger.Error("Failed to check admin session", err, nil)
		return false, err
	}
	if val != "active" {
		return false, nil
	}

	if err := s.client.Expire(ctx, key, ttl).Err(); err != nil {
		logger.Error("Failed to renew admin session TTL", err, nil)
		return false, err
	}

	return true, nil
}

// Delete revokes a session token
func (s *SessionStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, sessionKey(token)).Err(); err != nil {
		logger.Error("Failed to revoke admin session", err, nil)
		return err
	}

	logger.Debug("Admin session revoked", nil)
	return nil
}
