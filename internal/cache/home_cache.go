package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shlee-dev/veloura-backend/pkg/logger"
)

const (
	homeKey = "view:home"
	homeTTL = 5 * time.Minute
)

// HomeCache keeps the assembled home payload in Redis so the storefront's
// hottest read skips the database. Writers to home-visible data invalidate
// it through the service layer.
type HomeCache struct {
	client *redis.Client
}

func NewHomeCache(client *redis.Client) *HomeCache {
	return &HomeCache{client: client}
}

// GetHome returns the cached payload, or "" on a miss
func (c *HomeCache) GetHome(ctx context.Context) (string, error) {
	val, err := c.client.Get(ctx, homeKey).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		logger.Error("Failed to read home cache", err, nil)
		return "", err
	}
	return val, nil
}

// SetHome stores the serialized payload with a short TTL
func (c *HomeCache) SetHome(ctx context.Context, payload string) error {
	if err := c.client.Set(ctx, homeKey, payload, homeTTL).Err(); err != nil {
		logger.Error("Failed to write home cache", err, nil)
		return err
	}
	return nil
}

// InvalidateHome drops the cached payload
func (c *HomeCache) InvalidateHome(ctx context.Context) error {
	if err := c.client.Del(ctx, homeKey).Err(); err != nil {
		logger.Error("Failed to invalidate home cache", err, nil)
		return err
	}

	logger.Debug("Home cache invalidated", nil)
	return nil
}
