package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// notificationsEnabledKey is the Redis key holding the global enabled flag.
const notificationsEnabledKey = "notifications_enabled"

// RedisPreferences persists the notification enabled flag in Redis.
type RedisPreferences struct {
	client *redis.Client
}

// NewRedisPreferences creates a new RedisPreferences.
func NewRedisPreferences(client *redis.Client) *RedisPreferences {
	return &RedisPreferences{client: client}
}

// Enabled reads the persisted flag. A missing key or a read failure counts as
// disabled: when in doubt, stay quiet.
func (p *RedisPreferences) Enabled(ctx context.Context) bool {
	value, err := p.client.Get(ctx, notificationsEnabledKey).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Error("failed to read notification preference", "error", err)
		}
		return false
	}
	return value == "true"
}

// SetEnabled persists the flag.
func (p *RedisPreferences) SetEnabled(ctx context.Context, enabled bool) error {
	value := "false"
	if enabled {
		value = "true"
	}
	if err := p.client.Set(ctx, notificationsEnabledKey, value, 0).Err(); err != nil {
		return fmt.Errorf("persist notification preference: %w", err)
	}
	return nil
}
