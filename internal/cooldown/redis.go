// Package cooldown implements arbscan.Backstop over Redis, letting
// Cooldown state survive a process restart. The in-memory map inside
// arbscan.Cooldown is always sufficient on its own; this is additive.
package cooldown

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisBackstop records cooldown keys in Redis with a TTL equal to the
// cooldown window, using SETNX semantics so a key already present
// within the window denies the attempt.
type RedisBackstop struct {
	client *redis.Client
	prefix string
}

// NewRedisBackstop builds a RedisBackstop against client, namespacing
// every key under prefix (e.g. "arbscan:cooldown:").
func NewRedisBackstop(client *redis.Client, prefix string) *RedisBackstop {
	return &RedisBackstop{client: client, prefix: prefix}
}

// Allow implements arbscan.Backstop.
func (b *RedisBackstop) Allow(ctx context.Context, key string, window time.Duration) (bool, error) {
	set, err := b.client.SetNX(ctx, b.prefix+key, 1, window).Result()
	if err != nil {
		return false, fmt.Errorf("redis cooldown setnx: %w", err)
	}
	return set, nil
}
