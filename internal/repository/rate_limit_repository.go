package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimitRepository counts hits per key in fixed Redis windows.
type RateLimitRepository struct {
	client *redis.Client
	prefix string
}

// NewRateLimitRepository constructs the repository. Keys are namespaced by prefix.
func NewRateLimitRepository(client *redis.Client, prefix string) *RateLimitRepository {
	return &RateLimitRepository{client: client, prefix: prefix}
}

// Allow records one hit for key and reports whether it is within limit for the
// current window, together with the time left in that window.
func (r *RateLimitRepository) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, time.Duration, error) {
	if r.client == nil || limit <= 0 {
		return true, 0, nil
	}
	fullKey := r.prefix + key

	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, fullKey)
	ttl := pipe.PTTL(ctx, fullKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, fmt.Errorf("rate limit incr %s: %w", fullKey, err)
	}

	remaining := ttl.Val()
	if remaining < 0 {
		// first hit in the window, or a key that lost its expiry
		if err := r.client.PExpire(ctx, fullKey, window).Err(); err != nil {
			return false, 0, fmt.Errorf("rate limit expire %s: %w", fullKey, err)
		}
		remaining = window
	}
	return incr.Val() <= int64(limit), remaining, nil
}
