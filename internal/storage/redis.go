package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var _ RateLimiter = (*RedisRateLimiter)(nil)

const rateLimitKeyPrefix = "ratelimit:"

// RedisRateLimiter allows limit requests per key in each window, shared by
// every server instance.
type RedisRateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

func NewRedisRateLimiter(cfg RedisConfig, limit int, window time.Duration) *RedisRateLimiter {
	return &RedisRateLimiter{
		client: cfg.Client,
		limit:  limit,
		window: window,
	}
}

func (r *RedisRateLimiter) Allow(ctx context.Context, key string) (RateLimitResult, error) {
	params := rateLimitParams{
		window: r.window,
		limit:  r.limit,
		ttl:    r.window + time.Second,
	}

	allowed, err := runRateLimitScript(ctx, r.client, rateLimitKeyPrefix+key, params)
	if err != nil {
		return RateLimitResult{}, fmt.Errorf("failed to run rate limit script: %w", err)
	}

	return RateLimitResult{
		Allowed:    allowed,
		RetryAfter: r.window,
	}, nil
}
