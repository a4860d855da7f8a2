package storage

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

//go:embed ratelimit.lua
var rateLimitLua string

var rateLimitScript = redis.NewScript(rateLimitLua)

type rateLimitParams struct {
	window time.Duration // ARGV[1], milliseconds
	limit  int           // ARGV[2]
	ttl    time.Duration // ARGV[3], seconds
}

func (p rateLimitParams) args() []any {
	return []any{
		p.window.Milliseconds(),
		p.limit,
		max(int(p.ttl.Seconds()), 1),
	}
}

// runRateLimitScript records one request against key and reports whether it
// fits in the window.
func runRateLimitScript(ctx context.Context, client *redis.Client, key string, params rateLimitParams) (bool, error) {
	result, err := rateLimitScript.Run(ctx, client, []string{key}, params.args()...).Int()
	if err != nil {
		return false, fmt.Errorf("eval sliding window: %w", err)
	}
	return result == 1, nil
}
