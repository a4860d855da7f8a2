package storage

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

var _ RateLimiter = (*MemoryRateLimiter)(nil)

// MemoryRateLimiter is a per-process token bucket per key.
type MemoryRateLimiter struct {
	limiters  map[string]*rate.Limiter
	limiterMu sync.RWMutex
	rateLimit rate.Limit
	rateBurst int
}

func NewMemoryRateLimiter(limit int, window time.Duration) *MemoryRateLimiter {
	return &MemoryRateLimiter{
		limiters:  make(map[string]*rate.Limiter),
		rateLimit: rate.Every(window / time.Duration(max(limit, 1))),
		rateBurst: max(limit, 1),
	}
}

func (m *MemoryRateLimiter) Allow(_ context.Context, key string) (RateLimitResult, error) {
	limiter := m.limiter(key)

	r := limiter.Reserve()
	if delay := r.Delay(); delay > 0 {
		r.Cancel()
		return RateLimitResult{Allowed: false, RetryAfter: delay}, nil
	}
	return RateLimitResult{Allowed: true}, nil
}

func (m *MemoryRateLimiter) limiter(key string) *rate.Limiter {
	m.limiterMu.RLock()
	limiter, exists := m.limiters[key]
	m.limiterMu.RUnlock()

	if exists {
		return limiter
	}

	m.limiterMu.Lock()
	defer m.limiterMu.Unlock()

	limiter, exists = m.limiters[key]
	if exists {
		return limiter
	}

	limiter = rate.NewLimiter(m.rateLimit, m.rateBurst)
	m.limiters[key] = limiter
	return limiter
}
