package storage

import (
	"context"
	"errors"
	"time"

	"github.com/garrettladley/liftoff/internal/experiments"
)

var ErrNotFound = errors.New("not found")

// UpdatesChannel is the pub/sub channel announcing a new experiments payload.
const UpdatesChannel = "experiments:updated"

type RateLimitResult struct {
	Allowed    bool
	RetryAfter time.Duration
}

type RateLimiter interface {
	Allow(ctx context.Context, key string) (RateLimitResult, error)
}

// ExperimentsStore is the durable history of experiment payloads.
type ExperimentsStore interface {
	// Latest returns the most recently saved payload, or ErrNotFound.
	Latest(ctx context.Context) (experiments.Payload, error)

	// Save appends p and returns it with UpdatedAt set by the store.
	Save(ctx context.Context, p experiments.Payload) (experiments.Payload, error)

	Ping(ctx context.Context) error
}

// ExperimentsCache fronts the store and fans out updates to subscribers.
type ExperimentsCache interface {
	// Get returns the cached payload, or ErrNotFound on a miss.
	Get(ctx context.Context) (experiments.Payload, error)
	Set(ctx context.Context, p experiments.Payload, ttl time.Duration) error
	Invalidate(ctx context.Context) error

	Publish(ctx context.Context, p experiments.Payload) error
	Subscribe(ctx context.Context) (<-chan experiments.Payload, func(), error)

	Ping(ctx context.Context) error
}
