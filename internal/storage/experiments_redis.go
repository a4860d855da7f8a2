package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	go_json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/garrettladley/liftoff/internal/experiments"
)

const experimentsCacheKey = "experiments:current"

var _ ExperimentsCache = (*RedisExperimentsCache)(nil)

type RedisConfig struct {
	Client *redis.Client
}

type RedisExperimentsCache struct {
	client *redis.Client
}

func NewRedisExperimentsCache(cfg RedisConfig) *RedisExperimentsCache {
	return &RedisExperimentsCache{client: cfg.Client}
}

func (c *RedisExperimentsCache) Get(ctx context.Context) (experiments.Payload, error) {
	data, err := c.client.Get(ctx, experimentsCacheKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return experiments.Payload{}, ErrNotFound
	}
	if err != nil {
		return experiments.Payload{}, fmt.Errorf("failed to get cached experiments: %w", err)
	}

	var p experiments.Payload
	if err := go_json.Unmarshal(data, &p); err != nil {
		return experiments.Payload{}, fmt.Errorf("failed to unmarshal cached experiments: %w", err)
	}
	return p, nil
}

func (c *RedisExperimentsCache) Set(ctx context.Context, p experiments.Payload, ttl time.Duration) error {
	data, err := go_json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal experiments: %w", err)
	}
	if err := c.client.Set(ctx, experimentsCacheKey, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache experiments: %w", err)
	}
	return nil
}

func (c *RedisExperimentsCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, experimentsCacheKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate experiments: %w", err)
	}
	return nil
}

func (c *RedisExperimentsCache) Publish(ctx context.Context, p experiments.Payload) error {
	data, err := go_json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal experiments: %w", err)
	}
	if err := c.client.Publish(ctx, UpdatesChannel, string(data)).Err(); err != nil {
		return fmt.Errorf("publish experiments: %w", err)
	}
	return nil
}

func (c *RedisExperimentsCache) Subscribe(ctx context.Context) (<-chan experiments.Payload, func(), error) {
	pubsub := c.client.Subscribe(ctx, UpdatesChannel)

	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, nil, fmt.Errorf("subscribe: %w", err)
	}

	updates := make(chan experiments.Payload)

	go func() {
		defer close(updates)
		for msg := range pubsub.Channel() {
			var p experiments.Payload
			if err := go_json.Unmarshal([]byte(msg.Payload), &p); err != nil {
				continue
			}

			select {
			case updates <- p:
			case <-ctx.Done():
				return
			}
		}
	}()

	unsubscribe := func() {
		_ = pubsub.Close()
	}

	return updates, unsubscribe, nil
}

func (c *RedisExperimentsCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
