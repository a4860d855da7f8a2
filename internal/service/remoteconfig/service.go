package remoteconfig

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/garrettladley/liftoff/internal/experiments"
	"github.com/garrettladley/liftoff/internal/storage"
	"github.com/garrettladley/liftoff/internal/xerrors"
	"github.com/garrettladley/liftoff/internal/xslog"
)

type Service interface {
	// Current returns the payload clients should run with and whether it was
	// served from the cache.
	Current(ctx context.Context) (experiments.Payload, bool, error)

	// Replace validates and stores p, then notifies subscribers.
	Replace(ctx context.Context, p experiments.Payload) (experiments.Payload, error)

	Subscribe(ctx context.Context) (<-chan experiments.Payload, func(), error)
}

var _ Service = (*CachedService)(nil)

type CachedService struct {
	store storage.ExperimentsStore
	cache storage.ExperimentsCache
	ttl   time.Duration
}

func NewCachedService(store storage.ExperimentsStore, cache storage.ExperimentsCache, ttl time.Duration) *CachedService {
	return &CachedService{store: store, cache: cache, ttl: ttl}
}

func (s *CachedService) Current(ctx context.Context) (experiments.Payload, bool, error) {
	logger := xslog.FromContext(ctx)

	p, err := s.cache.Get(ctx)
	if err == nil {
		return p, true, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		logger.WarnContext(ctx, "experiments cache read failed", xslog.Error(err))
	}

	p, err = s.store.Latest(ctx)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		p = experiments.Defaults()
	case err != nil:
		return experiments.Payload{}, false, xerrors.ServiceUnavailable(
			xerrors.WithMessage("experiments unavailable"),
			xerrors.WithCause(err),
		)
	}

	if err := s.cache.Set(ctx, p, s.ttl); err != nil {
		logger.WarnContext(ctx, "experiments cache write failed", xslog.Error(err))
	}
	return p, false, nil
}

func (s *CachedService) Replace(ctx context.Context, p experiments.Payload) (experiments.Payload, error) {
	if err := p.Validate(); err != nil {
		return experiments.Payload{}, xerrors.Validation(map[string]string{"payload": err.Error()})
	}

	saved, err := s.store.Save(ctx, p)
	if err != nil {
		return experiments.Payload{}, fmt.Errorf("save experiments: %w", err)
	}

	logger := xslog.FromContext(ctx)
	if err := s.cache.Invalidate(ctx); err != nil {
		logger.WarnContext(ctx, "experiments cache invalidation failed", xslog.Error(err))
	}
	if err := s.cache.Publish(ctx, saved); err != nil {
		logger.WarnContext(ctx, "experiments publish failed", xslog.Error(err))
	}

	logger.InfoContext(ctx, "experiments replaced", xslog.Count(len(saved.Messages)))
	return saved, nil
}

func (s *CachedService) Subscribe(ctx context.Context) (<-chan experiments.Payload, func(), error) {
	return s.cache.Subscribe(ctx)
}
