package experiments

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/garrettladley/liftoff/internal/prefs"
	"github.com/garrettladley/liftoff/internal/xslog"
)

type Client interface {
	GetExperiments(ctx context.Context) (*Payload, error)
}

// Fetcher downloads experiments once per launch and announces completion on
// Fetched.
type Fetcher struct {
	client Client
	layer  *Layer
	prefs  prefs.Store
	logger *slog.Logger

	fetched chan struct{}
	once    sync.Once
}

func NewFetcher(client Client, layer *Layer, store prefs.Store, logger *slog.Logger) *Fetcher {
	return &Fetcher{
		client:  client,
		layer:   layer,
		prefs:   store,
		logger:  logger,
		fetched: make(chan struct{}),
	}
}

// Fetched is closed after the first successful Fetch.
func (f *Fetcher) Fetched() <-chan struct{} {
	return f.fetched
}

func (f *Fetcher) Fetch(ctx context.Context) error {
	start := time.Now()

	p, err := f.client.GetExperiments(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch experiments: %w", err)
	}
	if err := f.Receive(ctx, *p); err != nil {
		return err
	}

	f.logger.InfoContext(ctx, "experiments fetched",
		xslog.Count(len(p.Messages)),
		xslog.Duration(time.Since(start)),
	)
	return nil
}

// Receive applies a payload delivered outside Fetch, such as a pushed update.
func (f *Fetcher) Receive(ctx context.Context, p Payload) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("server sent invalid experiments: %w", err)
	}

	f.layer.Apply(p)

	if err := saveCache(ctx, f.prefs, p, time.Now()); err != nil {
		f.logger.WarnContext(ctx, "failed to cache experiments", xslog.Error(err))
	}

	f.once.Do(func() { close(f.fetched) })
	return nil
}
