package applaunch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/garrettladley/liftoff/internal/prefs"
	"github.com/garrettladley/liftoff/internal/xslog"
)

type MessagePruner interface {
	PruneStale(ctx context.Context) (int, error)
}

// PayloadState reports whether the running payload came from the server or
// its cache. Built-in defaults carry no messages.
type PayloadState interface {
	FromRemote() bool
}

// Setup prepares app state that does not need to block the first frame. It
// runs alongside the splash wait.
type Setup struct {
	prefs    prefs.Store
	messages MessagePruner
	payload  PayloadState
	logger   *slog.Logger
	now      func() time.Time
}

func New(store prefs.Store, messages MessagePruner, payload PayloadState, logger *slog.Logger) *Setup {
	return &Setup{
		prefs:    store,
		messages: messages,
		payload:  payload,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *Setup) Setup(ctx context.Context) error {
	return errors.Join(s.preLaunch(ctx), s.postLaunch(ctx))
}

func (s *Setup) preLaunch(ctx context.Context) error {
	count, err := prefs.Int(ctx, s.prefs, prefs.KeyLaunchCount)
	if err != nil {
		return fmt.Errorf("failed to read launch count: %w", err)
	}
	count++
	if err := prefs.SetInt(ctx, s.prefs, prefs.KeyLaunchCount, count); err != nil {
		return fmt.Errorf("failed to write launch count: %w", err)
	}
	if err := s.prefs.Set(ctx, prefs.KeyLastLaunchAt, s.now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("failed to write last launch: %w", err)
	}
	s.logger.DebugContext(ctx, "pre-launch setup complete", xslog.Count(int(count)))
	return nil
}

func (s *Setup) postLaunch(ctx context.Context) error {
	// pruning against defaults would drop every message's history
	if !s.payload.FromRemote() {
		s.logger.DebugContext(ctx, "skipped message state prune, no remote payload")
		return nil
	}
	n, err := s.messages.PruneStale(ctx)
	if err != nil {
		return fmt.Errorf("failed to prune message state: %w", err)
	}
	if n > 0 {
		s.logger.DebugContext(ctx, "pruned stale message state", xslog.Count(n))
	}
	return nil
}

// LaunchCount returns how many times setup has run.
func LaunchCount(ctx context.Context, store prefs.Store) (int64, error) {
	return prefs.Int(ctx, store, prefs.KeyLaunchCount)
}
