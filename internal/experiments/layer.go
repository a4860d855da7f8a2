package experiments

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	go_json "github.com/goccy/go-json"

	"github.com/garrettladley/liftoff/internal/messaging"
	"github.com/garrettladley/liftoff/internal/prefs"
)

var _ messaging.Source = (*Layer)(nil)

// Layer holds the experiment payload the app is currently running with.
type Layer struct {
	mu      sync.RWMutex
	payload Payload
	remote  bool
}

func NewLayer() *Layer {
	return &Layer{payload: Defaults()}
}

func (l *Layer) Apply(p Payload) {
	l.mu.Lock()
	l.payload = p
	l.remote = true
	l.mu.Unlock()
}

// FromRemote reports whether the payload was fetched or loaded from the
// cache. It is false while the layer still holds Defaults.
func (l *Layer) FromRemote() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.remote
}

func (l *Layer) Current() Payload {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.payload
}

func (l *Layer) Messages() []messaging.Message {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.payload.Messages)
}

// MaximumDuration bounds the splash wait. Negative values clamp to zero.
func (l *Layer) MaximumDuration() time.Duration {
	l.mu.RLock()
	ms := l.payload.SplashScreen.MaximumDurationMs
	l.mu.RUnlock()

	if ms < 0 {
		ms = 0
	}
	return time.Duration(ms) * time.Millisecond
}

// LoadCached applies the payload cached by the last successful fetch, if any.
func (l *Layer) LoadCached(ctx context.Context, store prefs.Store) (bool, error) {
	raw, err := store.Get(ctx, prefs.KeyExperimentsCache)
	if errors.Is(err, prefs.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	var p Payload
	if err := go_json.Unmarshal([]byte(raw), &p); err != nil {
		return false, fmt.Errorf("failed to decode cached experiments: %w", err)
	}
	if err := p.Validate(); err != nil {
		return false, fmt.Errorf("invalid cached experiments: %w", err)
	}

	l.Apply(p)
	return true, nil
}

func saveCache(ctx context.Context, store prefs.Store, p Payload, at time.Time) error {
	data, err := go_json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode experiments: %w", err)
	}
	if err := store.Set(ctx, prefs.KeyExperimentsCache, string(data)); err != nil {
		return err
	}
	return store.Set(ctx, prefs.KeyExperimentsCachedAt, at.UTC().Format(time.RFC3339))
}
