package messaging

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/garrettladley/liftoff/internal/xslog"
)

// Source yields the messages currently configured remotely.
type Source interface {
	Messages() []Message
}

type Manager struct {
	source Source
	store  StateStore
	logger *slog.Logger
	now    func() time.Time
}

type Option func(*Manager)

func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func NewManager(source Source, store StateStore, logger *slog.Logger, opts ...Option) *Manager {
	m := &Manager{
		source: source,
		store:  store,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// NextMessage returns the highest priority live message for surface, or nil
// when there is none. Messages that expired, were pressed or dismissed, or
// ran out of impressions are skipped.
func (m *Manager) NextMessage(ctx context.Context, surface Surface) (*Message, error) {
	candidates := make([]Message, 0)
	for _, msg := range m.source.Messages() {
		if msg.Surface == surface {
			candidates = append(candidates, msg)
		}
	}

	slices.SortStableFunc(candidates, func(a, b Message) int {
		if c := cmp.Compare(b.Priority, a.Priority); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	now := m.now()
	for _, msg := range candidates {
		if msg.expired(now) {
			continue
		}
		state, err := m.store.Get(ctx, msg.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load state for message %s: %w", msg.ID, err)
		}
		if state.Done() || state.Impressions >= msg.maxImpressions() {
			continue
		}
		return &msg, nil
	}

	return nil, nil
}

func (m *Manager) OnMessageDisplayed(ctx context.Context, msg Message) error {
	n, err := m.store.IncrementImpressions(ctx, msg.ID)
	if err != nil {
		return err
	}
	m.logger.DebugContext(ctx, "message displayed",
		xslog.MessageID(msg.ID),
		xslog.Surface(string(msg.Surface)),
		xslog.Count(n),
	)
	return nil
}

func (m *Manager) OnMessagePressed(ctx context.Context, msg Message) error {
	if err := m.store.MarkPressed(ctx, msg.ID); err != nil {
		return err
	}
	m.logger.InfoContext(ctx, "message pressed",
		xslog.MessageID(msg.ID),
		xslog.Surface(string(msg.Surface)),
	)
	return nil
}

func (m *Manager) OnMessageDismissed(ctx context.Context, msg Message) error {
	if err := m.store.MarkDismissed(ctx, msg.ID); err != nil {
		return err
	}
	m.logger.InfoContext(ctx, "message dismissed",
		xslog.MessageID(msg.ID),
		xslog.Surface(string(msg.Surface)),
	)
	return nil
}

func (m *Manager) ImpressionCount(ctx context.Context, messageID string) (int, error) {
	state, err := m.store.Get(ctx, messageID)
	if err != nil {
		return 0, err
	}
	return state.Impressions, nil
}

// PruneStale drops interaction history for messages no longer configured.
func (m *Manager) PruneStale(ctx context.Context) (int, error) {
	msgs := m.source.Messages()
	keep := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		keep = append(keep, msg.ID)
	}
	return m.store.Prune(ctx, keep)
}

// StaticSource serves a fixed message list.
type StaticSource []Message

func (s StaticSource) Messages() []Message { return s }
