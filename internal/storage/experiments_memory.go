package storage

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/garrettladley/liftoff/internal/experiments"
)

var (
	_ ExperimentsStore = (*MemoryExperimentsStore)(nil)
	_ ExperimentsCache = (*MemoryExperimentsCache)(nil)
)

type MemoryExperimentsStore struct {
	mu      sync.RWMutex
	history []experiments.Payload
	now     func() time.Time
}

func NewMemoryExperimentsStore() *MemoryExperimentsStore {
	return &MemoryExperimentsStore{now: time.Now}
}

func (s *MemoryExperimentsStore) Latest(_ context.Context) (experiments.Payload, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.history) == 0 {
		return experiments.Payload{}, ErrNotFound
	}
	return s.history[len(s.history)-1], nil
}

func (s *MemoryExperimentsStore) Save(_ context.Context, p experiments.Payload) (experiments.Payload, error) {
	p.Messages = slices.Clone(p.Messages)
	p.UpdatedAt = s.now().UTC()

	s.mu.Lock()
	s.history = append(s.history, p)
	s.mu.Unlock()
	return p, nil
}

func (s *MemoryExperimentsStore) Ping(_ context.Context) error {
	return nil
}

type cachedPayload struct {
	payload   experiments.Payload
	expiresAt time.Time
}

// MemoryExperimentsCache is a single-process cache. Subscribers only see
// updates published through the same instance.
type MemoryExperimentsCache struct {
	mu      sync.Mutex
	entry   *cachedPayload
	subs    map[uint64]chan experiments.Payload
	nextSub uint64
	now     func() time.Time
}

func NewMemoryExperimentsCache() *MemoryExperimentsCache {
	return &MemoryExperimentsCache{
		subs: make(map[uint64]chan experiments.Payload),
		now:  time.Now,
	}
}

func (c *MemoryExperimentsCache) Get(_ context.Context) (experiments.Payload, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.entry == nil {
		return experiments.Payload{}, ErrNotFound
	}
	if !c.entry.expiresAt.IsZero() && c.now().After(c.entry.expiresAt) {
		c.entry = nil
		return experiments.Payload{}, ErrNotFound
	}
	return c.entry.payload, nil
}

func (c *MemoryExperimentsCache) Set(_ context.Context, p experiments.Payload, ttl time.Duration) error {
	entry := &cachedPayload{payload: p}
	if ttl > 0 {
		entry.expiresAt = c.now().Add(ttl)
	}

	c.mu.Lock()
	c.entry = entry
	c.mu.Unlock()
	return nil
}

func (c *MemoryExperimentsCache) Invalidate(_ context.Context) error {
	c.mu.Lock()
	c.entry = nil
	c.mu.Unlock()
	return nil
}

func (c *MemoryExperimentsCache) Publish(_ context.Context, p experiments.Payload) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, ch := range c.subs {
		select {
		case ch <- p:
		default:
		}
	}
	return nil
}

func (c *MemoryExperimentsCache) Subscribe(_ context.Context) (<-chan experiments.Payload, func(), error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch := make(chan experiments.Payload, 1)
	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subs, id)
			close(ch)
			c.mu.Unlock()
		})
	}
	return ch, unsubscribe, nil
}

func (c *MemoryExperimentsCache) Ping(_ context.Context) error {
	return nil
}
