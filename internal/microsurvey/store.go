package microsurvey

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/garrettladley/liftoff/internal/windowid"
	"github.com/garrettladley/liftoff/internal/xslog"
)

const DefaultQueueSize = 16

var ErrStoreClosed = errors.New("microsurvey store closed")

// Store owns the survey prompt state of every registered window. Actions are
// queued by Dispatch and reduced in order by Run.
type Store struct {
	actions chan Action
	done    chan struct{}
	logger  *slog.Logger

	mu     sync.RWMutex
	states map[windowid.UUID]State
	subs   map[windowid.UUID]map[uint64]chan State
	nextID uint64
}

func NewStore(logger *slog.Logger, queueSize int) *Store {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &Store{
		actions: make(chan Action, queueSize),
		done:    make(chan struct{}),
		logger:  logger,
		states:  make(map[windowid.UUID]State),
		subs:    make(map[windowid.UUID]map[uint64]chan State),
	}
}

// Register starts tracking w and returns its current state.
func (s *Store) Register(w windowid.UUID) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.states[w]
	if !ok {
		state = NewState(w)
		s.states[w] = state
	}
	return state
}

func (s *Store) Unregister(w windowid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.states, w)
	for id, ch := range s.subs[w] {
		close(ch)
		delete(s.subs[w], id)
	}
	delete(s.subs, w)
}

func (s *Store) State(w windowid.UUID) (State, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.states[w]
	return state, ok
}

// Subscribe streams state changes for w. Slow readers only see the latest
// state. The returned function must be called to release the subscription.
func (s *Store) Subscribe(w windowid.UUID) (<-chan State, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan State, 1)
	id := s.nextID
	s.nextID++

	if s.subs[w] == nil {
		s.subs[w] = make(map[uint64]chan State)
	}
	s.subs[w][id] = ch

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if c, ok := s.subs[w][id]; ok {
				close(c)
				delete(s.subs[w], id)
			}
		})
	}

	return ch, unsubscribe
}

// Dispatch queues action, blocking while the queue is full.
func (s *Store) Dispatch(ctx context.Context, action Action) error {
	select {
	case <-s.done:
		return ErrStoreClosed
	default:
	}

	select {
	case s.actions <- action:
		return nil
	case <-s.done:
		return ErrStoreClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run reduces queued actions until ctx is done. It must be called once.
func (s *Store) Run(ctx context.Context) error {
	defer close(s.done)

	for {
		select {
		case action := <-s.actions:
			s.apply(ctx, action)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (s *Store) apply(ctx context.Context, action Action) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for w, prev := range s.states {
		next := Reduce(prev, action)
		if next == prev {
			continue
		}
		s.states[w] = next

		s.logger.DebugContext(ctx, "microsurvey state changed",
			xslog.WindowUUID(w.String()),
			xslog.Action(action.Type.String()),
		)

		for _, ch := range s.subs[w] {
			publishLatest(ch, next)
		}
	}
}

func publishLatest(ch chan State, state State) {
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- state:
	default:
	}
}
