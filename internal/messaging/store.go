package messaging

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
)

type StateStore interface {
	Get(ctx context.Context, messageID string) (State, error)
	IncrementImpressions(ctx context.Context, messageID string) (int, error)
	MarkPressed(ctx context.Context, messageID string) error
	MarkDismissed(ctx context.Context, messageID string) error
	// Prune removes state for every message not in keep.
	Prune(ctx context.Context, keep []string) (int, error)
}

var (
	_ StateStore = (*SQLiteStateStore)(nil)
	_ StateStore = (*MemoryStateStore)(nil)
)

type SQLiteStateStore struct {
	db *sql.DB
}

func NewSQLiteStateStore(db *sql.DB) *SQLiteStateStore {
	return &SQLiteStateStore{db: db}
}

func (s *SQLiteStateStore) Get(ctx context.Context, messageID string) (State, error) {
	var (
		state              = State{MessageID: messageID}
		pressed, dismissed int
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT impressions, pressed, dismissed FROM message_state WHERE message_id = ?",
		messageID,
	).Scan(&state.Impressions, &pressed, &dismissed)
	if errors.Is(err, sql.ErrNoRows) {
		return state, nil
	}
	if err != nil {
		return State{}, fmt.Errorf("failed to get message state: %w", err)
	}
	state.Pressed = pressed == 1
	state.Dismissed = dismissed == 1
	return state, nil
}

func (s *SQLiteStateStore) IncrementImpressions(ctx context.Context, messageID string) (int, error) {
	var impressions int
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO message_state (message_id, impressions) VALUES (?, 1)
		ON CONFLICT(message_id) DO UPDATE SET impressions = impressions + 1, updated_at = CURRENT_TIMESTAMP
		RETURNING impressions
	`, messageID).Scan(&impressions)
	if err != nil {
		return 0, fmt.Errorf("failed to increment impressions: %w", err)
	}
	return impressions, nil
}

func (s *SQLiteStateStore) MarkPressed(ctx context.Context, messageID string) error {
	return s.mark(ctx, messageID, "pressed")
}

func (s *SQLiteStateStore) MarkDismissed(ctx context.Context, messageID string) error {
	return s.mark(ctx, messageID, "dismissed")
}

func (s *SQLiteStateStore) mark(ctx context.Context, messageID, column string) error {
	// column is one of two constants above, never user input
	query := fmt.Sprintf(`
		INSERT INTO message_state (message_id, %[1]s) VALUES (?, 1)
		ON CONFLICT(message_id) DO UPDATE SET %[1]s = 1, updated_at = CURRENT_TIMESTAMP
	`, column)
	if _, err := s.db.ExecContext(ctx, query, messageID); err != nil {
		return fmt.Errorf("failed to mark message %s: %w", column, err)
	}
	return nil
}

func (s *SQLiteStateStore) Prune(ctx context.Context, keep []string) (int, error) {
	query := "DELETE FROM message_state"
	args := make([]any, 0, len(keep))
	if len(keep) > 0 {
		query += " WHERE message_id NOT IN (?" + strings.Repeat(", ?", len(keep)-1) + ")"
		for _, id := range keep {
			args = append(args, id)
		}
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to prune message state: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count pruned rows: %w", err)
	}
	return int(n), nil
}

type MemoryStateStore struct {
	mu     sync.Mutex
	states map[string]State
}

func NewMemoryStateStore() *MemoryStateStore {
	return &MemoryStateStore{states: make(map[string]State)}
}

func (m *MemoryStateStore) Get(_ context.Context, messageID string) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, ok := m.states[messageID]
	if !ok {
		return State{MessageID: messageID}, nil
	}
	return state, nil
}

func (m *MemoryStateStore) IncrementImpressions(_ context.Context, messageID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	state := m.states[messageID]
	state.MessageID = messageID
	state.Impressions++
	m.states[messageID] = state
	return state.Impressions, nil
}

func (m *MemoryStateStore) MarkPressed(_ context.Context, messageID string) error {
	m.update(messageID, func(s *State) { s.Pressed = true })
	return nil
}

func (m *MemoryStateStore) MarkDismissed(_ context.Context, messageID string) error {
	m.update(messageID, func(s *State) { s.Dismissed = true })
	return nil
}

func (m *MemoryStateStore) Prune(_ context.Context, keep []string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := make(map[string]struct{}, len(keep))
	for _, id := range keep {
		kept[id] = struct{}{}
	}

	var n int
	for id := range m.states {
		if _, ok := kept[id]; !ok {
			delete(m.states, id)
			n++
		}
	}
	return n, nil
}

func (m *MemoryStateStore) update(messageID string, fn func(*State)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	state := m.states[messageID]
	state.MessageID = messageID
	fn(&state)
	m.states[messageID] = state
}
