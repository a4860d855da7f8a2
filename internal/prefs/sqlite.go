package prefs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var _ Store = (*SQLiteStore)(nil)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Get(ctx context.Context, key Key) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM prefs WHERE key = ?", string(key)).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get pref %s: %w", key, err)
	}
	return value, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key Key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO prefs (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, string(key), value)
	if err != nil {
		return fmt.Errorf("failed to set pref %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, key Key) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM prefs WHERE key = ?", string(key)); err != nil {
		return fmt.Errorf("failed to delete pref %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) All(ctx context.Context) (map[Key]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT key, value FROM prefs ORDER BY key")
	if err != nil {
		return nil, fmt.Errorf("failed to list prefs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make(map[Key]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("failed to scan pref: %w", err)
		}
		out[Key(k)] = v
	}
	return out, rows.Err()
}
