package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"golang.org/x/oauth2"
)

var ErrNoToken = errors.New("no sync account token")

// TokenStore persists the sync account token.
type TokenStore interface {
	Load(ctx context.Context) (*oauth2.Token, error)
	Save(ctx context.Context, token *oauth2.Token) error
	Clear(ctx context.Context) error
}

var _ TokenStore = (*SQLiteTokenStore)(nil)

type SQLiteTokenStore struct {
	db *sql.DB
}

func NewSQLiteTokenStore(db *sql.DB) *SQLiteTokenStore {
	return &SQLiteTokenStore{db: db}
}

func (s *SQLiteTokenStore) Load(ctx context.Context) (*oauth2.Token, error) {
	var (
		token   oauth2.Token
		refresh sql.NullString
		expiry  sql.NullTime
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT access_token, token_type, refresh_token, expiry FROM sync_account WHERE id = 1",
	).Scan(&token.AccessToken, &token.TokenType, &refresh, &expiry)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoToken
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load token: %w", err)
	}
	if refresh.Valid {
		token.RefreshToken = refresh.String
	}
	if expiry.Valid {
		token.Expiry = expiry.Time
	}
	return &token, nil
}

func (s *SQLiteTokenStore) Save(ctx context.Context, token *oauth2.Token) error {
	var (
		refresh sql.NullString
		expiry  sql.NullTime
	)
	if token.RefreshToken != "" {
		refresh = sql.NullString{String: token.RefreshToken, Valid: true}
	}
	if !token.Expiry.IsZero() {
		expiry = sql.NullTime{Time: token.Expiry.UTC(), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sync_account (id, access_token, token_type, refresh_token, expiry, updated_at)
		VALUES (1, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			access_token = excluded.access_token,
			token_type = excluded.token_type,
			refresh_token = excluded.refresh_token,
			expiry = excluded.expiry,
			updated_at = excluded.updated_at
	`, token.AccessToken, token.TokenType, refresh, expiry)
	if err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

func (s *SQLiteTokenStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM sync_account"); err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	return nil
}

// Checker answers whether the user has an account that can sync.
type Checker struct {
	store TokenStore
	now   func() time.Time
}

func NewChecker(store TokenStore) *Checker {
	return &Checker{store: store, now: time.Now}
}

// HasSyncableAccount is true when a token is stored and is either still valid
// or can be refreshed.
func (c *Checker) HasSyncableAccount(ctx context.Context) (bool, error) {
	token, err := c.store.Load(ctx)
	if errors.Is(err, ErrNoToken) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if token.AccessToken == "" {
		return false, nil
	}
	if token.RefreshToken != "" {
		return true, nil
	}
	return token.Expiry.IsZero() || token.Expiry.After(c.now()), nil
}
