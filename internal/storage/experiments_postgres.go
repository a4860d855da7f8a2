package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	go_json "github.com/goccy/go-json"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/garrettladley/liftoff/internal/experiments"
)

var _ ExperimentsStore = (*PostgresExperimentsStore)(nil)

type PostgresExperimentsStore struct {
	pool *pgxpool.Pool
}

func NewPostgresExperimentsStore(pool *pgxpool.Pool) *PostgresExperimentsStore {
	return &PostgresExperimentsStore{pool: pool}
}

func (s *PostgresExperimentsStore) Latest(ctx context.Context) (experiments.Payload, error) {
	var (
		data      []byte
		createdAt time.Time
	)
	err := s.pool.QueryRow(ctx,
		`SELECT payload, created_at FROM experiment_payloads ORDER BY id DESC LIMIT 1`,
	).Scan(&data, &createdAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return experiments.Payload{}, ErrNotFound
	}
	if err != nil {
		return experiments.Payload{}, fmt.Errorf("select latest experiments: %w", err)
	}

	var p experiments.Payload
	if err := go_json.Unmarshal(data, &p); err != nil {
		return experiments.Payload{}, fmt.Errorf("unmarshal experiments: %w", err)
	}
	p.UpdatedAt = createdAt.UTC()
	return p, nil
}

func (s *PostgresExperimentsStore) Save(ctx context.Context, p experiments.Payload) (experiments.Payload, error) {
	p.UpdatedAt = time.Time{}
	data, err := go_json.Marshal(p)
	if err != nil {
		return experiments.Payload{}, fmt.Errorf("marshal experiments: %w", err)
	}

	var createdAt time.Time
	err = s.pool.QueryRow(ctx,
		`INSERT INTO experiment_payloads (payload) VALUES ($1) RETURNING created_at`,
		data,
	).Scan(&createdAt)
	if err != nil {
		return experiments.Payload{}, fmt.Errorf("insert experiments: %w", err)
	}

	p.UpdatedAt = createdAt.UTC()
	return p, nil
}

func (s *PostgresExperimentsStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}
