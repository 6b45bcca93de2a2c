package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PostgresBackend stores documents in the client_state table created by
// db.InitPostgres.
type PostgresBackend struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresBackend creates a PostgresBackend using the provided *sql.DB.
func NewPostgresBackend(db *sql.DB) *PostgresBackend {
	return &PostgresBackend{DB: db}
}

// Load fetches the value stored under key, or ErrNotFound.
func (p *PostgresBackend) Load(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := p.DB.QueryRowContext(ctx,
		`SELECT value FROM client_state WHERE key = $1`, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	return value, nil
}

// Save inserts or replaces the value under key.
func (p *PostgresBackend) Save(ctx context.Context, key string, value []byte) error {
	_, err := p.DB.ExecContext(ctx, `
		INSERT INTO client_state (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE
		  SET value = EXCLUDED.value,
		      updated_at = now()
	`, key, value)
	if err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Delete removes key.
func (p *PostgresBackend) Delete(ctx context.Context, key string) error {
	if _, err := p.DB.ExecContext(ctx, `DELETE FROM client_state WHERE key = $1`, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}
