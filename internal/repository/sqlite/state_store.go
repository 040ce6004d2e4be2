// Package sqlite persists the tournament blob in a single-file embedded
// database, for single-box deployments that do not want to run postgres.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/casey/kickball-cup/internal/domain"
	"github.com/casey/kickball-cup/internal/repository"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS tournament_state (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    blob TEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL
);
`

type StateStore struct {
	db *sql.DB
}

// NewStateStore opens (or creates) the database at path and ensures the
// schema exists. Safe to call on an existing file.
func NewStateStore(path string) (*StateStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}

	// The single-row table makes connection pooling pointless, and a single
	// connection avoids SQLITE_BUSY on concurrent writes.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &StateStore{db: db}, nil
}

func (s *StateStore) Close() error {
	return s.db.Close()
}

func (s *StateStore) Load(ctx context.Context) (*domain.TournamentState, error) {
	var blob []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT blob FROM tournament_state WHERE id = 1`).Scan(&blob)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrStateNotFound
		}
		return nil, err
	}

	var state domain.TournamentState
	if err := json.Unmarshal(blob, &state); err != nil {
		return nil, err
	}
	state.Normalize()

	return &state, nil
}

func (s *StateStore) Save(ctx context.Context, state *domain.TournamentState) error {
	blob, err := json.Marshal(state)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO tournament_state (id, blob, updated_at) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET blob = excluded.blob, updated_at = excluded.updated_at`,
		string(blob), time.Now())
	return err
}

func (s *StateStore) Delete(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM tournament_state WHERE id = 1`)
	return err
}
