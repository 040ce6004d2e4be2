package repository

import (
	"context"
	"errors"

	"github.com/casey/kickball-cup/internal/domain"
)

// ErrStateNotFound is returned by Load when no tournament state has been
// persisted yet; the service treats it as the fresh registration state.
var ErrStateNotFound = errors.New("no tournament state saved")

// StateStore persists the single tournament aggregate as one blob.
// Implementations do not need to serialize access; the service layer holds a
// write lock across each load-mutate-save cycle.
type StateStore interface {
	Load(ctx context.Context) (*domain.TournamentState, error)
	Save(ctx context.Context, state *domain.TournamentState) error
	Delete(ctx context.Context) error
}
