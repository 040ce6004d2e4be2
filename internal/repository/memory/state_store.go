// Package memory backs the tournament with an in-process blob. Used for
// development and tests; state does not survive a restart.
package memory

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/casey/kickball-cup/internal/domain"
	"github.com/casey/kickball-cup/internal/repository"
)

type StateStore struct {
	mu   sync.RWMutex
	blob []byte
}

func NewStateStore() *StateStore {
	return &StateStore{}
}

// Load round-trips through JSON so callers never alias the stored state,
// matching the copy semantics of the durable stores.
func (s *StateStore) Load(ctx context.Context) (*domain.TournamentState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.blob == nil {
		return nil, repository.ErrStateNotFound
	}

	var state domain.TournamentState
	if err := json.Unmarshal(s.blob, &state); err != nil {
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

	s.mu.Lock()
	s.blob = blob
	s.mu.Unlock()
	return nil
}

func (s *StateStore) Delete(ctx context.Context) error {
	s.mu.Lock()
	s.blob = nil
	s.mu.Unlock()
	return nil
}
