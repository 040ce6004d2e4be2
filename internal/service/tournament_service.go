package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/casey/kickball-cup/internal/domain"
	"github.com/casey/kickball-cup/internal/repository"
)

// TournamentService is the phase-gated engine behind every tournament action.
// Each mutation loads the full aggregate, applies one change and saves it
// back; mu serializes those cycles so concurrent callers cannot lose writes.
//
// Engine rejections (wrong phase, bad input, non-admin caller) return the
// unchanged snapshot together with a typed error so the boundary can decide
// how loudly to surface them.
type TournamentService struct {
	store repository.StateStore
	log   *slog.Logger

	mu sync.Mutex
}

func NewTournamentService(store repository.StateStore, log *slog.Logger) *TournamentService {
	return &TournamentService{
		store: store,
		log:   log,
	}
}

// load fetches the aggregate, substituting the fresh registration state when
// nothing has been persisted yet.
func (s *TournamentService) load(ctx context.Context) (*domain.TournamentState, error) {
	state, err := s.store.Load(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrStateNotFound) {
			return domain.NewTournamentState(), nil
		}
		return nil, err
	}
	return state, nil
}

// update runs one serialized load-mutate-save cycle. When mutate rejects, the
// loaded snapshot is returned alongside the rejection and nothing is saved.
func (s *TournamentService) update(ctx context.Context, action string, mutate func(*domain.TournamentState) error) (*domain.TournamentState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	if err := mutate(state); err != nil {
		if domain.IsRejection(err) {
			s.log.Info("action rejected",
				"action", action,
				"phase", state.Phase,
				"reason", domain.RejectionReason(err),
				"detail", err.Error())
		}
		return state, err
	}

	if err := s.store.Save(ctx, state); err != nil {
		return nil, fmt.Errorf("save state: %w", err)
	}

	s.log.Info("action applied", "action", action, "phase", state.Phase)
	return state, nil
}

// Snapshot returns the current aggregate for display.
func (s *TournamentService) Snapshot(ctx context.Context) (*domain.TournamentState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// ComputeStandings folds recorded results into win/tie totals.
func (s *TournamentService) ComputeStandings(ctx context.Context) (domain.Standings, error) {
	state, err := s.Snapshot(ctx)
	if err != nil {
		return domain.Standings{}, err
	}
	return state.Standings(), nil
}

// RegisterPlayer adds a uniquely named player during registration. Any
// session may register; the handler re-binds the session to the new name.
func (s *TournamentService) RegisterPlayer(ctx context.Context, caller domain.Caller, name string) (*domain.TournamentState, error) {
	name = strings.TrimSpace(name)

	return s.update(ctx, "register_player", func(st *domain.TournamentState) error {
		if err := requirePhase(st, domain.PhaseRegistration); err != nil {
			return err
		}
		if name == "" {
			return fmt.Errorf("register: %w: empty name", domain.ErrValidation)
		}
		if name == domain.GhostPlayer {
			return fmt.Errorf("register: %w: name %q is reserved", domain.ErrValidation, name)
		}
		if st.HasPlayer(name) {
			return fmt.Errorf("register: %w: player %q already registered", domain.ErrValidation, name)
		}

		st.Players = append(st.Players, name)
		return nil
	})
}

// RemovePlayer drops a player from the roster before registration closes.
func (s *TournamentService) RemovePlayer(ctx context.Context, caller domain.Caller, name string) (*domain.TournamentState, error) {
	return s.update(ctx, "remove_player", func(st *domain.TournamentState) error {
		if err := requireAdmin(caller); err != nil {
			return err
		}
		if err := requirePhase(st, domain.PhaseRegistration); err != nil {
			return err
		}

		idx := st.RegistrationIndex(name)
		if idx < 0 {
			return fmt.Errorf("remove: %w: player %q", domain.ErrNotFound, name)
		}

		st.Players = append(st.Players[:idx], st.Players[idx+1:]...)
		return nil
	})
}

// CompleteRegistration closes registration and opens voting. An odd roster is
// padded with the ghost player so the pool splits evenly; the ghost is a
// normal player from here on.
func (s *TournamentService) CompleteRegistration(ctx context.Context, caller domain.Caller) (*domain.TournamentState, error) {
	return s.update(ctx, "complete_registration", func(st *domain.TournamentState) error {
		if err := requireAdmin(caller); err != nil {
			return err
		}
		if err := requirePhase(st, domain.PhaseRegistration); err != nil {
			return err
		}
		// Three registered players is the floor: ghost padding then yields
		// four, giving each captain a roster of two. Below that the draft
		// pool is empty and neither roster can form a sub-team, leaving no
		// legal action to finish the tournament.
		if len(st.Players) < 3 {
			return fmt.Errorf("complete registration: %w: need at least 3 players, have %d", domain.ErrValidation, len(st.Players))
		}

		if len(st.Players)%2 != 0 {
			st.Players = append(st.Players, domain.GhostPlayer)
		}

		st.Phase = domain.PhaseVoting
		st.VotingOpen = true
		return nil
	})
}

// Reset destroys the aggregate and returns the fresh registration state.
func (s *TournamentService) Reset(ctx context.Context, caller domain.Caller) (*domain.TournamentState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := requireAdmin(caller); err != nil {
		state, loadErr := s.load(ctx)
		if loadErr != nil {
			return nil, loadErr
		}
		return state, err
	}

	if err := s.store.Delete(ctx); err != nil {
		return nil, fmt.Errorf("delete state: %w", err)
	}

	s.log.Info("tournament reset")
	return domain.NewTournamentState(), nil
}

func requirePhase(st *domain.TournamentState, phase domain.Phase) error {
	if st.Phase != phase {
		return fmt.Errorf("%w: in %s, need %s", domain.ErrInvalidPhase, st.Phase, phase)
	}
	return nil
}

func requireAdmin(caller domain.Caller) error {
	if !caller.IsAdmin() {
		return fmt.Errorf("%w: admin required", domain.ErrUnauthorized)
	}
	return nil
}
