package service

import (
	"context"
	"fmt"

	"github.com/casey/kickball-cup/internal/domain"
)

// SaveTeamNames stores display names for both rosters and opens the draft.
// Blank names fall back to the captain's own name.
func (s *TournamentService) SaveTeamNames(ctx context.Context, caller domain.Caller, name1, name2 string) (*domain.TournamentState, error) {
	return s.update(ctx, "save_team_names", func(st *domain.TournamentState) error {
		if err := requireAdmin(caller); err != nil {
			return err
		}
		if err := requirePhase(st, domain.PhaseTeamNaming); err != nil {
			return err
		}

		if name1 == "" {
			name1 = "Team " + st.Captains[0]
		}
		if name2 == "" {
			name2 = "Team " + st.Captains[1]
		}

		st.TeamNames = map[string]string{
			domain.TeamKeyCaptain1: name1,
			domain.TeamKeyCaptain2: name2,
		}

		st.Phase = domain.PhaseDraft
		return nil
	})
}

// DraftPick assigns the named player to whichever captain owns the current
// turn. Draining the pool ends the draft inside the same action; there is no
// separate completion trigger.
func (s *TournamentService) DraftPick(ctx context.Context, caller domain.Caller, player string) (*domain.TournamentState, error) {
	return s.update(ctx, "draft_pick", func(st *domain.TournamentState) error {
		if err := requireAdmin(caller); err != nil {
			return err
		}
		if err := requirePhase(st, domain.PhaseDraft); err != nil {
			return err
		}

		poolIdx := -1
		for i, p := range st.AvailablePlayers {
			if p == player {
				poolIdx = i
				break
			}
		}
		if poolIdx < 0 {
			return fmt.Errorf("draft: %w: player %q is not available", domain.ErrValidation, player)
		}

		key := domain.CaptainKeyForTurn(st.CurrentDraftTurn)
		captain := st.Captains[0]
		if key == domain.TeamKeyCaptain2 {
			captain = st.Captains[1]
		}

		st.Teams[key] = append(st.Teams[key], player)
		st.AvailablePlayers = append(st.AvailablePlayers[:poolIdx], st.AvailablePlayers[poolIdx+1:]...)
		st.DraftOrder = append(st.DraftOrder, domain.DraftPick{
			Pick:    st.CurrentDraftTurn + 1,
			Captain: captain,
			Player:  player,
		})
		st.CurrentDraftTurn++

		if len(st.AvailablePlayers) == 0 {
			st.Phase = domain.PhaseTeamCreation
		}
		return nil
	})
}
