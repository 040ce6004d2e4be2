package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/casey/kickball-cup/internal/domain"
)

// CastVote records one vote pair for a registered caller. A session votes at
// most once for the lifetime of the tournament; repeats are rejected, not
// merged.
func (s *TournamentService) CastVote(ctx context.Context, caller domain.Caller, choiceA, choiceB string) (*domain.TournamentState, error) {
	return s.update(ctx, "cast_vote", func(st *domain.TournamentState) error {
		if err := requirePhase(st, domain.PhaseVoting); err != nil {
			return err
		}
		if !st.VotingOpen {
			return fmt.Errorf("vote: %w: voting is closed", domain.ErrInvalidPhase)
		}
		if caller.PlayerName == "" || !st.HasPlayer(caller.PlayerName) {
			return fmt.Errorf("vote: %w: caller is not a registered player", domain.ErrValidation)
		}
		if st.VotedCallers[caller.ID] {
			return fmt.Errorf("vote: %w: caller already voted", domain.ErrValidation)
		}
		if choiceA == "" || choiceB == "" {
			return fmt.Errorf("vote: %w: two choices required", domain.ErrValidation)
		}
		if choiceA == choiceB {
			return fmt.Errorf("vote: %w: choices must differ", domain.ErrValidation)
		}
		if !st.HasPlayer(choiceA) || !st.HasPlayer(choiceB) {
			return fmt.Errorf("vote: %w: choices must be registered players", domain.ErrValidation)
		}

		st.CaptainVotes[choiceA]++
		st.CaptainVotes[choiceB]++
		st.VotedCallers[caller.ID] = true
		return nil
	})
}

// FinalizeCaptains closes voting, elects the two most voted players as
// captains and seeds both rosters. Vote ties break toward earlier
// registration, so with no votes at all the first two registrants lead.
func (s *TournamentService) FinalizeCaptains(ctx context.Context, caller domain.Caller) (*domain.TournamentState, error) {
	return s.update(ctx, "finalize_captains", func(st *domain.TournamentState) error {
		if err := requireAdmin(caller); err != nil {
			return err
		}
		if err := requirePhase(st, domain.PhaseVoting); err != nil {
			return err
		}

		ranked := make([]string, len(st.Players))
		copy(ranked, st.Players)
		sort.SliceStable(ranked, func(i, j int) bool {
			return st.CaptainVotes[ranked[i]] > st.CaptainVotes[ranked[j]]
		})

		captain1, captain2 := ranked[0], ranked[1]
		st.Captains = []string{captain1, captain2}

		st.AvailablePlayers = st.AvailablePlayers[:0]
		for _, p := range st.Players {
			if p != captain1 && p != captain2 {
				st.AvailablePlayers = append(st.AvailablePlayers, p)
			}
		}

		st.Teams = map[string][]string{
			domain.TeamKeyCaptain1: {captain1},
			domain.TeamKeyCaptain2: {captain2},
		}

		st.VotingOpen = false
		st.Phase = domain.PhaseTeamNaming
		return nil
	})
}
