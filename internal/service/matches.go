package service

import (
	"context"
	"fmt"

	"github.com/casey/kickball-cup/internal/domain"
)

// MatchPairInput names one match by the sub-team index of each roster.
type MatchPairInput struct {
	Team1Index int `json:"team1Index"`
	Team2Index int `json:"team2Index"`
}

// SavePairings stores the ordered 2-player sub-teams for one captain's
// roster. The groups must partition the full roster, captain included,
// exactly once. Pairings may be re-saved until match setup begins; the phase
// advances when both rosters have pairings.
func (s *TournamentService) SavePairings(ctx context.Context, caller domain.Caller, captainIdx int, groups [][]string) (*domain.TournamentState, error) {
	return s.update(ctx, "save_pairings", func(st *domain.TournamentState) error {
		if err := requireAdmin(caller); err != nil {
			return err
		}
		if err := requirePhase(st, domain.PhaseTeamCreation); err != nil {
			return err
		}

		var key string
		switch captainIdx {
		case 1:
			key = domain.TeamKeyCaptain1
		case 2:
			key = domain.TeamKeyCaptain2
		default:
			return fmt.Errorf("pairings: %w: captain index must be 1 or 2", domain.ErrValidation)
		}

		if err := validatePartition(st.Teams[key], groups); err != nil {
			return err
		}

		stored := make([][]string, len(groups))
		for i, g := range groups {
			stored[i] = append([]string(nil), g...)
		}
		st.TeamPairings[key] = stored

		if len(st.TeamPairings[domain.TeamKeyCaptain1]) > 0 &&
			len(st.TeamPairings[domain.TeamKeyCaptain2]) > 0 {
			st.Phase = domain.PhaseMatchSetup
		}
		return nil
	})
}

// validatePartition checks that groups are all pairs and cover roster exactly
// once, with no outsiders and no repeats.
func validatePartition(roster []string, groups [][]string) error {
	seen := make(map[string]bool, len(roster))
	count := 0

	for _, g := range groups {
		if len(g) != 2 {
			return fmt.Errorf("pairings: %w: each sub-team needs exactly 2 players, got %d", domain.ErrValidation, len(g))
		}
		for _, p := range g {
			if seen[p] {
				return fmt.Errorf("pairings: %w: player %q appears twice", domain.ErrValidation, p)
			}
			seen[p] = true
			count++
		}
	}

	if count != len(roster) {
		return fmt.Errorf("pairings: %w: groups cover %d players, roster has %d", domain.ErrValidation, count, len(roster))
	}
	for _, p := range roster {
		if !seen[p] {
			return fmt.Errorf("pairings: %w: roster player %q is missing", domain.ErrValidation, p)
		}
	}
	return nil
}

// CreateMatches schedules one match per index pair, resolving each side
// against the corresponding captain's sub-teams. IDs are dense and 1-based.
func (s *TournamentService) CreateMatches(ctx context.Context, caller domain.Caller, pairs []MatchPairInput) (*domain.TournamentState, error) {
	return s.update(ctx, "create_matches", func(st *domain.TournamentState) error {
		if err := requireAdmin(caller); err != nil {
			return err
		}
		if err := requirePhase(st, domain.PhaseMatchSetup); err != nil {
			return err
		}
		if len(pairs) == 0 {
			return fmt.Errorf("matches: %w: no pairs given", domain.ErrValidation)
		}

		subs1 := st.TeamPairings[domain.TeamKeyCaptain1]
		subs2 := st.TeamPairings[domain.TeamKeyCaptain2]

		matches := make([]domain.Match, 0, len(pairs))
		for i, pair := range pairs {
			if pair.Team1Index < 0 || pair.Team1Index >= len(subs1) {
				return fmt.Errorf("matches: %w: team1 index %d out of range", domain.ErrValidation, pair.Team1Index)
			}
			if pair.Team2Index < 0 || pair.Team2Index >= len(subs2) {
				return fmt.Errorf("matches: %w: team2 index %d out of range", domain.ErrValidation, pair.Team2Index)
			}

			matches = append(matches, domain.Match{
				ID:       i + 1,
				Team1:    append([]string(nil), subs1[pair.Team1Index]...),
				Team2:    append([]string(nil), subs2[pair.Team2Index]...),
				Captain1: st.Captains[0],
				Captain2: st.Captains[1],
			})
		}

		st.Matches = matches
		st.Phase = domain.PhaseActive
		return nil
	})
}

// RecordResult scores one match. Re-recording overwrites the previous result.
func (s *TournamentService) RecordResult(ctx context.Context, caller domain.Caller, matchID int, result domain.MatchResult) (*domain.TournamentState, error) {
	return s.update(ctx, "record_result", func(st *domain.TournamentState) error {
		if err := requireAdmin(caller); err != nil {
			return err
		}
		if err := requirePhase(st, domain.PhaseActive); err != nil {
			return err
		}
		if !domain.ValidResult(result) {
			return fmt.Errorf("result: %w: unknown result %q", domain.ErrValidation, result)
		}

		for i := range st.Matches {
			if st.Matches[i].ID == matchID {
				r := result
				st.Matches[i].Result = &r
				return nil
			}
		}
		return fmt.Errorf("result: %w: match %d", domain.ErrNotFound, matchID)
	})
}
