package service_test

import (
	"context"
	"testing"

	"github.com/casey/kickball-cup/internal/domain"
	"github.com/casey/kickball-cup/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveTeamNames(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc := testutil.NewTestTournamentService(t)
		testutil.AdvanceToVoting(t, svc, "ana", "ben", "cam", "dee")
		_, err := svc.FinalizeCaptains(ctx, testutil.Admin())
		require.NoError(t, err)

		state, err := svc.SaveTeamNames(ctx, testutil.Admin(), "Red Rockets", "Blue Comets")
		require.NoError(t, err)
		assert.Equal(t, "Red Rockets", state.TeamNames[domain.TeamKeyCaptain1])
		assert.Equal(t, "Blue Comets", state.TeamNames[domain.TeamKeyCaptain2])
		assert.Equal(t, domain.PhaseDraft, state.Phase)
	})

	t.Run("BlankNamesDefaultToCaptains", func(t *testing.T) {
		svc := testutil.NewTestTournamentService(t)
		testutil.AdvanceToVoting(t, svc, "ana", "ben", "cam", "dee")
		_, err := svc.FinalizeCaptains(ctx, testutil.Admin())
		require.NoError(t, err)

		state, err := svc.SaveTeamNames(ctx, testutil.Admin(), "", "")
		require.NoError(t, err)
		assert.Equal(t, "Team ana", state.TeamNames[domain.TeamKeyCaptain1])
		assert.Equal(t, "Team ben", state.TeamNames[domain.TeamKeyCaptain2])
	})
}

func TestDraftPick(t *testing.T) {
	ctx := context.Background()

	t.Run("SnakeOrderAcrossEightTurns", func(t *testing.T) {
		svc := testutil.NewTestTournamentService(t)
		// 10 players: 2 captains + 8 to draft across turns 0..7.
		testutil.AdvanceToDraft(t, svc, testutil.Names(10)...)

		state := testutil.DraftAll(t, svc)

		require.Len(t, state.DraftOrder, 8)
		wantCaptains := []string{
			"player01", "player02", "player02", "player01",
			"player01", "player02", "player02", "player01",
		}
		for i, pick := range state.DraftOrder {
			assert.Equal(t, i+1, pick.Pick)
			assert.Equal(t, wantCaptains[i], pick.Captain, "pick %d", i+1)
		}
	})

	t.Run("RostersPartitionPlayers", func(t *testing.T) {
		svc := testutil.NewTestTournamentService(t)
		testutil.AdvanceToDraft(t, svc, testutil.Names(8)...)

		state := testutil.DraftAll(t, svc)

		var drafted []string
		drafted = append(drafted, state.Teams[domain.TeamKeyCaptain1]...)
		drafted = append(drafted, state.Teams[domain.TeamKeyCaptain2]...)
		assert.ElementsMatch(t, state.Players, drafted)
		assert.Empty(t, state.AvailablePlayers)
		assert.Equal(t, len(state.DraftOrder), state.CurrentDraftTurn)
	})

	t.Run("EmptyPoolAdvancesPhase", func(t *testing.T) {
		svc := testutil.NewTestTournamentService(t)
		testutil.AdvanceToDraft(t, svc, testutil.Names(4)...)

		state := testutil.DraftAll(t, svc)
		assert.Equal(t, domain.PhaseTeamCreation, state.Phase)
	})

	t.Run("UnavailablePlayerRejected", func(t *testing.T) {
		svc := testutil.NewTestTournamentService(t)
		testutil.AdvanceToDraft(t, svc, testutil.Names(6)...)

		// Captains are not in the pool.
		state, err := svc.DraftPick(ctx, testutil.Admin(), "player01")
		require.ErrorIs(t, err, domain.ErrValidation)
		assert.Equal(t, 0, state.CurrentDraftTurn)

		_, err = svc.DraftPick(ctx, testutil.Admin(), "nobody")
		require.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("AuditTrailRecordsEveryPick", func(t *testing.T) {
		svc := testutil.NewTestTournamentService(t)
		testutil.AdvanceToDraft(t, svc, testutil.Names(6)...)

		state, err := svc.DraftPick(ctx, testutil.Admin(), "player05")
		require.NoError(t, err)

		require.Len(t, state.DraftOrder, 1)
		assert.Equal(t, domain.DraftPick{Pick: 1, Captain: "player01", Player: "player05"}, state.DraftOrder[0])
		assert.Equal(t, 1, state.CurrentDraftTurn)
		assert.NotContains(t, state.AvailablePlayers, "player05")
	})

	t.Run("WrongPhaseRejected", func(t *testing.T) {
		svc := testutil.NewTestTournamentService(t)
		testutil.SeedPlayers(t, svc, "ana", "ben")

		_, err := svc.DraftPick(ctx, testutil.Admin(), "ana")
		require.ErrorIs(t, err, domain.ErrInvalidPhase)
	})
}
