package service_test

import (
	"context"
	"testing"

	"github.com/casey/kickball-cup/internal/domain"
	"github.com/casey/kickball-cup/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterPlayer(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc := testutil.NewTestTournamentService(t)

		state, err := svc.RegisterPlayer(ctx, testutil.PlayerCaller("ana"), "ana")
		require.NoError(t, err)
		assert.Equal(t, []string{"ana"}, state.Players)
		assert.Equal(t, domain.PhaseRegistration, state.Phase)
	})

	t.Run("TrimsWhitespace", func(t *testing.T) {
		svc := testutil.NewTestTournamentService(t)

		state, err := svc.RegisterPlayer(ctx, testutil.PlayerCaller("ana"), "  ana ")
		require.NoError(t, err)
		assert.Equal(t, []string{"ana"}, state.Players)
	})

	t.Run("DuplicateRejected", func(t *testing.T) {
		svc := testutil.NewTestTournamentService(t)
		testutil.SeedPlayers(t, svc, "ana")

		state, err := svc.RegisterPlayer(ctx, testutil.PlayerCaller("ana"), "ana")
		require.ErrorIs(t, err, domain.ErrValidation)
		assert.Equal(t, []string{"ana"}, state.Players)
	})

	t.Run("EmptyNameRejected", func(t *testing.T) {
		svc := testutil.NewTestTournamentService(t)

		_, err := svc.RegisterPlayer(ctx, testutil.PlayerCaller("x"), "   ")
		require.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("GhostNameReserved", func(t *testing.T) {
		svc := testutil.NewTestTournamentService(t)

		_, err := svc.RegisterPlayer(ctx, testutil.PlayerCaller("x"), domain.GhostPlayer)
		require.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("WrongPhaseRejected", func(t *testing.T) {
		svc := testutil.NewTestTournamentService(t)
		testutil.AdvanceToVoting(t, svc, "ana", "ben", "cam", "dee")

		state, err := svc.RegisterPlayer(ctx, testutil.PlayerCaller("eve"), "eve")
		require.ErrorIs(t, err, domain.ErrInvalidPhase)
		assert.Len(t, state.Players, 4)
	})
}

func TestRemovePlayer(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc := testutil.NewTestTournamentService(t)
		testutil.SeedPlayers(t, svc, "ana", "ben", "cam")

		state, err := svc.RemovePlayer(ctx, testutil.Admin(), "ben")
		require.NoError(t, err)
		assert.Equal(t, []string{"ana", "cam"}, state.Players)
	})

	t.Run("UnknownPlayer", func(t *testing.T) {
		svc := testutil.NewTestTournamentService(t)
		testutil.SeedPlayers(t, svc, "ana")

		_, err := svc.RemovePlayer(ctx, testutil.Admin(), "zoe")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("NonAdminRejected", func(t *testing.T) {
		svc := testutil.NewTestTournamentService(t)
		testutil.SeedPlayers(t, svc, "ana")

		state, err := svc.RemovePlayer(ctx, testutil.PlayerCaller("ana"), "ana")
		require.ErrorIs(t, err, domain.ErrUnauthorized)
		assert.Equal(t, []string{"ana"}, state.Players)
	})
}

func TestCompleteRegistration(t *testing.T) {
	ctx := context.Background()

	t.Run("EvenRosterStaysEven", func(t *testing.T) {
		svc := testutil.NewTestTournamentService(t)
		testutil.SeedPlayers(t, svc, "ana", "ben", "cam", "dee")

		state, err := svc.CompleteRegistration(ctx, testutil.Admin())
		require.NoError(t, err)
		assert.Len(t, state.Players, 4)
		assert.NotContains(t, state.Players, domain.GhostPlayer)
		assert.Equal(t, domain.PhaseVoting, state.Phase)
		assert.True(t, state.VotingOpen)
	})

	t.Run("OddRosterGetsGhost", func(t *testing.T) {
		svc := testutil.NewTestTournamentService(t)
		testutil.SeedPlayers(t, svc, "ana", "ben", "cam")

		state, err := svc.CompleteRegistration(ctx, testutil.Admin())
		require.NoError(t, err)
		assert.Len(t, state.Players, 4)
		assert.Equal(t, domain.GhostPlayer, state.Players[3])
	})

	t.Run("TooFewPlayers", func(t *testing.T) {
		// Two players would both become captains, leaving an empty draft
		// pool and one-player rosters that no pairing can cover.
		for _, names := range [][]string{{"ana"}, {"ana", "ben"}} {
			svc := testutil.NewTestTournamentService(t)
			testutil.SeedPlayers(t, svc, names...)

			state, err := svc.CompleteRegistration(ctx, testutil.Admin())
			require.ErrorIs(t, err, domain.ErrValidation)
			assert.Equal(t, domain.PhaseRegistration, state.Phase)
		}
	})

	t.Run("NonAdminRejected", func(t *testing.T) {
		svc := testutil.NewTestTournamentService(t)
		testutil.SeedPlayers(t, svc, "ana", "ben")

		state, err := svc.CompleteRegistration(ctx, testutil.PlayerCaller("ana"))
		require.ErrorIs(t, err, domain.ErrUnauthorized)
		assert.Equal(t, domain.PhaseRegistration, state.Phase)
	})
}

func TestReset(t *testing.T) {
	ctx := context.Background()

	t.Run("ReturnsFreshState", func(t *testing.T) {
		svc := testutil.NewTestTournamentService(t)
		testutil.AdvanceToDraft(t, svc, "ana", "ben", "cam", "dee")

		state, err := svc.Reset(ctx, testutil.Admin())
		require.NoError(t, err)
		assert.Equal(t, domain.PhaseRegistration, state.Phase)
		assert.Empty(t, state.Players)

		// A subsequent read sees the fresh state too.
		state, err = svc.Snapshot(ctx)
		require.NoError(t, err)
		assert.Equal(t, domain.PhaseRegistration, state.Phase)
		assert.Empty(t, state.Players)
	})

	t.Run("NonAdminRejected", func(t *testing.T) {
		svc := testutil.NewTestTournamentService(t)
		testutil.SeedPlayers(t, svc, "ana", "ben")

		state, err := svc.Reset(ctx, testutil.PlayerCaller("ana"))
		require.ErrorIs(t, err, domain.ErrUnauthorized)
		assert.Len(t, state.Players, 2)
	})
}
