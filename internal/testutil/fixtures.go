package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/casey/kickball-cup/internal/domain"
	"github.com/casey/kickball-cup/internal/service"
)

// Admin returns an admin-classified caller.
func Admin() domain.Caller {
	return domain.Caller{ID: "admin-session", Role: domain.RoleAdmin}
}

// PlayerCaller returns a registered-player caller whose session is bound to
// name.
func PlayerCaller(name string) domain.Caller {
	return domain.Caller{
		ID:         "session-" + name,
		PlayerName: name,
		Role:       domain.RolePlayer,
	}
}

// SeedPlayers registers the named players in order.
func SeedPlayers(t *testing.T, svc *service.TournamentService, names ...string) {
	t.Helper()

	ctx := context.Background()
	for _, name := range names {
		if _, err := svc.RegisterPlayer(ctx, PlayerCaller(name), name); err != nil {
			t.Fatalf("failed to register %q: %v", name, err)
		}
	}
}

// AdvanceToVoting seeds players and completes registration.
func AdvanceToVoting(t *testing.T, svc *service.TournamentService, names ...string) {
	t.Helper()

	SeedPlayers(t, svc, names...)
	if _, err := svc.CompleteRegistration(context.Background(), Admin()); err != nil {
		t.Fatalf("failed to complete registration: %v", err)
	}
}

// AdvanceToDraft runs the flow up to the draft phase. The first two seeded
// players become captains (no votes are cast, so registration order decides).
func AdvanceToDraft(t *testing.T, svc *service.TournamentService, names ...string) {
	t.Helper()

	ctx := context.Background()
	AdvanceToVoting(t, svc, names...)

	if _, err := svc.FinalizeCaptains(ctx, Admin()); err != nil {
		t.Fatalf("failed to finalize captains: %v", err)
	}
	if _, err := svc.SaveTeamNames(ctx, Admin(), "", ""); err != nil {
		t.Fatalf("failed to save team names: %v", err)
	}
}

// DraftAll picks every available player in pool order until the draft closes.
func DraftAll(t *testing.T, svc *service.TournamentService) *domain.TournamentState {
	t.Helper()

	ctx := context.Background()
	state, err := svc.Snapshot(ctx)
	if err != nil {
		t.Fatalf("failed to load snapshot: %v", err)
	}

	for len(state.AvailablePlayers) > 0 {
		state, err = svc.DraftPick(ctx, Admin(), state.AvailablePlayers[0])
		if err != nil {
			t.Fatalf("failed to draft: %v", err)
		}
	}
	return state
}

// Names generates n distinct player names.
func Names(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("player%02d", i+1)
	}
	return out
}
