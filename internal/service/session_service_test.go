package service_test

import (
	"testing"

	"github.com/casey/kickball-cup/internal/domain"
	"github.com/casey/kickball-cup/internal/service"
	"github.com/casey/kickball-cup/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokens(t *testing.T) {
	sessions := service.NewSessionService(testutil.NewTestConfig(t))

	t.Run("RoundTrip", func(t *testing.T) {
		caller := sessions.NewAnonymousCaller()
		require.NotEmpty(t, caller.ID)
		assert.Equal(t, domain.RoleAnonymous, caller.Role)

		token, err := sessions.IssueToken(caller)
		require.NoError(t, err)

		parsed, err := sessions.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, caller, parsed)
	})

	t.Run("PlayerBindingSurvivesRoundTrip", func(t *testing.T) {
		caller := sessions.BindPlayer(sessions.NewAnonymousCaller(), "ana")
		assert.Equal(t, domain.RolePlayer, caller.Role)

		token, err := sessions.IssueToken(caller)
		require.NoError(t, err)

		parsed, err := sessions.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "ana", parsed.PlayerName)
		assert.Equal(t, domain.RolePlayer, parsed.Role)
	})

	t.Run("GarbageTokenRejected", func(t *testing.T) {
		_, err := sessions.ValidateToken("not-a-token")
		require.Error(t, err)
	})

	t.Run("WrongSecretRejected", func(t *testing.T) {
		token, err := sessions.IssueToken(sessions.NewAnonymousCaller())
		require.NoError(t, err)

		cfg := testutil.NewTestConfig(t)
		cfg.SessionSecret = "different-secret"
		other := service.NewSessionService(cfg)

		_, err = other.ValidateToken(token)
		require.Error(t, err)
	})
}

func TestAdminLogin(t *testing.T) {
	sessions := service.NewSessionService(testutil.NewTestConfig(t))

	t.Run("CorrectPassword", func(t *testing.T) {
		caller := sessions.NewAnonymousCaller()

		admin, err := sessions.LoginAdmin(caller, testutil.AdminPassword)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleAdmin, admin.Role)
		assert.Equal(t, caller.ID, admin.ID)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		_, err := sessions.LoginAdmin(sessions.NewAnonymousCaller(), "guess")
		require.ErrorIs(t, err, service.ErrInvalidCredentials)
	})
}
