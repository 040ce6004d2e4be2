package config_test

import (
	"testing"

	"github.com/casey/kickball-cup/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("SESSION_SECRET", "secret")
	t.Setenv("ADMIN_PASSWORD_HASH", "$2a$10$fakefakefakefakefakefake")
}

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		setRequired(t)

		cfg, err := config.Load()
		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, config.StoreSQLite, cfg.StoreDriver)
		assert.Equal(t, 72, cfg.SessionTTLHours)
	})

	t.Run("MissingSessionSecret", func(t *testing.T) {
		t.Setenv("SESSION_SECRET", "")
		t.Setenv("ADMIN_PASSWORD_HASH", "x")

		_, err := config.Load()
		require.Error(t, err)
	})

	t.Run("MissingAdminHash", func(t *testing.T) {
		t.Setenv("SESSION_SECRET", "secret")
		t.Setenv("ADMIN_PASSWORD_HASH", "")

		_, err := config.Load()
		require.Error(t, err)
	})

	t.Run("UnknownStoreDriver", func(t *testing.T) {
		setRequired(t)
		t.Setenv("STORE_DRIVER", "etcd")

		_, err := config.Load()
		require.Error(t, err)
	})

	t.Run("Overrides", func(t *testing.T) {
		setRequired(t)
		t.Setenv("PORT", "9000")
		t.Setenv("STORE_DRIVER", config.StoreMemory)
		t.Setenv("SESSION_TTL_HOURS", "6")

		cfg, err := config.Load()
		require.NoError(t, err)
		assert.Equal(t, "9000", cfg.Port)
		assert.Equal(t, config.StoreMemory, cfg.StoreDriver)
		assert.Equal(t, 6, cfg.SessionTTLHours)
	})
}
