package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("RENDER", "1")
	t.Setenv("DB_CONNECTION_STRING", "file::memory:")
	t.Setenv("ACCESS_TOKEN_SECRET", "access")
	t.Setenv("REFRESH_TOKEN_SECRET", "refresh")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8001", cfg.Port)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 24*time.Hour, cfg.AccessTokenTTL)
	assert.Equal(t, 720*time.Hour, cfg.RefreshTokenTTL)
	assert.Equal(t, 10*time.Second, cfg.KYCTimeout)
	assert.Equal(t, 2, cfg.KYCRetries)
	assert.Equal(t, "realestate.events", cfg.EventsExchange)
	assert.Equal(t, "0.0.0.0:8001", cfg.Addr())
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "9000")
	t.Setenv("KYC_TIMEOUT", "3s")
	t.Setenv("DB_DRIVER", "sqlite")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 3*time.Second, cfg.KYCTimeout)
	assert.Equal(t, "sqlite", cfg.DBDriver)
}

func TestLoadMissingSecret(t *testing.T) {
	t.Setenv("RENDER", "1")
	t.Setenv("DB_CONNECTION_STRING", "file::memory:")
	t.Setenv("REFRESH_TOKEN_SECRET", "refresh")
	t.Setenv("ACCESS_TOKEN_SECRET", "")
	require.NoError(t, os.Unsetenv("ACCESS_TOKEN_SECRET"))

	_, err := Load()
	assert.Error(t, err)
}
