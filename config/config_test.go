package config

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// setRequired sets the variables LoadConfig cannot do without.
func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DB_USER", "blog")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "blogdb")
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "localhost", cfg.DB.Host)
	require.Equal(t, 5432, cfg.DB.Port)
	require.Equal(t, 10, cfg.DB.MaxSize)
	require.Equal(t, time.Hour, cfg.Auth.TokenDuration)
	require.Equal(t, "8080", cfg.Server.Port)
	require.Equal(t, 100, cfg.RateLimit.GeneralRPM)
	require.Equal(t, 10, cfg.RateLimit.AuthRPM)
}

func TestLoadConfigCollectsAllMissing(t *testing.T) {
	for _, key := range []string{"DB_USER", "DB_PASSWORD", "DB_NAME", "JWT_SECRET"} {
		// t.Setenv registers restoration of the original value on cleanup;
		// the unset afterwards makes the variable genuinely missing for the test.
		t.Setenv(key, "placeholder")
		require.NoError(t, os.Unsetenv(key))
	}

	_, err := LoadConfig()
	require.Error(t, err)
	for _, key := range []string{"DB_USER", "DB_PASSWORD", "DB_NAME", "JWT_SECRET"} {
		require.Contains(t, err.Error(), key)
	}
}

func TestLoadConfigInvalidDuration(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_TOKEN_DURATION", "one hour")

	_, err := LoadConfig()
	require.Error(t, err)
	require.Contains(t, err.Error(), "JWT_TOKEN_DURATION")
}

func TestLoadConfigClampsPoolSize(t *testing.T) {
	setRequired(t)
	t.Setenv("DB_POOL_SIZE", "2")

	_, err := LoadConfig()
	// Clamping is reported as a configuration error so it is never silent.
	require.Error(t, err)
	require.True(t, strings.Contains(err.Error(), "DB_POOL_SIZE"))
}
