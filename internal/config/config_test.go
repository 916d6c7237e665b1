package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestLoad_Defaults tests the out-of-the-box configuration.
func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()

	require.NoError(t, err)
	require.Equal(t, "localhost", cfg.Host)
	require.Equal(t, 9876, cfg.Port)
	require.Equal(t, 15*time.Second, cfg.Timeout())
	require.Equal(t, 2, cfg.Retries)
	require.Equal(t, 10*1024*1024, cfg.MaxResponseBytes)
	require.Empty(t, cfg.AuthToken)
	require.Equal(t, 5*time.Minute, cfg.MaxIdle())
}

// TestLoad_EnvironmentOverrides tests SUPEX_* variable handling.
func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("SUPEX_HOST", "10.0.0.5")
	t.Setenv("SUPEX_PORT", "7000")
	t.Setenv("SUPEX_TIMEOUT", "2.5")
	t.Setenv("SUPEX_RETRIES", "0")
	t.Setenv("SUPEX_AUTH_TOKEN", "s3cret")

	cfg, err := Load()

	require.NoError(t, err)
	require.Equal(t, "10.0.0.5", cfg.Host)
	require.Equal(t, 7000, cfg.Port)
	require.Equal(t, 2500*time.Millisecond, cfg.Timeout())
	require.Zero(t, cfg.Retries)
	require.Equal(t, "s3cret", cfg.AuthToken)
}

// TestLoad_InvalidPort tests port range validation.
func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("SUPEX_PORT", "70000")

	_, err := Load()

	require.ErrorIs(t, err, ErrInvalidPort)
}

// TestLoad_InvalidTimeout tests timeout validation.
func TestLoad_InvalidTimeout(t *testing.T) {
	t.Setenv("SUPEX_TIMEOUT", "-1")

	_, err := Load()

	require.ErrorIs(t, err, ErrInvalidTimeout)
}

// TestConnOptions_Mapping tests the config-to-options translation.
func TestConnOptions_Mapping(t *testing.T) {
	cfg := &Config{
		Host:             "example.test",
		Port:             9999,
		TimeoutSeconds:   5,
		Retries:          1,
		MaxResponseBytes: 4096,
		AuthToken:        "tok",
		MaxIdleSeconds:   60,
	}

	opts := cfg.ConnOptions("mcp", nil)

	require.Equal(t, "example.test", opts.Host)
	require.Equal(t, 9999, opts.Port)
	require.Equal(t, 5*time.Second, opts.Timeout)
	require.Equal(t, "mcp", opts.Agent)
	require.Equal(t, "tok", opts.Token)
	require.Equal(t, 1, opts.MaxRetries)
	require.Equal(t, 4096, opts.MaxResponseBytes)
	require.Equal(t, time.Minute, opts.MaxIdle)
}
