package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brubeckscan/internal/brubeck"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, brubeck.DefaultBaseURL, cfg.APIBaseURL)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 4, cfg.FetchWorkers)
	assert.Equal(t, "US/Eastern", cfg.DefaultTimezone)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.LogHumanFriendly)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("BRUBECKSCAN_API_BASE_URL", "http://localhost:9999")
	t.Setenv("BRUBECKSCAN_LISTEN_ADDR", ":9090")
	t.Setenv("BRUBECKSCAN_HTTP_TIMEOUT", "2s")
	t.Setenv("BRUBECKSCAN_FETCH_WORKERS", "8")
	t.Setenv("BRUBECKSCAN_DEFAULT_TZ", "Europe/Berlin")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_HUMAN_FRIENDLY", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999", cfg.APIBaseURL)
	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, 2*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 8, cfg.FetchWorkers)
	assert.Equal(t, "Europe/Berlin", cfg.DefaultTimezone)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.LogHumanFriendly)
}

func TestLoad_RejectsBadBaseURL(t *testing.T) {
	t.Setenv("BRUBECKSCAN_API_BASE_URL", "not a url")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_RejectsZeroWorkers(t *testing.T) {
	t.Setenv("BRUBECKSCAN_FETCH_WORKERS", "0")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_RejectsUnknownDefaultZone(t *testing.T) {
	t.Setenv("BRUBECKSCAN_DEFAULT_TZ", "Mars/Olympus_Mons")

	_, err := Load()
	assert.Error(t, err)
}
