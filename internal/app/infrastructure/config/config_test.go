package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRaw() string {
	return `{
		"app": {
			"log_level": "debug",
			"oauth": "token",
			"client_id": "client",
			"username": "Watcher",
			"channel": "#SomeChannel"
		},
		"chat": {
			"throttle_window": 1000000000,
			"history_limit": 20,
			"notification_ttl": 5000000000,
			"reconnect_delay": 2000000000
		},
		"metadata": {"refresh_interval": 30000000000}
	}`
}

func TestNewWritesDefaultWhenMissing(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.json")

	m, err := New(path)
	require.NoError(t, err)

	_, err = os.Stat(path)
	require.NoError(t, err, "a default config file is written on first run")

	cfg := m.Get()
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, time.Second, cfg.Chat.ThrottleWindow)
	assert.Equal(t, 20, cfg.Chat.HistoryLimit)
	assert.Equal(t, 5*time.Second, cfg.Chat.NotificationTTL)
	assert.Equal(t, 2*time.Second, cfg.Chat.ReconnectDelay)
	assert.Equal(t, 30*time.Second, cfg.Metadata.RefreshInterval)
	assert.Empty(t, cfg.App.OAuth, "credentials start empty")
}

func TestNewNormalizesLogins(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(validRaw()), 0644))

	m, err := New(path)
	require.NoError(t, err)

	cfg := m.Get()
	assert.Equal(t, "somechannel", cfg.App.Channel, "channel is lowercased and stripped of #")
	assert.Equal(t, "watcher", cfg.App.Username)
}

func TestNewRejectsMissingCredentials(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.json")
	raw := `{
		"app": {"oauth": "", "client_id": "client", "username": "u", "channel": "c"},
		"chat": {"throttle_window": 1, "history_limit": 1, "notification_ttl": 1, "reconnect_delay": 1},
		"metadata": {"refresh_interval": 1}
	}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0644))

	_, err := New(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "app.oauth is required")
}

func TestNewRejectsNonPositiveDurations(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.json")
	raw := `{
		"app": {"oauth": "t", "client_id": "c", "username": "u", "channel": "ch"},
		"chat": {"throttle_window": 0, "history_limit": 20, "notification_ttl": 1, "reconnect_delay": 1},
		"metadata": {"refresh_interval": 1}
	}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0644))

	_, err := New(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat.throttle_window must be positive")
}

func TestUpdateValidatesAndPersists(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(validRaw()), 0644))

	m, err := New(path)
	require.NoError(t, err)

	require.NoError(t, m.Update(func(cfg *Config) {
		cfg.Chat.HistoryLimit = 50
	}))

	reloaded, err := New(path)
	require.NoError(t, err)
	assert.Equal(t, 50, reloaded.Get().Chat.HistoryLimit)

	err = m.Update(func(cfg *Config) {
		cfg.Chat.HistoryLimit = -1
	})
	require.Error(t, err)
}
