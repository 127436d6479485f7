package config

import (
	"errors"
	"fmt"
	"strings"
)

func (m *Manager) validate(cfg *Config) error {
	validLevels := map[string]bool{"trace": true, "debug": true, "info": true, "warn": true, "error": true, "fatal": true}
	if cfg.App.LogLevel != "" && !validLevels[cfg.App.LogLevel] {
		return fmt.Errorf("app.log_level must be one of trace, debug, info, warn, error, fatal; got %s", cfg.App.LogLevel)
	}

	if cfg.App.OAuth == "" {
		return errors.New("app.oauth is required")
	}
	if cfg.App.ClientID == "" {
		return errors.New("app.client_id is required")
	}
	if cfg.App.Username == "" {
		return errors.New("app.username is required")
	}
	if cfg.App.Channel == "" {
		return errors.New("app.channel is required")
	}

	// Twitch logins are lowercase on the wire.
	cfg.App.Channel = strings.ToLower(strings.TrimPrefix(cfg.App.Channel, "#"))
	cfg.App.Username = strings.ToLower(cfg.App.Username)

	if cfg.Chat.ThrottleWindow <= 0 {
		return errors.New("chat.throttle_window must be positive")
	}
	if cfg.Chat.HistoryLimit <= 0 {
		return errors.New("chat.history_limit must be positive")
	}
	if cfg.Chat.NotificationTTL <= 0 {
		return errors.New("chat.notification_ttl must be positive")
	}
	if cfg.Chat.ReconnectDelay <= 0 {
		return errors.New("chat.reconnect_delay must be positive")
	}
	if cfg.Metadata.RefreshInterval <= 0 {
		return errors.New("metadata.refresh_interval must be positive")
	}

	return nil
}
