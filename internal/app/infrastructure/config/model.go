package config

import "time"

type Config struct {
	App      App      `json:"app"`
	Chat     Chat     `json:"chat"`
	Metadata Metadata `json:"metadata"`
}

type App struct {
	LogLevel   string `json:"log_level"`
	GinMode    string `json:"gin_mode"`
	ListenAddr string `json:"listen_addr"`

	// Helix credentials: bearer token plus client id.
	OAuth    string `json:"oauth"`
	ClientID string `json:"client_id"`

	// Nick used for the IRC login; Channel is the chat being watched.
	Username string `json:"username"`
	Channel  string `json:"channel"`
}

type Chat struct {
	// ThrottleWindow bounds the last-message slot to one publish per window.
	ThrottleWindow time.Duration `json:"throttle_window"`
	// HistoryLimit caps both the message and notification histories.
	HistoryLimit int `json:"history_limit"`
	// NotificationTTL is how long a notification stays visible.
	NotificationTTL time.Duration `json:"notification_ttl"`
	// ReconnectDelay is the fixed backoff for both transports. There is
	// deliberately no exponential backoff and no retry cap.
	ReconnectDelay time.Duration `json:"reconnect_delay"`
}

type Metadata struct {
	RefreshInterval time.Duration `json:"refresh_interval"`
}
