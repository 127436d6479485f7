package config

import "time"

// Default is the configuration written on first run. Credentials are
// left empty on purpose, validation rejects them until filled in.
func Default() *Config {
	return &Config{
		App: App{
			LogLevel:   "info",
			GinMode:    "release",
			ListenAddr: "127.0.0.1:8590",
		},
		Chat: Chat{
			ThrottleWindow:  time.Second,
			HistoryLimit:    20,
			NotificationTTL: 5 * time.Second,
			ReconnectDelay:  2 * time.Second,
		},
		Metadata: Metadata{
			RefreshInterval: 30 * time.Second,
		},
	}
}
