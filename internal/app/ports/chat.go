package ports

import "context"

// IngestPort is the lifecycle surface the presentation layer drives.
type IngestPort interface {
	// Start (re)establishes the IRC connection. Idempotent; calling it
	// while running is equivalent to a reconnect.
	Start()
	// Stop cancels all background activity. Histories are retained and
	// the client stays reusable via a later Start.
	Stop()

	// LoadAllBadges fills the badge catalog from the global and channel
	// sets. LoadEmotes fills every emote namespace. Both log partial
	// failures and keep whatever did load.
	LoadAllBadges(ctx context.Context, channelLogin string)
	LoadEmotes(ctx context.Context)
}
