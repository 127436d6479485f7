package ports

import (
	"context"

	"streamoverlay/internal/app/domain/emotes"
)

// ChannelInfo is the subset of the Helix channel record the overlay shows.
type ChannelInfo struct {
	BroadcasterID string
	Title         string
	GameID        string
	GameName      string
}

// Subscription is an EventSub subscription as reported by Helix.
type Subscription struct {
	ID     string
	Type   string
	Status string
}

// SubscriptionRequest describes one websocket-transport subscription to create.
type SubscriptionRequest struct {
	Type      string
	Version   string
	Condition map[string]string
	SessionID string
}

type APIPort interface {
	// ResolveChannelID maps a login to a broadcaster id. Cached and
	// single-flighted: concurrent callers share one upstream request.
	// This is the only fetcher that surfaces its error to the caller.
	ResolveChannelID(ctx context.Context, login string) (string, error)

	GetChannelInfo(ctx context.Context, broadcasterID string) (*ChannelInfo, error)
	GetGameBoxArt(ctx context.Context, gameID string) (string, error)

	GetGlobalBadges(ctx context.Context) (map[string]map[string]string, error)
	GetChannelBadges(ctx context.Context, broadcasterID string) (map[string]map[string]string, error)
	GetGlobalEmotes(ctx context.Context) (map[string]emotes.Entry, error)

	ListEventSubSubscriptions(ctx context.Context) ([]Subscription, error)
	CreateEventSubSubscription(ctx context.Context, req SubscriptionRequest) error
}
