package ports

import (
	"context"

	"streamoverlay/internal/app/domain/emotes"
)

// EmoteProviderPort is a third-party emote catalog (7TV, BTTV).
type EmoteProviderPort interface {
	GlobalEmotes(ctx context.Context) (map[string]emotes.Entry, error)
	ChannelEmotes(ctx context.Context, channelID string) (map[string]emotes.Entry, error)
}
