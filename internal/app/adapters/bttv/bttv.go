package bttv

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"streamoverlay/internal/app/domain/emotes"
	"streamoverlay/pkg/logger"
)

const (
	defaultBaseURL = "https://api.betterttv.net/3"
	cdnURL         = "https://cdn.betterttv.net/emote"
)

type BTTV struct {
	log     logger.Logger
	client  *http.Client
	baseURL string
}

func New(log logger.Logger, client *http.Client) *BTTV {
	return &BTTV{
		log:     log,
		client:  client,
		baseURL: defaultBaseURL,
	}
}

type emote struct {
	ID   string `json:"id"`
	Code string `json:"code"`
}

type userResponse struct {
	ChannelEmotes []emote `json:"channelEmotes"`
	SharedEmotes  []emote `json:"sharedEmotes"`
}

func (b *BTTV) GlobalEmotes(ctx context.Context) (map[string]emotes.Entry, error) {
	var decoded []emote
	if err := b.getJSON(ctx, b.baseURL+"/cached/emotes/global", &decoded); err != nil {
		return nil, err
	}

	result := make(map[string]emotes.Entry, len(decoded))
	for _, e := range decoded {
		result[e.Code] = emotes.Entry{URL: emoteURL(e.ID)}
	}

	return result, nil
}

// ChannelEmotes combines the channel's own uploads with emotes shared
// from other channels.
func (b *BTTV) ChannelEmotes(ctx context.Context, channelID string) (map[string]emotes.Entry, error) {
	var decoded userResponse
	if err := b.getJSON(ctx, b.baseURL+"/cached/users/twitch/"+channelID, &decoded); err != nil {
		return nil, err
	}

	result := make(map[string]emotes.Entry, len(decoded.ChannelEmotes)+len(decoded.SharedEmotes))
	for _, e := range decoded.ChannelEmotes {
		result[e.Code] = emotes.Entry{URL: emoteURL(e.ID)}
	}
	for _, e := range decoded.SharedEmotes {
		result[e.Code] = emotes.Entry{URL: emoteURL(e.ID)}
	}

	return result, nil
}

func (b *BTTV) getJSON(ctx context.Context, url string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	// BTTV answers 404 for channels it has never seen. Treat that as an
	// empty catalog so a channel without BTTV emotes does not fail startup.
	if resp.StatusCode == http.StatusNotFound {
		return nil
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bttv returned status %d for %s", resp.StatusCode, url)
	}

	return json.NewDecoder(resp.Body).Decode(target)
}

func emoteURL(id string) string {
	return cdnURL + "/" + id + "/1x"
}
