package seventv

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"streamoverlay/internal/app/domain/emotes"
	"streamoverlay/pkg/logger"
)

const defaultBaseURL = "https://7tv.io/v3"

type SevenTV struct {
	log     logger.Logger
	client  *http.Client
	baseURL string
}

func New(log logger.Logger, client *http.Client) *SevenTV {
	return &SevenTV{
		log:     log,
		client:  client,
		baseURL: defaultBaseURL,
	}
}

type hostFile struct {
	Name   string `json:"name"`
	Format string `json:"format"`
}

type host struct {
	URL   string     `json:"url"`
	Files []hostFile `json:"files"`
}

type globalEmote struct {
	Name string `json:"name"`
	Host host   `json:"host"`
}

type globalSetResponse struct {
	Emotes []globalEmote `json:"emotes"`
}

type channelEmote struct {
	Name string `json:"name"`
	Data struct {
		Animated bool `json:"animated"`
		Host     host `json:"host"`
	} `json:"data"`
}

type userResponse struct {
	EmoteSet *struct {
		Emotes []channelEmote `json:"emotes"`
	} `json:"emote_set"`
}

// GlobalEmotes fetches the shared 7TV emote set. Each emote is served
// from the host URL with the 1x WEBP file.
func (sv *SevenTV) GlobalEmotes(ctx context.Context) (map[string]emotes.Entry, error) {
	var decoded globalSetResponse
	if err := sv.getJSON(ctx, sv.baseURL+"/emote-sets/global", &decoded); err != nil {
		return nil, err
	}

	result := make(map[string]emotes.Entry, len(decoded.Emotes))
	for _, e := range decoded.Emotes {
		url, ok := fileURL(e.Host, "WEBP")
		if !ok {
			continue
		}
		result[e.Name] = emotes.Entry{URL: url}
	}

	return result, nil
}

// ChannelEmotes fetches the active emote set of a channel. A channel
// without a 7TV profile or set yields an empty map, not an error.
func (sv *SevenTV) ChannelEmotes(ctx context.Context, channelID string) (map[string]emotes.Entry, error) {
	var decoded userResponse
	if err := sv.getJSON(ctx, sv.baseURL+"/users/twitch/"+channelID, &decoded); err != nil {
		return nil, err
	}

	if decoded.EmoteSet == nil {
		return map[string]emotes.Entry{}, nil
	}

	result := make(map[string]emotes.Entry, len(decoded.EmoteSet.Emotes))
	for _, e := range decoded.EmoteSet.Emotes {
		if len(e.Data.Host.Files) == 0 {
			continue
		}
		result[e.Name] = emotes.Entry{
			URL:      hostBase(e.Data.Host.URL) + "/" + e.Data.Host.Files[0].Name,
			Animated: e.Data.Animated,
		}
	}

	return result, nil
}

func (sv *SevenTV) getJSON(ctx context.Context, url string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := sv.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("7tv returned status %d for %s", resp.StatusCode, url)
	}

	return json.NewDecoder(resp.Body).Decode(target)
}

// fileURL picks the 1x file of the requested format from a host block.
func fileURL(h host, format string) (string, bool) {
	for _, f := range h.Files {
		if strings.EqualFold(f.Format, format) && strings.HasPrefix(f.Name, "1x") {
			return hostBase(h.URL) + "/" + f.Name, true
		}
	}
	// Fall back to the first file of the format regardless of size.
	for _, f := range h.Files {
		if strings.EqualFold(f.Format, format) {
			return hostBase(h.URL) + "/" + f.Name, true
		}
	}
	return "", false
}

// hostBase normalizes the protocol-relative URLs 7TV serves.
func hostBase(url string) string {
	if strings.HasPrefix(url, "http") {
		return url
	}
	return "https:" + url
}
