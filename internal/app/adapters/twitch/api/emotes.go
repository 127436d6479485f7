package api

import (
	"context"
	"slices"
	"strings"

	"streamoverlay/internal/app/domain/emotes"
)

// GetGlobalEmotes loads Twitch's own global emote set. Animated emotes get
// their CDN URL rewritten from the static to the animated variant.
func (t *Twitch) GetGlobalEmotes(ctx context.Context) (map[string]emotes.Entry, error) {
	var resp EmotesResponse
	if _, err := t.doHelixRequest(ctx, "GET", t.baseURL+"/chat/emotes/global", nil, &resp); err != nil {
		return nil, err
	}

	m := make(map[string]emotes.Entry, len(resp.Data))
	for _, e := range resp.Data {
		entry := emotes.Entry{URL: e.Images.URL1x}
		if slices.Contains(e.Format, "animated") {
			entry.URL = strings.Replace(entry.URL, "/static/", "/animated/", 1)
			entry.Animated = true
		}
		m[e.Name] = entry
	}
	return m, nil
}
