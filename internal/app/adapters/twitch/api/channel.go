package api

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"streamoverlay/internal/app/ports"
)

func (t *Twitch) GetChannelInfo(ctx context.Context, broadcasterID string) (*ports.ChannelInfo, error) {
	if broadcasterID == "" {
		return nil, errors.New("broadcasterID is required")
	}

	params := url.Values{}
	params.Set("broadcaster_id", broadcasterID)

	var resp ChannelsResponse
	if _, err := t.doHelixRequest(ctx, "GET", t.baseURL+"/channels?"+params.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, errors.New("empty channels response")
	}

	ch := resp.Data[0]
	return &ports.ChannelInfo{
		BroadcasterID: ch.BroadcasterID,
		Title:         ch.Title,
		GameID:        ch.GameID,
		GameName:      ch.GameName,
	}, nil
}

// GetGameBoxArt resolves the category artwork URL for a game id, filling
// the {width}x{height} template at 300x450. Cached per game id.
func (t *Twitch) GetGameBoxArt(ctx context.Context, gameID string) (string, error) {
	if gameID == "" {
		return "", nil
	}

	if cached, ok := t.boxArt.GetIfPresent(gameID); ok {
		return cached, nil
	}

	params := url.Values{}
	params.Set("id", gameID)

	var resp GamesResponse
	if _, err := t.doHelixRequest(ctx, "GET", t.baseURL+"/games?"+params.Encode(), nil, &resp); err != nil {
		return "", err
	}
	if len(resp.Data) == 0 {
		return "", nil
	}

	boxURL := strings.NewReplacer("{width}", "300", "{height}", "450").Replace(resp.Data[0].BoxArtURL)
	t.boxArt.Set(gameID, boxURL)
	return boxURL, nil
}
