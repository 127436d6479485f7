package api

import (
	"context"
	"errors"
	"net/url"
)

func (t *Twitch) GetGlobalBadges(ctx context.Context) (map[string]map[string]string, error) {
	return t.fetchBadges(ctx, t.baseURL+"/chat/badges/global")
}

func (t *Twitch) GetChannelBadges(ctx context.Context, broadcasterID string) (map[string]map[string]string, error) {
	if broadcasterID == "" {
		return nil, errors.New("broadcasterID is required")
	}

	params := url.Values{}
	params.Set("broadcaster_id", broadcasterID)
	return t.fetchBadges(ctx, t.baseURL+"/chat/badges?"+params.Encode())
}

func (t *Twitch) fetchBadges(ctx context.Context, url string) (map[string]map[string]string, error) {
	var resp BadgesResponse
	if _, err := t.doHelixRequest(ctx, "GET", url, nil, &resp); err != nil {
		return nil, err
	}

	sets := make(map[string]map[string]string, len(resp.Data))
	for _, set := range resp.Data {
		versions := make(map[string]string, len(set.Versions))
		for _, v := range set.Versions {
			if v.ImageURL1x != "" {
				versions[v.ID] = v.ImageURL1x
			}
		}
		if len(versions) > 0 {
			sets[set.SetID] = versions
		}
	}
	return sets, nil
}
