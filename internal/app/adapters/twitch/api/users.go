package api

import (
	"context"
	"errors"
	"net/url"
	"strings"
)

// ErrUserNotFound is the typed failure for a login the upstream does not
// know. It propagates to the direct caller; everything above degrades.
var ErrUserNotFound = errors.New("no user matches login")

// ResolveChannelID maps a login to its broadcaster id. The first caller
// performs the request; concurrent callers for the same login share that
// in-flight request, and the result is cached for the process lifetime.
func (t *Twitch) ResolveChannelID(ctx context.Context, login string) (string, error) {
	login = strings.ToLower(login)

	if id, ok := t.ids.GetIfPresent(login); ok {
		return id, nil
	}

	v, err, _ := t.flight.Do(login, func() (interface{}, error) {
		// Re-check under the flight: a racing caller may have filled it.
		if id, ok := t.ids.GetIfPresent(login); ok {
			return id, nil
		}

		params := url.Values{}
		params.Set("login", login)

		var resp UsersResponse
		if _, err := t.doHelixRequest(ctx, "GET", t.baseURL+"/users?"+params.Encode(), nil, &resp); err != nil {
			return "", err
		}
		if len(resp.Data) == 0 {
			return "", ErrUserNotFound
		}

		id := resp.Data[0].ID
		t.ids.Set(login, id)
		return id, nil
	})
	if err != nil {
		return "", err
	}

	return v.(string), nil
}
