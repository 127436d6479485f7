package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/maypok86/otter/v2"
	"golang.org/x/sync/singleflight"

	"streamoverlay/internal/app/infrastructure/config"
	"streamoverlay/pkg/logger"
)

const defaultBaseURL = "https://api.twitch.tv/helix"

const (
	maxRetries  = 5
	baseBackoff = time.Second
	maxBackoff  = 30 * time.Second
)

type Twitch struct {
	log     logger.Logger
	cfg     *config.Config
	client  *http.Client
	baseURL string

	// login -> broadcaster id, and game id -> box art URL. Both are
	// immutable upstream facts, so no expiry.
	ids    *otter.Cache[string, string]
	boxArt *otter.Cache[string, string]
	flight singleflight.Group
}

func NewTwitch(log logger.Logger, manager *config.Manager, client *http.Client) *Twitch {
	return &Twitch{
		log:     log,
		cfg:     manager.Get(),
		client:  client,
		baseURL: defaultBaseURL,
		ids:     otter.Must(&otter.Options[string, string]{InitialCapacity: 8}),
		boxArt:  otter.Must(&otter.Options[string, string]{InitialCapacity: 16}),
	}
}

type HelixAPIError struct {
	Error   string `json:"error"`
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func (t *Twitch) doHelixRequest(ctx context.Context, method, url string, body []byte, target interface{}) (int, error) {
	t.log.Trace("Preparing Helix request", slog.String("method", method), slog.String("url", url))

	for attempt := 1; attempt <= maxRetries; attempt++ {
		// A fresh request per attempt: a consumed POST body must not be
		// reused on retry.
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}

		req, err := http.NewRequestWithContext(ctx, method, url, reader)
		if err != nil {
			t.log.Error("Failed to create HTTP request", err, slog.String("method", method), slog.String("url", url))
			return 0, err
		}

		req.Header.Set("Authorization", "Bearer "+t.cfg.App.OAuth)
		req.Header.Set("Client-Id", t.cfg.App.ClientID)
		req.Header.Set("Content-Type", "application/json")

		resp, err := t.client.Do(req)
		if err != nil {
			t.log.Error("HTTP request failed", err, slog.Int("attempt", attempt), slog.String("url", url))
			return 0, err
		}

		raw, err := io.ReadAll(resp.Body)
		if cerr := resp.Body.Close(); cerr != nil {
			t.log.Error("Failed to close response body", cerr)
		}
		if err != nil {
			t.log.Error("Failed to read response body", err, slog.Int("status", resp.StatusCode), slog.String("url", url))
			return resp.StatusCode, err
		}

		switch resp.StatusCode {
		case http.StatusOK, http.StatusAccepted, http.StatusNoContent:
			if target == nil {
				return resp.StatusCode, nil
			}

			if err := json.Unmarshal(raw, target); err != nil {
				t.log.Error("Failed to decode response JSON", err, slog.Int("status", resp.StatusCode), slog.String("body", string(raw)))
				return resp.StatusCode, err
			}
			return resp.StatusCode, nil

		case http.StatusTooManyRequests:
			wait := calcWaitDuration(resp.Header.Get("Ratelimit-Reset"))
			if wait <= 0 {
				wait = time.Duration(attempt) * baseBackoff
			}
			if wait > maxBackoff {
				wait = maxBackoff
			}

			t.log.Warn("Rate limit hit, backing off", slog.Int("attempt", attempt), slog.String("wait", wait.String()))

			select {
			case <-ctx.Done():
				return resp.StatusCode, ctx.Err()
			case <-time.After(wait):
			}
			continue

		default:
			var apiErr HelixAPIError
			if err := json.Unmarshal(raw, &apiErr); err != nil {
				t.log.Error("Failed to decode Helix error body", err, slog.Int("status", resp.StatusCode), slog.String("body", string(raw)))
				return resp.StatusCode, fmt.Errorf("helix returned: %s", string(raw))
			}

			t.log.Error("Helix returned an error", errors.New(apiErr.Message), slog.Int("status", resp.StatusCode), slog.String("url", url))
			return resp.StatusCode, errors.New(apiErr.Message)
		}
	}

	t.log.Error("Helix request failed after max retries", nil, slog.Int("maxRetries", maxRetries), slog.String("url", url))
	return 0, fmt.Errorf("helix request failed after %d retries", maxRetries)
}

func calcWaitDuration(resetHeader string) time.Duration {
	if resetHeader == "" {
		return 0
	}

	ts, err := strconv.ParseInt(resetHeader, 10, 64)
	if err != nil {
		return 0
	}

	resetTime := time.Unix(ts, 0)
	now := time.Now()

	if resetTime.Before(now) {
		return 0
	}
	return resetTime.Sub(now)
}
