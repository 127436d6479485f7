package api

import (
	"context"
	"encoding/json"
	"fmt"

	"streamoverlay/internal/app/ports"
)

func (t *Twitch) ListEventSubSubscriptions(ctx context.Context) ([]ports.Subscription, error) {
	var resp SubscriptionsResponse
	if _, err := t.doHelixRequest(ctx, "GET", t.baseURL+"/eventsub/subscriptions", nil, &resp); err != nil {
		return nil, err
	}

	subs := make([]ports.Subscription, 0, len(resp.Data))
	for _, s := range resp.Data {
		subs = append(subs, ports.Subscription{ID: s.ID, Type: s.Type, Status: s.Status})
	}
	return subs, nil
}

func (t *Twitch) CreateEventSubSubscription(ctx context.Context, req ports.SubscriptionRequest) error {
	body := map[string]interface{}{
		"type":      req.Type,
		"version":   req.Version,
		"condition": req.Condition,
		"transport": map[string]string{
			"method":     "websocket",
			"session_id": req.SessionID,
		},
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal subscription body: %w", err)
	}

	if _, err := t.doHelixRequest(ctx, "POST", t.baseURL+"/eventsub/subscriptions", jsonBody, nil); err != nil {
		return fmt.Errorf("create subscription %s: %w", req.Type, err)
	}
	return nil
}
