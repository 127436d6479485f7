package event_sub

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"streamoverlay/internal/app/domain/colors"
	"streamoverlay/internal/app/domain/message"
	"streamoverlay/internal/app/ports"
	"streamoverlay/pkg/logger"
)

const defaultWsURL = "wss://eventsub.wss.twitch.tv/ws"

// Handlers receive the decoded events. Nil handlers are skipped.
type Handlers struct {
	OnChatMessage func(message.ChatMessage)
	OnRedemption  func(message.Notification)
	OnReconnect   func()
}

// Resolver yields the broadcaster and chatting user ids. It is called
// on every session setup, a failure ends the cycle and the usual
// reconnect delay applies before the next attempt.
type Resolver func(ctx context.Context) (broadcasterID, userID string, err error)

type EventSub struct {
	log logger.Logger
	api ports.APIPort

	resolve        Resolver
	reconnectDelay time.Duration
	wsURL          string

	handlers Handlers
}

func New(log logger.Logger, api ports.APIPort, resolve Resolver, reconnectDelay time.Duration, handlers Handlers) *EventSub {
	return &EventSub{
		log:            log,
		api:            api,
		resolve:        resolve,
		reconnectDelay: reconnectDelay,
		wsURL:          defaultWsURL,
		handlers:       handlers,
	}
}

// Run keeps an EventSub session alive until the context is canceled.
// Every connection loss, including a server-requested reconnect, goes
// through the same fixed delay before dialing again.
func (e *EventSub) Run(ctx context.Context) {
	for {
		if err := e.connectAndHandleEvents(ctx); err != nil && ctx.Err() == nil {
			e.log.Warn("EventSub connection lost, retrying...", slog.String("error", err.Error()))
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(e.reconnectDelay):
		}

		if e.handlers.OnReconnect != nil {
			e.handlers.OnReconnect()
		}
	}
}

func (e *EventSub) connectAndHandleEvents(ctx context.Context) error {
	ws, _, err := websocket.DefaultDialer.DialContext(ctx, e.wsURL, nil)
	if err != nil {
		e.log.Error("Failed to connect to Twitch EventSub", err)
		return err
	}
	defer ws.Close()

	// Unblock ReadMessage when the context is canceled.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = ws.Close()
		case <-done:
		}
	}()

	e.log.Info("Connected to Twitch EventSub WebSocket")
	for {
		_, msgBytes, err := ws.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		var event EventSubMessage
		if err := json.Unmarshal(msgBytes, &event); err != nil {
			e.log.Error("Failed to decode EventSub message", err, slog.String("event", string(msgBytes)))
			continue
		}

		switch event.Metadata.MessageType {
		case "session_welcome":
			e.log.Debug("Received session_welcome on EventSub")

			var payload SessionWelcomePayload
			if err := json.Unmarshal(event.Payload, &payload); err != nil {
				e.log.Error("Failed to decode session_welcome payload", err, slog.String("event", string(msgBytes)))
				break
			}

			if err := e.ensureSubscriptions(ctx, payload.Session.ID); err != nil {
				e.log.Error("Failed to set up EventSub subscriptions", err)
				return err
			}
		case "session_keepalive":
			e.log.Trace("Received session_keepalive on EventSub")
		case "notification":
			e.dispatchNotification(event.Payload)
		case "session_reconnect":
			e.log.Debug("Received session_reconnect on EventSub")
			return nil
		}
	}
}

// ensureSubscriptions makes the wanted subscription set active without
// duplicating ones that already exist, so a session resumed after a
// reconnect does not stack subscriptions.
func (e *EventSub) ensureSubscriptions(ctx context.Context, sessionID string) error {
	broadcasterID, userID, err := e.resolve(ctx)
	if err != nil {
		return fmt.Errorf("resolve chat identities: %w", err)
	}

	existing, err := e.api.ListEventSubSubscriptions(ctx)
	if err != nil {
		return err
	}

	active := make(map[string]struct{}, len(existing))
	for _, sub := range existing {
		if sub.Status == "enabled" {
			active[sub.Type] = struct{}{}
		}
	}

	wanted := []ports.SubscriptionRequest{
		{
			Type:    "channel.channel_points_custom_reward_redemption.add",
			Version: "1",
			Condition: map[string]string{
				"broadcaster_user_id": broadcasterID,
			},
			SessionID: sessionID,
		},
		{
			Type:    "channel.chat.message",
			Version: "1",
			Condition: map[string]string{
				"broadcaster_user_id": broadcasterID,
				"user_id":             userID,
			},
			SessionID: sessionID,
		},
	}

	for _, req := range wanted {
		if _, ok := active[req.Type]; ok {
			e.log.Debug("EventSub subscription already active", slog.String("type", req.Type))
			continue
		}

		if err := e.api.CreateEventSubSubscription(ctx, req); err != nil {
			return err
		}
		e.log.Info("Subscribed to EventSub event", slog.String("type", req.Type))
	}

	return nil
}

func (e *EventSub) dispatchNotification(payload json.RawMessage) {
	var note NotificationPayload
	if err := json.Unmarshal(payload, &note); err != nil {
		e.log.Error("Failed to decode notification payload", err, slog.String("payload", string(payload)))
		return
	}

	switch note.Subscription.Type {
	case "channel.chat.message":
		var ev ChatMessageEvent
		if err := json.Unmarshal(note.Event, &ev); err != nil {
			e.log.Error("Failed to decode chat message event", err, slog.String("payload", string(payload)))
			return
		}

		if e.handlers.OnChatMessage != nil {
			e.handlers.OnChatMessage(chatMessageFromEvent(ev))
		}
	case "channel.channel_points_custom_reward_redemption.add":
		var ev RedemptionEvent
		if err := json.Unmarshal(note.Event, &ev); err != nil {
			e.log.Error("Failed to decode redemption event", err, slog.String("payload", string(payload)))
			return
		}

		if e.handlers.OnRedemption != nil {
			e.handlers.OnRedemption(notificationFromRedemption(ev))
		}
	default:
		e.log.Info("Unhandled EventSub notification", slog.String("type", note.Subscription.Type))
	}
}

func chatMessageFromEvent(ev ChatMessageEvent) message.ChatMessage {
	msg := message.ChatMessage{
		ID:     ev.MessageID,
		Sender: ev.ChatterUserName,
		Text:   ev.Message.Text,
		Source: message.SourceEventSub,
	}
	if msg.ID == "" {
		msg.ID = message.NewID()
	}
	if msg.Sender == "" {
		msg.Sender = ev.ChatterUserLogin
	}

	if rgb, ok := colors.FromHex(ev.Color); ok {
		msg.SenderColor = &rgb
	}

	for _, b := range ev.Badges {
		msg.Badges = append(msg.Badges, message.BadgePair{Set: b.SetID, Version: b.ID})
	}

	return msg
}

func notificationFromRedemption(ev RedemptionEvent) message.Notification {
	sender := ev.UserName
	if sender == "" {
		sender = ev.UserLogin
	}
	if sender == "" {
		sender = "eventsub"
	}

	return message.Notification{
		ID:     message.NewID(),
		Sender: sender,
		Text:   "Reward redeemed: " + ev.Reward.Title,
		Source: message.SourceEventSub,
	}
}
