package event_sub

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streamoverlay/internal/app/domain/colors"
	"streamoverlay/internal/app/domain/emotes"
	"streamoverlay/internal/app/domain/message"
	"streamoverlay/internal/app/ports"
	"streamoverlay/pkg/logger"
)

type fakeAPI struct {
	subs    []ports.Subscription
	created []ports.SubscriptionRequest
}

func (f *fakeAPI) ResolveChannelID(context.Context, string) (string, error) { return "", nil }
func (f *fakeAPI) GetChannelInfo(context.Context, string) (*ports.ChannelInfo, error) {
	return nil, nil
}
func (f *fakeAPI) GetGameBoxArt(context.Context, string) (string, error) { return "", nil }
func (f *fakeAPI) GetGlobalBadges(context.Context) (map[string]map[string]string, error) {
	return nil, nil
}
func (f *fakeAPI) GetChannelBadges(context.Context, string) (map[string]map[string]string, error) {
	return nil, nil
}
func (f *fakeAPI) GetGlobalEmotes(context.Context) (map[string]emotes.Entry, error) {
	return nil, nil
}

func (f *fakeAPI) ListEventSubSubscriptions(context.Context) ([]ports.Subscription, error) {
	return f.subs, nil
}

func (f *fakeAPI) CreateEventSubSubscription(_ context.Context, req ports.SubscriptionRequest) error {
	f.created = append(f.created, req)
	return nil
}

func newTestEventSub(api ports.APIPort, handlers Handlers) *EventSub {
	resolve := func(context.Context) (string, string, error) {
		return "84011517", "10020030", nil
	}
	return New(logger.New(), api, resolve, 2*time.Second, handlers)
}

func TestEnsureSubscriptionsCreatesMissing(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{}
	es := newTestEventSub(api, Handlers{})

	require.NoError(t, es.ensureSubscriptions(context.Background(), "session-1"))
	require.Len(t, api.created, 2)

	redemption := api.created[0]
	assert.Equal(t, "channel.channel_points_custom_reward_redemption.add", redemption.Type)
	assert.Equal(t, "1", redemption.Version)
	assert.Equal(t, "84011517", redemption.Condition["broadcaster_user_id"])
	assert.Equal(t, "session-1", redemption.SessionID)

	chat := api.created[1]
	assert.Equal(t, "channel.chat.message", chat.Type)
	assert.Equal(t, "84011517", chat.Condition["broadcaster_user_id"])
	assert.Equal(t, "10020030", chat.Condition["user_id"])
}

func TestEnsureSubscriptionsSkipsActive(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{subs: []ports.Subscription{
		{ID: "s1", Type: "channel.chat.message", Status: "enabled"},
		{ID: "s2", Type: "channel.channel_points_custom_reward_redemption.add", Status: "websocket_disconnected"},
	}}
	es := newTestEventSub(api, Handlers{})

	require.NoError(t, es.ensureSubscriptions(context.Background(), "session-2"))

	// Only the redemption subscription is recreated: its previous
	// instance is not enabled anymore.
	require.Len(t, api.created, 1)
	assert.Equal(t, "channel.channel_points_custom_reward_redemption.add", api.created[0].Type)
}

func TestEnsureSubscriptionsResolvesLazily(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{}
	calls := 0
	resolve := func(context.Context) (string, string, error) {
		calls++
		if calls == 1 {
			return "", "", errors.New("dial tcp: connection refused")
		}
		return "84011517", "10020030", nil
	}
	es := New(logger.New(), api, resolve, 2*time.Second, Handlers{})

	// The first cycle fails without creating anything, the session goes
	// back through the reconnect loop.
	require.Error(t, es.ensureSubscriptions(context.Background(), "session-3"))
	assert.Empty(t, api.created)

	// The next cycle resolves and subscribes normally.
	require.NoError(t, es.ensureSubscriptions(context.Background(), "session-4"))
	assert.Len(t, api.created, 2)
}

func TestDispatchChatMessage(t *testing.T) {
	t.Parallel()

	var got message.ChatMessage
	es := newTestEventSub(&fakeAPI{}, Handlers{
		OnChatMessage: func(msg message.ChatMessage) { got = msg },
	})

	es.dispatchNotification(json.RawMessage(`{
		"subscription": {"id": "s1", "type": "channel.chat.message"},
		"event": {
			"message_id": "abc-123",
			"chatter_user_name": "SomeViewer",
			"chatter_user_login": "someviewer",
			"color": "#FF0000",
			"badges": [{"set_id": "subscriber", "id": "3"}],
			"message": {"text": "hello there"}
		}
	}`))

	assert.Equal(t, "abc-123", got.ID)
	assert.Equal(t, "SomeViewer", got.Sender)
	assert.Equal(t, "hello there", got.Text)
	assert.Equal(t, message.SourceEventSub, got.Source)
	require.NotNil(t, got.SenderColor)
	assert.Equal(t, colors.RGB{R: 0xFF, G: 0x00, B: 0x00}, *got.SenderColor)
	require.Len(t, got.Badges, 1)
	assert.Equal(t, message.BadgePair{Set: "subscriber", Version: "3"}, got.Badges[0])
}

func TestDispatchChatMessageDefaults(t *testing.T) {
	t.Parallel()

	var got message.ChatMessage
	es := newTestEventSub(&fakeAPI{}, Handlers{
		OnChatMessage: func(msg message.ChatMessage) { got = msg },
	})

	es.dispatchNotification(json.RawMessage(`{
		"subscription": {"type": "channel.chat.message"},
		"event": {"chatter_user_login": "fallback", "color": "", "message": {"text": "hi"}}
	}`))

	assert.NotEmpty(t, got.ID, "a missing message id is replaced with a generated one")
	assert.Equal(t, "fallback", got.Sender)
	assert.Nil(t, got.SenderColor, "an empty color tag stays unset")
}

func TestDispatchRedemption(t *testing.T) {
	t.Parallel()

	var got message.Notification
	es := newTestEventSub(&fakeAPI{}, Handlers{
		OnRedemption: func(n message.Notification) { got = n },
	})

	es.dispatchNotification(json.RawMessage(`{
		"subscription": {"type": "channel.channel_points_custom_reward_redemption.add"},
		"event": {
			"user_name": "GenerousViewer",
			"reward": {"id": "r1", "title": "Hydrate!", "cost": 500}
		}
	}`))

	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "GenerousViewer", got.Sender)
	assert.Equal(t, "Reward redeemed: Hydrate!", got.Text)
	assert.Equal(t, message.SourceEventSub, got.Source)
}

func TestDispatchUnknownTypeIsIgnored(t *testing.T) {
	t.Parallel()

	called := false
	es := newTestEventSub(&fakeAPI{}, Handlers{
		OnChatMessage: func(message.ChatMessage) { called = true },
		OnRedemption:  func(message.Notification) { called = true },
	})

	es.dispatchNotification(json.RawMessage(`{
		"subscription": {"type": "stream.online"},
		"event": {}
	}`))

	assert.False(t, called)
}
