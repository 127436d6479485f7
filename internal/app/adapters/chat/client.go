package chat

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"streamoverlay/internal/app/adapters/metrics"
	"streamoverlay/internal/app/adapters/overlay"
	"streamoverlay/internal/app/adapters/twitch/event_sub"
	"streamoverlay/internal/app/adapters/twitch/irc"
	"streamoverlay/internal/app/domain/badges"
	"streamoverlay/internal/app/domain/emotes"
	"streamoverlay/internal/app/domain/message"
	"streamoverlay/internal/app/infrastructure/config"
	"streamoverlay/internal/app/ports"
	"streamoverlay/pkg/logger"
)

// recentIDLimit bounds the window of message ids remembered for
// duplicate suppression across the two transports.
const recentIDLimit = 256

// Client owns the two chat transports and the metadata loop. Messages
// from either transport land in the shared overlay state: every message
// goes into the history, only the last-message slot is throttled.
type Client struct {
	log logger.Logger
	cfg *config.Config

	api      ports.APIPort
	sevenTV  ports.EmoteProviderPort
	bttv     ports.EmoteProviderPort
	irc      *irc.Client
	eventSub *event_sub.EventSub

	state     *overlay.State
	publisher *overlay.Publisher

	seenMu  sync.Mutex
	seen    map[string]struct{}
	seenIDs [recentIDLimit]string
	seenPos int

	mu      sync.Mutex
	cancel  context.CancelFunc
	running bool
}

// New wires the transports together without touching the network. Login
// to id resolution happens lazily inside the loops that need it, each of
// which already retries, so Twitch being unreachable at launch never
// prevents the client from coming up.
func New(log logger.Logger, cfg *config.Config, twitchAPI ports.APIPort, state *overlay.State, publisher *overlay.Publisher, sevenTV, bttv ports.EmoteProviderPort) *Client {
	c := &Client{
		log:       log,
		cfg:       cfg,
		api:       twitchAPI,
		sevenTV:   sevenTV,
		bttv:      bttv,
		irc:       irc.New(log),
		state:     state,
		publisher: publisher,
		seen:      make(map[string]struct{}, recentIDLimit),
	}

	publisher.OnDisplace(metrics.MessagesThrottled.Inc)

	c.eventSub = event_sub.New(log, twitchAPI, c.resolveIDs, cfg.Chat.ReconnectDelay, event_sub.Handlers{
		OnChatMessage: func(m message.ChatMessage) { c.ingest(&m) },
		OnRedemption:  func(n message.Notification) { c.notify(&n) },
		OnReconnect:   func() { metrics.Reconnects.WithLabelValues("eventsub").Inc() },
	})

	return c
}

// resolveIDs maps the configured channel and bot logins to user ids.
// The API layer caches successful lookups, so callers may retry freely.
func (c *Client) resolveIDs(ctx context.Context) (string, string, error) {
	broadcasterID, err := c.api.ResolveChannelID(ctx, c.cfg.App.Channel)
	if err != nil {
		return "", "", err
	}

	userID, err := c.api.ResolveChannelID(ctx, c.cfg.App.Username)
	if err != nil {
		return "", "", err
	}

	return broadcasterID, userID, nil
}

// Start brings up IRC, EventSub and the metadata loop. Calling it while
// running tears the previous session down first, so the presentation
// layer can use it as a reconnect button.
func (c *Client) Start() {
	c.mu.Lock()
	c.stopLocked()

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.running = true
	c.mu.Unlock()

	c.publisher.Resume()

	go c.LoadAllBadges(ctx, c.cfg.App.Channel)
	go c.LoadEmotes(ctx)
	go c.runIRC(ctx)
	go c.eventSub.Run(ctx)
	go c.metadataLoop(ctx)
}

// Stop cancels all background work. Histories and the emote and badge
// catalogs stay as they are, a later Start reuses them.
func (c *Client) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopLocked()
}

func (c *Client) stopLocked() {
	if !c.running {
		return
	}

	c.cancel()
	c.irc.Close()
	c.publisher.Stop()
	c.running = false
}

func (c *Client) runIRC(ctx context.Context) {
	creds := irc.Credentials{
		OAuth:   c.cfg.App.OAuth,
		Nick:    c.cfg.App.Username,
		Channel: c.cfg.App.Channel,
	}

	for {
		err := c.irc.Connect(creds)
		if err != nil {
			c.log.Error("Failed to connect to Twitch IRC", err)
		} else {
			c.log.Info("Connected to Twitch IRC", slog.String("channel", creds.Channel))
			metrics.ConnectionUp.WithLabelValues("irc").Set(1)

			err = c.irc.Listen(c.ingest)
			metrics.ConnectionUp.WithLabelValues("irc").Set(0)
			if err != nil && ctx.Err() == nil {
				c.log.Warn("IRC connection lost, retrying...", slog.String("error", err.Error()))
			}
		}

		if ctx.Err() != nil {
			return
		}

		metrics.Reconnects.WithLabelValues("irc").Inc()
		c.reportDisconnect(err)

		select {
		case <-ctx.Done():
			return
		case <-time.After(c.cfg.Chat.ReconnectDelay):
		}
	}
}

// reportDisconnect surfaces a transport failure in the chat stream
// itself. The message goes through the normal ingestion path, so it
// also takes the highlighted last-message slot.
func (c *Client) reportDisconnect(err error) {
	cause := "connection closed"
	if err != nil {
		cause = err.Error()
	}

	c.ingest(message.System("Chat connection lost: " + cause))
}

// ingest is the single funnel for chat messages from both transports.
// A line delivered over both IRC and EventSub carries the same Twitch
// message id, the second arrival is dropped here.
func (c *Client) ingest(m *message.ChatMessage) {
	start := time.Now()

	if c.alreadySeen(m.ID) {
		return
	}

	m.BadgeViews = c.state.Badges().Resolve(m.Badges)
	m.Parts = c.state.Emotes().Parse(m.Text)
	metrics.MessagesIngested.WithLabelValues(string(m.Source)).Inc()

	c.state.AppendMessage(m)
	c.publisher.Publish(m)

	metrics.MessageProcessingTime.Observe(float64(time.Since(start).Nanoseconds()) / 1e6)
}

// alreadySeen records the id and reports whether it was ingested before.
// Old entries fall out of the window in arrival order.
func (c *Client) alreadySeen(id string) bool {
	c.seenMu.Lock()
	defer c.seenMu.Unlock()

	if _, ok := c.seen[id]; ok {
		return true
	}

	if old := c.seenIDs[c.seenPos]; old != "" {
		delete(c.seen, old)
	}
	c.seen[id] = struct{}{}
	c.seenIDs[c.seenPos] = id
	c.seenPos = (c.seenPos + 1) % recentIDLimit

	return false
}

// notify handles a reward redemption. The notification also lands in the
// message history, unthrottled, the way any other chat line would.
func (c *Client) notify(n *message.Notification) {
	n.BadgeViews = c.state.Badges().Resolve(n.Badges)
	metrics.NotificationsShown.Inc()

	c.state.AppendNotification(n)
	c.state.AppendMessage(&message.ChatMessage{
		ID:         message.NewID(),
		Sender:     n.Sender,
		Text:       n.Text,
		BadgeViews: n.BadgeViews,
		Source:     n.Source,
	})

	id := n.ID
	time.AfterFunc(c.cfg.Chat.NotificationTTL, func() {
		c.state.RemoveNotification(id)
	})
}

func (c *Client) metadataLoop(ctx context.Context) {
	c.refreshMetadata(ctx)

	ticker := time.NewTicker(c.cfg.Metadata.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.refreshMetadata(ctx)
		}
	}
}

func (c *Client) refreshMetadata(ctx context.Context) {
	channelID, err := c.api.ResolveChannelID(ctx, c.cfg.App.Channel)
	if err != nil {
		if ctx.Err() == nil {
			c.log.Warn("Failed to resolve channel, will retry", slog.String("error", err.Error()))
		}
		return
	}

	info, err := c.api.GetChannelInfo(ctx, channelID)
	if err != nil {
		if ctx.Err() == nil {
			c.log.Warn("Failed to refresh stream info", slog.String("error", err.Error()))
		}
		return
	}

	if c.state.SetStreamInfo(info.Title, info.GameName) {
		c.log.Info("Stream info updated", slog.String("title", info.Title), slog.String("category", info.GameName))
	}

	boxArt, err := c.api.GetGameBoxArt(ctx, info.GameID)
	if err != nil {
		if ctx.Err() == nil {
			c.log.Warn("Failed to fetch box art", slog.String("error", err.Error()))
		}
		return
	}
	c.state.SetBoxArtURL(boxArt)
}

// LoadAllBadges merges the global badge sets with the channel's own,
// channel versions winning on conflict. Either half may fail without
// discarding the other.
func (c *Client) LoadAllBadges(ctx context.Context, channelLogin string) {
	global, err := c.api.GetGlobalBadges(ctx)
	if err != nil {
		c.log.Error("Failed to load global badges", err)
		global = nil
	}

	var channel map[string]map[string]string
	if id, err := c.api.ResolveChannelID(ctx, channelLogin); err != nil {
		c.log.Error("Failed to resolve channel for badges", err)
	} else if channel, err = c.api.GetChannelBadges(ctx, id); err != nil {
		c.log.Error("Failed to load channel badges", err)
	}

	merged := badges.Merge(global, channel)
	c.state.Badges().Replace(merged)
	metrics.BadgeSetsLoaded.Set(float64(len(merged)))

	c.log.Info("Badge catalog loaded", slog.Int("sets", len(merged)))
}

// LoadEmotes fills all five emote namespaces. The fetches are
// independent: one provider being down leaves the others intact.
func (c *Client) LoadEmotes(ctx context.Context) {
	type fetch struct {
		namespace emotes.Namespace
		label     string
		load      func(context.Context) (map[string]emotes.Entry, error)
	}

	fetches := []fetch{
		{emotes.TwitchGlobal, "twitch_global", c.api.GetGlobalEmotes},
		{emotes.SevenTVChannel, "seventv_channel", func(ctx context.Context) (map[string]emotes.Entry, error) {
			id, err := c.api.ResolveChannelID(ctx, c.cfg.App.Channel)
			if err != nil {
				return nil, err
			}
			return c.sevenTV.ChannelEmotes(ctx, id)
		}},
		{emotes.SevenTVGlobal, "seventv_global", c.sevenTV.GlobalEmotes},
		{emotes.BTTVChannel, "bttv_channel", func(ctx context.Context) (map[string]emotes.Entry, error) {
			id, err := c.api.ResolveChannelID(ctx, c.cfg.App.Channel)
			if err != nil {
				return nil, err
			}
			return c.bttv.ChannelEmotes(ctx, id)
		}},
		{emotes.BTTVGlobal, "bttv_global", c.bttv.GlobalEmotes},
	}

	for _, f := range fetches {
		m, err := f.load(ctx)
		if err != nil {
			c.log.Error("Failed to load emote namespace", err, slog.String("namespace", f.label))
			continue
		}

		c.state.Emotes().Replace(f.namespace, m)
		metrics.EmotesLoaded.WithLabelValues(f.label).Set(float64(len(m)))
	}

	c.log.Info("Emote namespaces loaded", slog.Int("emotes", c.state.Emotes().Len()))
}
