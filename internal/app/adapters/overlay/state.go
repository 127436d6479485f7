package overlay

import (
	"sync"

	"streamoverlay/internal/app/domain/badges"
	"streamoverlay/internal/app/domain/emotes"
	"streamoverlay/internal/app/domain/message"
	"streamoverlay/internal/app/ports"
)

// State is the single observable container all transports publish into.
// Every mutation goes through its mutex, which stands in for the UI-affinity
// context of the original design: readers take snapshots, writers serialize,
// and change signals are coalesced into a 1-buffered channel.
type State struct {
	mu sync.RWMutex

	lastMessage   *message.ChatMessage
	messages      []*message.ChatMessage
	notifications []*message.Notification
	historyLimit  int

	streamTitle  string
	categoryName string
	boxArtURL    string

	badges  *badges.Catalog
	emotes  *emotes.Resolver
	changes chan struct{}
}

func NewState(historyLimit int, catalog *badges.Catalog, resolver *emotes.Resolver) *State {
	return &State{
		historyLimit: historyLimit,
		badges:       catalog,
		emotes:       resolver,
		changes:      make(chan struct{}, 1),
	}
}

// Changes delivers a coalesced signal after each observable mutation.
func (s *State) Changes() <-chan struct{} {
	return s.changes
}

func (s *State) notify() {
	select {
	case s.changes <- struct{}{}:
	default:
	}
}

// SetLastMessage fills the highlighted-message slot. Only the throttled
// publisher calls this.
func (s *State) SetLastMessage(m *message.ChatMessage) {
	s.mu.Lock()
	s.lastMessage = m
	s.mu.Unlock()

	s.notify()
}

// AppendMessage records a message into the bounded history. Oldest entries
// are evicted first once the cap is reached.
func (s *State) AppendMessage(m *message.ChatMessage) {
	s.mu.Lock()
	s.messages = append(s.messages, m)
	if n := len(s.messages); n > s.historyLimit {
		s.messages = s.messages[n-s.historyLimit:]
	}
	s.mu.Unlock()

	s.notify()
}

// AppendNotification records a notification into its own bounded history.
// Expiry scheduling belongs to the owning client, not the state.
func (s *State) AppendNotification(n *message.Notification) {
	s.mu.Lock()
	s.notifications = append(s.notifications, n)
	if c := len(s.notifications); c > s.historyLimit {
		s.notifications = s.notifications[c-s.historyLimit:]
	}
	s.mu.Unlock()

	s.notify()
}

// RemoveNotification drops a notification by identity. A miss is a no-op
// (it may already have been evicted by the count cap).
func (s *State) RemoveNotification(id string) {
	s.mu.Lock()
	removed := false
	for i, n := range s.notifications {
		if n.ID == id {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			removed = true
			break
		}
	}
	s.mu.Unlock()

	if removed {
		s.notify()
	}
}

// SetStreamInfo applies title and category, gated on value equality so a
// refresh tick with unchanged data produces no change signal.
func (s *State) SetStreamInfo(title, category string) bool {
	s.mu.Lock()
	changed := s.streamTitle != title || s.categoryName != category
	s.streamTitle = title
	s.categoryName = category
	s.mu.Unlock()

	if changed {
		s.notify()
	}
	return changed
}

// SetBoxArtURL applies the category artwork URL with the same equality gate.
// An empty URL clears the artwork.
func (s *State) SetBoxArtURL(url string) bool {
	s.mu.Lock()
	changed := s.boxArtURL != url
	s.boxArtURL = url
	s.mu.Unlock()

	if changed {
		s.notify()
	}
	return changed
}

func (s *State) Messages() []*message.ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*message.ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

func (s *State) Notifications() []*message.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*message.Notification, len(s.notifications))
	copy(out, s.notifications)
	return out
}

func (s *State) LastMessage() *message.ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.lastMessage
}

func (s *State) Badges() *badges.Catalog {
	return s.badges
}

func (s *State) Emotes() *emotes.Resolver {
	return s.emotes
}

func (s *State) Snapshot() ports.OverlaySnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msgs := make([]*message.ChatMessage, len(s.messages))
	copy(msgs, s.messages)
	notifs := make([]*message.Notification, len(s.notifications))
	copy(notifs, s.notifications)

	return ports.OverlaySnapshot{
		LastMessage:   s.lastMessage,
		Messages:      msgs,
		Notifications: notifs,
		StreamTitle:   s.streamTitle,
		CategoryName:  s.categoryName,
		BoxArtURL:     s.boxArtURL,
		BadgeSets:     s.badges.Len(),
		EmoteCount:    s.emotes.Len(),
	}
}
