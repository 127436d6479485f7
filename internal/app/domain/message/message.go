package message

import (
	"github.com/google/uuid"

	"streamoverlay/internal/app/domain/colors"
	"streamoverlay/internal/app/domain/emotes"
)

// Source identifies the transport a message arrived on.
type Source string

const (
	SourceIRC      Source = "irc"
	SourceEventSub Source = "eventsub"
	SourceSystem   Source = "system"
)

// SystemSender is the display name used for synthetic messages
// describing connection state.
const SystemSender = "system"

// BadgePair is a (badge set, version) reference carried by a chat message.
type BadgePair struct {
	Set     string `json:"set"`
	Version string `json:"version"`
}

// BadgeRecord is a badge pair resolved against the badge catalog.
// URL is empty when the catalog has no image for the pair.
type BadgeRecord struct {
	Set     string `json:"set"`
	Version string `json:"version"`
	URL     string `json:"url,omitempty"`
}

// ChatMessage is a normalized chat line. It is immutable after creation:
// the ingestion client only appends and evicts, never mutates.
type ChatMessage struct {
	ID          string        `json:"id"`
	Sender      string        `json:"sender"`
	Text        string        `json:"text"`
	Badges      []BadgePair   `json:"badges,omitempty"`
	SenderColor *colors.RGB   `json:"sender_color,omitempty"`
	BadgeViews  []BadgeRecord `json:"badge_views,omitempty"`
	Parts       []emotes.Part `json:"parts,omitempty"`
	Source      Source        `json:"source"`
}

// Notification has the same shape as ChatMessage but lives in its own
// bounded, auto-expiring history.
type Notification struct {
	ID          string        `json:"id"`
	Sender      string        `json:"sender"`
	Text        string        `json:"text"`
	Badges      []BadgePair   `json:"badges,omitempty"`
	SenderColor *colors.RGB   `json:"sender_color,omitempty"`
	BadgeViews  []BadgeRecord `json:"badge_views,omitempty"`
	Source      Source        `json:"source"`
}

// NewID returns a fresh opaque message identity.
func NewID() string {
	return uuid.NewString()
}

// System builds a synthetic gray system message, used to surface
// transport failures in the chat stream.
func System(text string) *ChatMessage {
	gray := colors.Default
	return &ChatMessage{
		ID:          NewID(),
		Sender:      SystemSender,
		Text:        text,
		SenderColor: &gray,
		Source:      SourceSystem,
	}
}
