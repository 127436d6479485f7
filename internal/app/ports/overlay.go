package ports

import (
	"streamoverlay/internal/app/domain/message"
)

// OverlaySnapshot is a point-in-time copy of the observable overlay state.
type OverlaySnapshot struct {
	LastMessage   *message.ChatMessage    `json:"last_message,omitempty"`
	Messages      []*message.ChatMessage  `json:"messages"`
	Notifications []*message.Notification `json:"notifications"`

	StreamTitle  string `json:"stream_title"`
	CategoryName string `json:"category_name"`
	BoxArtURL    string `json:"box_art_url,omitempty"`

	BadgeSets  int `json:"badge_sets"`
	EmoteCount int `json:"emote_count"`
}

// OverlayStatePort is the read-only view handed to the presentation layer
// and the observability endpoints.
type OverlayStatePort interface {
	Snapshot() OverlaySnapshot
	Changes() <-chan struct{}
}
