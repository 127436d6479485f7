package irc

import (
	"strings"

	"streamoverlay/internal/app/domain/colors"
	"streamoverlay/internal/app/domain/message"
)

// ParseTags parses a "@k1=v1;k2=v2" tag block into a map. Entries without
// an '=' are dropped silently.
func ParseTags(tags string) map[string]string {
	tags = strings.TrimPrefix(tags, "@")

	result := make(map[string]string)
	for _, pair := range strings.Split(tags, ";") {
		if pair == "" {
			continue
		}
		eq := strings.IndexByte(pair, '=')
		if eq == -1 {
			continue
		}
		result[pair[:eq]] = pair[eq+1:]
	}
	return result
}

// ParseBadges splits a "set/version,set/version" tag value into pairs,
// skipping malformed entries.
func ParseBadges(raw string) []message.BadgePair {
	if raw == "" {
		return nil
	}

	var pairs []message.BadgePair
	for _, entry := range strings.Split(raw, ",") {
		parts := strings.SplitN(entry, "/", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			continue
		}
		pairs = append(pairs, message.BadgePair{Set: parts[0], Version: parts[1]})
	}
	return pairs
}

// ParseLine turns one raw IRC line into a normalized chat message, or nil
// when the line is not a PRIVMSG (or is malformed).
func ParseLine(line string) *message.ChatMessage {
	var tags map[string]string

	rest := line
	if strings.HasPrefix(rest, "@") {
		sp := strings.IndexByte(rest, ' ')
		if sp == -1 {
			return nil
		}
		tags = ParseTags(rest[:sp])
		rest = rest[sp+1:]
	}

	if !strings.Contains(rest, " PRIVMSG ") {
		return nil
	}
	if !strings.HasPrefix(rest, ":") {
		return nil
	}

	excl := strings.IndexByte(rest, '!')
	if excl <= 1 {
		return nil
	}
	sender := rest[1:excl]

	// Text follows the first " :" after the command.
	sep := strings.Index(rest, " :")
	if sep == -1 {
		return nil
	}
	text := rest[sep+2:]

	// Twitch sends the same message id over IRC and EventSub, keeping
	// the tag lets the ingestion side drop the duplicate.
	id := tags["id"]
	if id == "" {
		id = message.NewID()
	}

	msg := &message.ChatMessage{
		ID:     id,
		Sender: sender,
		Text:   text,
		Source: message.SourceIRC,
	}

	if displayName := tags["display-name"]; displayName != "" {
		msg.Sender = displayName
	}
	msg.Badges = ParseBadges(tags["badges"])
	if colorTag := tags["color"]; colorTag != "" {
		if rgb, ok := colors.FromHex(colorTag); ok {
			msg.SenderColor = &rgb
		}
	}

	return msg
}
