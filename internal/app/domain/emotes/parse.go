package emotes

import "strings"

// Part is one render unit of a chat line: either plain text or an emote.
// Exactly one of the fields is set.
type Part struct {
	Text  string `json:"text,omitempty"`
	Emote *Emote `json:"emote,omitempty"`
}

// Parse splits text on whitespace and resolves each token against the
// namespaces. Consecutive unresolved tokens collapse into a single
// space-joined text part, so consumers render fewer, larger text nodes.
func (r *Resolver) Parse(text string) []Part {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	parts := make([]Part, 0, 2)
	var pending []string

	flush := func() {
		if len(pending) == 0 {
			return
		}
		parts = append(parts, Part{Text: strings.Join(pending, " ")})
		pending = pending[:0]
	}

	for _, w := range words {
		if emote, ok := r.Resolve(w); ok {
			flush()
			e := emote
			parts = append(parts, Part{Emote: &e})
			continue
		}
		pending = append(pending, w)
	}
	flush()

	return parts
}
