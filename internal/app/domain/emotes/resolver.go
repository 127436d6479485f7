package emotes

import "sync"

// Emote is a resolved emote reference.
type Emote struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	Animated bool   `json:"animated"`
}

// Entry is a single namespace record: image URL plus animation flag.
type Entry struct {
	URL      string
	Animated bool
}

// Namespace identifies one provider-scoped emote map.
type Namespace int

// Resolution order is fixed: Twitch global first, then the 7TV channel set
// (the only animated-capable one in the original pipeline), 7TV global,
// BTTV channel, BTTV global. First hit wins.
const (
	TwitchGlobal Namespace = iota
	SevenTVChannel
	SevenTVGlobal
	BTTVChannel
	BTTVGlobal

	namespaceCount
)

// Resolver holds the provider emote namespaces. Each namespace is replaced
// wholesale on a successful fetch, never mutated incrementally.
type Resolver struct {
	mu   sync.RWMutex
	maps [namespaceCount]map[string]Entry
}

func NewResolver() *Resolver {
	return &Resolver{}
}

// Replace swaps a whole namespace map.
func (r *Resolver) Replace(ns Namespace, m map[string]Entry) {
	if ns < 0 || ns >= namespaceCount {
		return
	}

	r.mu.Lock()
	r.maps[ns] = m
	r.mu.Unlock()
}

// Resolve returns the emote for a literal word token, trying namespaces in
// priority order. The second result is false when no namespace knows the token.
func (r *Resolver) Resolve(token string) (Emote, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for ns := Namespace(0); ns < namespaceCount; ns++ {
		if entry, ok := r.maps[ns][token]; ok {
			return Emote{Name: token, URL: entry.URL, Animated: entry.Animated}, true
		}
	}

	return Emote{}, false
}

// Len reports the total number of entries across all namespaces.
func (r *Resolver) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int
	for _, m := range r.maps {
		n += len(m)
	}
	return n
}

// Snapshot copies one namespace, for the state endpoint.
func (r *Resolver) Snapshot(ns Namespace) map[string]Entry {
	if ns < 0 || ns >= namespaceCount {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]Entry, len(r.maps[ns]))
	for k, v := range r.maps[ns] {
		out[k] = v
	}
	return out
}
