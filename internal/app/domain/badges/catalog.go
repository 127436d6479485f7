package badges

import (
	"sync"

	"streamoverlay/internal/app/domain/message"
)

// Catalog maps badge set id -> version id -> image URL. The whole mapping
// is swapped on a successful fetch; readers never see a partial update.
type Catalog struct {
	mu   sync.RWMutex
	sets map[string]map[string]string
}

func NewCatalog() *Catalog {
	return &Catalog{sets: make(map[string]map[string]string)}
}

// Merge overlays src onto dst and returns dst. Versions in src win on
// conflict, which is how channel badges override global ones.
func Merge(dst, src map[string]map[string]string) map[string]map[string]string {
	if dst == nil {
		dst = make(map[string]map[string]string, len(src))
	}

	for set, versions := range src {
		existing, ok := dst[set]
		if !ok {
			existing = make(map[string]string, len(versions))
			dst[set] = existing
		}
		for version, url := range versions {
			existing[version] = url
		}
	}

	return dst
}

// Replace swaps the full two-level mapping.
func (c *Catalog) Replace(sets map[string]map[string]string) {
	c.mu.Lock()
	c.sets = sets
	c.mu.Unlock()
}

// Lookup returns the image URL for a (set, version) pair.
func (c *Catalog) Lookup(set, version string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	versions, ok := c.sets[set]
	if !ok {
		return "", false
	}
	url, ok := versions[version]
	return url, ok
}

// Resolve maps badge pairs to display records. Pairs without a catalog
// entry keep an empty URL so consumers can still show a placeholder.
func (c *Catalog) Resolve(pairs []message.BadgePair) []message.BadgeRecord {
	if len(pairs) == 0 {
		return nil
	}

	records := make([]message.BadgeRecord, 0, len(pairs))
	for _, p := range pairs {
		url, _ := c.Lookup(p.Set, p.Version)
		records = append(records, message.BadgeRecord{Set: p.Set, Version: p.Version, URL: url})
	}
	return records
}

// Len reports the number of badge sets.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.sets)
}

// Snapshot copies the full mapping, for the state endpoint.
func (c *Catalog) Snapshot() map[string]map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]map[string]string, len(c.sets))
	for set, versions := range c.sets {
		cp := make(map[string]string, len(versions))
		for v, url := range versions {
			cp[v] = url
		}
		out[set] = cp
	}
	return out
}
