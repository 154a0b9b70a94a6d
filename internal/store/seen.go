package store

import (
	"encoding/json"
	"os"
	"time"
)

const dateLayout = "2006-01-02"

// SeenCache maps an event URL to the date it was first observed. It is
// the only state that survives between runs: read once at start,
// written once at the end. Entries are never evicted.
type SeenCache struct {
	seen map[string]string
}

// New returns an empty cache.
func New() *SeenCache {
	return &SeenCache{seen: make(map[string]string)}
}

// Load reads the cache file at path. A missing file yields an empty
// cache; that is the normal first-run case, not an error.
func Load(path string) (*SeenCache, error) {
	c := &SeenCache{seen: make(map[string]string)}
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return c, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(b, &c.seen); err != nil {
		return nil, err
	}
	return c, nil
}

// Save writes the cache back to path in one shot.
func (c *SeenCache) Save(path string) error {
	b, err := json.MarshalIndent(c.seen, "", " ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// FirstSeen returns the recorded first-seen date for url.
func (c *SeenCache) FirstSeen(url string) (time.Time, bool) {
	raw, ok := c.seen[url]
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Mark records url as first seen on day unless it is already known,
// and returns the effective first-seen date.
func (c *SeenCache) Mark(url string, day time.Time) time.Time {
	if t, ok := c.FirstSeen(url); ok {
		return t
	}
	c.seen[url] = day.Format(dateLayout)
	return day
}

// Len reports the number of cached URLs.
func (c *SeenCache) Len() int {
	return len(c.seen)
}
