package trend

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

// PanelKey identifies one rendering of a feature's trend chart. Panels are
// built from immutable features, so the bytes only change with the chart
// config or the output format.
type PanelKey struct {
	FeatureID string
	Format    string
	Config    Config
}

// PanelCache holds rendered panels, evicting the least recently used.
type PanelCache struct {
	lru       *lru.Cache[PanelKey, []byte]
	size      int
	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

// CacheStats reports panel cache usage.
type CacheStats struct {
	Entries   int   `json:"entries"`
	Capacity  int   `json:"capacity"`
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
}

// NewPanelCache creates a cache holding up to size renderings. Sizes below
// one are raised to one.
func NewPanelCache(size int) *PanelCache {
	if size < 1 {
		size = 1
	}
	c := &PanelCache{size: size}
	// lru.NewWithEvict only fails for a non-positive size.
	c.lru, _ = lru.NewWithEvict(size, func(PanelKey, []byte) { c.evictions.Add(1) })
	return c
}

// Get returns the cached rendering for k.
func (c *PanelCache) Get(k PanelKey) ([]byte, bool) {
	data, ok := c.lru.Get(k)
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return data, ok
}

// Put stores a rendering.
func (c *PanelCache) Put(k PanelKey, data []byte) {
	c.lru.Add(k, data)
}

// Stats returns a snapshot of the counters.
func (c *PanelCache) Stats() CacheStats {
	return CacheStats{
		Entries:   c.lru.Len(),
		Capacity:  c.size,
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}
