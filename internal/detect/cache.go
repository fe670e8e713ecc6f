package detect

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// RegionCache stores detection results keyed by a digest of the panel
// bytes, so a caller can replay a panel's regions instead of re-running
// detection on the same image later. Because detection is deterministic,
// a hit is byte-for-byte equivalent to a fresh pass.
//
// Entries expire after the configured TTL; panels are session-scoped and
// the cache should not outlive them. Safe for concurrent use.
type RegionCache struct {
	entries *gocache.Cache
}

// NewRegionCache creates a cache whose entries expire after ttl.
func NewRegionCache(ttl time.Duration) *RegionCache {
	return &RegionCache{entries: gocache.New(ttl, ttl)}
}

// Get returns the cached region list for the given panel bytes, if any.
func (c *RegionCache) Get(data []byte) ([]Region, bool) {
	v, ok := c.entries.Get(digest(data))
	if !ok {
		return nil, false
	}
	regions, ok := v.([]Region)
	return regions, ok
}

// Put stores a region list for the given panel bytes.
func (c *RegionCache) Put(data []byte, regions []Region) {
	c.entries.Set(digest(data), regions, gocache.DefaultExpiration)
}

func digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
