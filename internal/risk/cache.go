package risk

import (
	"fmt"
	"sync"
	"time"

	"github.com/mossrow/tokenguard/internal/syncutil"
)

const (
	defaultCacheTTL = 5 * time.Minute
	maxCacheEntries = 4096
)

// resultCache is a read-mostly TTL cache for validations. Each key is
// independently computed and idempotent within its TTL, so last-write-wins
// is sufficient and no cross-key coordination is needed. The sharded lock
// set only serializes recomputation of one key at a time.
type resultCache struct {
	ttl     time.Duration
	mu      sync.RWMutex
	entries map[string]cacheEntry
	locks   syncutil.ShardedMutex
}

type cacheEntry struct {
	v       *Validation
	expires time.Time
}

func newResultCache(ttl time.Duration) *resultCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &resultCache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
	}
}

// cacheKey fingerprints the address, chain, and the config fields that
// change the outcome. Two configs with different stage gates must not
// share a cached result.
func cacheKey(addr string, chainID ChainID, cfg Config) string {
	return fmt.Sprintf("%d:%s:c%tm%te%ts%t:t%d",
		chainID, addr,
		cfg.ContractAnalysis, cfg.MetadataValidation, cfg.ExternalValidation, cfg.Strict,
		cfg.Timeout/time.Millisecond)
}

func (c *resultCache) get(key string) (*Validation, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || time.Now().After(entry.expires) {
		return nil, false
	}
	// Shallow copy so the cached object stays immutable even if a caller
	// fiddles with the returned struct.
	out := *entry.v
	out.Cached = true
	return &out, true
}

func (c *resultCache) put(key string, v *Validation) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.entries) >= maxCacheEntries {
		c.evictLocked()
	}
	c.entries[key] = cacheEntry{v: v, expires: time.Now().Add(c.ttl)}
}

// lockKey serializes recomputation per key and returns the unlock func.
func (c *resultCache) lockKey(key string) func() {
	return c.locks.Lock(key)
}

// evictLocked drops expired entries, and if nothing has expired, drops an
// arbitrary entry to stay bounded. Caller holds c.mu.
func (c *resultCache) evictLocked() {
	now := time.Now()
	for k, e := range c.entries {
		if now.After(e.expires) {
			delete(c.entries, k)
		}
	}
	if len(c.entries) >= maxCacheEntries {
		for k := range c.entries {
			delete(c.entries, k)
			break
		}
	}
}
