package search

import (
	"sync"
	"time"

	"github.com/mythopedia-cloud/mythopedia/internal/domain/search/result"
)

// responseCache memoizes search responses for a bounded time window. Expiry
// is checked lazily on read; there is no background eviction. The cache is
// cleared whole whenever the index is rebuilt.
type responseCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	maxSize int
	items   map[string]cachedResponse
}

type cachedResponse struct {
	resp    result.Response
	storedAt time.Time
}

func newResponseCache(ttl time.Duration, maxSize int) *responseCache {
	return &responseCache{
		ttl:     ttl,
		maxSize: maxSize,
		items:   make(map[string]cachedResponse),
	}
}

// get returns the cached response for key if present and fresh.
func (c *responseCache) get(key string) (result.Response, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, ok := c.items[key]
	if !ok {
		return result.Response{}, false
	}
	if time.Since(item.storedAt) > c.ttl {
		delete(c.items, key)
		return result.Response{}, false
	}
	return item.resp, true
}

// set stores a response. When the cache is full, expired entries are dropped
// first; if it is still full the write is skipped (concurrent writers for
// the same key compute the same answer, so last-write-wins is safe).
func (c *responseCache) set(key string, resp result.Response) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.items) >= c.maxSize {
		now := time.Now()
		for k, item := range c.items {
			if now.Sub(item.storedAt) > c.ttl {
				delete(c.items, k)
			}
		}
		if len(c.items) >= c.maxSize {
			return
		}
	}
	c.items[key] = cachedResponse{resp: resp, storedAt: time.Now()}
}

// clear drops every cached response.
func (c *responseCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]cachedResponse)
}

// len reports the current entry count (expired entries included).
func (c *responseCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
