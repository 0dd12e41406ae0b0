package mcpserver

import (
	"container/list"
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oeb25/abeye/parser"
)

// cacheEntry is one parsed document with its expiry.
type cacheEntry struct {
	key       string
	result    *parser.ParseResult
	expiresAt time.Time
}

// specCacheStore is a session-scoped LRU of parsed documents. File inputs
// are keyed by (absolutePath, modTime), content inputs by a SHA-256 hash,
// and URL inputs by the URL.
type specCacheStore struct {
	mu             sync.Mutex
	order          *list.List // front is most recently used
	entries        map[string]*list.Element
	maxSize        int
	sweeperStarted atomic.Bool
}

var specCache = newSpecCache(cfg.CacheMaxSize)

func newSpecCache(maxSize int) *specCacheStore {
	return &specCacheStore{
		order:   list.New(),
		entries: make(map[string]*list.Element),
		maxSize: maxSize,
	}
}

// get returns a cached result or nil. Expired entries are removed.
func (c *specCacheStore) get(key string) *parser.ParseResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.entries[key]
	if !ok {
		return nil
	}
	e := el.Value.(*cacheEntry)
	if time.Now().After(e.expiresAt) {
		c.remove(el)
		return nil
	}
	c.order.MoveToFront(el)
	return e.result
}

// putWithTTL stores a result, evicting the least recently used entry when
// the cache is full.
func (c *specCacheStore) putWithTTL(key string, result *parser.ParseResult, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := &cacheEntry{key: key, result: result, expiresAt: time.Now().Add(ttl)}
	if el, ok := c.entries[key]; ok {
		el.Value = entry
		c.order.MoveToFront(el)
		return
	}
	for c.maxSize > 0 && c.order.Len() >= c.maxSize {
		c.remove(c.order.Back())
	}
	c.entries[key] = c.order.PushFront(entry)
}

// remove drops el. The caller holds c.mu.
func (c *specCacheStore) remove(el *list.Element) {
	c.order.Remove(el)
	delete(c.entries, el.Value.(*cacheEntry).key)
}

// sweep removes every expired entry.
func (c *specCacheStore) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for el := c.order.Front(); el != nil; {
		next := el.Next()
		if now.After(el.Value.(*cacheEntry).expiresAt) {
			c.remove(el)
		}
		el = next
	}
}

// startSweeper runs sweep every interval until ctx is cancelled. Only the
// first call starts a goroutine.
func (c *specCacheStore) startSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 || !c.sweeperStarted.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer c.sweeperStarted.Store(false)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.sweep()
			}
		}
	}()
}

// reset clears all cached entries. Used in tests.
func (c *specCacheStore) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order.Init()
	c.entries = make(map[string]*list.Element)
}

// size returns the number of cached entries.
func (c *specCacheStore) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
