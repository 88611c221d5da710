package orchestrator

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/mrlocky97/SentimentalSocialNextJS-sub001/internal/domain"
	"github.com/mrlocky97/SentimentalSocialNextJS-sub001/internal/metrics"
)

// capacityEvictionShare is the fraction of entries dropped when the cache is
// full and a new key arrives.
const capacityEvictionShare = 0.2

// resultCache is an in-memory TTL cache for analysis results, keyed by a
// fingerprint of the normalized request. Expired entries are treated as
// misses on read and physically removed by the periodic sweep; capacity
// pressure evicts the least-hit entries eagerly on write.
type resultCache struct {
	mu       sync.Mutex
	entries  map[string]*cacheEntry
	ttl      time.Duration
	capacity int
	clock    clockwork.Clock
}

type cacheEntry struct {
	result   *domain.AnalysisResult
	cachedAt time.Time
	hitCount int
	textSize int
}

func newResultCache(ttl time.Duration, capacity int, clock clockwork.Clock) *resultCache {
	return &resultCache{
		entries:  make(map[string]*cacheEntry),
		ttl:      ttl,
		capacity: capacity,
		clock:    clock,
	}
}

// fingerprint derives the cache key from every request field that influences
// the result. The request must already be normalized.
func fingerprint(req domain.AnalysisRequest) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%s\x00%t\x00%d", req.Text, req.Language, req.SarcasmEnabled(), req.MaxTokens)
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached result for key if present and fresh, bumping the
// entry's hit counter. Expired entries count as misses and are left for the
// sweep to collect.
func (c *resultCache) Get(key string) (*domain.AnalysisResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.clock.Now().Sub(entry.cachedAt) > c.ttl {
		return nil, false
	}

	entry.hitCount++
	return entry.result, true
}

// Set stores a result, evicting the least-hit entries first when the cache is
// at capacity. Writes for an existing key overwrite it last-write-wins.
func (c *resultCache) Set(key string, result *domain.AnalysisResult, textSize int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.capacity {
		c.evictLeastHitLocked()
	}

	c.entries[key] = &cacheEntry{
		result:   result,
		cachedAt: c.clock.Now(),
		textSize: textSize,
	}
	metrics.CacheSize.Set(float64(len(c.entries)))
}

// evictLeastHitLocked removes the lowest-hit-count 20% of entries (at least
// one). Caller holds the lock.
func (c *resultCache) evictLeastHitLocked() {
	type keyed struct {
		key  string
		hits int
	}
	ranked := make([]keyed, 0, len(c.entries))
	for key, entry := range c.entries {
		ranked = append(ranked, keyed{key: key, hits: entry.hitCount})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].hits != ranked[j].hits {
			return ranked[i].hits < ranked[j].hits
		}
		return ranked[i].key < ranked[j].key
	})

	n := int(float64(len(ranked)) * capacityEvictionShare)
	if n < 1 {
		n = 1
	}
	for _, victim := range ranked[:n] {
		delete(c.entries, victim.key)
	}
	metrics.CacheEvictions.WithLabelValues("capacity").Add(float64(n))
}

// EvictExpired removes all TTL-expired entries and returns the count.
func (c *resultCache) EvictExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	evicted := 0
	for key, entry := range c.entries {
		if now.Sub(entry.cachedAt) > c.ttl {
			delete(c.entries, key)
			evicted++
		}
	}
	if evicted > 0 {
		metrics.CacheEvictions.WithLabelValues("expired").Add(float64(evicted))
	}
	metrics.CacheSize.Set(float64(len(c.entries)))
	return evicted
}

// Size returns the current number of entries, including expired ones the
// sweep has not yet collected.
func (c *resultCache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Clear drops all entries.
func (c *resultCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
	metrics.CacheSize.Set(0)
}

// StartSweep launches the periodic TTL sweep and returns a stop function.
// After stop returns no further sweep runs.
func (c *resultCache) StartSweep(interval time.Duration) func() {
	ticker := c.clock.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ticker.Chan():
				if evicted := c.EvictExpired(); evicted > 0 {
					slog.Debug("Evicted expired analysis results",
						"count", evicted,
						"remaining", c.Size(),
					)
				}
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()

	return func() {
		close(done)
	}
}
