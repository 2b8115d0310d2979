package cache

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/jonwraymond/lrucache/observe"
)

// Stats counts MemoryCache activity since creation.
type Stats struct {
	Hits        uint64
	Misses      uint64
	Evictions   uint64 // removed to make room
	Expirations uint64 // removed because their TTL elapsed
}

// MemoryCache is a concurrency-safe Cache backed by an LRU.
type MemoryCache struct {
	mu      sync.Mutex
	lru     *LRU[string, []byte]
	policy  Policy
	stats   Stats
	pending []EvictedEntry[string, []byte]

	meta    observe.CacheMeta
	logger  observe.Logger
	metrics observe.CacheMetrics
	clock   func() time.Time
}

// MemoryCacheOption configures a MemoryCache.
type MemoryCacheOption func(*MemoryCache)

// WithMeta names the cache in logs and metrics.
func WithMeta(meta observe.CacheMeta) MemoryCacheOption {
	return func(c *MemoryCache) {
		c.meta = meta
	}
}

// WithLogger sets the logger. Evictions log at debug, rejected writes at warn.
// A nil logger keeps the default.
func WithLogger(logger observe.Logger) MemoryCacheOption {
	return func(c *MemoryCache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics sets the metrics recorder. A nil recorder keeps the default.
func WithMetrics(metrics observe.CacheMetrics) MemoryCacheOption {
	return func(c *MemoryCache) {
		if metrics != nil {
			c.metrics = metrics
		}
	}
}

// WithClock overrides time.Now for expiration checks.
func WithClock(clock func() time.Time) MemoryCacheOption {
	return func(c *MemoryCache) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// NewMemoryCache creates a MemoryCache. It fails with ErrInvalidMaxSize when
// policy.MaxEntries is not positive.
func NewMemoryCache(policy Policy, opts ...MemoryCacheOption) (*MemoryCache, error) {
	c := &MemoryCache{
		policy:  policy,
		meta:    observe.CacheMeta{Name: "memory"},
		logger:  observe.NopLogger(),
		metrics: observe.NopCacheMetrics(),
		clock:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.WithCache(c.meta)

	lru, err := New(Config[string, []byte]{
		MaxSize: policy.MaxEntries,
		Clone:   policy.Clone,
		Cloner:  bytes.Clone,
		Clock:   c.clock,
		OnEntryEvicted: func(e EvictedEntry[string, []byte]) {
			c.pending = append(c.pending, e)
		},
	})
	if err != nil {
		return nil, err
	}
	c.lru = lru
	return c, nil
}

// Get retrieves a value and marks it most recently used. Returns
// (nil, false) on miss or expiry.
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	before := c.lru.Len()
	value, ok := c.lru.Get(key)
	c.count(ok)
	evicted := c.drainLocked(before)
	c.mu.Unlock()

	c.report(ctx, evicted)
	c.metrics.RecordGet(ctx, c.meta, ok)
	return value, ok
}

// Peek retrieves a value without changing its recency.
func (c *MemoryCache) Peek(ctx context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	before := c.lru.Len()
	value, ok := c.lru.Peek(key)
	c.count(ok)
	evicted := c.drainLocked(before)
	c.mu.Unlock()

	c.report(ctx, evicted)
	c.metrics.RecordGet(ctx, c.meta, ok)
	return value, ok
}

// Set stores value for ttl, or for the policy default when ttl is not
// positive. TTLs are clamped to the policy maximum. When the effective TTL
// is zero the value is not cached and any previous value is removed.
func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ValidateKey(key); err != nil {
		c.logger.Warn(ctx, "cache write rejected",
			field("reason", err.Error()),
			field("key_length", len(key)),
		)
		return err
	}

	ttl = c.policy.EffectiveTTL(ttl)
	if ttl <= 0 {
		return c.Delete(ctx, key)
	}

	c.mu.Lock()
	before := c.lru.Len()
	err := c.lru.Set(key, value, WithTTL(ttl))
	evicted := c.drainLocked(before)
	c.mu.Unlock()

	if err != nil {
		return err
	}
	c.report(ctx, evicted)
	c.metrics.RecordSet(ctx, c.meta)
	return nil
}

// Delete removes a value. Idempotent - no error on miss.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	removed := c.lru.Delete(key)
	c.mu.Unlock()

	if removed {
		c.metrics.RecordEntries(ctx, c.meta, -1)
	}
	return nil
}

// Purge removes every entry. Entries are reported as evictions, or as
// expirations if their TTL had already elapsed.
func (c *MemoryCache) Purge(ctx context.Context) {
	c.mu.Lock()
	before := c.lru.Len()
	c.lru.Clear()
	evicted := c.drainLocked(before)
	c.mu.Unlock()

	c.report(ctx, evicted)
}

// Len returns the number of entries, including expired entries not yet
// touched.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// Cap returns the maximum number of entries.
func (c *MemoryCache) Cap() int {
	return c.policy.MaxEntries
}

// Stats returns a snapshot of the activity counters.
func (c *MemoryCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

func (c *MemoryCache) count(hit bool) {
	if hit {
		c.stats.Hits++
	} else {
		c.stats.Misses++
	}
}

type drained struct {
	entries []EvictedEntry[string, []byte]
	delta   int64
}

// drainLocked collects the evictions of the current operation and the
// change in entry count. Callers must hold c.mu.
func (c *MemoryCache) drainLocked(before int) drained {
	d := drained{entries: c.pending, delta: int64(c.lru.Len() - before)}
	c.pending = nil
	for _, e := range d.entries {
		if e.IsExpired {
			c.stats.Expirations++
		} else {
			c.stats.Evictions++
		}
	}
	return d
}

// report emits telemetry for drained evictions outside the lock.
func (c *MemoryCache) report(ctx context.Context, d drained) {
	for _, e := range d.entries {
		c.metrics.RecordEviction(ctx, c.meta, e.IsExpired)
		msg := "cache entry evicted"
		if e.IsExpired {
			msg = "cache entry expired"
		}
		c.logger.Debug(ctx, msg,
			field("key", e.Key),
			field("bytes", len(e.Value)),
		)
	}
	if d.delta != 0 {
		c.metrics.RecordEntries(ctx, c.meta, d.delta)
	}
}

func field(key string, value any) observe.Field {
	return observe.Field{Key: key, Value: value}
}

// Ensure MemoryCache implements Cache
var _ Cache = (*MemoryCache)(nil)
