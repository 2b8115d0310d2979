package cache

import (
	"math"
	"time"
)

// LRU is a bounded cache that evicts the least recently used entry when
// full. Entries may carry an expiration, which is checked lazily by the
// operations that touch them; nothing runs in the background.
//
// Contract:
// - Concurrency: not safe for concurrent use. Callers serialize access
// (MemoryCache does this with a mutex).
// - Errors: only construction-time validation fails; a miss is (zero, false).
// - Callbacks: run after the operation's bookkeeping is complete, so a
// panicking callback cannot leave the index and recency list out of step.
type LRU[K comparable, V any] struct {
	cfg   Config[K, V]
	index map[K]handle
	list  *recencyList[K, V]
}

// New creates an LRU. It returns ErrInvalidMaxSize or ErrInvalidExpiration
// for an invalid configuration.
func New[K comparable, V any](cfg Config[K, V]) (*LRU[K, V], error) {
	if cfg.MaxSize <= 0 || cfg.MaxSize > math.MaxInt32 {
		return nil, ErrInvalidMaxSize
	}
	if err := cfg.EntryExpiration.Validate(); err != nil {
		return nil, err
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}

	prealloc := min(cfg.MaxSize, 1024)
	return &LRU[K, V]{
		cfg:   cfg,
		index: make(map[K]handle, prealloc),
		list:  newRecencyList[K, V](prealloc),
	}, nil
}

// Set stores value under key as the most recently used entry. Setting an
// existing key replaces its value and expiration. When a new key arrives at
// capacity the least recently used entry is evicted first.
//
// Set fails with an error wrapping ErrInvalidArgument if the expiration is
// invalid or the value cannot be cloned; the cache is left unchanged.
func (c *LRU[K, V]) Set(key K, value V, opts ...SetOption) error {
	n, err := c.newNode(key, value, opts)
	if err != nil {
		return err
	}
	c.insert(n)
	return nil
}

// Get returns the value for key and marks it most recently used. An expired
// entry is evicted and reported as a miss.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	h, ok := c.lookup(key)
	if !ok {
		var zero V
		return zero, false
	}
	c.list.moveToFront(h)
	n := c.list.at(h)
	v := n.Value()
	n.InvokeOnEntryMarkedAsMostRecentlyUsed()
	return v, true
}

// Peek returns the value for key without changing its recency. Expired
// entries are still evicted.
func (c *LRU[K, V]) Peek(key K) (V, bool) {
	h, ok := c.lookup(key)
	if !ok {
		var zero V
		return zero, false
	}
	return c.list.at(h).Value(), true
}

// Has reports whether key holds a live entry. Like Peek it evicts an expired
// entry and leaves recency alone.
func (c *LRU[K, V]) Has(key K) bool {
	_, ok := c.lookup(key)
	return ok
}

// Delete removes key without calling the eviction callback. It reports
// whether the key was present.
func (c *LRU[K, V]) Delete(key K) bool {
	h, ok := c.index[key]
	if !ok {
		return false
	}
	c.detach(key, h)
	return true
}

// Clear removes every entry, then calls the eviction callback for each one
// from most to least recently used.
func (c *LRU[K, V]) Clear() {
	nodes := c.list.reset()
	clear(c.index)
	for _, n := range nodes {
		n.InvokeOnEvicted(n.IsExpired())
	}
}

// Len returns the number of entries, including expired entries that no
// operation has touched yet.
func (c *LRU[K, V]) Len() int {
	return c.list.len
}

// Cap returns the configured maximum size.
func (c *LRU[K, V]) Cap() int {
	return c.cfg.MaxSize
}

// RemainingSize returns how many entries fit before eviction starts.
func (c *LRU[K, V]) RemainingSize() int {
	return c.cfg.MaxSize - c.list.len
}

// Newest returns the most recently used entry without touching it.
func (c *LRU[K, V]) Newest() (Entry[K, V], bool) {
	if c.list.head == nilHandle {
		return Entry[K, V]{}, false
	}
	return c.list.at(c.list.head).entry(), true
}

// Oldest returns the least recently used entry, the next eviction victim.
func (c *LRU[K, V]) Oldest() (Entry[K, V], bool) {
	if c.list.tail == nilHandle {
		return Entry[K, V]{}, false
	}
	return c.list.at(c.list.tail).entry(), true
}

// Keys returns the keys from most to least recently used.
func (c *LRU[K, V]) Keys() []K {
	keys := make([]K, 0, c.list.len)
	for h := c.list.head; h != nilHandle; h = c.list.at(h).next {
		keys = append(keys, c.list.at(h).key)
	}
	return keys
}

// Values returns the values from most to least recently used.
func (c *LRU[K, V]) Values() []V {
	values := make([]V, 0, c.list.len)
	for h := c.list.head; h != nilHandle; h = c.list.at(h).next {
		values = append(values, c.list.at(h).Value())
	}
	return values
}

// Entries returns the entries from most to least recently used.
func (c *LRU[K, V]) Entries() []Entry[K, V] {
	entries := make([]Entry[K, V], 0, c.list.len)
	for h := c.list.head; h != nilHandle; h = c.list.at(h).next {
		entries = append(entries, c.list.at(h).entry())
	}
	return entries
}

// ForEach calls fn for every entry from most to least recently used. It
// iterates over a snapshot, so fn may modify the cache.
func (c *LRU[K, V]) ForEach(fn func(Entry[K, V])) {
	for _, e := range c.Entries() {
		fn(e)
	}
}

// GetMany calls Get for each key and returns the hits.
func (c *LRU[K, V]) GetMany(keys []K) map[K]V {
	out := make(map[K]V, len(keys))
	for _, k := range keys {
		if v, ok := c.Get(k); ok {
			out[k] = v
		}
	}
	return out
}

// SetMany stores entries in order with the same options. Every entry is
// validated before any is stored, so a failure leaves the cache unchanged.
func (c *LRU[K, V]) SetMany(entries []Entry[K, V], opts ...SetOption) error {
	nodes := make([]*Node[K, V], 0, len(entries))
	for _, e := range entries {
		n, err := c.newNode(e.Key, e.Value, opts)
		if err != nil {
			return err
		}
		nodes = append(nodes, n)
	}
	for _, n := range nodes {
		c.insert(n)
	}
	return nil
}

// DeleteMany deletes each key and returns how many were present.
func (c *LRU[K, V]) DeleteMany(keys []K) int {
	removed := 0
	for _, k := range keys {
		if c.Delete(k) {
			removed++
		}
	}
	return removed
}

func (c *LRU[K, V]) newNode(key K, value V, opts []SetOption) (*Node[K, V], error) {
	o := setOptions{expiration: c.cfg.EntryExpiration, clone: c.cfg.Clone}
	for _, opt := range opts {
		opt(&o)
	}
	return NewNode(key, value, NodeOptions[K, V]{
		Expiration:                      o.expiration,
		Clone:                           o.clone,
		Cloner:                          c.cfg.Cloner,
		OnEntryEvicted:                  c.cfg.OnEntryEvicted,
		OnEntryMarkedAsMostRecentlyUsed: c.cfg.OnEntryMarkedAsMostRecentlyUsed,
		Clock:                           c.cfg.Clock,
	})
}

// insert links n at the head, replacing an existing entry for the same key
// or evicting the tail when full.
func (c *LRU[K, V]) insert(n *Node[K, V]) {
	if h, ok := c.index[n.key]; ok {
		c.list.replace(h, n)
		c.list.moveToFront(h)
		return
	}

	var victim *Node[K, V]
	if c.list.len >= c.cfg.MaxSize {
		tail := c.list.tail
		victim = c.detach(c.list.at(tail).key, tail)
	}
	c.index[n.key] = c.list.pushFront(n)

	if victim != nil {
		victim.InvokeOnEvicted(false)
	}
}

// lookup returns the handle of key's live entry. An expired entry is
// detached and reported to the eviction callback.
func (c *LRU[K, V]) lookup(key K) (handle, bool) {
	h, ok := c.index[key]
	if !ok {
		return nilHandle, false
	}
	if n := c.list.at(h); n.IsExpired() {
		c.detach(key, h)
		n.InvokeOnEvicted(true)
		return nilHandle, false
	}
	return h, true
}

// detach removes slot h from both the index and the list.
func (c *LRU[K, V]) detach(key K, h handle) *Node[K, V] {
	delete(c.index, key)
	return c.list.remove(h)
}
