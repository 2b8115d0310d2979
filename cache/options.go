package cache

import "time"

// Config configures an LRU.
type Config[K comparable, V any] struct {
	// MaxSize is the maximum number of entries. Must be positive and at
	// most math.MaxInt32.
	MaxSize int

	// EntryExpiration is the default lifetime for entries that do not set
	// their own. The zero value never expires.
	EntryExpiration Expiration

	// Clone is the default cloning mode for entries.
	Clone bool

	// Cloner replaces the default deep copy for cloning entries.
	Cloner func(V) V

	// OnEntryEvicted is called after an entry leaves the cache through
	// capacity eviction, expiration or Clear. Explicit deletes are silent.
	OnEntryEvicted func(EvictedEntry[K, V])

	// OnEntryMarkedAsMostRecentlyUsed is called after Get promotes an entry.
	OnEntryMarkedAsMostRecentlyUsed func(Entry[K, V])

	// Clock overrides time.Now for expiration checks.
	Clock func() time.Time
}

type setOptions struct {
	expiration Expiration
	clone      bool
}

// SetOption overrides the cache defaults for a single Set.
type SetOption func(*setOptions)

// WithExpiration sets the entry's lifetime.
func WithExpiration(e Expiration) SetOption {
	return func(o *setOptions) {
		o.expiration = e
	}
}

// WithTTL is shorthand for WithExpiration(ExpireAfter(d)).
func WithTTL(d time.Duration) SetOption {
	return WithExpiration(ExpireAfter(d))
}

// WithTTLMillis is shorthand for WithExpiration(ExpireAfterMillis(ms)).
func WithTTLMillis(ms float64) SetOption {
	return WithExpiration(ExpireAfterMillis(ms))
}

// WithoutExpiration makes the entry never expire, overriding any default.
func WithoutExpiration() SetOption {
	return WithExpiration(NoExpiration)
}

// WithClone overrides the cloning mode for the entry.
func WithClone(clone bool) SetOption {
	return func(o *setOptions) {
		o.clone = clone
	}
}
