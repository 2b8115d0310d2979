package cache

import "time"

// Policy configures a MemoryCache.
type Policy struct {
	// DefaultTTL is used when Set gets no TTL. If zero, nothing is cached.
	DefaultTTL time.Duration

	// MaxTTL caps every TTL. If zero, no maximum is enforced.
	MaxTTL time.Duration

	// MaxEntries bounds the number of entries. Must be positive.
	MaxEntries int

	// Clone copies values on the way in and out, so callers cannot mutate
	// cached bytes.
	Clone bool
}

// DefaultPolicy returns the default policy.
// DefaultTTL: 5 minutes, MaxTTL: 1 hour, MaxEntries: 1024, Clone: true
func DefaultPolicy() Policy {
	return Policy{
		DefaultTTL: 5 * time.Minute,
		MaxTTL:     time.Hour,
		MaxEntries: 1024,
		Clone:      true,
	}
}

// NoCachePolicy returns a policy that disables caching.
func NoCachePolicy() Policy {
	return Policy{MaxEntries: 1}
}

// ShouldCache reports whether the policy caches anything by default.
func (p Policy) ShouldCache() bool {
	return p.DefaultTTL > 0
}

// EffectiveTTL returns override, or DefaultTTL when override is not
// positive, clamped to MaxTTL.
func (p Policy) EffectiveTTL(override time.Duration) time.Duration {
	ttl := override
	if ttl <= 0 {
		ttl = p.DefaultTTL
	}
	if p.MaxTTL > 0 && ttl > p.MaxTTL {
		ttl = p.MaxTTL
	}
	return ttl
}
