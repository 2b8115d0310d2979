package cache

import (
	"bytes"
	"context"

	"golang.org/x/sync/singleflight"

	"github.com/jonwraymond/lrucache/observe"
)

// LoadFunc produces the value for a cache miss.
type LoadFunc = observe.LoadFunc

// Memoizer caches loader results in a Cache. Concurrent misses for the same
// key share a single loader call. Loader errors are returned and not cached.
type Memoizer struct {
	cache  Cache
	keyer  Keyer
	policy Policy
	group  singleflight.Group

	meta       observe.CacheMeta
	middleware *observe.Middleware
}

// MemoizerOption configures a Memoizer.
type MemoizerOption func(*Memoizer)

// WithMiddleware instruments every loader call.
func WithMiddleware(mw *observe.Middleware, meta observe.CacheMeta) MemoizerOption {
	return func(m *Memoizer) {
		m.middleware = mw
		m.meta = meta
	}
}

// NewMemoizer creates a Memoizer. A nil keyer selects DefaultKeyer.
func NewMemoizer(cache Cache, keyer Keyer, policy Policy, opts ...MemoizerOption) (*Memoizer, error) {
	if cache == nil {
		return nil, ErrNilCache
	}
	if keyer == nil {
		keyer = NewDefaultKeyer()
	}
	m := &Memoizer{cache: cache, keyer: keyer, policy: policy}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Load returns the cached value for input in namespace, calling load on a
// miss. When the policy disables caching or no key can be derived, load is
// called directly.
func (m *Memoizer) Load(ctx context.Context, namespace string, input any, load LoadFunc) ([]byte, error) {
	if m.middleware != nil {
		load = m.middleware.WrapLoader(m.meta, load)
	}

	if !m.policy.ShouldCache() {
		return load(ctx)
	}

	key, err := m.keyer.Key(namespace, input)
	if err != nil {
		return load(ctx)
	}

	if cached, ok := m.cache.Get(ctx, key); ok {
		return cached, nil
	}

	v, err, shared := m.group.Do(key, func() (any, error) {
		value, err := load(ctx)
		if err != nil {
			return nil, err
		}
		// A failed write only costs a future miss.
		_ = m.cache.Set(ctx, key, value, m.policy.EffectiveTTL(0))
		return value, nil
	})
	if err != nil {
		return nil, err
	}

	value := v.([]byte)
	if shared {
		return bytes.Clone(value), nil
	}
	return value, nil
}
