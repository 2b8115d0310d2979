package cache

import "time"

// handle addresses a node slot in the engine's arena.
type handle int32

// nilHandle marks the absence of a link.
const nilHandle handle = -1

// Entry is a key and value pair as seen by callbacks and iterators.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

// EvictedEntry is passed to the eviction callback.
type EvictedEntry[K comparable, V any] struct {
	Key       K
	Value     V
	IsExpired bool
}

// NodeOptions configures a Node.
type NodeOptions[K comparable, V any] struct {
	// Expiration bounds the node's lifetime. The zero value never expires.
	Expiration Expiration

	// Clone stores a private copy of non-primitive values and hands out a
	// fresh copy on every read.
	Clone bool

	// Cloner replaces the default deep copy when Clone is set. It must
	// return a copy that shares no mutable state with its argument.
	Cloner func(V) V

	// OnEntryEvicted is called by InvokeOnEvicted.
	OnEntryEvicted func(EvictedEntry[K, V])

	// OnEntryMarkedAsMostRecentlyUsed is called by
	// InvokeOnEntryMarkedAsMostRecentlyUsed.
	OnEntryMarkedAsMostRecentlyUsed func(Entry[K, V])

	// Clock overrides time.Now.
	Clock func() time.Time
}

// Node is a single cache entry. It is a passive record: its links are owned
// and rewritten only by the LRU that holds it.
type Node[K comparable, V any] struct {
	key        K
	value      V
	cloner     func(V) V
	cloned     bool
	created    time.Time
	expiration Expiration
	clock      func() time.Time

	onEvicted func(EvictedEntry[K, V])
	onMarked  func(Entry[K, V])

	prev handle
	next handle
}

// NewNode builds a node, validating the expiration and taking the private
// clone up front. It returns an error wrapping ErrInvalidArgument when
// either fails.
func NewNode[K comparable, V any](key K, value V, opts NodeOptions[K, V]) (*Node[K, V], error) {
	if err := opts.Expiration.Validate(); err != nil {
		return nil, err
	}

	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}

	n := &Node[K, V]{
		key:        key,
		expiration: opts.Expiration,
		clock:      clock,
		onEvicted:  opts.OnEntryEvicted,
		onMarked:   opts.OnEntryMarkedAsMostRecentlyUsed,
		prev:       nilHandle,
		next:       nilHandle,
	}

	switch {
	case !opts.Clone || isPrimitive(any(value)):
		n.value = value
	case opts.Cloner != nil:
		n.cloned = true
		n.cloner = opts.Cloner
		n.value = opts.Cloner(value)
	default:
		cp, err := deepCopier(value)
		if err != nil {
			return nil, err
		}
		n.cloned = true
		n.cloner = cp
		n.value = cp(value)
	}

	n.created = clock()
	return n, nil
}

// Key returns the node's key.
func (n *Node[K, V]) Key() K {
	return n.key
}

// Value returns the stored value. Cloning nodes return a new copy on every
// call.
func (n *Node[K, V]) Value() V {
	if !n.cloned {
		return n.value
	}
	return n.cloner(n.value)
}

// Created returns the construction time.
func (n *Node[K, V]) Created() time.Time {
	return n.created
}

// Expiration returns the node's lifetime and whether it has one.
func (n *Node[K, V]) Expiration() (time.Duration, bool) {
	return n.expiration.Duration()
}

// IsExpired reports whether the node's lifetime has elapsed. A node without
// an expiration never expires.
func (n *Node[K, V]) IsExpired() bool {
	d, ok := n.expiration.Duration()
	if !ok {
		return false
	}
	return n.clock().Sub(n.created) >= d
}

// InvokeOnEvicted calls the eviction callback, if any.
func (n *Node[K, V]) InvokeOnEvicted(expired bool) {
	if n.onEvicted == nil {
		return
	}
	n.onEvicted(EvictedEntry[K, V]{Key: n.key, Value: n.Value(), IsExpired: expired})
}

// InvokeOnEntryMarkedAsMostRecentlyUsed calls the promotion callback, if any.
func (n *Node[K, V]) InvokeOnEntryMarkedAsMostRecentlyUsed() {
	if n.onMarked == nil {
		return
	}
	n.onMarked(Entry[K, V]{Key: n.key, Value: n.Value()})
}

func (n *Node[K, V]) entry() Entry[K, V] {
	return Entry[K, V]{Key: n.key, Value: n.Value()}
}
