// Package cache provides a bounded in-memory cache with least-recently-used
// eviction, lazy per-entry expiration and optional defensive cloning.
//
// LRU is the engine: a map from key to an arena slot plus a recency list
// linked by slot handles. It is not safe for concurrent use. MemoryCache
// puts a mutex, key validation, a TTL policy and telemetry around an
// LRU[string, []byte], and Memoizer deduplicates loads behind any Cache.
package cache
