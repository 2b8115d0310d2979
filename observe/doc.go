// Package observe provides observability primitives for caches.
//
// It wires OpenTelemetry tracing and metrics plus a JSON structured logger.
// Caches report hits, misses, sets, evictions and entry counts through
// CacheMetrics; loaders behind a cache are wrapped by Middleware to get a
// span, a duration histogram and a log line per load.
package observe
