package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric instrument names.
const (
	MetricGetHits      = "cache.get.hits"
	MetricGetMisses    = "cache.get.misses"
	MetricSets         = "cache.sets"
	MetricEvictions    = "cache.evictions"
	MetricEntries      = "cache.entries"
	MetricLoadDuration = "cache.load.duration_ms"
	MetricLoadErrors   = "cache.load.errors"
)

// CacheMetrics records cache activity.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: must return quickly.
// - Errors: implementations must not panic.
type CacheMetrics interface {
	// RecordGet records a lookup and whether it hit.
	RecordGet(ctx context.Context, meta CacheMeta, hit bool)

	// RecordSet records a stored entry.
	RecordSet(ctx context.Context, meta CacheMeta)

	// RecordEviction records an entry leaving the cache without an explicit
	// delete. expired separates lifetime expiry from capacity pressure.
	RecordEviction(ctx context.Context, meta CacheMeta, expired bool)

	// RecordEntries adjusts the live entry count by delta.
	RecordEntries(ctx context.Context, meta CacheMeta, delta int64)

	// RecordLoad records a loader call behind the cache.
	RecordLoad(ctx context.Context, meta CacheMeta, duration time.Duration, err error)
}

type cacheMetrics struct {
	hits      metric.Int64Counter
	misses    metric.Int64Counter
	sets      metric.Int64Counter
	evictions metric.Int64Counter
	entries   metric.Int64UpDownCounter
	loadHist  metric.Float64Histogram
	loadErrs  metric.Int64Counter
}

// NewCacheMetrics creates CacheMetrics backed by meter.
func NewCacheMetrics(meter metric.Meter) (CacheMetrics, error) {
	m := &cacheMetrics{}
	var err error

	if m.hits, err = meter.Int64Counter(MetricGetHits,
		metric.WithDescription("Lookups that found a live entry"),
		metric.WithUnit("{lookup}"),
	); err != nil {
		return nil, err
	}

	if m.misses, err = meter.Int64Counter(MetricGetMisses,
		metric.WithDescription("Lookups that found no live entry"),
		metric.WithUnit("{lookup}"),
	); err != nil {
		return nil, err
	}

	if m.sets, err = meter.Int64Counter(MetricSets,
		metric.WithDescription("Entries stored"),
		metric.WithUnit("{entry}"),
	); err != nil {
		return nil, err
	}

	if m.evictions, err = meter.Int64Counter(MetricEvictions,
		metric.WithDescription("Entries evicted by capacity or expiration"),
		metric.WithUnit("{entry}"),
	); err != nil {
		return nil, err
	}

	if m.entries, err = meter.Int64UpDownCounter(MetricEntries,
		metric.WithDescription("Entries currently held"),
		metric.WithUnit("{entry}"),
	); err != nil {
		return nil, err
	}

	if m.loadHist, err = meter.Float64Histogram(MetricLoadDuration,
		metric.WithDescription("Loader duration in milliseconds"),
		metric.WithUnit("ms"),
	); err != nil {
		return nil, err
	}

	if m.loadErrs, err = meter.Int64Counter(MetricLoadErrors,
		metric.WithDescription("Loader calls that failed"),
		metric.WithUnit("{error}"),
	); err != nil {
		return nil, err
	}

	return m, nil
}

func cacheAttrs(meta CacheMeta, extra ...attribute.KeyValue) metric.MeasurementOption {
	attrs := make([]attribute.KeyValue, 0, 3+len(extra))
	attrs = append(attrs,
		attribute.String("cache.id", meta.CacheID()),
		attribute.String("cache.name", meta.Name),
	)
	if meta.Namespace != "" {
		attrs = append(attrs, attribute.String("cache.namespace", meta.Namespace))
	}
	attrs = append(attrs, extra...)
	return metric.WithAttributes(attrs...)
}

func (m *cacheMetrics) RecordGet(ctx context.Context, meta CacheMeta, hit bool) {
	if hit {
		m.hits.Add(ctx, 1, cacheAttrs(meta))
		return
	}
	m.misses.Add(ctx, 1, cacheAttrs(meta))
}

func (m *cacheMetrics) RecordSet(ctx context.Context, meta CacheMeta) {
	m.sets.Add(ctx, 1, cacheAttrs(meta))
}

func (m *cacheMetrics) RecordEviction(ctx context.Context, meta CacheMeta, expired bool) {
	m.evictions.Add(ctx, 1, cacheAttrs(meta, attribute.Bool("cache.expired", expired)))
}

func (m *cacheMetrics) RecordEntries(ctx context.Context, meta CacheMeta, delta int64) {
	m.entries.Add(ctx, delta, cacheAttrs(meta))
}

func (m *cacheMetrics) RecordLoad(ctx context.Context, meta CacheMeta, duration time.Duration, err error) {
	opt := cacheAttrs(meta)
	m.loadHist.Record(ctx, float64(duration.Milliseconds()), opt)
	if err != nil {
		m.loadErrs.Add(ctx, 1, opt)
	}
}

// nopMetrics discards all measurements.
type nopMetrics struct{}

// NopCacheMetrics returns CacheMetrics that records nothing.
func NopCacheMetrics() CacheMetrics {
	return nopMetrics{}
}

func (nopMetrics) RecordGet(context.Context, CacheMeta, bool)                  {}
func (nopMetrics) RecordSet(context.Context, CacheMeta)                        {}
func (nopMetrics) RecordEviction(context.Context, CacheMeta, bool)             {}
func (nopMetrics) RecordEntries(context.Context, CacheMeta, int64)             {}
func (nopMetrics) RecordLoad(context.Context, CacheMeta, time.Duration, error) {}
