package observe

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newTestMetrics(t *testing.T) (CacheMetrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	m, err := NewCacheMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("failed to create metrics: %v", err)
	}
	return m, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}
	return rm
}

// TestMetrics_GetHitsAndMisses verifies lookups land in separate counters.
func TestMetrics_GetHitsAndMisses(t *testing.T) {
	m, reader := newTestMetrics(t)
	meta := CacheMeta{Namespace: "api", Name: "users"}
	ctx := context.Background()

	m.RecordGet(ctx, meta, true)
	m.RecordGet(ctx, meta, true)
	m.RecordGet(ctx, meta, false)

	rm := collect(t, reader)
	if got := sumOf(t, rm, MetricGetHits); got != 2 {
		t.Errorf("expected 2 hits, got %d", got)
	}
	if got := sumOf(t, rm, MetricGetMisses); got != 1 {
		t.Errorf("expected 1 miss, got %d", got)
	}
}

// TestMetrics_Attributes verifies cache identity attributes on data points.
func TestMetrics_Attributes(t *testing.T) {
	m, reader := newTestMetrics(t)
	m.RecordSet(context.Background(), CacheMeta{Namespace: "api", Name: "users"})

	sum := findMetric(collect(t, reader), MetricSets).Data.(metricdata.Sum[int64])
	if len(sum.DataPoints) != 1 {
		t.Fatalf("expected 1 data point, got %d", len(sum.DataPoints))
	}
	attrs := sum.DataPoints[0].Attributes
	for key, want := range map[string]string{
		"cache.id":        "api.users",
		"cache.name":      "users",
		"cache.namespace": "api",
	} {
		if v, ok := attrs.Value(attribute.Key(key)); !ok || v.AsString() != want {
			t.Errorf("expected %s=%q, got %v", key, want, v.AsString())
		}
	}
}

// TestMetrics_EvictionsSplitByExpiry verifies the cache.expired attribute.
func TestMetrics_EvictionsSplitByExpiry(t *testing.T) {
	m, reader := newTestMetrics(t)
	meta := CacheMeta{Name: "c"}
	ctx := context.Background()

	m.RecordEviction(ctx, meta, true)
	m.RecordEviction(ctx, meta, false)
	m.RecordEviction(ctx, meta, false)

	sum := findMetric(collect(t, reader), MetricEvictions).Data.(metricdata.Sum[int64])
	byExpired := map[bool]int64{}
	for _, dp := range sum.DataPoints {
		v, _ := dp.Attributes.Value("cache.expired")
		byExpired[v.AsBool()] += dp.Value
	}
	if byExpired[true] != 1 || byExpired[false] != 2 {
		t.Errorf("expected 1 expired and 2 capacity evictions, got %v", byExpired)
	}
}

// TestMetrics_EntriesGoesUpAndDown verifies the entry gauge tracks deltas.
func TestMetrics_EntriesGoesUpAndDown(t *testing.T) {
	m, reader := newTestMetrics(t)
	meta := CacheMeta{Name: "c"}
	ctx := context.Background()

	m.RecordEntries(ctx, meta, 5)
	m.RecordEntries(ctx, meta, -2)

	rm := collect(t, reader)
	if got := sumOf(t, rm, MetricEntries); got != 3 {
		t.Errorf("expected 3 entries, got %d", got)
	}
	sum := findMetric(rm, MetricEntries).Data.(metricdata.Sum[int64])
	if sum.IsMonotonic {
		t.Error("expected a non-monotonic sum for entries")
	}
}

// TestMetrics_Load verifies duration is recorded and errors are counted.
func TestMetrics_Load(t *testing.T) {
	m, reader := newTestMetrics(t)
	meta := CacheMeta{Name: "c"}
	ctx := context.Background()

	m.RecordLoad(ctx, meta, 20*time.Millisecond, nil)
	m.RecordLoad(ctx, meta, 40*time.Millisecond, errors.New("boom"))

	rm := collect(t, reader)

	found := findMetric(rm, MetricLoadDuration)
	if found == nil {
		t.Fatalf("%s metric not found", MetricLoadDuration)
	}
	hist, ok := found.Data.(metricdata.Histogram[float64])
	if !ok {
		t.Fatalf("expected Histogram[float64], got %T", found.Data)
	}
	if len(hist.DataPoints) != 1 || hist.DataPoints[0].Count != 2 {
		t.Errorf("expected 2 recorded loads, got %+v", hist.DataPoints)
	}
	if hist.DataPoints[0].Sum != 60 {
		t.Errorf("expected 60ms total, got %v", hist.DataPoints[0].Sum)
	}

	if got := sumOf(t, rm, MetricLoadErrors); got != 1 {
		t.Errorf("expected 1 load error, got %d", got)
	}
}

// TestNopCacheMetrics verifies the no-op recorder accepts every call.
func TestNopCacheMetrics(t *testing.T) {
	m := NopCacheMetrics()
	ctx := context.Background()
	meta := CacheMeta{Name: "c"}

	m.RecordGet(ctx, meta, true)
	m.RecordSet(ctx, meta)
	m.RecordEviction(ctx, meta, true)
	m.RecordEntries(ctx, meta, 1)
	m.RecordLoad(ctx, meta, time.Second, errors.New("ignored"))
}

func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

func sumOf(t *testing.T, rm metricdata.ResourceMetrics, name string) int64 {
	t.Helper()
	found := findMetric(rm, name)
	if found == nil {
		t.Fatalf("%s metric not found", name)
	}
	sum, ok := found.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("expected Sum[int64], got %T", found.Data)
	}
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}
