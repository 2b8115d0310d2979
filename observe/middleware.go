package observe

import (
	"context"
	"time"
)

// LoadFunc produces the bytes for a cache miss.
type LoadFunc func(ctx context.Context) ([]byte, error)

// Middleware wraps cache loaders with tracing, metrics and logging.
//
// Contract:
//   - Concurrency: wrapped loaders are safe for concurrent use.
//   - Context: the span context is passed to the wrapped loader.
//   - Errors: loader errors are recorded and returned unchanged.
type Middleware struct {
	tracer  Tracer
	metrics CacheMetrics
	logger  Logger
}

// NewMiddleware creates a Middleware. Nil components are replaced by no-ops.
func NewMiddleware(tracer Tracer, metrics CacheMetrics, logger Logger) *Middleware {
	if tracer == nil {
		tracer = NopTracer()
	}
	if metrics == nil {
		metrics = NopCacheMetrics()
	}
	if logger == nil {
		logger = NopLogger()
	}
	return &Middleware{tracer: tracer, metrics: metrics, logger: logger}
}

// Metrics returns the middleware's CacheMetrics so a cache can share them.
func (m *Middleware) Metrics() CacheMetrics {
	return m.metrics
}

// Logger returns the middleware's Logger.
func (m *Middleware) Logger() Logger {
	return m.logger
}

// WrapLoader instruments fn as a load for the cache described by meta.
func (m *Middleware) WrapLoader(meta CacheMeta, fn LoadFunc) LoadFunc {
	return func(ctx context.Context) ([]byte, error) {
		ctx, span := m.tracer.StartSpan(ctx, meta, "load")
		start := time.Now()

		value, err := fn(ctx)

		duration := time.Since(start)
		m.tracer.EndSpan(span, err)
		m.metrics.RecordLoad(ctx, meta, duration, err)

		logger := m.logger.WithCache(meta)
		fields := []Field{
			{Key: "duration_ms", Value: float64(duration.Milliseconds())},
			{Key: "bytes", Value: len(value)},
		}
		if err != nil {
			fields = append(fields, Field{Key: "error", Value: err.Error()})
			logger.Error(ctx, "cache load failed", fields...)
		} else {
			logger.Debug(ctx, "cache load completed", fields...)
		}

		return value, err
	}
}

// MiddlewareFromObserver builds a Middleware from an Observer's providers.
func MiddlewareFromObserver(obs Observer) (*Middleware, error) {
	metrics, err := NewCacheMetrics(obs.Meter())
	if err != nil {
		return nil, err
	}
	return NewMiddleware(NewTracer(obs.Tracer()), metrics, obs.Logger()), nil
}
