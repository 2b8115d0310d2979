package observe

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newRecordingTracer() (Tracer, *tracetest.SpanRecorder) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	return NewTracer(tp.Tracer("test")), recorder
}

func spanAttr(attrs []attribute.KeyValue, key string) (attribute.Value, bool) {
	for _, kv := range attrs {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

// TestTracer_SpanAttributes verifies all attributes are present on span.
func TestTracer_SpanAttributes(t *testing.T) {
	tr, recorder := newRecordingTracer()
	meta := CacheMeta{Namespace: "api", Name: "users"}

	_, span := tr.StartSpan(context.Background(), meta, "load")
	tr.EndSpan(span, nil)

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	s := spans[0]

	if s.Name() != "cache.load.api.users" {
		t.Errorf("expected %q, got %q", "cache.load.api.users", s.Name())
	}
	for key, want := range map[string]string{
		"cache.id":        "api.users",
		"cache.name":      "users",
		"cache.namespace": "api",
		"cache.operation": "load",
	} {
		if v, ok := spanAttr(s.Attributes(), key); !ok || v.AsString() != want {
			t.Errorf("expected %s=%q, got %v", key, want, v.AsString())
		}
	}
	if v, _ := spanAttr(s.Attributes(), "cache.error"); v.AsBool() {
		t.Error("expected cache.error=false")
	}
	if s.Status().Code != codes.Ok {
		t.Errorf("expected status Ok, got %v", s.Status().Code)
	}
}

// TestTracer_EndSpanWithError verifies error status and attribute.
func TestTracer_EndSpanWithError(t *testing.T) {
	tr, recorder := newRecordingTracer()

	_, span := tr.StartSpan(context.Background(), CacheMeta{Name: "c"}, "load")
	tr.EndSpan(span, errors.New("backend down"))

	s := recorder.Ended()[0]
	if s.Status().Code != codes.Error {
		t.Errorf("expected status Error, got %v", s.Status().Code)
	}
	if s.Status().Description != "backend down" {
		t.Errorf("expected description %q, got %q", "backend down", s.Status().Description)
	}
	if v, _ := spanAttr(s.Attributes(), "cache.error"); !v.AsBool() {
		t.Error("expected cache.error=true")
	}
	if len(s.Events()) == 0 {
		t.Error("expected the error to be recorded as an event")
	}
}

// TestTracer_NoNamespaceAttribute verifies cache.namespace is omitted when empty.
func TestTracer_NoNamespaceAttribute(t *testing.T) {
	tr, recorder := newRecordingTracer()

	_, span := tr.StartSpan(context.Background(), CacheMeta{Name: "c"}, "get")
	tr.EndSpan(span, nil)

	if _, ok := spanAttr(recorder.Ended()[0].Attributes(), "cache.namespace"); ok {
		t.Error("expected no cache.namespace attribute")
	}
}

// TestNopTracer verifies the no-op tracer produces non-recording spans.
func TestNopTracer(t *testing.T) {
	tr := NopTracer()
	_, span := tr.StartSpan(context.Background(), CacheMeta{Name: "c"}, "get")
	if span.IsRecording() {
		t.Error("expected a non-recording span")
	}
	tr.EndSpan(span, errors.New("ignored"))
}
