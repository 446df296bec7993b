package observe

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func TestCallMeta_Names(t *testing.T) {
	tests := []struct {
		meta     CallMeta
		wantSpan string
		wantID   string
	}{
		{meta: CallMeta{Operation: "start_archive", Resource: "archive"}, wantSpan: "opentok.archive.start_archive", wantID: "archive.start_archive"},
		{meta: CallMeta{Operation: "create_session"}, wantSpan: "opentok.create_session", wantID: "create_session"},
	}

	for _, tt := range tests {
		if got := tt.meta.SpanName(); got != tt.wantSpan {
			t.Errorf("SpanName() = %q, want %q", got, tt.wantSpan)
		}
		if got := tt.meta.CallID(); got != tt.wantID {
			t.Errorf("CallID() = %q, want %q", got, tt.wantID)
		}
	}

	if err := (CallMeta{}).Validate(); !errors.Is(err, ErrMissingOperation) {
		t.Errorf("Validate() error = %v, want ErrMissingOperation", err)
	}
}

func attrMap(attrs []attribute.KeyValue) map[string]attribute.Value {
	m := make(map[string]attribute.Value, len(attrs))
	for _, kv := range attrs {
		m[string(kv.Key)] = kv.Value
	}
	return m
}

func TestTracer_SpanAttributes(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	tracer := NewTracer(tp.Tracer("test"))

	_, span := tracer.StartSpan(context.Background(), CallMeta{
		Operation: "get_archive",
		Resource:  "archive",
		Method:    "GET",
		Path:      "v2/project/123456/archive/abc",
		ProjectID: 123456,
	})
	tracer.EndSpan(span, 200, nil)

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	s := spans[0]
	if s.Name() != "opentok.archive.get_archive" {
		t.Errorf("span name = %q", s.Name())
	}
	if s.SpanKind() != trace.SpanKindClient {
		t.Errorf("span kind = %v, want client", s.SpanKind())
	}
	if s.Status().Code != codes.Ok {
		t.Errorf("status = %v, want Ok", s.Status().Code)
	}

	attrs := attrMap(s.Attributes())
	want := map[string]string{
		"opentok.call":        "archive.get_archive",
		"opentok.operation":   "get_archive",
		"opentok.resource":    "archive",
		"http.request.method": "GET",
		"url.path":            "v2/project/123456/archive/abc",
		"opentok.project_id":  "123456",
	}
	for k, v := range want {
		if got := attrs[k].AsString(); got != v {
			t.Errorf("attribute %s = %q, want %q", k, got, v)
		}
	}
	if got := attrs["http.response.status_code"].AsInt64(); got != 200 {
		t.Errorf("status_code = %d, want 200", got)
	}
	if attrs["opentok.error"].AsBool() {
		t.Error("opentok.error = true on success")
	}
}

func TestTracer_ErrorRecording(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	tracer := NewTracer(tp.Tracer("test"))

	_, span := tracer.StartSpan(context.Background(), CallMeta{Operation: "stop_archive"})
	tracer.EndSpan(span, 409, errors.New("conflict"))

	s := recorder.Ended()[0]
	if s.Status().Code != codes.Error || s.Status().Description != "conflict" {
		t.Errorf("status = %+v", s.Status())
	}
	if !attrMap(s.Attributes())["opentok.error"].AsBool() {
		t.Error("opentok.error = false on failure")
	}
	if len(s.Events()) == 0 {
		t.Error("error event not recorded")
	}
}

func TestTracer_ContextPropagation(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	tracer := NewTracer(tp.Tracer("test"))

	parentCtx, parent := tp.Tracer("test").Start(context.Background(), "parent")
	ctx, child := tracer.StartSpan(parentCtx, CallMeta{Operation: "list_streams"})

	if trace.SpanFromContext(ctx).SpanContext().SpanID() != child.SpanContext().SpanID() {
		t.Error("returned context does not carry the call span")
	}
	tracer.EndSpan(child, 200, nil)
	parent.End()

	for _, s := range recorder.Ended() {
		if s.Name() == "opentok.list_streams" && s.Parent().SpanID() != parent.SpanContext().SpanID() {
			t.Error("call span is not a child of the parent span")
		}
	}
}
