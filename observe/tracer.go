package observe

import (
	"context"
	"strconv"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// CallMeta describes one REST call for telemetry purposes.
type CallMeta struct {
	Operation string // Client operation, e.g. "start_archive" (required)
	Resource  string // Resource kind, e.g. "archive" (optional)
	Method    string // HTTP method
	Path      string // Request target relative to the API root
	ProjectID int    // Api key of the calling project (optional)
}

// Validate reports whether the metadata is usable.
func (m CallMeta) Validate() error {
	if m.Operation == "" {
		return ErrMissingOperation
	}
	return nil
}

// SpanName returns the deterministic span name for this call.
// Format: opentok.<resource>.<operation> or opentok.<operation>
func (m CallMeta) SpanName() string {
	if m.Resource != "" {
		return "opentok." + m.Resource + "." + m.Operation
	}
	return "opentok." + m.Operation
}

// CallID returns resource.operation, or the operation alone.
func (m CallMeta) CallID() string {
	if m.Resource != "" {
		return m.Resource + "." + m.Operation
	}
	return m.Operation
}

func (m CallMeta) attributes() []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("opentok.call", m.CallID()),
		attribute.String("opentok.operation", m.Operation),
	}
	if m.Resource != "" {
		attrs = append(attrs, attribute.String("opentok.resource", m.Resource))
	}
	if m.Method != "" {
		attrs = append(attrs, attribute.String("http.request.method", m.Method))
	}
	if m.ProjectID != 0 {
		attrs = append(attrs, attribute.String("opentok.project_id", strconv.Itoa(m.ProjectID)))
	}
	return attrs
}

// Tracer wraps OpenTelemetry tracing with per-call span management.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: EndSpan must be best-effort and must not panic.
type Tracer interface {
	// StartSpan starts a client span for one call.
	StartSpan(ctx context.Context, meta CallMeta) (context.Context, trace.Span)

	// EndSpan ends the span, recording the status code and any error.
	EndSpan(span trace.Span, status int, err error)
}

// tracerImpl is the concrete implementation of Tracer.
type tracerImpl struct {
	tracer trace.Tracer
}

// NewTracer creates a Tracer wrapping the given OpenTelemetry tracer.
func NewTracer(t trace.Tracer) Tracer {
	return &tracerImpl{tracer: t}
}

// StartSpan starts a new span with call metadata as attributes.
func (t *tracerImpl) StartSpan(ctx context.Context, meta CallMeta) (context.Context, trace.Span) {
	attrs := meta.attributes()
	if meta.Path != "" {
		attrs = append(attrs, attribute.String("url.path", meta.Path))
	}
	attrs = append(attrs, attribute.Bool("opentok.error", false))

	return t.tracer.Start(ctx, meta.SpanName(),
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

// EndSpan ends the span and records the error status if present.
func (t *tracerImpl) EndSpan(span trace.Span, status int, err error) {
	if status != 0 {
		span.SetAttributes(attribute.Int("http.response.status_code", status))
	}
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.Bool("opentok.error", true))
		span.RecordError(err)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// noopTracer is a tracer that does nothing.
type noopTracer struct {
	noop trace.Tracer
}

// NewNoopTracer creates a no-op tracer.
func NewNoopTracer() Tracer {
	return &noopTracer{
		noop: tracenoop.NewTracerProvider().Tracer("noop"),
	}
}

func (t *noopTracer) StartSpan(ctx context.Context, meta CallMeta) (context.Context, trace.Span) {
	return t.noop.Start(ctx, meta.SpanName())
}

func (t *noopTracer) EndSpan(span trace.Span, status int, err error) {
	span.End()
}
