package observe

import (
	"context"
	"time"
)

// CallFunc performs one API call and returns the HTTP status code, or 0
// when no response was received.
type CallFunc func(ctx context.Context, call CallMeta) (int, error)

// Middleware wraps API calls with tracing, metrics and logging.
//
// Contract:
//   - Concurrency: Wrap() returns a thread-safe CallFunc.
//   - Context: Propagates context through tracing spans.
//   - Errors: Errors from the wrapped function are recorded and propagated unchanged.
type Middleware struct {
	tracer  Tracer
	metrics Metrics
	logger  Logger
	now     func() time.Time
}

// NewMiddleware creates a new Middleware with the given observability components.
func NewMiddleware(tracer Tracer, metrics Metrics, logger Logger) *Middleware {
	return &Middleware{
		tracer:  tracer,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}
}

// WithLogger returns a copy of m that reports calls to l.
func (m *Middleware) WithLogger(l Logger) *Middleware {
	cp := *m
	cp.logger = l
	return &cp
}

// Wrap wraps a CallFunc with tracing, metrics, and logging.
func (m *Middleware) Wrap(fn CallFunc) CallFunc {
	return func(ctx context.Context, call CallMeta) (int, error) {
		ctx, span := m.tracer.StartSpan(ctx, call)
		start := m.now()

		status, err := fn(ctx, call)

		duration := m.now().Sub(start)
		m.tracer.EndSpan(span, status, err)
		m.metrics.RecordCall(ctx, call, duration, status, err)

		fields := []Field{
			{Key: "method", Value: call.Method},
			{Key: "path", Value: call.Path},
			{Key: "status", Value: status},
			{Key: "duration_ms", Value: float64(duration.Milliseconds())},
		}
		callLogger := m.logger.WithCall(call)
		if err != nil {
			fields = append(fields, Field{Key: "error", Value: err.Error()})
			callLogger.Error(ctx, "api call failed", fields...)
		} else {
			callLogger.Info(ctx, "api call completed", fields...)
		}

		return status, err
	}
}

// MiddlewareFromObserver creates a Middleware from an Observer.
func MiddlewareFromObserver(obs Observer) (*Middleware, error) {
	if obs == nil {
		return nil, ErrNilObserver
	}

	metrics, err := NewMetrics(obs.Meter())
	if err != nil {
		return nil, err
	}

	return NewMiddleware(NewTracer(obs.Tracer()), metrics, obs.Logger()), nil
}
