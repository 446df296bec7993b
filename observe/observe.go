package observe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/jonwraymond/opentok/observe/exporters"
)

// ExporterNone disables a signal. The empty string means the same.
const ExporterNone = "none"

// DefaultServiceName is reported when Config.ServiceName is empty.
const DefaultServiceName = "opentok"

// Config selects what an Observer exports.
//
// Tracing exporters are none, stdout and otlp. Metrics exporters add
// prometheus. otlp reads its endpoint from the standard OTEL_EXPORTER_OTLP_*
// variables.
type Config struct {
	// ServiceName is the service.name resource attribute. Default: opentok
	ServiceName string

	// Version is the service.version resource attribute.
	Version string

	// TracingExporter names the span exporter. Default: none
	TracingExporter string

	// SampleRatio is the share of root calls traced, in [0, 1]. Zero traces
	// every call.
	SampleRatio float64

	// MetricsExporter names the metrics reader. Default: none
	MetricsExporter string

	// LogLevel is debug, info, warn, error or off. Default: info
	LogLevel string

	// LogOutput receives JSON log lines. Default: os.Stderr
	LogOutput io.Writer

	// Global installs the providers as the otel globals.
	Global bool
}

func (c Config) withDefaults() Config {
	// Apply defaults
	if c.ServiceName == "" {
		c.ServiceName = DefaultServiceName
	}
	c.TracingExporter = normalizeExporter(c.TracingExporter)
	c.MetricsExporter = normalizeExporter(c.MetricsExporter)
	if c.SampleRatio == 0 {
		c.SampleRatio = 1
	}
	if c.LogOutput == nil {
		c.LogOutput = os.Stderr
	}
	return c
}

func normalizeExporter(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ExporterNone
	}
	return name
}

// Validate reports the first unusable setting.
func (c Config) Validate() error {
	c = c.withDefaults()
	switch c.TracingExporter {
	case ExporterNone, "stdout", "otlp":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidTracingExporter, c.TracingExporter)
	}
	switch c.MetricsExporter {
	case ExporterNone, "stdout", "otlp", "prometheus":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidMetricsExporter, c.MetricsExporter)
	}
	if c.SampleRatio < 0 || c.SampleRatio > 1 {
		return fmt.Errorf("%w: %g", ErrInvalidSampleRatio, c.SampleRatio)
	}
	if _, ok := ParseLogLevel(c.LogLevel); !ok && !strings.EqualFold(c.LogLevel, LevelOff) {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}
	return nil
}

// Observer hands out the telemetry primitives the client instruments calls
// with. Implementations are safe for concurrent use. Shutdown flushes
// exporters, honors ctx and is idempotent.
type Observer interface {
	Tracer() trace.Tracer
	Meter() metric.Meter
	Logger() Logger
	Shutdown(ctx context.Context) error
}

// Logger is the structured logger calls are reported to. Logging is best
// effort and never panics.
type Logger interface {
	Info(ctx context.Context, msg string, fields ...Field)
	Warn(ctx context.Context, msg string, fields ...Field)
	Error(ctx context.Context, msg string, fields ...Field)
	Debug(ctx context.Context, msg string, fields ...Field)
	WithCall(meta CallMeta) Logger
}

// Field is one structured log attribute.
type Field struct {
	Key   string
	Value any
}

type observer struct {
	tracer trace.Tracer
	meter  metric.Meter
	logger Logger

	tp *sdktrace.TracerProvider
	mp *sdkmetric.MeterProvider

	shutdownOnce sync.Once
	shutdownErr  error
}

// NewNoop returns an Observer that records nothing.
func NewNoop() Observer {
	return &observer{
		tracer: tracenoop.NewTracerProvider().Tracer(DefaultServiceName),
		meter:  noop.NewMeterProvider().Meter(DefaultServiceName),
		logger: &noopLogger{},
	}
}

// NewObserver builds the providers cfg asks for. A signal whose exporter is
// none gets a no-op implementation and no provider.
func NewObserver(ctx context.Context, cfg Config) (Observer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	res, err := resource.New(ctx, resource.WithAttributes(
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.Version),
	))
	if err != nil {
		return nil, fmt.Errorf("observe: resource: %w", err)
	}

	obs := &observer{
		tracer: tracenoop.NewTracerProvider().Tracer(cfg.ServiceName),
		meter:  noop.NewMeterProvider().Meter(cfg.ServiceName),
		logger: NewLoggerWithWriter(cfg.LogLevel, cfg.LogOutput),
	}

	if cfg.TracingExporter != ExporterNone {
		exp, err := exporters.NewTracingExporter(ctx, cfg.TracingExporter)
		if err != nil {
			return nil, fmt.Errorf("observe: tracing: %w", err)
		}
		obs.tp = sdktrace.NewTracerProvider(
			sdktrace.WithResource(res),
			sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRatio))),
			sdktrace.WithBatcher(exp),
		)
		obs.tracer = obs.tp.Tracer(cfg.ServiceName)
		if cfg.Global {
			otel.SetTracerProvider(obs.tp)
		}
	}

	if cfg.MetricsExporter != ExporterNone {
		reader, err := exporters.NewMetricsReader(ctx, cfg.MetricsExporter)
		if err != nil {
			// The tracer provider is already running.
			return nil, errors.Join(fmt.Errorf("observe: metrics: %w", err), obs.Shutdown(ctx))
		}
		obs.mp = sdkmetric.NewMeterProvider(
			sdkmetric.WithResource(res),
			sdkmetric.WithReader(reader),
		)
		obs.meter = obs.mp.Meter(cfg.ServiceName)
		if cfg.Global {
			otel.SetMeterProvider(obs.mp)
		}
	}

	return obs, nil
}

func (o *observer) Tracer() trace.Tracer { return o.tracer }

func (o *observer) Meter() metric.Meter { return o.meter }

func (o *observer) Logger() Logger { return o.logger }

func (o *observer) Shutdown(ctx context.Context) error {
	o.shutdownOnce.Do(func() {
		var errs []error
		if o.tp != nil {
			if err := o.tp.Shutdown(ctx); err != nil {
				errs = append(errs, fmt.Errorf("observe: tracer shutdown: %w", err))
			}
		}
		if o.mp != nil {
			if err := o.mp.Shutdown(ctx); err != nil {
				errs = append(errs, fmt.Errorf("observe: meter shutdown: %w", err))
			}
		}
		o.shutdownErr = errors.Join(errs...)
	})
	return o.shutdownErr
}

type noopLogger struct{}

func (*noopLogger) Info(context.Context, string, ...Field)  {}
func (*noopLogger) Warn(context.Context, string, ...Field)  {}
func (*noopLogger) Error(context.Context, string, ...Field) {}
func (*noopLogger) Debug(context.Context, string, ...Field) {}
func (l *noopLogger) WithCall(CallMeta) Logger              { return l }
