package client

import (
	"errors"
	"fmt"
	"time"

	"github.com/joeshaw/envdecode"

	"github.com/jonwraymond/opentok/observe"
)

// DefaultAPIURL is the production REST endpoint.
const DefaultAPIURL = "https://api.opentok.com"

// Config holds transport and telemetry settings. Zero fields take the
// defaults below.
type Config struct {
	// APIURL is the REST root. Default: DefaultAPIURL
	APIURL string `env:"OPENTOK_API_URL,default=https://api.opentok.com"`

	// Timeout bounds each call. Default: 30s
	Timeout time.Duration `env:"OPENTOK_TIMEOUT,default=30s"`

	// MaxConcurrent bounds calls in flight. Default: 10
	MaxConcurrent int `env:"OPENTOK_MAX_CONCURRENT,default=10"`

	// Rate caps calls per second. Zero disables rate limiting.
	Rate float64 `env:"OPENTOK_RATE,default=0"`

	// BreakerFailures opens the circuit after that many consecutive
	// server-side failures. Default: 5
	BreakerFailures int `env:"OPENTOK_BREAKER_FAILURES,default=5"`

	// BreakerReset is how long the circuit stays open. Default: 30s
	BreakerReset time.Duration `env:"OPENTOK_BREAKER_RESET,default=30s"`

	// LogLevel is debug, info, warn, error or off. Default: info
	LogLevel string `env:"OPENTOK_LOG_LEVEL,default=info"`

	// ServiceName is reported on exported spans and metrics. Default: opentok
	ServiceName string `env:"OPENTOK_SERVICE_NAME,default=opentok"`

	// TracingExporter is none, stdout or otlp. Default: none
	TracingExporter string `env:"OPENTOK_TRACING_EXPORTER,default=none"`

	// TraceSampleRatio is the share of calls traced. Zero traces all.
	TraceSampleRatio float64 `env:"OPENTOK_TRACE_SAMPLE_RATIO,default=1"`

	// MetricsExporter is none, stdout, otlp or prometheus. Default: none
	MetricsExporter string `env:"OPENTOK_METRICS_EXPORTER,default=none"`
}

// ConfigFromEnv reads Config from OPENTOK_* environment variables. Unset
// variables take their defaults; a value that does not parse is an error.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	cfg = cfg.withDefaults()
	if err := cfg.observeConfig().Validate(); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return cfg, nil
}

func (c Config) withDefaults() Config {
	// Apply defaults
	if c.APIURL == "" {
		c.APIURL = DefaultAPIURL
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	if c.MaxConcurrent <= 0 {
		c.MaxConcurrent = 10
	}
	if c.Rate < 0 {
		c.Rate = 0
	}
	if c.BreakerFailures <= 0 {
		c.BreakerFailures = 5
	}
	if c.BreakerReset <= 0 {
		c.BreakerReset = 30 * time.Second
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.ServiceName == "" {
		c.ServiceName = observe.DefaultServiceName
	}
	return c
}

func (c Config) observeConfig() observe.Config {
	return observe.Config{
		ServiceName:     c.ServiceName,
		Version:         Version,
		TracingExporter: c.TracingExporter,
		SampleRatio:     c.TraceSampleRatio,
		MetricsExporter: c.MetricsExporter,
		LogLevel:        c.LogLevel,
	}
}
