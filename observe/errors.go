package observe

import (
	"errors"

	"github.com/jonwraymond/opentok/observe/exporters"
)

// Configuration errors.
var (
	// ErrInvalidSampleRatio indicates Config.SampleRatio outside [0, 1].
	ErrInvalidSampleRatio = errors.New("observe: sample ratio must be between 0 and 1")

	// ErrInvalidTracingExporter indicates an unknown tracing exporter name.
	ErrInvalidTracingExporter = errors.New("observe: invalid tracing exporter")

	// ErrInvalidMetricsExporter indicates an unknown metrics exporter name.
	ErrInvalidMetricsExporter = errors.New("observe: invalid metrics exporter")

	// ErrInvalidLogLevel indicates an unknown log level.
	ErrInvalidLogLevel = errors.New("observe: invalid log level")

	// ErrEndpointNotConfigured indicates otlp was chosen without an endpoint.
	ErrEndpointNotConfigured = exporters.ErrEndpointNotConfigured
)

// Runtime errors.
var (
	// ErrNilObserver indicates a nil Observer was provided.
	ErrNilObserver = errors.New("observe: observer is nil")

	// ErrMissingOperation indicates CallMeta.Operation is empty.
	ErrMissingOperation = errors.New("observe: call operation is required")
)

// RedactedFields lists log keys whose values are never written. Matching
// ignores case.
var RedactedFields = []string{
	"authorization",
	"password",
	"secret",
	"api_secret",
	"apiSecret",
	"token",
	"sig",
	"credential",
	"x-opentok-auth",
}
