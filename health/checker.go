package health

import (
	"context"
	"time"
)

// Status is the health of one dependency or of the whole report.
type Status int

const (
	// StatusHealthy means the dependency works.
	StatusHealthy Status = iota
	// StatusDegraded means it works with reduced guarantees.
	StatusDegraded
	// StatusUnhealthy means it does not work.
	StatusUnhealthy
)

// String returns the lowercase status name.
func (s Status) String() string {
	switch s {
	case StatusHealthy:
		return "healthy"
	case StatusDegraded:
		return "degraded"
	case StatusUnhealthy:
		return "unhealthy"
	default:
		return "unknown"
	}
}

// MarshalText renders the status name, so reports encode readably.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Result is the outcome of a single check.
type Result struct {
	Status   Status         `json:"status"`
	Message  string         `json:"message,omitempty"`
	Details  map[string]any `json:"details,omitempty"`
	Duration time.Duration  `json:"duration"`
	Err      error          `json:"-"`
}

// Healthy returns a healthy result.
func Healthy(message string) Result {
	return Result{Status: StatusHealthy, Message: message}
}

// Degraded returns a degraded result.
func Degraded(message string) Result {
	return Result{Status: StatusDegraded, Message: message}
}

// Unhealthy returns an unhealthy result carrying err.
func Unhealthy(message string, err error) Result {
	return Result{Status: StatusUnhealthy, Message: message, Err: err}
}

// With returns r with key set in its details.
func (r Result) With(key string, value any) Result {
	details := make(map[string]any, len(r.Details)+1)
	for k, v := range r.Details {
		details[k] = v
	}
	details[key] = value
	r.Details = details
	return r
}

// Checker probes one dependency.
type Checker interface {
	Name() string
	Check(ctx context.Context) Result
}

// CheckFunc adapts a function to Checker.
type CheckFunc struct {
	name string
	fn   func(context.Context) Result
}

// NewCheckFunc names fn as a Checker.
func NewCheckFunc(name string, fn func(context.Context) Result) CheckFunc {
	return CheckFunc{name: name, fn: fn}
}

// Name returns the checker name.
func (f CheckFunc) Name() string { return f.name }

// Check runs the function.
func (f CheckFunc) Check(ctx context.Context) Result { return f.fn(ctx) }
