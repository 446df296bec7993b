package resilience

import "errors"

// Sentinel errors for guarded calls.
var (
	// ErrCircuitOpen is returned while the breaker rejects calls.
	ErrCircuitOpen = errors.New("resilience: circuit breaker is open")

	// ErrRateLimited is returned when no rate token is available in time.
	ErrRateLimited = errors.New("resilience: rate limit exceeded")

	// ErrBulkheadFull is returned when every call slot is taken.
	ErrBulkheadFull = errors.New("resilience: too many concurrent calls")

	// ErrTimeout is returned when the per-call deadline expires.
	ErrTimeout = errors.New("resilience: call timed out")
)
