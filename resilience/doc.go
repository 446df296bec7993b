// Package resilience guards outbound API calls.
//
// A Policy composes four independent guards around a single call:
//
//   - Limiter: token bucket capping the call rate.
//   - Bulkhead: bounded number of in-flight calls.
//   - Breaker: stops calling a failing endpoint until a cool-down elapses.
//   - Timeout: per-call deadline layered on the caller's context.
//
// Calls are never retried. Platform operations such as starting an archive
// are not idempotent, so a failed call is reported to the caller as-is.
//
// # Usage
//
//	p := resilience.New(resilience.Config{
//	    Timeout:         10 * time.Second,
//	    MaxConcurrent:   8,
//	    Rate:            20,
//	    BreakerFailures: 5,
//	    BreakerReset:    30 * time.Second,
//	})
//
//	err := p.Do(ctx, func(ctx context.Context) error {
//	    return send(ctx, req)
//	})
//
// The breaker only counts errors accepted by Config.IsFailure. Clients use
// this to keep 4xx responses, which say nothing about endpoint health, out
// of the failure count.
package resilience
