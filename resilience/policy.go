package resilience

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Config selects the guards a Policy applies. Zero values disable the
// corresponding guard.
type Config struct {
	// Timeout is the per-call deadline.
	Timeout time.Duration

	// MaxConcurrent is the bulkhead size.
	MaxConcurrent int

	// MaxWait bounds how long a call waits for a rate token or a slot.
	MaxWait time.Duration

	// Rate is the sustained calls per second; Burst the bucket size.
	Rate  float64
	Burst int

	// BreakerFailures opens the breaker after that many consecutive failures.
	BreakerFailures int

	// BreakerReset is the open period. Default: 30 seconds
	BreakerReset time.Duration

	// IsFailure decides which errors count against the breaker.
	IsFailure func(err error) bool

	// OnStateChange observes breaker transitions.
	OnStateChange func(from, to BreakerState)

	// Now is the clock shared by the limiter and breaker.
	Now func() time.Time
}

// Policy applies rate limiting, concurrency isolation, circuit breaking and
// a deadline to each call, outermost first.
type Policy struct {
	timeout  time.Duration
	limiter  *Limiter
	bulkhead *Bulkhead
	breaker  *Breaker
}

// New builds a Policy from cfg.
func New(cfg Config) *Policy {
	p := &Policy{timeout: cfg.Timeout}
	if cfg.Rate > 0 {
		p.limiter = NewLimiter(LimiterConfig{
			Rate:    cfg.Rate,
			Burst:   cfg.Burst,
			MaxWait: cfg.MaxWait,
			Now:     cfg.Now,
		})
	}
	if cfg.MaxConcurrent > 0 {
		p.bulkhead = NewBulkhead(cfg.MaxConcurrent, cfg.MaxWait)
	}
	if cfg.BreakerFailures > 0 {
		p.breaker = NewBreaker(BreakerConfig{
			Failures:      cfg.BreakerFailures,
			Reset:         cfg.BreakerReset,
			IsFailure:     cfg.IsFailure,
			OnStateChange: cfg.OnStateChange,
			Now:           cfg.Now,
		})
	}
	return p
}

// Do runs op under every configured guard. A nil Policy runs op directly.
func (p *Policy) Do(ctx context.Context, op func(context.Context) error) error {
	if p == nil {
		return op(ctx)
	}
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return err
		}
	}
	if p.bulkhead != nil {
		if err := p.bulkhead.Acquire(ctx); err != nil {
			return err
		}
		defer p.bulkhead.Release()
	}
	if p.breaker != nil {
		return p.breaker.Do(ctx, p.withDeadline(op))
	}
	return p.withDeadline(op)(ctx)
}

// Breaker returns the policy's breaker, or nil when none is configured.
func (p *Policy) Breaker() *Breaker { return p.breaker }

// Bulkhead returns the policy's bulkhead, or nil when none is configured.
func (p *Policy) Bulkhead() *Bulkhead { return p.bulkhead }

// Limiter returns the policy's limiter, or nil when none is configured.
func (p *Policy) Limiter() *Limiter { return p.limiter }

func (p *Policy) withDeadline(op func(context.Context) error) func(context.Context) error {
	if p.timeout <= 0 {
		return op
	}
	return func(ctx context.Context) error {
		callCtx, cancel := context.WithTimeout(ctx, p.timeout)
		defer cancel()

		err := op(callCtx)
		if err != nil && ctx.Err() == nil && errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("%w after %s: %w", ErrTimeout, p.timeout, err)
		}
		return err
	}
}
