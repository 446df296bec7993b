package resilience

import (
	"context"
	"sync"
	"time"
)

// LimiterConfig configures a Limiter.
type LimiterConfig struct {
	// Rate is the sustained number of calls per second. Must be positive.
	Rate float64

	// Burst is the bucket size.
	// Default: max(1, ceil(Rate))
	Burst int

	// MaxWait bounds how long Wait blocks for a token. Zero fails at once.
	MaxWait time.Duration

	// Now is the clock. Default: time.Now
	Now func() time.Time
}

// Limiter is a token bucket.
type Limiter struct {
	cfg LimiterConfig

	mu     sync.Mutex
	tokens float64
	last   time.Time
}

// NewLimiter creates a full bucket.
func NewLimiter(cfg LimiterConfig) *Limiter {
	// Apply defaults
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Burst <= 0 {
		cfg.Burst = int(cfg.Rate)
		if float64(cfg.Burst) < cfg.Rate {
			cfg.Burst++
		}
		if cfg.Burst < 1 {
			cfg.Burst = 1
		}
	}
	return &Limiter{
		cfg:    cfg,
		tokens: float64(cfg.Burst),
		last:   cfg.Now(),
	}
}

// Allow takes a token if one is available.
func (l *Limiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.refillLocked()
	if l.tokens < 1 {
		return false
	}
	l.tokens--
	return true
}

// Wait takes a token, blocking up to MaxWait for one to accrue.
func (l *Limiter) Wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if l.Allow() {
		return nil
	}
	delay := l.untilNext()
	if l.cfg.MaxWait <= 0 || delay > l.cfg.MaxWait {
		return ErrRateLimited
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
	}
	if !l.Allow() {
		return ErrRateLimited
	}
	return nil
}

// Tokens returns the tokens currently in the bucket.
func (l *Limiter) Tokens() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.refillLocked()
	return l.tokens
}

func (l *Limiter) untilNext() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cfg.Rate <= 0 {
		return time.Duration(1<<63 - 1)
	}
	missing := 1 - l.tokens
	return time.Duration(missing / l.cfg.Rate * float64(time.Second))
}

func (l *Limiter) refillLocked() {
	now := l.cfg.Now()
	if elapsed := now.Sub(l.last); elapsed > 0 {
		l.tokens += elapsed.Seconds() * l.cfg.Rate
		if limit := float64(l.cfg.Burst); l.tokens > limit {
			l.tokens = limit
		}
	}
	l.last = now
}
