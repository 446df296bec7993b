package resilience

import (
	"context"
	"sync"
	"time"
)

// BreakerState is the position of a Breaker.
type BreakerState int

const (
	// Closed lets every call through.
	Closed BreakerState = iota
	// Open rejects calls until the reset period elapses.
	Open
	// HalfOpen lets a single probe call through.
	HalfOpen
)

// String returns the lowercase state name.
func (s BreakerState) String() string {
	switch s {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case HalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// BreakerConfig configures a Breaker.
type BreakerConfig struct {
	// Failures is the number of consecutive failures that opens the breaker.
	// Default: 5
	Failures int

	// Reset is how long the breaker stays open before probing.
	// Default: 30 seconds
	Reset time.Duration

	// IsFailure reports whether err counts against the endpoint.
	// Default: every non-nil error.
	IsFailure func(err error) bool

	// OnStateChange is called with the lock held; it must not call back
	// into the breaker.
	OnStateChange func(from, to BreakerState)

	// Now is the clock. Default: time.Now
	Now func() time.Time
}

// Breaker is a consecutive-failure circuit breaker.
type Breaker struct {
	cfg BreakerConfig

	mu       sync.Mutex
	state    BreakerState
	failures int
	openedAt time.Time
	probing  bool
}

// NewBreaker creates a closed breaker.
func NewBreaker(cfg BreakerConfig) *Breaker {
	// Apply defaults
	if cfg.Failures <= 0 {
		cfg.Failures = 5
	}
	if cfg.Reset <= 0 {
		cfg.Reset = 30 * time.Second
	}
	if cfg.IsFailure == nil {
		cfg.IsFailure = func(err error) bool { return err != nil }
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Breaker{cfg: cfg}
}

// Do runs op unless the breaker is open.
func (b *Breaker) Do(ctx context.Context, op func(context.Context) error) error {
	if err := b.admit(); err != nil {
		return err
	}
	err := op(ctx)
	b.record(err)
	return err
}

// State returns the current state, moving Open to HalfOpen when the reset
// period has elapsed.
func (b *Breaker) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stateLocked()
}

// Failures returns the current consecutive failure count.
func (b *Breaker) Failures() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.failures
}

// Reset closes the breaker and clears the failure count.
func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures = 0
	b.probing = false
	b.transitionLocked(Closed)
}

func (b *Breaker) admit() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.stateLocked() {
	case Open:
		return ErrCircuitOpen
	case HalfOpen:
		if b.probing {
			return ErrCircuitOpen
		}
		b.probing = true
	}
	return nil
}

func (b *Breaker) record(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	failed := b.cfg.IsFailure(err)
	switch b.state {
	case Closed:
		if !failed {
			b.failures = 0
			return
		}
		b.failures++
		if b.failures >= b.cfg.Failures {
			b.openLocked()
		}
	case HalfOpen:
		b.probing = false
		if failed {
			b.openLocked()
			return
		}
		b.failures = 0
		b.transitionLocked(Closed)
	}
}

func (b *Breaker) stateLocked() BreakerState {
	if b.state == Open && b.cfg.Now().Sub(b.openedAt) >= b.cfg.Reset {
		b.probing = false
		b.transitionLocked(HalfOpen)
	}
	return b.state
}

func (b *Breaker) openLocked() {
	b.openedAt = b.cfg.Now()
	b.transitionLocked(Open)
}

func (b *Breaker) transitionLocked(to BreakerState) {
	from := b.state
	b.state = to
	if from != to && b.cfg.OnStateChange != nil {
		b.cfg.OnStateChange(from, to)
	}
}
