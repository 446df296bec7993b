package resilience

import (
	"context"
	"time"
)

// Bulkhead bounds the number of calls in flight.
type Bulkhead struct {
	slots   chan struct{}
	maxWait time.Duration
}

// NewBulkhead creates a bulkhead with size slots. A call waits up to
// maxWait for a free slot; zero rejects immediately.
func NewBulkhead(size int, maxWait time.Duration) *Bulkhead {
	if size <= 0 {
		size = 10
	}
	return &Bulkhead{
		slots:   make(chan struct{}, size),
		maxWait: maxWait,
	}
}

// Acquire takes a slot. The caller must Release it.
func (b *Bulkhead) Acquire(ctx context.Context) error {
	select {
	case b.slots <- struct{}{}:
		return nil
	default:
	}
	if b.maxWait <= 0 {
		return ErrBulkheadFull
	}

	timer := time.NewTimer(b.maxWait)
	defer timer.Stop()
	select {
	case b.slots <- struct{}{}:
		return nil
	case <-timer.C:
		return ErrBulkheadFull
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release frees a slot taken by Acquire.
func (b *Bulkhead) Release() {
	select {
	case <-b.slots:
	default:
	}
}

// InFlight returns the number of taken slots.
func (b *Bulkhead) InFlight() int { return len(b.slots) }

// Capacity returns the number of slots.
func (b *Bulkhead) Capacity() int { return cap(b.slots) }
