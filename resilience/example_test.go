package resilience_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonwraymond/opentok/resilience"
)

func ExampleNew() {
	p := resilience.New(resilience.Config{
		Timeout:         time.Second,
		MaxConcurrent:   4,
		BreakerFailures: 2,
	})

	unavailable := errors.New("503 service unavailable")
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		_ = p.Do(ctx, func(context.Context) error { return unavailable })
	}

	err := p.Do(ctx, func(context.Context) error { return nil })
	fmt.Println(p.Breaker().State(), errors.Is(err, resilience.ErrCircuitOpen))
	// Output:
	// open true
}
