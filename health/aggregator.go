package health

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// AggregatorConfig configures an Aggregator.
type AggregatorConfig struct {
	// Timeout bounds a whole Run.
	// Default: 10 seconds
	Timeout time.Duration

	// Now is the clock used for durations. Default: time.Now
	Now func() time.Time
}

// Report is the combined outcome of a Run.
type Report struct {
	Status Status            `json:"status"`
	Checks map[string]Result `json:"checks"`
}

// Failed returns the names of checks that were not healthy, sorted.
func (r Report) Failed() []string {
	var names []string
	for name, res := range r.Checks {
		if res.Status != StatusHealthy {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Aggregator runs a set of checkers together.
type Aggregator struct {
	cfg AggregatorConfig

	mu       sync.RWMutex
	checkers map[string]Checker
}

// NewAggregator creates an empty aggregator.
func NewAggregator(cfg AggregatorConfig) *Aggregator {
	// Apply defaults
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Aggregator{cfg: cfg, checkers: make(map[string]Checker)}
}

// Register adds checkers. Names must be unique.
func (a *Aggregator) Register(checkers ...Checker) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, c := range checkers {
		if c == nil {
			return ErrNilChecker
		}
		if _, ok := a.checkers[c.Name()]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateChecker, c.Name())
		}
		a.checkers[c.Name()] = c
	}
	return nil
}

// Names returns the registered checker names, sorted.
func (a *Aggregator) Names() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	names := make([]string, 0, len(a.checkers))
	for name := range a.checkers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run executes every checker concurrently. A checker still running at the
// deadline is reported unhealthy with ErrCheckTimeout.
func (a *Aggregator) Run(ctx context.Context) Report {
	a.mu.RLock()
	checkers := make([]Checker, 0, len(a.checkers))
	for _, c := range a.checkers {
		checkers = append(checkers, c)
	}
	a.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, a.cfg.Timeout)
	defer cancel()

	results := make([]Result, len(checkers))
	g, gctx := errgroup.WithContext(ctx)
	for i, c := range checkers {
		g.Go(func() error {
			results[i] = a.runOne(gctx, c)
			return nil
		})
	}
	_ = g.Wait()

	report := Report{Status: StatusHealthy, Checks: make(map[string]Result, len(checkers))}
	for i, c := range checkers {
		report.Checks[c.Name()] = results[i]
		if results[i].Status > report.Status {
			report.Status = results[i].Status
		}
	}
	return report
}

func (a *Aggregator) runOne(ctx context.Context, c Checker) Result {
	start := a.cfg.Now()
	done := make(chan Result, 1)
	go func() { done <- c.Check(ctx) }()

	var res Result
	select {
	case res = <-done:
	case <-ctx.Done():
		res = Unhealthy("check timed out", ErrCheckTimeout)
	}
	res.Duration = a.cfg.Now().Sub(start)
	return res
}
