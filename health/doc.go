// Package health reports whether the SDK can reach the platform.
//
// A Checker probes one dependency and returns a Result. The Aggregator runs
// every registered checker concurrently under a shared deadline and folds
// the results into a Report whose Status is the worst individual status.
//
// The client package provides the concrete checkers (TLS capability and an
// authenticated API round trip):
//
//	agg := health.NewAggregator(health.AggregatorConfig{Timeout: 5 * time.Second})
//	agg.Register(c.TLSCheck())
//	agg.Register(c.APICheck())
//
//	report := agg.Run(ctx)
//	if report.Status != health.StatusHealthy {
//	    log.Printf("opentok unhealthy: %v", report.Failed())
//	}
package health
