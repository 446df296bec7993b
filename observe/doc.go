// Package observe provides tracing, metrics and structured logging for API
// calls made by the client.
//
// It is a pure instrumentation library: it performs no calls itself and no
// I/O beyond exporter setup. The client wraps every REST call with a
// Middleware built from an Observer.
package observe
