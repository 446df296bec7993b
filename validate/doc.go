// Package validate holds the pure argument checks that gate every token and
// REST request before anything is built or sent.
//
// Every check returns nil or an *ArgumentError whose Error() text is stable:
// callers match on it, so the messages declared in this package must not
// change. Checks take primitive values so that every higher-level package
// (session, token, request) can share them without import cycles.
//
// All functions are synchronous, perform no I/O and are safe for concurrent
// use.
package validate
