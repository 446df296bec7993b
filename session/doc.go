// Package session models video sessions: their opaque identifiers and the
// options a session is created with.
//
// Identifiers are decoded structurally (see ParseID) so that malformed ids
// are rejected locally before a token is signed or a request is built.
// Options are constructed through NewOptions, which enforces that an
// always-archived session routes its media.
package session
