// Package codec provides the encoding and signing primitives used by the
// token and session-id formats.
//
// All functions are pure and safe for concurrent use. Signing never fails;
// decoding fails with a *DecodeError on malformed input.
package codec
