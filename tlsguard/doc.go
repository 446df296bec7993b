// Package tlsguard reclassifies transport failures caused by an outdated
// TLS configuration.
//
// The platform only accepts TLS 1.2 and later. When a call fails while the
// client is limited to an older protocol, Reclassify replaces the opaque
// transport error with a TLSVersionError carrying a fixed remediation
// message. The negotiated protocol limit is passed in explicitly as a State
// rather than read from process-wide settings.
package tlsguard
