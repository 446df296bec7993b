package tlsguard

import "errors"

// RemediationMessage is the exact text of every TLSVersionError.
const RemediationMessage = "Error with request submission.\nThis application appears to not support TLS1.2.\nPlease enable TLS 1.2 and try again."

// ErrTLSVersion matches any TLSVersionError with errors.Is.
var ErrTLSVersion = errors.New("tlsguard: tls version below minimum")

// TLSVersionError is a transport failure attributed to a TLS configuration
// that cannot reach the minimum version.
type TLSVersionError struct {
	// Version is the highest protocol version the client allowed.
	Version uint16
	// Err is the original transport failure.
	Err error
}

// Error returns RemediationMessage.
func (e *TLSVersionError) Error() string { return RemediationMessage }

// Unwrap returns the original failure.
func (e *TLSVersionError) Unwrap() error { return e.Err }

// Is matches ErrTLSVersion.
func (e *TLSVersionError) Is(target error) bool { return target == ErrTLSVersion }
