package tlsguard

import (
	"crypto/tls"
	"errors"
)

// MinVersion is the lowest protocol version the platform accepts.
const MinVersion uint16 = tls.VersionTLS12

// State is the protocol limit in effect when a call was made.
type State struct {
	// MaxVersion is the highest version the client may negotiate.
	// Zero means the runtime default, which is never below MinVersion.
	MaxVersion uint16
}

// StateFromConfig derives the State of a client TLS configuration. A nil
// config uses the runtime defaults.
func StateFromConfig(cfg *tls.Config) State {
	if cfg == nil {
		return State{}
	}
	return State{MaxVersion: cfg.MaxVersion}
}

// BelowMinimum reports whether s cannot negotiate MinVersion.
func (s State) BelowMinimum() bool {
	return s.MaxVersion != 0 && s.MaxVersion < MinVersion
}

// Reclassify wraps err in a TLSVersionError when s is below the minimum
// version and returns it unchanged otherwise. It never retries. A nil err
// stays nil, and an err that is already a TLSVersionError is not wrapped
// twice.
func Reclassify(err error, s State) error {
	if err == nil || !s.BelowMinimum() {
		return err
	}
	if errors.Is(err, ErrTLSVersion) {
		return err
	}
	return &TLSVersionError{Version: s.MaxVersion, Err: err}
}

// SecureConfig returns a copy of cfg that refuses anything below
// MinVersion. A nil cfg yields a fresh config.
func SecureConfig(cfg *tls.Config) *tls.Config {
	var out *tls.Config
	if cfg == nil {
		out = &tls.Config{}
	} else {
		out = cfg.Clone()
	}
	if out.MinVersion < MinVersion {
		out.MinVersion = MinVersion
	}
	return out
}

// VersionName returns the conventional name of a protocol version.
func VersionName(v uint16) string {
	if v == 0 {
		return "default"
	}
	return tls.VersionName(v)
}
