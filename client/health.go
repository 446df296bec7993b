package client

import (
	"context"

	"github.com/jonwraymond/opentok/health"
	"github.com/jonwraymond/opentok/request"
	"github.com/jonwraymond/opentok/tlsguard"
)

// TLSCheck reports whether the transport can negotiate the minimum TLS
// version the platform accepts. It performs no I/O.
func (c *Client) TLSCheck() health.Checker {
	return health.NewCheckFunc("opentok.tls", func(context.Context) health.Result {
		state := c.tlsState
		if state.BelowMinimum() {
			return health.Unhealthy(tlsguard.RemediationMessage, tlsguard.ErrTLSVersion).
				With("max_version", tlsguard.VersionName(state.MaxVersion))
		}
		return health.Healthy("TLS 1.2 available").
			With("max_version", tlsguard.VersionName(state.MaxVersion))
	})
}

// APICheck performs an authenticated one-item archive listing.
func (c *Client) APICheck() health.Checker {
	return health.NewCheckFunc("opentok.api", func(ctx context.Context) health.Result {
		req, err := request.ListArchives(c.creds.APIKey(), request.ArchiveQuery{Count: 1})
		if err != nil {
			return health.Unhealthy("cannot compose probe", err)
		}
		if err := c.send(ctx, call{operation: "probe", resource: "health"}, req, nil); err != nil {
			return health.Unhealthy("api unreachable", err).With("breaker", c.policy.Breaker().State().String())
		}
		return health.Healthy("api reachable")
	})
}
