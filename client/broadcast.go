package client

import (
	"context"

	"github.com/jonwraymond/opentok/request"
)

// StartBroadcast begins a live broadcast of sessionID.
func (c *Client) StartBroadcast(ctx context.Context, sessionID string, opts request.BroadcastOptions) (Broadcast, error) {
	req, err := request.StartBroadcast(c.creds.APIKey(), sessionID, opts)
	if err != nil {
		return Broadcast{}, err
	}
	var b Broadcast
	err = c.send(ctx, call{operation: "start", resource: "broadcast"}, req, &b)
	return b, err
}

// StopBroadcast ends a broadcast.
func (c *Client) StopBroadcast(ctx context.Context, broadcastID string) (Broadcast, error) {
	req, err := request.StopBroadcast(c.creds.APIKey(), broadcastID)
	if err != nil {
		return Broadcast{}, err
	}
	var b Broadcast
	err = c.send(ctx, call{operation: "stop", resource: "broadcast"}, req, &b)
	return b, err
}

// GetBroadcast fetches one broadcast.
func (c *Client) GetBroadcast(ctx context.Context, broadcastID string) (Broadcast, error) {
	req, err := request.GetBroadcast(c.creds.APIKey(), broadcastID)
	if err != nil {
		return Broadcast{}, err
	}
	var b Broadcast
	err = c.send(ctx, call{operation: "get", resource: "broadcast"}, req, &b)
	return b, err
}

// SetBroadcastLayout changes the layout of a running broadcast.
func (c *Client) SetBroadcastLayout(ctx context.Context, broadcastID string, layout request.Layout) error {
	req, err := request.SetBroadcastLayout(c.creds.APIKey(), broadcastID, layout)
	if err != nil {
		return err
	}
	return c.send(ctx, call{operation: "set_layout", resource: "broadcast"}, req, nil)
}
