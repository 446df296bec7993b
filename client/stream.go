package client

import (
	"context"

	"github.com/jonwraymond/opentok/request"
)

// GetStream fetches one stream of a session.
func (c *Client) GetStream(ctx context.Context, sessionID, streamID string) (Stream, error) {
	req, err := request.GetStream(c.creds.APIKey(), sessionID, streamID)
	if err != nil {
		return Stream{}, err
	}
	var s Stream
	err = c.send(ctx, call{operation: "get", resource: "stream"}, req, &s)
	return s, err
}

// ListStreams fetches every stream of a session.
func (c *Client) ListStreams(ctx context.Context, sessionID string) (StreamList, error) {
	req, err := request.ListStreams(c.creds.APIKey(), sessionID)
	if err != nil {
		return StreamList{}, err
	}
	var list StreamList
	err = c.send(ctx, call{operation: "list", resource: "stream"}, req, &list)
	return list, err
}

// SetStreamClassLists replaces the layout classes of the given streams.
// The response body is not JSON and is discarded.
func (c *Client) SetStreamClassLists(ctx context.Context, sessionID string, streams []request.StreamProperties) error {
	req, err := request.SetStreamClassLists(c.creds.APIKey(), sessionID, streams)
	if err != nil {
		return err
	}
	return c.send(ctx, call{operation: "set_class_lists", resource: "stream"}, req, nil)
}

// ForceDisconnect removes a connection from a session.
func (c *Client) ForceDisconnect(ctx context.Context, sessionID, connectionID string) error {
	req, err := request.ForceDisconnect(c.creds.APIKey(), sessionID, connectionID)
	if err != nil {
		return err
	}
	return c.send(ctx, call{operation: "force_disconnect", resource: "connection"}, req, nil)
}

// Signal sends a signal to every connection of a session, or to a single
// connection when connectionID is not empty.
func (c *Client) Signal(ctx context.Context, sessionID, connectionID string, signal request.Signal) error {
	req, err := request.SendSignal(c.creds.APIKey(), sessionID, connectionID, signal)
	if err != nil {
		return err
	}
	return c.send(ctx, call{operation: "signal", resource: "session"}, req, nil)
}
