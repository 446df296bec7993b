package client

import (
	"context"
	"errors"

	"github.com/jonwraymond/opentok/request"
	"github.com/jonwraymond/opentok/session"
	"github.com/jonwraymond/opentok/token"
)

// errNoSession is returned when a create response lists no session.
var errNoSession = errors.New("client: create session response has no session")

// CreateSession creates a session on the platform.
func (c *Client) CreateSession(ctx context.Context, opts ...session.Option) (session.Session, error) {
	o, err := session.NewOptions(opts...)
	if err != nil {
		return session.Session{}, err
	}

	var doc sessionsXML
	if err := c.send(ctx, call{operation: "create", resource: "session"}, request.CreateSession(o), &doc); err != nil {
		return session.Session{}, err
	}
	if len(doc.Sessions) == 0 || doc.Sessions[0].ID == "" {
		return session.Session{}, errNoSession
	}
	return session.New(doc.Sessions[0].ID, c.creds.APIKey(), o), nil
}

// GenerateToken mints a client token for claims. It performs no I/O.
func (c *Client) GenerateToken(claims token.Claims) (string, error) {
	return c.builder.Build(claims)
}
