// Package client is the OpenTok server SDK entry point.
//
// A Client binds a project's credentials to the platform REST API. It
// composes requests with the request package, signs them with a short-lived
// project JWT, and sends them through a resilience policy and the observe
// middleware:
//
//	creds, err := credentials.Load(ctx, credentials.LoadOptions{EnvFiles: []string{".env"}})
//	if err != nil {
//	    return err
//	}
//	cfg, err := client.ConfigFromEnv()
//	if err != nil {
//	    return err
//	}
//	c, err := client.New(creds, cfg)
//	if err != nil {
//	    return err
//	}
//	defer c.Close(ctx)
//
//	sess, err := c.CreateSession(ctx, session.WithMediaMode(session.MediaRouted))
//	tok, err := c.GenerateToken(token.Claims{SessionID: sess.ID, Role: token.RoleModerator})
//
// Argument problems are reported as *validate.ArgumentError before any
// network I/O. Non-2xx responses surface as *APIError. When the transport
// is capped below TLS 1.2 every transport failure is reported as a
// *tlsguard.TLSVersionError instead.
//
// Unless WithObserver is given, New builds an observer from the Config's
// exporter settings and Close flushes it.
//
// Calls are never retried.
package client
