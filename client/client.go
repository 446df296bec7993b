package client

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jonwraymond/opentok/credentials"
	"github.com/jonwraymond/opentok/observe"
	"github.com/jonwraymond/opentok/resilience"
	"github.com/jonwraymond/opentok/tlsguard"
	"github.com/jonwraymond/opentok/token"
)

// Version is reported in the User-Agent header.
const Version = "1.0.0"

// HeaderAuth carries the project JWT.
const HeaderAuth = "X-OPENTOK-AUTH"

// Client calls the platform REST API on behalf of one project. It is safe
// for concurrent use.
type Client struct {
	creds   credentials.Credentials
	cfg     Config
	baseURL string

	httpClient *http.Client
	tlsConfig  *tls.Config
	tlsState   tlsguard.State

	signer  *token.ProjectSigner
	builder *token.Builder
	policy  *resilience.Policy

	observer     observe.Observer
	ownsObserver bool
	logger       observe.Logger
	mw           *observe.Middleware
	now          func() time.Time
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient sends requests through hc. Its transport's TLS settings
// decide the TLS state used for error classification.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTLSConfig uses cfg for the default transport. A MaxVersion below
// TLS 1.2 makes every transport failure a *tlsguard.TLSVersionError.
func WithTLSConfig(cfg *tls.Config) Option {
	return func(c *Client) { c.tlsConfig = cfg }
}

// WithObserver records traces and metrics for every call with obs. The
// caller keeps ownership: Close does not shut obs down.
func WithObserver(obs observe.Observer) Option {
	return func(c *Client) { c.observer = obs }
}

// WithLogger overrides the call logger.
func WithLogger(l observe.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithClock overrides the clock used for tokens and JWTs.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// New creates a Client for creds.
func New(creds credentials.Credentials, cfg Config, opts ...Option) (*Client, error) {
	if creds.IsZero() {
		return nil, ErrNoCredentials
	}
	cfg = cfg.withDefaults()

	base, err := url.Parse(cfg.APIURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, cfg.APIURL)
	}

	c := &Client{
		creds:   creds,
		cfg:     cfg,
		baseURL: strings.TrimRight(base.String(), "/"),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.TLSClientConfig = tlsguard.SecureConfig(c.tlsConfig)
		if c.tlsConfig != nil && c.tlsConfig.MaxVersion != 0 {
			transport.TLSClientConfig.MaxVersion = c.tlsConfig.MaxVersion
		}
		c.httpClient = &http.Client{Transport: transport}
	}
	c.tlsState = tlsStateOf(c.httpClient, c.tlsConfig)

	if c.observer == nil {
		obs, err := observe.NewObserver(context.Background(), cfg.observeConfig())
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		c.observer = obs
		c.ownsObserver = true
	}
	mw, err := observe.MiddlewareFromObserver(c.observer)
	if err != nil {
		return nil, c.closeAfter(fmt.Errorf("client: telemetry: %w", err))
	}
	if c.logger != nil {
		mw = mw.WithLogger(c.logger)
	}
	c.mw = mw

	c.signer = token.NewProjectSigner(creds, token.SignerConfig{Now: c.now})
	c.builder = token.NewBuilder(creds, token.WithClock(c.now))
	c.policy = resilience.New(resilience.Config{
		Timeout:         cfg.Timeout,
		MaxConcurrent:   cfg.MaxConcurrent,
		MaxWait:         cfg.Timeout,
		Rate:            cfg.Rate,
		BreakerFailures: cfg.BreakerFailures,
		BreakerReset:    cfg.BreakerReset,
		IsFailure:       countsAsFailure,
	})
	return c, nil
}

// Close flushes and stops the telemetry providers New built. It is a no-op
// for an observer supplied with WithObserver.
func (c *Client) Close(ctx context.Context) error {
	if !c.ownsObserver {
		return nil
	}
	return c.observer.Shutdown(ctx)
}

func (c *Client) closeAfter(err error) error {
	return errors.Join(err, c.Close(context.Background()))
}

// APIKey returns the project api key.
func (c *Client) APIKey() int { return c.creds.APIKey() }

// BaseURL returns the REST root without a trailing slash.
func (c *Client) BaseURL() string { return c.baseURL }

// TLSState returns the protocol limit used to classify transport errors.
func (c *Client) TLSState() tlsguard.State { return c.tlsState }

// Breaker exposes the circuit breaker guarding calls.
func (c *Client) Breaker() *resilience.Breaker { return c.policy.Breaker() }

func tlsStateOf(hc *http.Client, fallback *tls.Config) tlsguard.State {
	if t, ok := hc.Transport.(*http.Transport); ok && t.TLSClientConfig != nil {
		return tlsguard.StateFromConfig(t.TLSClientConfig)
	}
	return tlsguard.StateFromConfig(fallback)
}

// countsAsFailure keeps caller mistakes and cancellations away from the
// breaker.
func countsAsFailure(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Temporary()
	}
	return !errors.Is(err, ErrUnexpectedContentType) && !errors.Is(err, ErrDecodeResponse)
}
