package session

import (
	"net/url"

	"github.com/jonwraymond/opentok/validate"
)

// ID is a structurally valid session identifier.
type ID struct {
	raw   string
	parts validate.SessionParts
}

// ParseID decodes s, failing with a *validate.ArgumentError when s is empty
// or does not carry an embedded partner id.
func ParseID(s string) (ID, error) {
	parts, err := validate.DecodeSessionID(s)
	if err != nil {
		return ID{}, err
	}
	return ID{raw: s, parts: parts}, nil
}

// String returns the identifier exactly as supplied.
func (id ID) String() string { return id.raw }

// PartnerID returns the api key of the project that created the session.
func (id ID) PartnerID() int { return id.parts.PartnerID }

// IsZero reports whether id was never parsed.
func (id ID) IsZero() bool { return id.raw == "" }

// MediaMode selects how streams travel between clients.
type MediaMode string

const (
	// MediaRelayed sends media peer-to-peer where possible.
	MediaRelayed MediaMode = "relayed"
	// MediaRouted sends media through the platform's media router.
	MediaRouted MediaMode = "routed"
)

// p2pPreference is the wire value the create-session form expects.
func (m MediaMode) p2pPreference() string {
	if m == MediaRouted {
		return "disabled"
	}
	return "enabled"
}

// ArchiveMode selects whether a session is recorded automatically.
type ArchiveMode string

const (
	// ArchiveManual records only when an archive is started explicitly.
	ArchiveManual ArchiveMode = "manual"
	// ArchiveAlways records as soon as clients publish.
	ArchiveAlways ArchiveMode = "always"
)

// Options are the validated parameters of a new session.
type Options struct {
	mediaMode   MediaMode
	archiveMode ArchiveMode
	location    string
}

// Option sets one field of Options.
type Option func(*Options)

// WithMediaMode sets the media mode. Default: MediaRelayed.
func WithMediaMode(m MediaMode) Option {
	return func(o *Options) { o.mediaMode = m }
}

// WithArchiveMode sets the archive mode. Default: ArchiveManual.
func WithArchiveMode(m ArchiveMode) Option {
	return func(o *Options) { o.archiveMode = m }
}

// WithLocation hints the media server location with an IPv4 literal.
func WithLocation(ip string) Option {
	return func(o *Options) { o.location = ip }
}

// NewOptions applies opts over the defaults and validates the result.
func NewOptions(opts ...Option) (Options, error) {
	o := Options{
		mediaMode:   MediaRelayed,
		archiveMode: ArchiveManual,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if o.mediaMode != MediaRelayed && o.mediaMode != MediaRouted {
		return Options{}, &validate.ArgumentError{Field: "mediaMode", Message: "Unknown media mode: " + string(o.mediaMode)}
	}
	if o.archiveMode != ArchiveManual && o.archiveMode != ArchiveAlways {
		return Options{}, &validate.ArgumentError{Field: "archiveMode", Message: "Unknown archive mode: " + string(o.archiveMode)}
	}
	if err := validate.MediaForArchive(o.archiveMode == ArchiveAlways, o.mediaMode == MediaRouted); err != nil {
		return Options{}, err
	}
	if err := validate.Location(o.location); err != nil {
		return Options{}, err
	}
	return o, nil
}

// MediaMode returns the configured media mode.
func (o Options) MediaMode() MediaMode { return o.mediaMode }

// ArchiveMode returns the configured archive mode.
func (o Options) ArchiveMode() ArchiveMode { return o.archiveMode }

// Location returns the location hint, or "" when none was given.
func (o Options) Location() string { return o.location }

// FormValues returns the create-session form fields.
func (o Options) FormValues() url.Values {
	values := url.Values{}
	if o.location != "" {
		values.Set("location", o.location)
	}
	values.Set("p2p.preference", o.mediaMode.p2pPreference())
	values.Set("archiveMode", string(o.archiveMode))
	return values
}

// Session is a created session as reported back to the caller.
type Session struct {
	ID          string
	APIKey      int
	MediaMode   MediaMode
	ArchiveMode ArchiveMode
	Location    string
}

// New returns the Session created with opts under apiKey.
func New(id string, apiKey int, opts Options) Session {
	return Session{
		ID:          id,
		APIKey:      apiKey,
		MediaMode:   opts.mediaMode,
		ArchiveMode: opts.archiveMode,
		Location:    opts.location,
	}
}
