package token

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jonwraymond/opentok/codec"
	"github.com/jonwraymond/opentok/credentials"
	"github.com/jonwraymond/opentok/session"
	"github.com/jonwraymond/opentok/validate"
)

// Prefix is the fixed format marker every session token starts with.
const Prefix = "T1=="

// DefaultLifetime is used when Claims.ExpireTime is zero.
const DefaultLifetime = 24 * time.Hour

// Claims are the caller-supplied parts of a session token.
type Claims struct {
	// SessionID is the session the token grants access to. Required.
	SessionID string

	// Role defaults to RolePublisher.
	Role Role

	// ExpireTime defaults to DefaultLifetime after creation. It must fall
	// after the creation time and within 30 days of it.
	ExpireTime time.Time

	// Data is attached to the connection, at most 1000 bytes.
	Data string

	// InitialLayoutClassList is sent space-joined.
	InitialLayoutClassList []string
}

// Builder signs tokens for one project.
type Builder struct {
	creds credentials.Credentials
	now   func() time.Time
	rand  io.Reader
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithClock sets the clock used for create_time and the default expiry.
func WithClock(now func() time.Time) BuilderOption {
	return func(b *Builder) { b.now = now }
}

// WithRandom sets the nonce source. Default: crypto/rand.Reader.
func WithRandom(r io.Reader) BuilderOption {
	return func(b *Builder) { b.rand = r }
}

// NewBuilder creates a builder signing with creds.
func NewBuilder(creds credentials.Credentials, opts ...BuilderOption) *Builder {
	b := &Builder{
		creds: creds,
		now:   time.Now,
		rand:  rand.Reader,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build returns a token for claims using a fresh Builder.
func Build(creds credentials.Credentials, claims Claims) (string, error) {
	return NewBuilder(creds).Build(claims)
}

// Build validates claims and returns the signed token.
func (b *Builder) Build(claims Claims) (string, error) {
	if err := validate.Credentials(b.creds.APIKey(), b.creds.APISecret()); err != nil {
		return "", err
	}
	if _, err := session.ParseID(claims.SessionID); err != nil {
		return "", err
	}

	role := claims.Role
	if role == "" {
		role = RolePublisher
	}
	if err := role.Validate(); err != nil {
		return "", err
	}
	if err := validate.ConnectionData(claims.Data); err != nil {
		return "", err
	}

	now := b.now()
	createTime := now.Unix()
	expireTime := claims.ExpireTime.Unix()
	if claims.ExpireTime.IsZero() {
		expireTime = now.Add(DefaultLifetime).Unix()
	}
	if err := validate.ExpireTime(createTime, expireTime); err != nil {
		return "", err
	}

	nonce, err := b.nonce()
	if err != nil {
		return "", err
	}

	fields := []Field{
		{Key: "session_id", Value: claims.SessionID},
		{Key: "create_time", Value: strconv.FormatInt(createTime, 10)},
		{Key: "expire_time", Value: strconv.FormatInt(expireTime, 10)},
		{Key: "nonce", Value: nonce},
		{Key: "role", Value: role.String()},
	}
	if claims.Data != "" {
		fields = append(fields, Field{Key: "connection_data", Value: claims.Data})
	}
	if len(claims.InitialLayoutClassList) > 0 {
		fields = append(fields, Field{Key: "initial_layout_class_list", Value: strings.Join(claims.InitialLayoutClassList, " ")})
	}

	data := joinFields(fields)
	sig := codec.SignHex(b.creds.APISecret(), data)
	inner := "partner_id=" + b.creds.APIKeyString() + "&sig=" + sig + "&" + data
	return Prefix + codec.EncodeBase64([]byte(inner)), nil
}

func (b *Builder) nonce() (string, error) {
	var buf [8]byte
	if _, err := io.ReadFull(b.rand, buf[:]); err != nil {
		return "", fmt.Errorf("token: read nonce: %w", err)
	}
	return strconv.FormatUint(binary.BigEndian.Uint64(buf[:]), 10), nil
}

func joinFields(fields []Field) string {
	var sb strings.Builder
	for i, f := range fields {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(f.Key)
		sb.WriteByte('=')
		sb.WriteString(valueEscaper.Replace(f.Value))
	}
	return sb.String()
}

// valueEscaper percent-encodes only the field delimiters, so values without
// them read back verbatim when split on "&" then "=".
var valueEscaper = strings.NewReplacer("%", "%25", "&", "%26", "=", "%3D")
