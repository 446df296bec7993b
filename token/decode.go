package token

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jonwraymond/opentok/codec"
)

// Field is one key=value pair of a decoded token.
type Field struct {
	Key   string
	Value string
}

// Decoded is a parsed token. Fields keep their wire order.
type Decoded struct {
	Fields []Field

	// signed is the exact data string covered by the signature.
	signed string
}

// Get returns the value of the first field named key.
func (d Decoded) Get(key string) (string, bool) {
	for _, f := range d.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// PartnerID returns the partner_id field as an integer.
func (d Decoded) PartnerID() (int, error) {
	v, _ := d.Get("partner_id")
	id, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: partner_id %q", ErrMalformedToken, v)
	}
	return id, nil
}

// ExpireTime returns the expire_time field.
func (d Decoded) ExpireTime() (time.Time, error) {
	return d.unixField("expire_time")
}

// CreateTime returns the create_time field.
func (d Decoded) CreateTime() (time.Time, error) {
	return d.unixField("create_time")
}

func (d Decoded) unixField(key string) (time.Time, error) {
	v, _ := d.Get(key)
	secs, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s %q", ErrMalformedToken, key, v)
	}
	return time.Unix(secs, 0), nil
}

// Decode strips the format marker, base64-decodes the rest and splits it on
// "&" then on the first "=". Percent escapes in values are decoded.
func Decode(tok string) (Decoded, error) {
	if !strings.HasPrefix(tok, Prefix) {
		return Decoded{}, fmt.Errorf("%w: missing %s prefix", ErrMalformedToken, Prefix)
	}
	raw, err := codec.DecodeBase64(tok[len(Prefix):])
	if err != nil {
		return Decoded{}, fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}
	inner := string(raw)

	parts := strings.Split(inner, "&")
	fields := make([]Field, 0, len(parts))
	for _, part := range parts {
		key, value, ok := strings.Cut(part, "=")
		if !ok || key == "" {
			return Decoded{}, fmt.Errorf("%w: field %q", ErrMalformedToken, part)
		}
		unescaped, err := url.PathUnescape(value)
		if err != nil {
			return Decoded{}, fmt.Errorf("%w: field %q: %w", ErrMalformedToken, key, err)
		}
		fields = append(fields, Field{Key: key, Value: unescaped})
	}
	if len(fields) < 3 || fields[0].Key != "partner_id" || fields[1].Key != "sig" {
		return Decoded{}, fmt.Errorf("%w: partner_id and sig must lead", ErrMalformedToken)
	}

	// partner_id=<k>&sig=<s>&<signed>
	signed := inner[len(parts[0])+1+len(parts[1])+1:]
	return Decoded{Fields: fields, signed: signed}, nil
}

// Verify decodes tok and checks its signature against secret.
func Verify(tok, secret string) (Decoded, error) {
	d, err := Decode(tok)
	if err != nil {
		return Decoded{}, err
	}
	sig, _ := d.Get("sig")
	ok, err := codec.VerifyHex(secret, d.signed, sig)
	if err != nil {
		return Decoded{}, fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}
	if !ok {
		return Decoded{}, ErrSignatureMismatch
	}
	return d, nil
}
