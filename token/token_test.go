package token

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jonwraymond/opentok/credentials"
	"github.com/jonwraymond/opentok/validate"
)

const (
	testAPIKey    = 123456
	testAPISecret = "1234567890abcdef1234567890abcdef1234567890"
	testSessionID = "1_MX4xMjM0NTZ-flNhdCBNYXIgMTUgMTQ6NDI6MjMgUERUIDIwMTR-MC40OTAxMzAyNX4"
)

var testNow = time.Date(2024, 3, 15, 14, 42, 23, 0, time.UTC)

func testCreds(t *testing.T) credentials.Credentials {
	t.Helper()
	c, err := credentials.New(testAPIKey, testAPISecret)
	if err != nil {
		t.Fatalf("credentials.New() error = %v", err)
	}
	return c
}

func testBuilder(t *testing.T) *Builder {
	t.Helper()
	return NewBuilder(testCreds(t),
		WithClock(func() time.Time { return testNow }),
		WithRandom(bytes.NewReader(bytes.Repeat([]byte{0x01}, 64))),
	)
}

func mustVerify(t *testing.T, tok string) Decoded {
	t.Helper()
	if !strings.HasPrefix(tok, Prefix) {
		t.Fatalf("token %q does not start with %q", tok, Prefix)
	}
	d, err := Verify(tok, testAPISecret)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	return d
}

func field(t *testing.T, d Decoded, key string) string {
	t.Helper()
	v, ok := d.Get(key)
	if !ok {
		t.Fatalf("token has no %s field; fields = %v", key, d.Fields)
	}
	return v
}

func TestBuild_Defaults(t *testing.T) {
	tok, err := testBuilder(t).Build(Claims{SessionID: testSessionID})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	d := mustVerify(t, tok)

	if got := field(t, d, "partner_id"); got != "123456" {
		t.Errorf("partner_id = %q, want %q", got, "123456")
	}
	if got := field(t, d, "session_id"); got != testSessionID {
		t.Errorf("session_id = %q, want %q", got, testSessionID)
	}
	if got := field(t, d, "role"); got != "PUBLISHER" {
		t.Errorf("role = %q, want %q", got, "PUBLISHER")
	}
	if got := field(t, d, "nonce"); got == "" {
		t.Error("nonce is empty")
	}
	field(t, d, "sig")

	create, err := d.CreateTime()
	if err != nil || !create.Equal(testNow) {
		t.Errorf("CreateTime() = %v, %v, want %v", create, err, testNow)
	}
	expire, err := d.ExpireTime()
	if err != nil || !expire.Equal(testNow.Add(DefaultLifetime)) {
		t.Errorf("ExpireTime() = %v, %v, want %v", expire, err, testNow.Add(DefaultLifetime))
	}
	if _, ok := d.Get("connection_data"); ok {
		t.Error("connection_data present without Data")
	}
}

func TestBuild_FieldOrder(t *testing.T) {
	tok, err := testBuilder(t).Build(Claims{
		SessionID:              testSessionID,
		Data:                   "name=Johnny",
		InitialLayoutClassList: []string{"focus"},
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	d := mustVerify(t, tok)

	want := []string{"partner_id", "sig", "session_id", "create_time", "expire_time", "nonce", "role", "connection_data", "initial_layout_class_list"}
	if len(d.Fields) != len(want) {
		t.Fatalf("len(Fields) = %d, want %d", len(d.Fields), len(want))
	}
	for i, key := range want {
		if d.Fields[i].Key != key {
			t.Errorf("Fields[%d].Key = %q, want %q", i, d.Fields[i].Key, key)
		}
	}
}

func TestBuild_Claims(t *testing.T) {
	tests := []struct {
		name   string
		claims Claims
		key    string
		want   string
	}{
		{
			name:   "subscriber role",
			claims: Claims{SessionID: testSessionID, Role: RoleSubscriber},
			key:    "role",
			want:   "SUBSCRIBER",
		},
		{
			name:   "moderator role",
			claims: Claims{SessionID: testSessionID, Role: RoleModerator},
			key:    "role",
			want:   "MODERATOR",
		},
		{
			name:   "expire time",
			claims: Claims{SessionID: testSessionID, ExpireTime: testNow.Add(10 * time.Second)},
			key:    "expire_time",
			want:   "1710513753",
		},
		{
			name:   "connection data",
			claims: Claims{SessionID: testSessionID, Data: "Somedatafortheconnection"},
			key:    "connection_data",
			want:   "Somedatafortheconnection",
		},
		{
			name:   "connection data with separators",
			claims: Claims{SessionID: testSessionID, Data: "a=b&c=d"},
			key:    "connection_data",
			want:   "a=b&c=d",
		},
		{
			name:   "single layout class",
			claims: Claims{SessionID: testSessionID, InitialLayoutClassList: []string{"focus"}},
			key:    "initial_layout_class_list",
			want:   "focus",
		},
		{
			name:   "layout classes are space joined",
			claims: Claims{SessionID: testSessionID, InitialLayoutClassList: []string{"focus", "inactive"}},
			key:    "initial_layout_class_list",
			want:   "focus inactive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok, err := testBuilder(t).Build(tt.claims)
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}
			d := mustVerify(t, tok)
			if got := field(t, d, tt.key); got != tt.want {
				t.Errorf("%s = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestBuild_InvalidSessionIDs(t *testing.T) {
	b := testBuilder(t)
	cases := []Claims{
		{},
		{SessionID: ""},
		{SessionID: "NOT A VALID SESSION ID"},
	}

	var failures []error
	for _, c := range cases {
		if _, err := b.Build(c); err != nil {
			failures = append(failures, err)
		}
	}
	if len(failures) != 3 {
		t.Fatalf("Build() failed %d times, want 3", len(failures))
	}
	for _, err := range failures {
		var argErr *validate.ArgumentError
		if !errors.As(err, &argErr) {
			t.Errorf("Build() error = %T, want *validate.ArgumentError", err)
		}
	}
	if failures[2].Error() != validate.MsgInvalidSessionID {
		t.Errorf("Build() error = %q, want %q", failures[2].Error(), validate.MsgInvalidSessionID)
	}
}

func TestBuild_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		claims Claims
	}{
		{name: "unknown role", claims: Claims{SessionID: testSessionID, Role: "admin"}},
		{name: "data too long", claims: Claims{SessionID: testSessionID, Data: strings.Repeat("x", 1001)}},
		{name: "expire in the past", claims: Claims{SessionID: testSessionID, ExpireTime: testNow.Add(-time.Hour)}},
		{name: "expire at create time", claims: Claims{SessionID: testSessionID, ExpireTime: testNow}},
		{name: "expire at 30 days", claims: Claims{SessionID: testSessionID, ExpireTime: testNow.Add(30 * 24 * time.Hour)}},
		{name: "expire beyond 30 days", claims: Claims{SessionID: testSessionID, ExpireTime: testNow.Add(31 * 24 * time.Hour)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := testBuilder(t).Build(tt.claims)
			if !errors.Is(err, validate.ErrInvalidArgument) {
				t.Errorf("Build() error = %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestBuild_AcceptsBoundaries(t *testing.T) {
	for _, d := range []time.Duration{time.Second, 29 * 24 * time.Hour} {
		_, err := testBuilder(t).Build(Claims{SessionID: testSessionID, ExpireTime: testNow.Add(d)})
		if err != nil {
			t.Errorf("Build(expire=+%v) error = %v", d, err)
		}
	}
	if _, err := testBuilder(t).Build(Claims{SessionID: testSessionID, Data: strings.Repeat("x", 1000)}); err != nil {
		t.Errorf("Build(1000 byte data) error = %v", err)
	}
}

func TestBuild_NonceIsFresh(t *testing.T) {
	creds := testCreds(t)
	first, err := Build(creds, Claims{SessionID: testSessionID})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	second, err := Build(creds, Claims{SessionID: testSessionID})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	n1 := field(t, mustVerify(t, first), "nonce")
	n2 := field(t, mustVerify(t, second), "nonce")
	if n1 == n2 {
		t.Errorf("nonce repeated across builds: %q", n1)
	}
}

func TestBuild_RandomFailure(t *testing.T) {
	b := NewBuilder(testCreds(t), WithRandom(bytes.NewReader(nil)))
	if _, err := b.Build(Claims{SessionID: testSessionID}); err == nil {
		t.Fatal("Build() expected error when the random source is exhausted")
	}
}

func TestBuild_ZeroCredentials(t *testing.T) {
	_, err := NewBuilder(credentials.Credentials{}).Build(Claims{SessionID: testSessionID})
	if !errors.Is(err, validate.ErrInvalidArgument) {
		t.Fatalf("Build() error = %v, want ErrInvalidArgument", err)
	}
}

func TestVerify_Rejects(t *testing.T) {
	tok, err := testBuilder(t).Build(Claims{SessionID: testSessionID})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if _, err := Verify(tok, "wrong-secret"); !errors.Is(err, ErrSignatureMismatch) {
		t.Errorf("Verify(wrong secret) error = %v, want ErrSignatureMismatch", err)
	}

	d, _ := Decode(tok)
	role, _ := d.Get("role")
	raw, _ := decodeInner(tok)
	tampered := Prefix + encodeInner(strings.Replace(raw, "role="+role, "role=MODERATOR", 1))
	if _, err := Verify(tampered, testAPISecret); !errors.Is(err, ErrSignatureMismatch) {
		t.Errorf("Verify(tampered) error = %v, want ErrSignatureMismatch", err)
	}
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name string
		tok  string
	}{
		{name: "empty", tok: ""},
		{name: "wrong prefix", tok: "T2==" + encodeInner("partner_id=1&sig=ab&role=publisher")},
		{name: "bad base64", tok: Prefix + "!!!"},
		{name: "missing sig", tok: Prefix + encodeInner("partner_id=1&role=publisher")},
		{name: "field without separator", tok: Prefix + encodeInner("partner_id=1&sig=ab&role")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(tt.tok); !errors.Is(err, ErrMalformedToken) {
				t.Errorf("Decode() error = %v, want ErrMalformedToken", err)
			}
		})
	}
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want Role
	}{
		{in: "SUBSCRIBER", want: RoleSubscriber},
		{in: "publisher", want: RolePublisher},
		{in: "Moderator", want: RoleModerator},
	}
	for _, tt := range tests {
		if r, err := ParseRole(tt.in); err != nil || r != tt.want {
			t.Errorf("ParseRole(%q) = %q, %v, want %q", tt.in, r, err, tt.want)
		}
	}
	if _, err := ParseRole("admin"); err == nil {
		t.Error("ParseRole(admin) expected error")
	}
}

// Splitting on "&" then "=" without unescaping must read plain values back.
func TestBuild_PlainSplit(t *testing.T) {
	tok, err := testBuilder(t).Build(Claims{
		SessionID:              testSessionID,
		Data:                   "Some data for the connection",
		InitialLayoutClassList: []string{"focus", "inactive"},
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	raw, err := decodeInner(tok)
	if err != nil {
		t.Fatalf("decodeInner() error = %v", err)
	}

	got := make(map[string]string)
	for _, part := range strings.Split(raw, "&") {
		kv := strings.Split(part, "=")
		got[kv[0]] = kv[1]
	}
	want := map[string]string{
		"role":                      "PUBLISHER",
		"connection_data":           "Some data for the connection",
		"initial_layout_class_list": "focus inactive",
	}
	for key, w := range want {
		if got[key] != w {
			t.Errorf("%s = %q, want %q", key, got[key], w)
		}
	}
}
