package validate

import (
	"strconv"
	"strings"

	"github.com/jonwraymond/opentok/codec"
)

// SessionParts is the decoded internal layout of a session identifier.
type SessionParts struct {
	// Prefix is the two-character format marker (for example "1_" or "2_").
	Prefix string
	// PartnerID is the api key of the project that owns the session.
	PartnerID int
	// Fields holds every "~"-separated field of the decoded payload.
	Fields []string
}

// sessionPrefixLen is the length of the format marker stripped before
// base64 decoding.
const sessionPrefixLen = 2

// DecodeSessionID decodes id into its embedded fields. It fails with
// MsgSessionIDEmpty on an empty id and MsgInvalidSessionID on anything that
// does not decode to a payload carrying a numeric partner id.
func DecodeSessionID(id string) (SessionParts, error) {
	if strings.TrimSpace(id) == "" {
		return SessionParts{}, argErr("sessionId", MsgSessionIDEmpty)
	}
	if len(id) <= sessionPrefixLen {
		return SessionParts{}, argErr("sessionId", MsgInvalidSessionID)
	}

	raw, err := codec.DecodeBase64Lenient(id[sessionPrefixLen:])
	if err != nil {
		return SessionParts{}, argErr("sessionId", MsgInvalidSessionID)
	}

	fields := strings.Split(string(raw), "~")
	if len(fields) < 2 {
		return SessionParts{}, argErr("sessionId", MsgInvalidSessionID)
	}
	partner, err := strconv.Atoi(fields[1])
	if err != nil || partner <= 0 {
		return SessionParts{}, argErr("sessionId", MsgInvalidSessionID)
	}

	return SessionParts{
		Prefix:    id[:sessionPrefixLen],
		PartnerID: partner,
		Fields:    fields,
	}, nil
}

// SessionIDPresent checks only that id is non-empty. Operations that address
// a session on the server, rather than sign for it, accept any non-empty id.
func SessionIDPresent(id string) error {
	if strings.TrimSpace(id) == "" {
		return argErr("sessionId", MsgSessionIDEmpty)
	}
	return nil
}
