package codec

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"encoding/hex"
	"strings"
)

// EncodeBase64 encodes b with the standard padded alphabet. Tokens use this
// form unchanged, with no URL-safety transform.
func EncodeBase64(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

// DecodeBase64 decodes a standard padded base64 string.
func DecodeBase64(s string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, newDecodeError(s, err)
	}
	return b, nil
}

// DecodeBase64Lenient decodes base64 that may use the URL-safe alphabet and
// may have lost its padding, as session identifiers do.
func DecodeBase64Lenient(s string) ([]byte, error) {
	normalized := strings.NewReplacer("-", "+", "_", "/").Replace(s)
	if rem := len(normalized) % 4; rem != 0 {
		if rem == 1 {
			return nil, newDecodeError(s, base64.CorruptInputError(len(normalized)))
		}
		normalized += strings.Repeat("=", 4-rem)
	}
	b, err := base64.StdEncoding.DecodeString(normalized)
	if err != nil {
		return nil, newDecodeError(s, err)
	}
	return b, nil
}

// HMACSHA1 returns the HMAC-SHA1 of message keyed by secret.
func HMACSHA1(secret, message []byte) []byte {
	mac := hmac.New(sha1.New, secret)
	mac.Write(message)
	return mac.Sum(nil)
}

// SignHex returns the lowercase hex HMAC-SHA1 of message keyed by secret.
func SignHex(secret, message string) string {
	return hex.EncodeToString(HMACSHA1([]byte(secret), []byte(message)))
}

// VerifyHex reports whether sig is the hex HMAC-SHA1 of message, using a
// constant-time comparison.
func VerifyHex(secret, message, sig string) (bool, error) {
	got, err := hex.DecodeString(sig)
	if err != nil {
		return false, newDecodeError(sig, err)
	}
	return hmac.Equal(got, HMACSHA1([]byte(secret), []byte(message))), nil
}
