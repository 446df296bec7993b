package token

import "github.com/jonwraymond/opentok/codec"

func decodeInner(tok string) (string, error) {
	b, err := codec.DecodeBase64(tok[len(Prefix):])
	return string(b), err
}

func encodeInner(s string) string {
	return codec.EncodeBase64([]byte(s))
}
