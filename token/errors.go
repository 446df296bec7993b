package token

import "errors"

var (
	// ErrMalformedToken indicates a token that is not in the T1 format.
	ErrMalformedToken = errors.New("token: malformed token")

	// ErrSignatureMismatch indicates the token signature does not match its data.
	ErrSignatureMismatch = errors.New("token: signature mismatch")

	// ErrInvalidProjectToken indicates a project JWT that fails verification.
	ErrInvalidProjectToken = errors.New("token: invalid project token")
)
