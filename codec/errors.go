package codec

import (
	"errors"
	"fmt"
)

// ErrDecode is matched by every *DecodeError via errors.Is.
var ErrDecode = errors.New("codec: decode failed")

// DecodeError reports malformed base64 or signature material.
type DecodeError struct {
	// Input is a short prefix of the rejected value, for diagnostics only.
	Input string
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("codec: cannot decode %q", e.Input)
	}
	return fmt.Sprintf("codec: cannot decode %q: %v", e.Input, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Is reports whether target is ErrDecode.
func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

func newDecodeError(input string, err error) *DecodeError {
	const maxInput = 32
	if len(input) > maxInput {
		input = input[:maxInput] + "..."
	}
	return &DecodeError{Input: input, Err: err}
}
