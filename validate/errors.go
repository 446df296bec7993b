package validate

import "errors"

// ErrInvalidArgument is matched by every *ArgumentError via errors.Is.
var ErrInvalidArgument = errors.New("validate: invalid argument")

// Stable messages. Callers pattern-match on these.
const (
	MsgCountNegative    = "count cannot be smaller than 0"
	MsgInvalidSessionID = "Session Id is not valid"
	MsgLayoutStylesheet = "Could not set layout, stylesheet must be set if and only if type is custom"
)

// Remaining messages. Kept as constants so tests and callers share them.
const (
	MsgOffsetNegative        = "offset cannot be smaller than 0"
	MsgSessionIDEmpty        = "Session id cannot be empty"
	MsgConnectionIDEmpty     = "Connection id cannot be empty"
	MsgStreamIDEmpty         = "Stream id cannot be empty"
	MsgArchiveIDEmpty        = "Archive id cannot be empty"
	MsgBroadcastIDEmpty      = "Broadcast id cannot be empty"
	MsgSignalDataEmpty       = "Signal data cannot be empty"
	MsgAlwaysArchiveRelayed  = "A session with always archive mode must also have the routed media mode"
	MsgInvalidLocation       = "Invalid IP address: "
	MsgResolutionIndividual  = "Resolution can't be specified for individual archives"
	MsgInvalidResolution     = "Invalid resolution: "
	MsgUnknownLayoutType     = "Unknown layout type: "
	MsgConnectionDataTooLong = "Invalid data for connection, must be at most 1000 bytes"
	MsgExpireTimeRange       = "Invalid expiration time for token, must be after the creation time and within 30 days"
	MsgUnknownRole           = "Unknown role: "
	MsgMaxDurationRange      = "maxDuration must be between 60 and 36000 seconds"
	MsgNoBroadcastOutputs    = "A broadcast must have at least one output"
	MsgTooManyRTMPTargets    = "A broadcast supports at most 5 RTMP targets"
	MsgRTMPTargetIncomplete  = "RTMP target must have a server URL and a stream name"
	MsgInvalidCredentials    = "API key must be positive and API secret must not be empty"
)

// ArgumentError reports a caller-supplied value that is invalid or
// contradicts another value. It is always raised before any network action
// and is never retried.
type ArgumentError struct {
	// Field names the offending parameter, for diagnostics.
	Field string
	// Message is the stable, caller-visible text.
	Message string
}

// Error returns Message unchanged.
func (e *ArgumentError) Error() string { return e.Message }

// Is reports whether target is ErrInvalidArgument.
func (e *ArgumentError) Is(target error) bool { return target == ErrInvalidArgument }

func argErr(field, msg string) error {
	return &ArgumentError{Field: field, Message: msg}
}

// IsArgumentError reports whether err is or wraps an *ArgumentError.
func IsArgumentError(err error) bool {
	var ae *ArgumentError
	return errors.As(err, &ae)
}
