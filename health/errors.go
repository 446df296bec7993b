package health

import "errors"

var (
	// ErrCheckTimeout marks a check abandoned at the aggregator deadline.
	ErrCheckTimeout = errors.New("health: check timeout")

	// ErrDuplicateChecker is returned when a name is registered twice.
	ErrDuplicateChecker = errors.New("health: duplicate checker")

	// ErrNilChecker is returned when registering a nil checker.
	ErrNilChecker = errors.New("health: nil checker")
)
