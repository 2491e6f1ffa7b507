package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is the base for every "row does not exist" error.
var ErrNotFound = errors.New("not found")

var (
	// ErrFeederNotFound means the referenced feeder is not provisioned.
	ErrFeederNotFound = fmt.Errorf("feeder %w", ErrNotFound)

	// ErrScheduleNotFound means no schedule exists for (feeder_id, feed_time).
	ErrScheduleNotFound = fmt.Errorf("schedule %w", ErrNotFound)
)

// SQLSTATE codes this package reacts to.
const (
	foreignKeyViolation = "23503"
)
