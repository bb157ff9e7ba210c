package usgs

import "errors"

// Validation errors, reported before any network activity. Fetch checks the
// rules in a fixed order and returns the first violation; callers
// discriminate with errors.Is.
var (
	ErrMissingStartTime      = errors.New("start time must be set")
	ErrStartAfterEnd         = errors.New("start time cannot be after end time")
	ErrStartInFuture         = errors.New("start time cannot be in the future")
	ErrMagnitudeBelowFloor   = errors.New("minimum magnitude cannot be below 0")
	ErrMagnitudeAboveCeiling = errors.New("maximum magnitude cannot be above 10")
)
