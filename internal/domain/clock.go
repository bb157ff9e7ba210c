package domain

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// clock is a package-level time source so tests can freeze time via SetClock.
// Production code uses the real clock; tests inject a fake for deterministic
// validation of time-window constraints.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// NowUTC returns the current instant in UTC. All query time handling goes
// through this so a fake clock controls "now" everywhere at once.
func NowUTC() time.Time {
	return clock.Now().UTC()
}

// CivilUTC interprets calendar components as local wall-clock time and
// converts to UTC, with seconds fixed at zero. Out-of-range components are
// normalized the way time.Date normalizes them (month 13 rolls into the next
// year); passing such values is a caller error, not a validation failure.
func CivilUTC(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, time.Local).UTC()
}
