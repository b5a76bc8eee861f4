package testutil

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// FixedClock returns a clockwork fake clock that stays at t until advanced.
func FixedClock(t time.Time) clockwork.Clock {
	return clockwork.NewFakeClockAt(t)
}

// MustParseRFC3339 parses an RFC3339 timestamp or panics; intended for tests.
func MustParseRFC3339(v string) time.Time {
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		panic(err)
	}
	return t
}
