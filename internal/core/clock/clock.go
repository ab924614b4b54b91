// Package clock provides the business-timezone clock.
// Sale and intake dates follow the trading day in the configured timezone,
// not the server's local time, so services take a Clock instead of calling
// time.Now directly.
package clock

import (
	"fmt"
	"time"
)

// Clock returns the current business time.
type Clock interface {
	Now() time.Time
}

// Business is a Clock pinned to a fixed IANA timezone.
type Business struct {
	loc *time.Location
}

// New loads the timezone and returns a Business clock.
func New(tz string) (*Business, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", tz, err)
	}
	return &Business{loc: loc}, nil
}

// Now returns the current time in the business timezone.
func (b *Business) Now() time.Time {
	return time.Now().In(b.loc)
}

// Location returns the business timezone.
func (b *Business) Location() *time.Location {
	return b.loc
}

// DayBounds returns the start (inclusive) and end (exclusive) of the
// business day containing t.
func DayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	local := t.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}

// SameBusinessDay reports whether a and b fall on the same day in loc.
func SameBusinessDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// Fixed is a Clock frozen at a single instant, for tests.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time { return f.T }
