package engine

import "time"

// Clock abstracts time.Now() so that "today" can be pinned in tests.
type Clock interface {
	Now() time.Time
}

// RealClock reads the wall clock in a fixed location.
// A nil Location means time.Local.
type RealClock struct {
	Location *time.Location
}

// Now returns the current time in the clock's location.
func (c RealClock) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

// Today returns the calendar month and day of clock's current time.
func Today(clock Clock) (int, int) {
	_, m, d := clock.Now().Date()
	return int(m), d
}
