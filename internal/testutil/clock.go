package testutil

import (
	"fmt"
	"time"
)

// FixedNow is the reference instant used across tests: Friday 2024-05-03 09:30 UTC.
var FixedNow = time.Date(2024, time.May, 3, 9, 30, 0, 0, time.UTC)

// Clock is a manually advanced clock.
type Clock struct {
	now time.Time
}

// NewClock creates a Clock set to t.
func NewClock(t time.Time) *Clock {
	return &Clock{now: t}
}

// Now returns the current fake time.
func (c *Clock) Now() time.Time {
	return c.now
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// SequentialIDs returns an id generator yielding prefix-1, prefix-2, ...
func SequentialIDs(prefix string) func() (string, error) {
	n := 0
	return func() (string, error) {
		n++
		return fmt.Sprintf("%s-%d", prefix, n), nil
	}
}
