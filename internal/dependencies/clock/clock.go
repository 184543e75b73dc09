package clock

import "time"

// Clock supplies timestamps for players, rooms and games. Tests swap in a fixed clock.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in UTC
type SystemClock struct{}

// New creates a SystemClock
func New() *SystemClock {
	return &SystemClock{}
}

// Now returns the current UTC time
func (c *SystemClock) Now() time.Time {
	return time.Now().UTC()
}
