package clock

import "time"

// Resolution is the precision of entry timestamps.
// Every storage backend round-trips times at this precision.
const Resolution = time.Millisecond

// Clock stamps entries and status responses
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock
type RealClock struct{}

// New creates a new RealClock
func New() *RealClock {
	return &RealClock{}
}

// Now returns the current UTC time truncated to Resolution
func (c *RealClock) Now() time.Time {
	return time.Now().UTC().Truncate(Resolution)
}
