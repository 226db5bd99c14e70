// Package rtclock injects the ambient process clock behind a narrow
// capability, per the "ambient process clock" design note. The circuit
// breaker reads its timeouts from a Clock, and the Scorer holds one; ETA
// propagation and feature-vector time-bucketing do not call a clock at all,
// since they derive every time from the departure time they are given.
package rtclock

import "time"

// Clock exposes the current instant. Production code uses System; tests use
// Fixed (or their own Clock implementation) to pin the clock to known values.
type Clock interface {
	Now() time.Time
}

// System is the production Clock backed by the real wall clock.
type System struct{}

// Now returns time.Now().
func (System) Now() time.Time { return time.Now() }

// Fixed is a Clock that always returns the same instant. Useful for
// reproducing a single departure_time across a test table.
type Fixed struct {
	At time.Time
}

// Now returns the fixed instant.
func (f Fixed) Now() time.Time { return f.At }
