// Package clock provides the wall clock used outside tests.
package clock

import "time"

// SystemClock implements ports.Clock with UTC wall time truncated to
// microseconds, the precision PostgreSQL stores.
type SystemClock struct{}

func NewSystemClock() SystemClock {
	return SystemClock{}
}

func (SystemClock) Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
