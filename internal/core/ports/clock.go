package ports

import "time"

// Clock is the source of "now" for estimates and timestamps.
type Clock interface {
	Now() time.Time
}
