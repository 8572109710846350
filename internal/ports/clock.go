package ports

import "time"

// Clock abstracts "now" so the date validation and the express
// rolling-window logic stay deterministic under test.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
