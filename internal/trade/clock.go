package trade

import "time"

// Clock provides the time source and timers for trade deadlines
type Clock interface {
	Now() time.Time
	// AfterFunc runs f in its own goroutine once d has elapsed
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a pending AfterFunc call
type Timer interface {
	Stop() bool
}

// RealClock uses the actual system time
type RealClock struct{}

// Now returns the current UTC time
func (RealClock) Now() time.Time {
	return time.Now().UTC()
}

// AfterFunc wraps time.AfterFunc
func (RealClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
