package extract

import "time"

// Clock abstracts time for the modal wait so tests can advance through
// the timeout without wall-clock delay.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) Now() time.Time                         { return time.Now() }
func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }
