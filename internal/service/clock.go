package service

import "time"

// Clock supplies the current time. Validation never reads the wall clock
// directly, so tests can pin "now".
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }
