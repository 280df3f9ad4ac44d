package sonar

import "time"

// Clock supplies the current time to the sweep and the engine.
type Clock interface {
	Now() time.Time
}

// RealClock reads the wall clock.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// Millis converts t to Unix milliseconds, the timestamp unit used by points.
func Millis(t time.Time) int64 { return t.UnixMilli() }
