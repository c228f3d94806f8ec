package clock

import "time"

// Clock abstracts the wall clock so streak arithmetic stays deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reads local wall-clock time.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// Func adapts a plain function to Clock.
type Func func() time.Time

func (f Func) Now() time.Time { return f() }
