package core

import (
	"fmt"
	"math"
	"time"
)

// Timer is a pending one-shot callback.
type Timer interface {
	// Stop cancels the callback. It reports false when the callback has
	// already fired or been stopped.
	Stop() bool
}

// Clock schedules one-shot callbacks. The engine's tick loop depends on it
// instead of the time package so tests can fire ticks by hand.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// SystemClock schedules callbacks on runtime timers.
type SystemClock struct{}

// AfterFunc runs f on its own goroutine once d has elapsed.
func (SystemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// MaxIntervalMillis is the largest millisecond count a time.Duration holds.
const MaxIntervalMillis = math.MaxInt64 / int64(time.Millisecond)

// MillisToInterval converts a positive millisecond count to a tick interval.
func MillisToInterval(ms int64) (time.Duration, error) {
	if ms <= 0 || ms > MaxIntervalMillis {
		return 0, fmt.Errorf("%w: %dms", ErrInvalidInterval, ms)
	}
	return time.Duration(ms) * time.Millisecond, nil
}
