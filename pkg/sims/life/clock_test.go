package life

import (
	"sync"
	"time"

	"lifeboard/pkg/core"
)

// manualClock hands out timers that only fire when the test says so.
type manualClock struct {
	mu     sync.Mutex
	timers []*manualTimer
}

type manualTimer struct {
	clock   *manualClock
	d       time.Duration
	f       func()
	fired   bool
	stopped bool
}

func (c *manualClock) AfterFunc(d time.Duration, f func()) core.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{clock: c, d: d, f: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

// Pending lists the delays of timers that have neither fired nor been stopped.
func (c *manualClock) Pending() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []time.Duration
	for _, t := range c.timers {
		if !t.fired && !t.stopped {
			out = append(out, t.d)
		}
	}
	return out
}

// take marks the oldest pending timer as fired and returns its callback
// without running it, like a runtime timer whose goroutine has not been
// scheduled yet.
func (c *manualClock) take() func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range c.timers {
		if !t.fired && !t.stopped {
			t.fired = true
			return t.f
		}
	}
	return nil
}

// Fire runs the oldest pending timer and reports whether there was one.
func (c *manualClock) Fire() bool {
	f := c.take()
	if f == nil {
		return false
	}
	f()
	return true
}
