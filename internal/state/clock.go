package state

import "sync/atomic"

// Clock hands out monotonically increasing frame sequence numbers.
type Clock struct {
	counter atomic.Uint64
}

// Tick increments the clock and returns the new value.
func (c *Clock) Tick() uint64 {
	return c.counter.Add(1)
}

// Current returns the last value handed out by Tick.
func (c *Clock) Current() uint64 {
	return c.counter.Load()
}
