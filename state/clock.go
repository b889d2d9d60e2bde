package state

import "sync/atomic"

// Clock is the logical clock shared by every router in a simulation.
// Engines only ever read it; the scheduler is the sole writer.
type Clock struct {
	tick atomic.Uint64
}

// ReadTick returns the current tick count.
func (c *Clock) ReadTick() uint64 {
	return c.tick.Load()
}

// Advance moves the clock forward by one tick and returns the new value.
func (c *Clock) Advance() uint64 {
	return c.tick.Add(1)
}
