package sim

// Clock is a manual device.Clock for deterministic tests. The zero
// value starts at 0 ms.
type Clock struct {
	now uint32
}

// Millis implements device.Clock.
func (c *Clock) Millis() uint32 {
	return c.now
}

// Advance moves the clock forward.
func (c *Clock) Advance(ms uint32) {
	c.now += ms
}

// Set jumps to an absolute value; wrapping past zero is allowed.
func (c *Clock) Set(ms uint32) {
	c.now = ms
}
