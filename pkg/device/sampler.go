package device

// ticker fires when the configured period has elapsed since the last
// fire. The comparison uses uint32 subtraction so a wrapped
// millisecond counter does not stall it.
type ticker struct {
	last uint32
}

func (t *ticker) fire(now uint32, period uint16) bool {
	if now-t.last < uint32(period) {
		return false
	}
	t.last = now
	return true
}

// sampleDigital refreshes the switch snapshot from the board and
// returns the fresh mask.
func (e *Engine) sampleDigital() byte {
	var m byte
	for i := 0; i < NumLines; i++ {
		if e.board.ReadDigital(i) {
			m |= 1 << uint(i)
		}
	}
	e.state.DIP = m
	return m
}

// sampleAnalog refreshes all eight analog values as a unit: four raw
// channel reads plus their halved derivatives.
func (e *Engine) sampleAnalog() {
	for i := 0; i < NumLines; i++ {
		raw := e.board.ReadAnalog(i)
		e.state.Analog[i] = raw
		e.state.Analog[i+NumLines] = raw / 2
	}
}

// applyLEDMask stores the mask and drives the LED outputs.
func (e *Engine) applyLEDMask(mask byte) {
	e.state.LEDMask = mask & 0x0f
	for i := 0; i < NumLines; i++ {
		e.board.WriteDigital(i, e.state.LEDMask&(1<<uint(i)) != 0)
	}
}
