// Package sim provides hardware-free implementations of the device
// interfaces for tests and off-target runs.
package sim

import "sync"

// Board is an in-memory device.Board. Switch and analog inputs are set
// by test or demo code; LED writes are recorded. The lock only guards
// against demo code driving inputs from another goroutine, the engine
// itself is single-threaded.
type Board struct {
	lock   sync.Mutex
	dip    byte
	leds   byte
	analog [4]uint16
	source func(i int) uint16
}

// NewBoard creates a Board with all inputs at zero.
func NewBoard() *Board {
	return &Board{}
}

// SetDIP sets the switch inputs, low 4 bits.
func (b *Board) SetDIP(mask byte) {
	b.lock.Lock()
	b.dip = mask & 0x0f
	b.lock.Unlock()
}

// SetAnalog sets one analog input.
func (b *Board) SetAnalog(i int, v uint16) {
	b.lock.Lock()
	b.analog[i] = v
	b.lock.Unlock()
}

// SetAnalogSource installs a generator consulted on every analog read,
// overriding fixed values. Pass nil to restore fixed values.
func (b *Board) SetAnalogSource(f func(i int) uint16) {
	b.lock.Lock()
	b.source = f
	b.lock.Unlock()
}

// LEDs returns the last written LED mask.
func (b *Board) LEDs() byte {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.leds
}

// ReadDigital implements device.Board.
func (b *Board) ReadDigital(i int) bool {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.dip&(1<<uint(i)) != 0
}

// WriteDigital implements device.Board.
func (b *Board) WriteDigital(i int, on bool) {
	b.lock.Lock()
	if on {
		b.leds |= 1 << uint(i)
	} else {
		b.leds &^= 1 << uint(i)
	}
	b.lock.Unlock()
}

// ReadAnalog implements device.Board.
func (b *Board) ReadAnalog(i int) uint16 {
	b.lock.Lock()
	defer b.lock.Unlock()
	if b.source != nil {
		return b.source(i)
	}
	return b.analog[i]
}

// Sweep returns an analog source ramping each channel at a different
// rate, useful for demo runs.
func Sweep() func(i int) uint16 {
	var ticks [4]uint32
	return func(i int) uint16 {
		ticks[i] += uint32(i + 1)
		return uint16(ticks[i] % 1024)
	}
}
