package device

import "time"

// NumLines is the number of lines per I/O class on the board.
const NumLines = 4

// Board abstracts the physical I/O lines: LED outputs, switch inputs
// and analog channels, each addressed by index 0..3. ReadDigital
// reports true when the switch is active (the pin reads HIGH).
type Board interface {
	ReadDigital(i int) bool
	WriteDigital(i int, on bool)
	ReadAnalog(i int) uint16
}

// Clock provides elapsed milliseconds. The counter is monotonic but
// may wrap; consumers compare with unsigned subtraction.
type Clock interface {
	Millis() uint32
}

// WallClock implements Clock over the process monotonic clock.
type WallClock struct {
	start time.Time
}

// NewWallClock creates a WallClock starting at zero.
func NewWallClock() *WallClock {
	return &WallClock{start: time.Now()}
}

// Millis implements Clock.
func (c *WallClock) Millis() uint32 {
	return uint32(time.Since(c.start) / time.Millisecond)
}
