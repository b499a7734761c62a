package device

import "github.com/edgelink/iobridge/pkg/proto"

// State is the engine's view of the I/O lines plus the sampling and
// streaming configuration. It is owned by a single Engine and touched
// only from its cycle.
type State struct {
	LEDMask byte      // low 4 bits
	DIP     byte      // last switch snapshot, low 4 bits
	Analog  [8]uint16 // 0..3 raw reads, 4..7 the raw reads halved

	DigitalPeriod uint16 // ms
	AnalogPeriod  uint16 // ms
	Streaming     bool
}

// Power-on defaults for the sample periods.
const (
	DefaultDigitalPeriod uint16 = 100
	DefaultAnalogPeriod  uint16 = 50
)

// ClampPeriod clamps a requested sample period into the allowed range.
func ClampPeriod(ms uint16) uint16 {
	if ms < proto.PeriodMin {
		return proto.PeriodMin
	}
	if ms > proto.PeriodMax {
		return proto.PeriodMax
	}
	return ms
}

// Frame captures the state as a wire data frame.
func (s *State) Frame() *proto.DataFrame {
	return &proto.DataFrame{
		DIP:    s.DIP & 0x0f,
		LED:    s.LEDMask & 0x0f,
		Analog: s.Analog,
	}
}
