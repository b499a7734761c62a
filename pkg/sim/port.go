package sim

import "bytes"

// Port is an in-memory device.Serial: inbound bytes are queued with
// Push and everything the engine writes accumulates in Out.
type Port struct {
	Out bytes.Buffer

	in  []byte
	err error
}

// Push queues inbound bytes for the engine to read.
func (p *Port) Push(b ...byte) {
	p.in = append(p.in, b...)
}

// Fail makes the port report a transport error.
func (p *Port) Fail(err error) {
	p.err = err
}

// Available implements device.Serial.
func (p *Port) Available() int {
	return len(p.in)
}

// ReadByte implements device.Serial.
func (p *Port) ReadByte() (byte, bool) {
	if len(p.in) == 0 {
		return 0, false
	}
	b := p.in[0]
	p.in = p.in[1:]
	return b, true
}

// Write implements io.Writer.
func (p *Port) Write(b []byte) (int, error) {
	if p.err != nil {
		return 0, p.err
	}
	return p.Out.Write(b)
}

// Err implements device.Serial.
func (p *Port) Err() error {
	if len(p.in) > 0 {
		return nil
	}
	return p.err
}
