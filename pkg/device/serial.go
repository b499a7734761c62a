package device

import (
	"io"
	"sync"
)

// Serial is the byte transport as seen by the engine. Reads never
// block: Available reports how many inbound bytes are buffered and
// ReadByte pops one if present.
type Serial interface {
	io.Writer
	Available() int
	ReadByte() (byte, bool)
	// Err reports a transport failure, nil while healthy. On real
	// hardware the UART never fails; off-target transports use it to
	// signal disconnect.
	Err() error
}

// QueuedPort adapts a blocking io.ReadWriter into a Serial by pumping
// reads into a buffered queue from a separate goroutine, standing in
// for interrupt-driven receive on real hardware.
type QueuedPort struct {
	w  io.Writer
	ch chan byte

	lock sync.Mutex
	err  error
}

// QueueDepth is the inbound buffer size of a QueuedPort.
const QueueDepth = 256

// NewQueuedPort wraps rw and starts the read pump.
func NewQueuedPort(rw io.ReadWriter) *QueuedPort {
	p := &QueuedPort{w: rw, ch: make(chan byte, QueueDepth)}
	go p.pump(rw)
	return p
}

func (p *QueuedPort) pump(r io.Reader) {
	buf := make([]byte, 64)
	for {
		n, err := r.Read(buf)
		for _, b := range buf[:n] {
			p.ch <- b
		}
		if err != nil {
			p.lock.Lock()
			p.err = err
			p.lock.Unlock()
			return
		}
	}
}

// Available implements Serial.
func (p *QueuedPort) Available() int {
	return len(p.ch)
}

// ReadByte implements Serial.
func (p *QueuedPort) ReadByte() (byte, bool) {
	select {
	case b := <-p.ch:
		return b, true
	default:
		return 0, false
	}
}

// Write implements io.Writer.
func (p *QueuedPort) Write(b []byte) (int, error) {
	return p.w.Write(b)
}

// Err implements Serial.
func (p *QueuedPort) Err() error {
	p.lock.Lock()
	defer p.lock.Unlock()
	if p.err != nil && len(p.ch) > 0 {
		// drain buffered bytes before surfacing the failure
		return nil
	}
	return p.err
}
