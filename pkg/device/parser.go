package device

import "github.com/edgelink/iobridge/pkg/proto"

// Parser reassembles inbound command frames one byte at a time. It
// never blocks: callers feed whatever bytes are buffered and the
// parser state carries over between calls. Any byte sequence not
// matching the 55 AA header is skipped, so the parser self-heals after
// line noise or partial frames without timeouts.
type Parser struct {
	state   parseState
	cmd     byte
	length  byte
	payload [proto.MaxPayload]byte
	recvLen byte
}

type parseState int

const (
	stateHeader1  parseState = iota // scanning for 0x55
	stateHeader2                    // expecting 0xAA
	stateCmd                        // expecting command code
	stateLen                        // expecting declared length
	statePayload                    // collecting payload bytes
	stateChecksum                   // expecting trailing checksum
)

// Frame is a complete, checksum-valid command frame.
type Frame struct {
	Cmd     byte
	Payload []byte
}

// Reject reports a discarded frame and the status to answer with.
type Reject struct {
	Cmd    byte
	Status byte
}

// ParseResult is the outcome of consuming one byte. At most one of
// Frame and Reject is set.
type ParseResult struct {
	Frame  *Frame
	Reject *Reject
}

// Parse consumes one byte.
func (p *Parser) Parse(b byte) (pr ParseResult) {
	switch p.state {
	case stateHeader1:
		if b == proto.Header1 {
			p.state = stateHeader2
		}
	case stateHeader2:
		if b == proto.HeaderCmd {
			p.state = stateCmd
		} else {
			p.state = stateHeader1
		}
	case stateCmd:
		p.cmd = b
		p.state = stateLen
	case stateLen:
		p.length = b
		switch {
		case int(b) > proto.MaxPayload:
			// reject now, the declared payload is never collected
			pr.Reject = &Reject{Cmd: p.cmd, Status: proto.StatusInvalidParameter}
			p.state = stateHeader1
		case b == 0:
			p.state = stateChecksum
		default:
			p.recvLen = 0
			p.state = statePayload
		}
	case statePayload:
		p.payload[p.recvLen] = b
		p.recvLen++
		if p.recvLen >= p.length {
			p.state = stateChecksum
		}
	case stateChecksum:
		x := p.cmd ^ p.length ^ proto.Checksum(p.payload[:p.length])
		if x == b {
			data := make([]byte, p.length)
			copy(data, p.payload[:p.length])
			pr.Frame = &Frame{Cmd: p.cmd, Payload: data}
		} else {
			pr.Reject = &Reject{Cmd: p.cmd, Status: proto.StatusChecksumInvalid}
		}
		p.state = stateHeader1
	}
	return
}

// Reset returns the parser to scanning for a frame header.
func (p *Parser) Reset() {
	p.state = stateHeader1
}
