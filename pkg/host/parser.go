package host

import (
	"errors"

	"github.com/edgelink/iobridge/pkg/proto"
)

// Stream-level errors surfaced by the parser. The parser has already
// resynchronized when one is reported.
var (
	// ErrBadChecksum indicates a response frame failed verification.
	ErrBadChecksum = errors.New("response checksum mismatch")
	// ErrOversized indicates a response declared a payload beyond capacity.
	ErrOversized = errors.New("response payload oversized")
)

// Parser reassembles the device to host stream one byte at a time. The
// stream interleaves response frames (55 AB ...) and fixed-size data
// frames (7A 7B ... 7C); garbage between frames is skipped.
type Parser struct {
	state    hostState
	status   byte
	cmd      byte
	length   byte
	payload  [proto.MaxPayload]byte
	recvLen  byte
	frame    [proto.FrameSize]byte
	frameLen int
}

type hostState int

const (
	stateScan         hostState = iota // scanning for 0x55 or 0x7A
	stateRespMark                      // saw 0x55, expecting 0xAB
	stateRespStatus                    // expecting status code
	stateRespCmd                       // expecting command echo
	stateRespLen                       // expecting declared length
	stateRespPayload                   // collecting payload bytes
	stateRespChecksum                  // expecting trailing checksum
	stateFrameMark                     // saw 0x7A, expecting 0x7B
	stateFrameBody                     // collecting the fixed-size frame
)

// ParseResult is the outcome of consuming one byte. At most one field
// is set.
type ParseResult struct {
	Response *proto.Response
	Frame    *proto.DataFrame
	Err      error
}

// Parse consumes one byte.
func (p *Parser) Parse(b byte) (pr ParseResult) {
	switch p.state {
	case stateScan:
		switch b {
		case proto.Header1:
			p.state = stateRespMark
		case proto.FrameStart1:
			p.state = stateFrameMark
		}
	case stateRespMark:
		if b == proto.HeaderRsp {
			p.state = stateRespStatus
		} else {
			p.state = stateScan
		}
	case stateRespStatus:
		p.status = b
		p.state = stateRespCmd
	case stateRespCmd:
		p.cmd = b
		p.state = stateRespLen
	case stateRespLen:
		p.length = b
		switch {
		case int(b) > proto.MaxPayload:
			pr.Err = ErrOversized
			p.state = stateScan
		case b == 0:
			p.state = stateRespChecksum
		default:
			p.recvLen = 0
			p.state = stateRespPayload
		}
	case stateRespPayload:
		p.payload[p.recvLen] = b
		p.recvLen++
		if p.recvLen >= p.length {
			p.state = stateRespChecksum
		}
	case stateRespChecksum:
		p.state = stateScan
		x := p.status ^ p.cmd ^ p.length ^ proto.Checksum(p.payload[:p.length])
		if x != b {
			pr.Err = ErrBadChecksum
			return
		}
		data := make([]byte, p.length)
		copy(data, p.payload[:p.length])
		pr.Response = &proto.Response{Status: p.status, Cmd: p.cmd, Payload: data}
	case stateFrameMark:
		if b == proto.FrameStart2 {
			p.frame[0], p.frame[1] = proto.FrameStart1, proto.FrameStart2
			p.frameLen = 2
			p.state = stateFrameBody
		} else {
			p.state = stateScan
		}
	case stateFrameBody:
		p.frame[p.frameLen] = b
		p.frameLen++
		if p.frameLen == proto.FrameSize {
			p.state = stateScan
			pr.Frame, pr.Err = proto.DecodeDataFrame(p.frame[:])
		}
	}
	return
}

// Reset returns the parser to scanning between frames.
func (p *Parser) Reset() {
	p.state = stateScan
}
