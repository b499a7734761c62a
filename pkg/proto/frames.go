package proto

import (
	"encoding/binary"
	"errors"
	"io"
)

// Request is a host to device command frame.
type Request struct {
	Cmd     byte
	Payload []byte
}

// Bytes returns encoded bytes for sending.
func (r *Request) Bytes() []byte {
	b := make([]byte, 0, len(r.Payload)+5)
	b = append(b, Header1, HeaderCmd, r.Cmd, byte(len(r.Payload)))
	b = append(b, r.Payload...)
	return append(b, Checksum(b[2:]))
}

// WriteTo writes encoded bytes.
func (r *Request) WriteTo(w io.Writer) (n int, err error) {
	return w.Write(r.Bytes())
}

// Response is a device to host reply frame.
type Response struct {
	Status  byte
	Cmd     byte
	Payload []byte
}

// Bytes returns encoded bytes for sending.
func (r *Response) Bytes() []byte {
	b := make([]byte, 0, len(r.Payload)+6)
	b = append(b, Header1, HeaderRsp, r.Status, r.Cmd, byte(len(r.Payload)))
	b = append(b, r.Payload...)
	return append(b, Checksum(b[2:]))
}

// WriteTo writes encoded bytes.
func (r *Response) WriteTo(w io.Writer) (n int, err error) {
	return w.Write(r.Bytes())
}

// DataFrame is the decoded form of the 20-byte sensor frame.
type DataFrame struct {
	DIP    byte      // switch snapshot, low 4 bits
	LED    byte      // LED mask, low 4 bits
	Analog [8]uint16 // 0..3 raw reads, 4..7 the raw reads halved
}

// Decode errors.
var (
	ErrFrameSize    = errors.New("data frame must be 20 bytes")
	ErrFrameMarkers = errors.New("data frame markers mismatch")
)

// Bytes returns encoded bytes for sending.
func (f *DataFrame) Bytes() []byte {
	b := make([]byte, FrameSize)
	b[0], b[1] = FrameStart1, FrameStart2
	b[2] = (f.DIP&0x0f)<<4 | f.LED&0x0f
	for i, v := range f.Analog {
		binary.LittleEndian.PutUint16(b[3+i*2:], v)
	}
	b[FrameSize-1] = FrameEnd
	return b
}

// WriteTo writes encoded bytes.
func (f *DataFrame) WriteTo(w io.Writer) (n int, err error) {
	return w.Write(f.Bytes())
}

// DecodeDataFrame parses an encoded data frame.
func DecodeDataFrame(b []byte) (*DataFrame, error) {
	if len(b) != FrameSize {
		return nil, ErrFrameSize
	}
	if b[0] != FrameStart1 || b[1] != FrameStart2 || b[FrameSize-1] != FrameEnd {
		return nil, ErrFrameMarkers
	}
	f := &DataFrame{DIP: b[2] >> 4, LED: b[2] & 0x0f}
	for i := range f.Analog {
		f.Analog[i] = binary.LittleEndian.Uint16(b[3+i*2:])
	}
	return f, nil
}
