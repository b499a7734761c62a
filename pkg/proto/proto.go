package proto

// Frame header bytes.
const (
	Header1   byte = 0x55
	HeaderCmd byte = 0xAA
	HeaderRsp byte = 0xAB
)

// Data frame markers.
const (
	FrameStart1 byte = 0x7A
	FrameStart2 byte = 0x7B
	FrameEnd    byte = 0x7C
)

// FrameSize is the fixed size of an encoded data frame.
const FrameSize = 20

// Command codes.
const (
	CmdSetLEDMask       byte = 0x01
	CmdGetDIP           byte = 0x02
	CmdSetDigitalPeriod byte = 0x03
	CmdGetDigitalPeriod byte = 0x04
	CmdSetStreaming     byte = 0x05
	CmdSnapshot         byte = 0x06
	CmdGetInfo          byte = 0x07
	CmdSetAnalogPeriod  byte = 0x08
	CmdGetAnalogPeriod  byte = 0x09
)

// Response status codes.
const (
	StatusOk               byte = 0x00
	StatusChecksumInvalid  byte = 0x01
	StatusInvalidParameter byte = 0x02
	StatusUnknownCommand   byte = 0x03
)

// MaxPayload is the largest payload carried in either direction.
// Declared lengths above this are rejected without waiting for the
// payload bytes.
const MaxPayload = 64

// Sample period bounds in milliseconds. Set operations clamp requested
// values into this range.
const (
	PeriodMin uint16 = 10
	PeriodMax uint16 = 5000
)

// Info is the identifier string returned by CmdGetInfo.
const Info = "LAB2 v1.0"

// Checksum XOR-folds the given bytes. An empty input yields 0.
func Checksum(data []byte) byte {
	var x byte
	for _, b := range data {
		x ^= b
	}
	return x
}
