package proto

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChecksum(t *testing.T) {
	require.Equal(t, byte(0), Checksum(nil))
	require.Equal(t, byte(0), Checksum([]byte{}))
	require.Equal(t, byte(0x05), Checksum([]byte{0x01, 0x01, 0x05}))
	require.Equal(t, byte(0x02), Checksum([]byte{0x02, 0x00}))
	// XOR-folding twice cancels out
	data := []byte{0xde, 0xad, 0xbe, 0xef}
	require.Equal(t, byte(0), Checksum(append(data, Checksum(data))))
}

func TestRequestBytes(t *testing.T) {
	testCases := []struct {
		name   string
		req    Request
		expect []byte
	}{
		{"set led", Request{Cmd: CmdSetLEDMask, Payload: []byte{0x05}}, []byte{0x55, 0xAA, 0x01, 0x01, 0x05, 0x05}},
		{"get dip", Request{Cmd: CmdGetDIP}, []byte{0x55, 0xAA, 0x02, 0x00, 0x02}},
		{"set digital period", Request{Cmd: CmdSetDigitalPeriod, Payload: []byte{0x64, 0x00}}, []byte{0x55, 0xAA, 0x03, 0x02, 0x64, 0x00, 0x65}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expect, tc.req.Bytes())
			var buf bytes.Buffer
			n, err := tc.req.WriteTo(&buf)
			require.NoError(t, err)
			require.Equal(t, len(tc.expect), n)
			require.Equal(t, tc.expect, buf.Bytes())
		})
	}
}

func TestResponseBytes(t *testing.T) {
	testCases := []struct {
		name   string
		rsp    Response
		expect []byte
	}{
		{"led applied", Response{Status: StatusOk, Cmd: CmdSetLEDMask, Payload: []byte{0x05}}, []byte{0x55, 0xAB, 0x00, 0x01, 0x01, 0x05, 0x05}},
		{"empty ok", Response{Status: StatusOk, Cmd: CmdSnapshot}, []byte{0x55, 0xAB, 0x00, 0x06, 0x00, 0x06}},
		{"checksum invalid", Response{Status: StatusChecksumInvalid, Cmd: CmdSetLEDMask}, []byte{0x55, 0xAB, 0x01, 0x01, 0x00, 0x00}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := tc.rsp.Bytes()
			require.Equal(t, tc.expect, b)
			// trailing byte recomputes from status/cmd/len/payload
			require.Equal(t, b[len(b)-1], Checksum(b[2:len(b)-1]))
		})
	}
}

func TestDataFrameRoundTrip(t *testing.T) {
	f := DataFrame{
		DIP:    0x0a,
		LED:    0x05,
		Analog: [8]uint16{1023, 2, 3, 4, 511, 1, 1, 2},
	}
	b := f.Bytes()
	require.Len(t, b, FrameSize)
	require.Equal(t, FrameStart1, b[0])
	require.Equal(t, FrameStart2, b[1])
	require.Equal(t, byte(0xa5), b[2])
	require.Equal(t, []byte{0xff, 0x03}, b[3:5]) // 1023 little-endian
	require.Equal(t, FrameEnd, b[FrameSize-1])

	dec, err := DecodeDataFrame(b)
	require.NoError(t, err)
	require.Equal(t, &f, dec)
}

func TestDecodeDataFrameErrors(t *testing.T) {
	_, err := DecodeDataFrame(make([]byte, 19))
	require.Equal(t, ErrFrameSize, err)

	b := (&DataFrame{}).Bytes()
	b[FrameSize-1] = 0x00
	_, err = DecodeDataFrame(b)
	require.Equal(t, ErrFrameMarkers, err)

	b = (&DataFrame{}).Bytes()
	b[0] = 0x00
	_, err = DecodeDataFrame(b)
	require.Equal(t, ErrFrameMarkers, err)
}
