package device

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/edgelink/iobridge/pkg/proto"
)

// feed pushes bytes through the parser and collects every non-empty
// result.
func feed(p *Parser, in []byte) (results []ParseResult) {
	for _, b := range in {
		if pr := p.Parse(b); pr.Frame != nil || pr.Reject != nil {
			results = append(results, pr)
		}
	}
	return
}

func frameOf(cmd byte, payload ...byte) ParseResult {
	if payload == nil {
		payload = []byte{}
	}
	return ParseResult{Frame: &Frame{Cmd: cmd, Payload: payload}}
}

func rejectOf(cmd, status byte) ParseResult {
	return ParseResult{Reject: &Reject{Cmd: cmd, Status: status}}
}

func TestParser(t *testing.T) {
	bigPayload := make([]byte, proto.MaxPayload)
	for i := range bigPayload {
		bigPayload[i] = 0xa5
	}
	bigFrame := append([]byte{0x55, 0xAA, 0x01, 0x40}, bigPayload...)
	// 64 copies of 0xa5 XOR to zero
	bigFrame = append(bigFrame, 0x01^0x40)

	testCases := []struct {
		name string
		in   []byte
		want []ParseResult
	}{
		{
			name: "set led frame",
			in:   []byte{0x55, 0xAA, 0x01, 0x01, 0x05, 0x05},
			want: []ParseResult{frameOf(0x01, 0x05)},
		},
		{
			name: "zero length frame",
			in:   []byte{0x55, 0xAA, 0x02, 0x00, 0x02},
			want: []ParseResult{frameOf(0x02)},
		},
		{
			name: "noise before frame",
			in:   append([]byte{0xff, 0x00, 0x55, 0x77, 0xab, 0x7a}, 0x55, 0xAA, 0x02, 0x00, 0x02),
			want: []ParseResult{frameOf(0x02)},
		},
		{
			name: "header mismatch resyncs",
			in:   append([]byte{0x55, 0x41}, 0x55, 0xAA, 0x01, 0x01, 0x0f, 0x0f),
			want: []ParseResult{frameOf(0x01, 0x0f)},
		},
		{
			name: "bad checksum",
			in:   []byte{0x55, 0xAA, 0x01, 0x01, 0x05, 0x99},
			want: []ParseResult{rejectOf(0x01, proto.StatusChecksumInvalid)},
		},
		{
			name: "bad checksum then valid frame",
			in: append([]byte{0x55, 0xAA, 0x01, 0x01, 0x05, 0x99},
				0x55, 0xAA, 0x01, 0x01, 0x05, 0x05),
			want: []ParseResult{
				rejectOf(0x01, proto.StatusChecksumInvalid),
				frameOf(0x01, 0x05),
			},
		},
		{
			name: "oversized length rejected immediately",
			in:   []byte{0x55, 0xAA, 0x01, 0xC8},
			want: []ParseResult{rejectOf(0x01, proto.StatusInvalidParameter)},
		},
		{
			name: "oversized length does not consume payload",
			in: append(append([]byte{0x55, 0xAA, 0x01, 0xC8}, make([]byte, 200)...),
				0x55, 0xAA, 0x02, 0x00, 0x02),
			want: []ParseResult{
				rejectOf(0x01, proto.StatusInvalidParameter),
				frameOf(0x02),
			},
		},
		{
			name: "max payload accepted",
			in:   bigFrame,
			want: []ParseResult{frameOf(0x01, bigPayload...)},
		},
		{
			name: "payload bytes matching header are data",
			in:   []byte{0x55, 0xAA, 0x01, 0x02, 0x55, 0xAA, 0x01 ^ 0x02 ^ 0x55 ^ 0xAA},
			want: []ParseResult{frameOf(0x01, 0x55, 0xAA)},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var parser Parser
			require.Equal(t, tc.want, feed(&parser, tc.in))
		})
	}
}

func TestParserStatePreservedAcrossCalls(t *testing.T) {
	// a frame may arrive one byte at a time over many drain calls
	var parser Parser
	in := []byte{0x55, 0xAA, 0x01, 0x01, 0x05, 0x05}
	for _, b := range in[:len(in)-1] {
		pr := parser.Parse(b)
		require.Nil(t, pr.Frame)
		require.Nil(t, pr.Reject)
	}
	pr := parser.Parse(in[len(in)-1])
	require.Equal(t, frameOf(0x01, 0x05), pr)
}

func TestParserReset(t *testing.T) {
	var parser Parser
	feed(&parser, []byte{0x55, 0xAA, 0x01})
	parser.Reset()
	require.Equal(t, []ParseResult{frameOf(0x02)},
		feed(&parser, []byte{0x55, 0xAA, 0x02, 0x00, 0x02}))
}

func TestTickerWraparound(t *testing.T) {
	tk := ticker{last: 0xFFFFFF38}
	// counter wrapped: elapsed is 216ms
	require.True(t, tk.fire(0x00000010, 100))
	require.Equal(t, uint32(0x10), tk.last)
	require.False(t, tk.fire(0x00000020, 100))
	require.True(t, tk.fire(0x00000074, 100))
}
