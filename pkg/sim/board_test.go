package sim

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBoardDigital(t *testing.T) {
	b := NewBoard()
	b.SetDIP(0xfa) // high bits ignored
	require.True(t, b.ReadDigital(1))
	require.True(t, b.ReadDigital(3))
	require.False(t, b.ReadDigital(0))
	require.False(t, b.ReadDigital(2))

	b.WriteDigital(0, true)
	b.WriteDigital(2, true)
	require.Equal(t, byte(0x05), b.LEDs())
	b.WriteDigital(0, false)
	require.Equal(t, byte(0x04), b.LEDs())
}

func TestBoardAnalog(t *testing.T) {
	b := NewBoard()
	b.SetAnalog(2, 777)
	require.Equal(t, uint16(777), b.ReadAnalog(2))
	require.Equal(t, uint16(0), b.ReadAnalog(0))

	b.SetAnalogSource(func(i int) uint16 { return uint16(i) * 100 })
	require.Equal(t, uint16(300), b.ReadAnalog(3))
	b.SetAnalogSource(nil)
	require.Equal(t, uint16(777), b.ReadAnalog(2))
}

func TestSweep(t *testing.T) {
	src := Sweep()
	for n := 0; n < 2048; n++ {
		for i := 0; i < 4; i++ {
			require.True(t, src(i) < 1024)
		}
	}
}

func TestClock(t *testing.T) {
	var c Clock
	require.Equal(t, uint32(0), c.Millis())
	c.Advance(100)
	require.Equal(t, uint32(100), c.Millis())
	c.Set(0xFFFFFFFF)
	c.Advance(1) // wraps
	require.Equal(t, uint32(0), c.Millis())
}

func TestPort(t *testing.T) {
	var p Port
	require.Equal(t, 0, p.Available())
	_, ok := p.ReadByte()
	require.False(t, ok)

	p.Push(1, 2)
	require.Equal(t, 2, p.Available())
	b, ok := p.ReadByte()
	require.True(t, ok)
	require.Equal(t, byte(1), b)

	n, err := p.Write([]byte{9})
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, []byte{9}, p.Out.Bytes())
}
