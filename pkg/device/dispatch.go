package device

import (
	"encoding/binary"

	"github.com/edgelink/iobridge/pkg/proto"
)

// dispatch applies a validated command frame and writes the reply.
// Side effects are limited to the engine state, the board outputs and
// the serial writer; no command blocks.
func (e *Engine) dispatch(cmd byte, payload []byte) error {
	switch cmd {
	case proto.CmdSetLEDMask:
		if len(payload) != 1 {
			return e.reject(cmd, proto.StatusInvalidParameter)
		}
		e.applyLEDMask(payload[0])
		return e.reply(cmd, []byte{e.state.LEDMask})

	case proto.CmdGetDIP:
		if len(payload) != 0 {
			return e.reject(cmd, proto.StatusInvalidParameter)
		}
		return e.reply(cmd, []byte{e.sampleDigital()})

	case proto.CmdSetDigitalPeriod:
		if len(payload) != 2 {
			return e.reject(cmd, proto.StatusInvalidParameter)
		}
		e.state.DigitalPeriod = ClampPeriod(binary.LittleEndian.Uint16(payload))
		return e.reply(cmd, uint16LE(e.state.DigitalPeriod))

	case proto.CmdGetDigitalPeriod:
		if len(payload) != 0 {
			return e.reject(cmd, proto.StatusInvalidParameter)
		}
		return e.reply(cmd, uint16LE(e.state.DigitalPeriod))

	case proto.CmdSetStreaming:
		if len(payload) != 1 {
			return e.reject(cmd, proto.StatusInvalidParameter)
		}
		e.state.Streaming = payload[0] != 0
		var on byte
		if e.state.Streaming {
			on = 1
		}
		return e.reply(cmd, []byte{on})

	case proto.CmdSnapshot:
		if len(payload) != 0 {
			return e.reject(cmd, proto.StatusInvalidParameter)
		}
		// Reply first, then the one-off data frame: the host parses
		// both from the same stream in order.
		if err := e.reply(cmd, nil); err != nil {
			return err
		}
		return e.sendFrame()

	case proto.CmdGetInfo:
		if len(payload) != 0 {
			return e.reject(cmd, proto.StatusInvalidParameter)
		}
		return e.reply(cmd, []byte(proto.Info))

	case proto.CmdSetAnalogPeriod:
		if len(payload) != 2 {
			return e.reject(cmd, proto.StatusInvalidParameter)
		}
		e.state.AnalogPeriod = ClampPeriod(binary.LittleEndian.Uint16(payload))
		return e.reply(cmd, uint16LE(e.state.AnalogPeriod))

	case proto.CmdGetAnalogPeriod:
		if len(payload) != 0 {
			return e.reject(cmd, proto.StatusInvalidParameter)
		}
		return e.reply(cmd, uint16LE(e.state.AnalogPeriod))
	}
	return e.reject(cmd, proto.StatusUnknownCommand)
}

func (e *Engine) reply(cmd byte, payload []byte) error {
	rsp := proto.Response{Status: proto.StatusOk, Cmd: cmd, Payload: payload}
	_, err := rsp.WriteTo(e.port)
	return err
}

func (e *Engine) reject(cmd, status byte) error {
	rsp := proto.Response{Status: status, Cmd: cmd}
	_, err := rsp.WriteTo(e.port)
	return err
}

func (e *Engine) sendFrame() error {
	_, err := e.state.Frame().WriteTo(e.port)
	return err
}

func uint16LE(v uint16) []byte {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, v)
	return b
}
