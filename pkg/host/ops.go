package host

import (
	"encoding/binary"
	"fmt"

	"github.com/edgelink/iobridge/pkg/proto"
)

// Typed wrappers over Do for every device command.

// SetLEDMask sets the LED outputs (low 4 bits) and returns the applied
// mask.
func (c *Client) SetLEDMask(mask byte) (byte, error) {
	return c.doByte(proto.CmdSetLEDMask, []byte{mask})
}

// GetDIP re-reads the switch inputs and returns the fresh mask.
func (c *Client) GetDIP() (byte, error) {
	return c.doByte(proto.CmdGetDIP, nil)
}

// SetDigitalPeriod sets the switch sample period in milliseconds and
// returns the applied (clamped) value.
func (c *Client) SetDigitalPeriod(ms uint16) (uint16, error) {
	return c.doPeriod(proto.CmdSetDigitalPeriod, ms)
}

// GetDigitalPeriod returns the switch sample period in milliseconds.
func (c *Client) GetDigitalPeriod() (uint16, error) {
	return c.doUint16(proto.CmdGetDigitalPeriod, nil)
}

// SetStreaming enables or disables autonomous data frames and returns
// the resulting flag.
func (c *Client) SetStreaming(on bool) (bool, error) {
	var v byte
	if on {
		v = 1
	}
	b, err := c.doByte(proto.CmdSetStreaming, []byte{v})
	return b != 0, err
}

// Snapshot requests one data frame, delivered on Frames.
func (c *Client) Snapshot() error {
	_, err := c.Do(proto.CmdSnapshot, nil)
	return err
}

// GetInfo returns the device identifier string.
func (c *Client) GetInfo() (string, error) {
	rsp, err := c.Do(proto.CmdGetInfo, nil)
	if err != nil {
		return "", err
	}
	return string(rsp.Payload), nil
}

// SetAnalogPeriod sets the analog sample period in milliseconds and
// returns the applied (clamped) value.
func (c *Client) SetAnalogPeriod(ms uint16) (uint16, error) {
	return c.doPeriod(proto.CmdSetAnalogPeriod, ms)
}

// GetAnalogPeriod returns the analog sample period in milliseconds.
func (c *Client) GetAnalogPeriod() (uint16, error) {
	return c.doUint16(proto.CmdGetAnalogPeriod, nil)
}

func (c *Client) doByte(cmd byte, payload []byte) (byte, error) {
	rsp, err := c.Do(cmd, payload)
	if err != nil {
		return 0, err
	}
	if len(rsp.Payload) != 1 {
		return 0, fmt.Errorf("unexpected reply payload size %d", len(rsp.Payload))
	}
	return rsp.Payload[0], nil
}

func (c *Client) doUint16(cmd byte, payload []byte) (uint16, error) {
	rsp, err := c.Do(cmd, payload)
	if err != nil {
		return 0, err
	}
	if len(rsp.Payload) != 2 {
		return 0, fmt.Errorf("unexpected reply payload size %d", len(rsp.Payload))
	}
	return binary.LittleEndian.Uint16(rsp.Payload), nil
}

func (c *Client) doPeriod(cmd byte, ms uint16) (uint16, error) {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, ms)
	return c.doUint16(cmd, b)
}
