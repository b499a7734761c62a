// Package serialport opens the serial link to the device.
package serialport

import (
	serial "go.bug.st/serial.v1"
)

// Mode is the device link configuration: 115200-8N1.
var Mode = &serial.Mode{
	BaudRate: 115200,
	DataBits: 8,
	Parity:   serial.NoParity,
	StopBits: serial.OneStopBit,
}

// Open opens the named port with the device link settings.
func Open(name string) (serial.Port, error) {
	return serial.Open(name, Mode)
}

// List returns the available serial port names.
func List() ([]string, error) {
	return serial.GetPortsList()
}
