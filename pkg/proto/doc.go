// Package proto defines the wire format spoken between the I/O bridge
// device and host software.
package proto

// The device exposes four LED outputs, four switch inputs and four
// analog channels over a 115200-8N1 serial link.
//
// Command frames (host -> device):
//   55 AA CMD LEN PAYLOAD[LEN] CHK
// Response frames (device -> host):
//   55 AB STATUS CMD LEN PAYLOAD[LEN] CHK
// CHK is the XOR of every byte after the two header bytes and before
// CHK itself.
//
// Data frames (device -> host) are fixed 20-byte records with no
// checksum, relying on their markers and fixed length for framing:
//   7A 7B DIGITAL AN0..AN7 (little-endian uint16 each) 7C
// DIGITAL packs the switch snapshot in the high nibble and the LED
// mask in the low nibble. Channels 4..7 repeat channels 0..3 divided
// by two.
