package host

import (
	"io"
	"net"
	"strings"

	"github.com/edgelink/iobridge/pkg/host/serialport"
)

// Dial connects to a device at target: "tcp://host:port" for a
// device engine served over TCP, anything else is a serial port name.
func Dial(target string) (io.ReadWriteCloser, error) {
	if strings.HasPrefix(target, "tcp://") {
		return net.Dial("tcp", strings.TrimPrefix(target, "tcp://"))
	}
	return serialport.Open(target)
}
