package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/abiosoft/ishell"

	"github.com/edgelink/iobridge/pkg/host/serialport"
	"github.com/edgelink/iobridge/pkg/proto"
)

var commands = []*ishell.Cmd{
	{
		Name: "ports",
		Help: "list available serial ports",
		Func: func(c *ishell.Context) {
			ports, err := serialport.List()
			if err != nil {
				c.Err(err)
				return
			}
			for _, p := range ports {
				c.Println(p)
			}
		},
	},
	{
		Name: "connect",
		Help: "TARGET (tcp://host:port or serial port)",
		Func: func(c *ishell.Context) {
			if len(c.Args) < 1 {
				c.Err(fmt.Errorf("TARGET required"))
				return
			}
			if err := sessionFrom(c).connect(c.Args[0]); err != nil {
				c.Err(err)
			}
		},
	},
	{
		Name: "disconnect",
		Help: "close the current connection",
		Func: func(c *ishell.Context) {
			sessionFrom(c).disconnect()
		},
	},
	{
		Name: "info",
		Help: "device identifier",
		Func: mustBeConnected(func(c *ishell.Context, s *session) {
			info, err := s.client.GetInfo()
			if err != nil {
				c.Err(err)
				return
			}
			c.Println(info)
		}),
	},
	{
		Name: "led",
		Help: "MASK (0..15, e.g. led 0x05)",
		Func: mustBeConnected(func(c *ishell.Context, s *session) {
			if len(c.Args) < 1 {
				c.Err(fmt.Errorf("MASK required"))
				return
			}
			val, err := strconv.ParseUint(c.Args[0], 0, 8)
			if err != nil {
				c.Err(fmt.Errorf("invalid MASK: %v", err))
				return
			}
			mask, err := s.client.SetLEDMask(byte(val))
			if err != nil {
				c.Err(err)
				return
			}
			c.Printf("leds %04b\n", mask)
		}),
	},
	{
		Name: "dip",
		Help: "read the switch inputs",
		Func: mustBeConnected(func(c *ishell.Context, s *session) {
			mask, err := s.client.GetDIP()
			if err != nil {
				c.Err(err)
				return
			}
			c.Printf("dip %04b\n", mask)
		}),
	},
	{
		Name: "period",
		Help: "digital|analog [MS] - get or set a sample period",
		Func: mustBeConnected(cmdPeriod),
	},
	{
		Name: "stream",
		Help: "on|off",
		Func: mustBeConnected(func(c *ishell.Context, s *session) {
			if len(c.Args) < 1 {
				c.Err(fmt.Errorf("on|off required"))
				return
			}
			on, err := s.client.SetStreaming(strings.EqualFold(c.Args[0], "on"))
			if err != nil {
				c.Err(err)
				return
			}
			c.Println("streaming:", on)
		}),
	},
	{
		Name: "snapshot",
		Help: "request one data frame",
		Func: mustBeConnected(func(c *ishell.Context, s *session) {
			if err := s.client.Snapshot(); err != nil {
				c.Err(err)
				return
			}
			select {
			case f := <-s.client.Frames():
				printFrame(c, f)
			case <-time.After(2 * time.Second):
				c.Err(fmt.Errorf("no frame received"))
			}
		}),
	},
	{
		Name: "monitor",
		Help: "[N] - print N streamed frames (default 10)",
		Func: mustBeConnected(cmdMonitor),
	},
}

func cmdPeriod(c *ishell.Context, s *session) {
	if len(c.Args) < 1 {
		c.Err(fmt.Errorf("digital|analog required"))
		return
	}
	digital := strings.EqualFold(c.Args[0], "digital")
	if !digital && !strings.EqualFold(c.Args[0], "analog") {
		c.Err(fmt.Errorf("unknown class %q", c.Args[0]))
		return
	}
	if len(c.Args) > 1 {
		val, err := strconv.ParseUint(c.Args[1], 0, 16)
		if err != nil {
			c.Err(fmt.Errorf("invalid MS: %v", err))
			return
		}
		var ms uint16
		if digital {
			ms, err = s.client.SetDigitalPeriod(uint16(val))
		} else {
			ms, err = s.client.SetAnalogPeriod(uint16(val))
		}
		if err != nil {
			c.Err(err)
			return
		}
		c.Printf("%s period: %dms\n", c.Args[0], ms)
		return
	}
	var ms uint16
	var err error
	if digital {
		ms, err = s.client.GetDigitalPeriod()
	} else {
		ms, err = s.client.GetAnalogPeriod()
	}
	if err != nil {
		c.Err(err)
		return
	}
	c.Printf("%s period: %dms\n", c.Args[0], ms)
}

func cmdMonitor(c *ishell.Context, s *session) {
	count := 10
	if len(c.Args) > 0 {
		val, err := strconv.Atoi(c.Args[0])
		if err != nil || val <= 0 {
			c.Err(fmt.Errorf("invalid N"))
			return
		}
		count = val
	}
	if _, err := s.client.SetStreaming(true); err != nil {
		c.Err(err)
		return
	}
	defer s.client.SetStreaming(false)
	for i := 0; i < count; i++ {
		select {
		case f := <-s.client.Frames():
			printFrame(c, f)
		case <-time.After(10 * time.Second):
			c.Err(fmt.Errorf("stream stalled"))
			return
		}
	}
}

func printFrame(c *ishell.Context, f *proto.DataFrame) {
	c.Printf("dip %04b led %04b an %v\n", f.DIP, f.LED, f.Analog)
}
