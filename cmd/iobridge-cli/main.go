// iobridge-cli is an interactive shell to talk to an I/O bridge
// device over a serial port or TCP.
package main

import (
	"flag"

	"github.com/abiosoft/ishell"
)

var target = flag.String("device", "", "Device to connect at startup (tcp://host:port or serial port).")

func main() {
	flag.Parse()

	shell := ishell.New()
	shell.SetPrompt(unconnectedPrompt)
	s := &session{shell: shell}
	shell.Set(sessionKey, s)
	for _, cmd := range commands {
		shell.AddCmd(cmd)
	}

	if *target != "" {
		if err := s.connect(*target); err != nil {
			shell.Println("connect:", err)
		}
	}

	if args := flag.Args(); len(args) > 0 {
		if err := shell.Process(args...); err != nil {
			shell.Println(err)
		}
		s.disconnect()
		return
	}
	shell.Run()
	s.disconnect()
}
