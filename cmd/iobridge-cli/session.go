package main

import (
	"errors"
	"io"

	"github.com/abiosoft/ishell"

	"github.com/edgelink/iobridge/pkg/host"
)

const (
	sessionKey        = "$session"
	unconnectedPrompt = "[none] > "
)

// session holds the current device connection.
type session struct {
	shell  *ishell.Shell
	target string
	conn   io.ReadWriteCloser
	client *host.Client
}

var errNotConnected = errors.New("not connected, use: connect TARGET")

func sessionFrom(c *ishell.Context) *session {
	return c.Get(sessionKey).(*session)
}

// mustBeConnected wraps a command func requiring a live connection.
func mustBeConnected(fn func(*ishell.Context, *session)) func(*ishell.Context) {
	return func(c *ishell.Context) {
		s := sessionFrom(c)
		if s.client == nil {
			c.Err(errNotConnected)
			return
		}
		fn(c, s)
	}
}

func (s *session) connect(target string) error {
	s.disconnect()
	conn, err := host.Dial(target)
	if err != nil {
		return err
	}
	s.conn = conn
	s.target = target
	s.client = host.NewClient(conn)
	go s.client.Run()
	s.shell.SetPrompt("[" + target + "] > ")
	return nil
}

func (s *session) disconnect() {
	if s.conn != nil {
		s.conn.Close()
		s.conn, s.client = nil, nil
		s.shell.SetPrompt(unconnectedPrompt)
	}
}
