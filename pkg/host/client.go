// Package host implements the host side of the I/O bridge protocol: a
// stream parser for the device output and a client for command
// round-trips and streamed data frames.
package host

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/golang/glog"

	"github.com/edgelink/iobridge/pkg/proto"
)

// ErrTimeout indicates no reply arrived within the client timeout.
var ErrTimeout = errors.New("command timed out")

// StatusError is a non-Ok status reported by the device.
type StatusError struct {
	Status byte
	Cmd    byte
}

// Error implements error.
func (e *StatusError) Error() string {
	return fmt.Sprintf("device status %#02x for command %#02x", e.Status, e.Cmd)
}

// Result is the outcome of a command sent with Do.
type Result struct {
	Err      error
	Response *proto.Response
}

// Client drives the protocol over a byte stream. Commands are matched
// to responses in FIFO order; the protocol carries no sequence numbers
// and the device replies strictly in order.
type Client struct {
	// Timeout bounds each command round-trip. Zero means DefaultTimeout.
	Timeout time.Duration

	rw      io.ReadWriter
	parser  Parser
	frameCh chan *proto.DataFrame

	cmdsHead *pending
	cmdsTail *pending
	cmdsLock sync.Mutex
}

type pending struct {
	resultCh chan Result
	next     *pending
}

// DefaultTimeout for command round-trips.
const DefaultTimeout = 2 * time.Second

// FrameBacklog is the capacity of the streamed frame channel; frames
// beyond it are dropped rather than stalling the read loop.
const FrameBacklog = 16

// NewClient creates a Client over rw. Run must be started before
// commands can complete.
func NewClient(rw io.ReadWriter) *Client {
	return &Client{
		Timeout: DefaultTimeout,
		rw:      rw,
		frameCh: make(chan *proto.DataFrame, FrameBacklog),
	}
}

// Frames retrieves the channel delivering streamed data frames.
func (c *Client) Frames() <-chan *proto.DataFrame {
	return c.frameCh
}

// Do sends a command and waits for its reply. A reply with a non-Ok
// status is returned together with a *StatusError.
func (c *Client) Do(cmd byte, payload []byte) (*proto.Response, error) {
	req := proto.Request{Cmd: cmd, Payload: payload}
	p := &pending{resultCh: make(chan Result, 1)}

	c.cmdsLock.Lock()
	if _, err := req.WriteTo(c.rw); err != nil {
		c.cmdsLock.Unlock()
		return nil, err
	}
	if c.cmdsHead == nil {
		c.cmdsHead = p
	} else {
		c.cmdsTail.next = p
	}
	c.cmdsTail = p
	c.cmdsLock.Unlock()

	timeout := c.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	select {
	case res := <-p.resultCh:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Response.Status != proto.StatusOk {
			return res.Response, &StatusError{Status: res.Response.Status, Cmd: res.Response.Cmd}
		}
		return res.Response, nil
	case <-time.After(timeout):
		c.remove(p)
		return nil, ErrTimeout
	}
}

func (c *Client) remove(p *pending) {
	c.cmdsLock.Lock()
	defer c.cmdsLock.Unlock()
	var prev *pending
	for curr := c.cmdsHead; curr != nil; curr = curr.next {
		if curr != p {
			prev = curr
			continue
		}
		if prev == nil {
			c.cmdsHead = curr.next
		} else {
			prev.next = curr.next
		}
		if c.cmdsTail == curr {
			c.cmdsTail = prev
		}
		return
	}
}

func (c *Client) deliver(res Result) {
	c.cmdsLock.Lock()
	p := c.cmdsHead
	if p != nil {
		if c.cmdsHead = p.next; c.cmdsHead == nil {
			c.cmdsTail = nil
		}
		p.next = nil
	}
	c.cmdsLock.Unlock()
	if p == nil {
		glog.V(2).Info("unsolicited response dropped")
		return
	}
	p.resultCh <- res
}

// Run reads the stream, completing pending commands and delivering
// data frames. It returns when the transport fails or is closed; use
// run.WithContextCloser to tie it to a context.
func (c *Client) Run() error {
	buf := make([]byte, 64)
	for {
		n, err := c.rw.Read(buf)
		for _, b := range buf[:n] {
			pr := c.parser.Parse(b)
			switch {
			case pr.Response != nil:
				c.deliver(Result{Response: pr.Response})
			case pr.Frame != nil:
				select {
				case c.frameCh <- pr.Frame:
				default:
					glog.V(2).Info("frame backlog full, frame dropped")
				}
			case pr.Err != nil:
				glog.V(2).Infof("stream desync: %v", pr.Err)
			}
		}
		if err != nil {
			c.failPending(err)
			return err
		}
	}
}

func (c *Client) failPending(err error) {
	c.cmdsLock.Lock()
	head := c.cmdsHead
	c.cmdsHead, c.cmdsTail = nil, nil
	c.cmdsLock.Unlock()
	for ; head != nil; head = head.next {
		head.resultCh <- Result{Err: err}
	}
}
