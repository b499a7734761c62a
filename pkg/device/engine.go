// Package device implements the I/O bridge firmware engine: a command
// parser, dispatcher and dual-rate sampler driven by a single
// non-blocking cycle.
package device

import (
	"context"
	"time"

	"github.com/golang/glog"
)

// Engine owns the I/O state and runs the protocol. All state is
// touched from a single cycle, so no locking is involved.
type Engine struct {
	// Interval is the idle delay between cycles in Run. Zero means
	// DefaultInterval.
	Interval time.Duration

	board Board
	clock Clock
	port  Serial

	state  State
	parser Parser

	digital ticker
	analog  ticker
	tx      ticker
}

// DefaultInterval between cycles in Run.
const DefaultInterval = time.Millisecond

// New creates an Engine: LEDs off, one initial read of every input,
// sample timers primed at the current time.
func New(board Board, clock Clock, port Serial) *Engine {
	e := &Engine{board: board, clock: clock, port: port}
	e.state.DigitalPeriod = DefaultDigitalPeriod
	e.state.AnalogPeriod = DefaultAnalogPeriod
	e.applyLEDMask(0)
	e.sampleDigital()
	e.sampleAnalog()
	now := clock.Millis()
	e.digital.last, e.analog.last, e.tx.last = now, now, now
	return e
}

// State returns a copy of the current I/O state.
func (e *Engine) State() State {
	return e.state
}

// Cycle runs one iteration: drain the buffered inbound bytes through
// the parser, tick both samplers, and stream a data frame when due.
// It never blocks waiting for bytes. The returned error is the first
// transport failure; on hardware the serial link never fails and the
// caller loops forever.
func (e *Engine) Cycle() error {
	for e.port.Available() > 0 {
		b, ok := e.port.ReadByte()
		if !ok {
			break
		}
		pr := e.parser.Parse(b)
		switch {
		case pr.Frame != nil:
			if err := e.dispatch(pr.Frame.Cmd, pr.Frame.Payload); err != nil {
				return err
			}
		case pr.Reject != nil:
			glog.V(2).Infof("frame rejected: cmd=%#02x status=%#02x",
				pr.Reject.Cmd, pr.Reject.Status)
			if err := e.reject(pr.Reject.Cmd, pr.Reject.Status); err != nil {
				return err
			}
		}
	}
	if err := e.port.Err(); err != nil {
		return err
	}

	now := e.clock.Millis()
	if e.digital.fire(now, e.state.DigitalPeriod) {
		e.sampleDigital()
	}
	if e.analog.fire(now, e.state.AnalogPeriod) {
		e.sampleAnalog()
	}

	// The transmit cadence follows the shorter sample period,
	// recomputed every cycle so period changes take effect on the
	// next check.
	txPeriod := e.state.DigitalPeriod
	if e.state.AnalogPeriod < txPeriod {
		txPeriod = e.state.AnalogPeriod
	}
	if e.state.Streaming && e.tx.fire(now, txPeriod) {
		return e.sendFrame()
	}
	return nil
}

// Run drives Cycle until ctx is done or the transport fails. It
// implements run.Runnable.
func (e *Engine) Run(ctx context.Context) error {
	interval := e.Interval
	if interval == 0 {
		interval = DefaultInterval
	}
	glog.V(1).Info("engine started")
	timer := time.NewTicker(interval)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			glog.V(1).Info("engine stopped")
			return ctx.Err()
		case <-timer.C:
			if err := e.Cycle(); err != nil {
				glog.V(1).Infof("engine stopped: %v", err)
				return err
			}
		}
	}
}
