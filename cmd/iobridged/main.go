// iobridged runs the I/O bridge engine off-target: the protocol stack
// against a simulated board, served over a serial port or TCP so host
// tooling can be exercised without hardware. On-target builds wire a
// real Board implementation instead.
package main

import (
	"context"
	"flag"
	"net"

	"github.com/golang/glog"

	"github.com/edgelink/iobridge/pkg/device"
	"github.com/edgelink/iobridge/pkg/host/serialport"
	"github.com/edgelink/iobridge/pkg/run"
	"github.com/edgelink/iobridge/pkg/sim"
)

var (
	portName = flag.String("port", "", "Serve the engine over this serial port.")
	listen   = flag.String("listen", "localhost:9770", "Serve the engine over TCP at this address (when -port is unset).")
	dipMask  = flag.Uint("dip", 0, "Initial simulated switch mask.")
	sweep    = flag.Bool("sweep", true, "Drive simulated analog channels with a sweep source.")
)

func newBoard() *sim.Board {
	board := sim.NewBoard()
	board.SetDIP(byte(*dipMask))
	if *sweep {
		board.SetAnalogSource(sim.Sweep())
	}
	return board
}

func main() {
	flag.Parse()

	if *portName != "" {
		port, err := serialport.Open(*portName)
		if err != nil {
			glog.Exitf("open %s: %v", *portName, err)
		}
		engine := device.New(newBoard(), device.NewWallClock(), device.NewQueuedPort(port))
		runner := run.NewRunner().HandleSignals()
		runner.Go(engine)
		if err := runner.Wait(); err != nil {
			glog.Exit(err)
		}
		return
	}

	ln, err := net.Listen("tcp", *listen)
	if err != nil {
		glog.Exitf("listen %s: %v", *listen, err)
	}
	glog.Infof("serving engine on tcp://%s", *listen)

	runner := run.NewRunner().HandleSignals()
	runner.Go(run.Func(func(ctx context.Context) error {
		go func() {
			<-ctx.Done()
			ln.Close()
		}()
		for {
			conn, err := ln.Accept()
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				return err
			}
			go serveConn(ctx, conn)
		}
	}))
	if err := runner.Wait(); err != nil {
		glog.Exit(err)
	}
}

func serveConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()
	glog.Infof("client %s connected", conn.RemoteAddr())
	// one fresh device per link
	engine := device.New(newBoard(), device.NewWallClock(), device.NewQueuedPort(conn))
	if err := engine.Run(ctx); err != nil && ctx.Err() == nil {
		glog.V(1).Infof("client %s: %v", conn.RemoteAddr(), err)
	}
	glog.Infof("client %s disconnected", conn.RemoteAddr())
}
