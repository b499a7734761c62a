// iobridge-mon connects to an I/O bridge device, enables streaming and
// fans the data frames out to a web monitor and optionally MQTT.
package main

import (
	"context"
	"flag"

	"github.com/golang/glog"

	"github.com/edgelink/iobridge/pkg/host"
	"github.com/edgelink/iobridge/pkg/proto"
	"github.com/edgelink/iobridge/pkg/run"
	"github.com/edgelink/iobridge/pkg/telemetry/mqtt"
	"github.com/edgelink/iobridge/pkg/web"
)

var (
	target    = flag.String("device", "tcp://localhost:9770", "Device to connect (tcp://host:port or serial port).")
	httpAddr  = flag.String("http", "localhost:3660", "Web monitor listen address.")
	mqttURL   = flag.String("mqtt", "", "MQTT broker URL (mqtt://host:port/topic-prefix), empty disables.")
	digitalMs = flag.Uint("digital-ms", 0, "Digital sample period to apply, 0 keeps the device default.")
	analogMs  = flag.Uint("analog-ms", 0, "Analog sample period to apply, 0 keeps the device default.")
)

func main() {
	flag.Parse()

	conn, err := host.Dial(*target)
	if err != nil {
		glog.Exitf("connect %s: %v", *target, err)
	}
	client := host.NewClient(conn)

	srv := web.NewServer(*httpAddr)

	var pub *mqtt.Publisher
	if *mqttURL != "" {
		if pub, err = mqtt.NewPublisher(*mqttURL); err != nil {
			glog.Exitf("mqtt: %v", err)
		}
		if err = pub.Connect(); err != nil {
			glog.Exitf("mqtt connect: %v", err)
		}
		defer pub.Close()
		glog.Infof("publishing frames to %s", pub.Topic())
	}

	runner := run.NewRunner().HandleSignals()
	runner.Go(run.Func(func(ctx context.Context) error {
		return run.WithContextCloser(ctx, conn, client.Run)
	}))
	runner.Go(srv)
	runner.Go(run.Func(func(ctx context.Context) error {
		return fanOut(ctx, client.Frames(), srv, pub)
	}))

	if err := setup(client); err != nil {
		glog.Exitf("device setup: %v", err)
	}
	if err := runner.Wait(); err != nil {
		glog.Exit(err)
	}
}

func setup(client *host.Client) error {
	info, err := client.GetInfo()
	if err != nil {
		return err
	}
	glog.Infof("connected to %q", info)
	if *digitalMs != 0 {
		if _, err := client.SetDigitalPeriod(uint16(*digitalMs)); err != nil {
			return err
		}
	}
	if *analogMs != 0 {
		if _, err := client.SetAnalogPeriod(uint16(*analogMs)); err != nil {
			return err
		}
	}
	_, err = client.SetStreaming(true)
	return err
}

func fanOut(ctx context.Context, frames <-chan *proto.DataFrame, srv *web.Server, pub *mqtt.Publisher) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case f, ok := <-frames:
			if !ok {
				return nil
			}
			srv.Publish(f)
			if pub != nil {
				if err := pub.Publish(f); err != nil {
					glog.Warningf("publish frame: %v", err)
				}
			}
		}
	}
}
