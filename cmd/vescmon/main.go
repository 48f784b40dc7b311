package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/golang/glog"

	fx "github.com/robotalks/vesc.go/pkg/framework"
	"github.com/robotalks/vesc.go/pkg/telemetry"
	"github.com/robotalks/vesc.go/pkg/vesc"
)

var (
	device   = "/dev/ttyACM0"
	mqttURL  = "mqtt://localhost:1883/vesc/"
	interval = 100 * time.Millisecond
)

func init() {
	if val := os.Getenv("VESC_DEVICE"); val != "" {
		device = val
	}
	if val := os.Getenv("VESC_MQTT_URL"); val != "" {
		mqttURL = val
	}
	flag.StringVar(&device, "device", device, "Serial device of the controller.")
	flag.StringVar(&mqttURL, "mqtt", mqttURL, "MQTT broker URL.")
	flag.DurationVar(&interval, "interval", interval, "State polling interval.")
}

// statePoller periodically requests controller state.
type statePoller struct {
	drv *vesc.Interface
}

// Run implements fx.Runnable.
func (p *statePoller) Run(ctx context.Context) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := p.drv.RequestState(); err != nil {
				glog.Warningf("request state: %v", err)
			}
		}
	}
}

func main() {
	flag.Parse()

	queue, err := telemetry.NewQueueFromURL(mqttURL)
	if err != nil {
		glog.Exitf("bad MQTT URL %q: %v", mqttURL, err)
	}
	if err = queue.Connect(); err != nil {
		glog.Exitf("MQTT connect: %v", err)
	}
	defer queue.Close()

	bridge := telemetry.NewBridge(queue)
	drv := vesc.New(bridge, bridge)
	if err = drv.Connect(device); err != nil {
		glog.Exitf("connect %s: %v", device, err)
	}
	defer drv.Close()
	if err = bridge.BindCommands(drv); err != nil {
		glog.Exitf("subscribe commands: %v", err)
	}
	glog.Infof("monitoring %s, publishing to %s", device, mqttURL)

	err = fx.NewRunner().HandleSignals().
		Go(fx.NamedRun("poller", &statePoller{drv: drv})).
		Wait()
	if err != nil {
		glog.Exit(err)
	}
}
