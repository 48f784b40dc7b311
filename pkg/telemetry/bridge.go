package telemetry

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/golang/glog"

	"github.com/robotalks/vesc.go/pkg/vesc/msgs"
)

// Commander is the command surface the bridge drives on behalf of
// remote publishers. *vesc.Interface satisfies it.
type Commander interface {
	RequestFWVersion() error
	RequestState() error
	SetDutyCycle(float64) error
	SetCurrent(float64) error
	SetBrake(float64) error
	SetSpeed(float64) error
	SetPosition(float64) error
	SetServo(float64) error
}

// Bridge publishes decoded telemetry and diagnostics, and maps cmd/+
// topics onto the driver's command surface. It implements the driver's
// PacketHandler and ErrorHandler.
type Bridge struct {
	queue *Queue
}

// NewBridge creates a Bridge publishing through q.
func NewBridge(q *Queue) *Bridge {
	return &Bridge{queue: q}
}

// HandlePacket implements vesc.PacketHandler.
func (b *Bridge) HandlePacket(msg msgs.Message) {
	var topic string
	switch msg.(type) {
	case msgs.Values:
		topic = "telemetry/values"
	case msgs.FWVersion:
		topic = "telemetry/fw"
	default:
		topic = fmt.Sprintf("telemetry/raw/%d", msg.ID())
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		glog.Errorf("encode %s: %v", topic, err)
		return
	}
	b.queue.Pub(topic, payload)
}

// HandleError implements vesc.ErrorHandler.
func (b *Bridge) HandleError(diag string) {
	glog.Warning(diag)
	b.queue.Pub("telemetry/error", []byte(diag))
}

// BindCommands subscribes the command topics and routes them to c.
func (b *Bridge) BindCommands(c Commander) error {
	return b.queue.Sub("cmd/+", func(topic string, payload []byte) {
		name := topic[strings.LastIndexByte(topic, '/')+1:]
		if err := applyCommand(c, name, payload); err != nil {
			glog.Errorf("cmd/%s: %v", name, err)
			b.queue.Pub("telemetry/error", []byte(fmt.Sprintf("cmd/%s: %v", name, err)))
		}
	})
}

// applyCommand maps one command topic and its payload to a driver call.
// Setter payloads carry the value as decimal text.
func applyCommand(c Commander, name string, payload []byte) error {
	switch name {
	case "fw":
		return c.RequestFWVersion()
	case "state":
		return c.RequestState()
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(string(payload)), 64)
	if err != nil {
		return fmt.Errorf("bad value %q: %v", payload, err)
	}
	switch name {
	case "duty":
		return c.SetDutyCycle(value)
	case "current":
		return c.SetCurrent(value)
	case "brake":
		return c.SetBrake(value)
	case "speed":
		return c.SetSpeed(value)
	case "position":
		return c.SetPosition(value)
	case "servo":
		return c.SetServo(value)
	}
	return fmt.Errorf("unknown command %q", name)
}
