package vesc

import (
	"sync"

	"github.com/robotalks/vesc.go/pkg/vesc/frame"
	"github.com/robotalks/vesc.go/pkg/vesc/msgs"
)

// Interface drives one VESC over one serial channel.
type Interface struct {
	handler PacketHandler
	errors  ErrorHandler

	lock sync.Mutex // guards port and reader task state
	port Transport
	stop chan struct{}
	done chan struct{}

	writeLock sync.Mutex // serializes writes on the shared channel
}

// New creates an Interface dispatching to the given handlers. Handlers
// are fixed for the lifetime of the Interface; either may be nil to
// discard that stream.
func New(handler PacketHandler, errHandler ErrorHandler) *Interface {
	return &Interface{handler: handler, errors: errHandler}
}

// Connect opens the serial device and starts the reader task. It fails
// with ErrAlreadyConnected, without side effects, if already connected,
// and with *OpenError if the device cannot be opened or configured.
func (i *Interface) Connect(device string) error {
	if i.IsConnected() {
		return ErrAlreadyConnected
	}
	t, err := openSerial(device)
	if err != nil {
		return &OpenError{Device: device, Err: err}
	}
	if err = i.connectTransport(t); err != nil {
		t.Close()
		return err
	}
	return nil
}

// connectTransport binds an open transport and starts the reader task.
func (i *Interface) connectTransport(t Transport) error {
	i.lock.Lock()
	defer i.lock.Unlock()
	if i.port != nil {
		return ErrAlreadyConnected
	}
	i.port = t
	i.stop = make(chan struct{})
	i.done = make(chan struct{})
	go i.rxLoop(t, i.stop, i.done)
	return nil
}

// Disconnect stops the reader task and closes the channel. It is a
// no-op when already disconnected and always leaves the Interface
// disconnected on return.
func (i *Interface) Disconnect() error {
	i.lock.Lock()
	port, stop, done := i.port, i.stop, i.done
	i.port, i.stop, i.done = nil, nil, nil
	i.lock.Unlock()
	if port == nil {
		return nil
	}
	close(stop)
	// One request on the wire unblocks a reader parked in a read.
	i.sendTo(port, msgs.GetFWVersion{})
	<-done
	return port.Close()
}

// Close implements io.Closer as an alias for Disconnect, so owners get
// release on all exit paths.
func (i *Interface) Close() error {
	return i.Disconnect()
}

// IsConnected reports whether the channel is currently open.
func (i *Interface) IsConnected() bool {
	i.lock.Lock()
	defer i.lock.Unlock()
	return i.port != nil
}

// Send frames a command and writes it to the channel in one blocking
// write. It fails with *TransportError if the write errors and with
// *ShortWriteError if fewer bytes than the frame length were written.
// No retry is attempted.
func (i *Interface) Send(cmd msgs.Command) error {
	i.lock.Lock()
	port := i.port
	i.lock.Unlock()
	if port == nil {
		return ErrNotConnected
	}
	return i.sendTo(port, cmd)
}

func (i *Interface) sendTo(t Transport, cmd msgs.Command) error {
	b := frame.Encode(cmd.Payload())
	i.writeLock.Lock()
	n, err := t.Write(b)
	i.writeLock.Unlock()
	if err != nil {
		return &TransportError{Op: "write", Err: err}
	}
	if n < len(b) {
		return &ShortWriteError{Wrote: n, Expected: len(b)}
	}
	return nil
}

// RequestFWVersion asks the controller for its firmware version.
func (i *Interface) RequestFWVersion() error {
	return i.Send(msgs.GetFWVersion{})
}

// RequestState asks the controller for its current state values.
func (i *Interface) RequestState() error {
	return i.Send(msgs.GetValues{})
}

// SetDutyCycle commands a PWM duty cycle, -1..1.
func (i *Interface) SetDutyCycle(duty float64) error {
	return i.Send(msgs.SetDuty{DutyCycle: duty})
}

// SetCurrent commands a motor current in amperes.
func (i *Interface) SetCurrent(current float64) error {
	return i.Send(msgs.SetCurrent{Current: current})
}

// SetBrake commands a braking current in amperes.
func (i *Interface) SetBrake(current float64) error {
	return i.Send(msgs.SetCurrentBrake{Current: current})
}

// SetSpeed commands an electrical RPM.
func (i *Interface) SetSpeed(rpm float64) error {
	return i.Send(msgs.SetRPM{RPM: rpm})
}

// SetPosition commands a rotor position in degrees.
func (i *Interface) SetPosition(position float64) error {
	return i.Send(msgs.SetPos{Position: position})
}

// SetServo commands the auxiliary servo output, 0..1.
func (i *Interface) SetServo(position float64) error {
	return i.Send(msgs.SetServoPos{Position: position})
}
