package vesc

import (
	"io"
	"time"

	"go.bug.st/serial"
)

// Transport is the byte channel shared by the reader goroutine and
// command senders.
type Transport interface {
	io.Writer
	io.Closer

	// ReadBounded blocks until len(p) bytes arrived or the read window
	// elapsed, and returns however many bytes were actually received.
	// A return of (0, nil) means the window elapsed with no data.
	ReadBounded(p []byte) (int, error)
}

// Fixed transport profile for the controller's UART. Not configurable
// at this layer.
const (
	baudRate   = 115200
	readWindow = 100 * time.Millisecond
)

type serialTransport struct {
	port serial.Port
}

// openSerial opens and configures the serial device.
func openSerial(device string) (Transport, error) {
	port, err := serial.Open(device, &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, err
	}
	if err = port.SetReadTimeout(readWindow); err != nil {
		port.Close()
		return nil, err
	}
	return &serialTransport{port: port}, nil
}

// ReadBounded implements Transport.
func (t *serialTransport) ReadBounded(p []byte) (int, error) {
	deadline := time.Now().Add(readWindow)
	var n int
	for n < len(p) {
		m, err := t.port.Read(p[n:])
		n += m
		if err != nil {
			return n, err
		}
		// m == 0 is the port's read timeout
		if m == 0 || !time.Now().Before(deadline) {
			break
		}
	}
	return n, nil
}

// Write implements io.Writer.
func (t *serialTransport) Write(p []byte) (int, error) {
	return t.port.Write(p)
}

// Close implements io.Closer.
func (t *serialTransport) Close() error {
	return t.port.Close()
}
