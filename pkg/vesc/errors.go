package vesc

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyConnected indicates Connect was called on a connected
	// Interface. The existing connection is left untouched.
	ErrAlreadyConnected = errors.New("already connected")
	// ErrNotConnected indicates a send was attempted while disconnected.
	ErrNotConnected = errors.New("not connected")
)

// OpenError wraps a failure to open or configure the serial device.
type OpenError struct {
	Device string
	Err    error
}

// Error implements error.
func (e *OpenError) Error() string {
	return fmt.Sprintf("open %s: %v", e.Device, e.Err)
}

// Unwrap returns the underlying cause.
func (e *OpenError) Unwrap() error { return e.Err }

// ShortWriteError indicates a frame was only partially transmitted.
type ShortWriteError struct {
	Wrote    int
	Expected int
}

// Error implements error.
func (e *ShortWriteError) Error() string {
	return fmt.Sprintf("short write: wrote %d bytes, expected %d", e.Wrote, e.Expected)
}

// TransportError wraps a channel-level I/O failure on the send path.
type TransportError struct {
	Op  string
	Err error
}

// Error implements error.
func (e *TransportError) Error() string {
	return fmt.Sprintf("transport %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying cause.
func (e *TransportError) Unwrap() error { return e.Err }
