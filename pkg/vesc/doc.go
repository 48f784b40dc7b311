// Package vesc implements the serial protocol driver for VESC motor
// controllers.
package vesc

// The driver owns one serial channel. A background reader goroutine,
// started by Connect and stopped by Disconnect, accumulates raw bytes in
// a rolling buffer, resynchronizes on frame boundaries and dispatches
// decoded messages to the packet handler. Commands are framed and
// written synchronously from the caller's goroutine; reader and writers
// share the channel, writes are serialized by the driver.
//
// Stream-level problems (garbage on the wire, corrupt frames, mid-frame
// timeouts) are reported through the error handler and never stop the
// reader. Lifecycle and send failures are returned to the caller.
