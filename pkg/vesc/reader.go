package vesc

import (
	"errors"
	"fmt"
	"time"

	"github.com/robotalks/vesc.go/pkg/vesc/frame"
	"github.com/robotalks/vesc.go/pkg/vesc/msgs"
)

const (
	// rxBufferCap bounds how much is read per iteration and sizes the
	// receive buffer up front.
	rxBufferCap = 4096
	// readThrottle paces the loop so an idle wire doesn't spin the CPU.
	readThrottle = 10 * time.Millisecond
)

// rxLoop is the reader task. It exclusively owns buf; the transport is
// shared with senders. Runs until stop is closed, then closes done.
func (i *Interface) rxLoop(t Transport, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	buf := make([]byte, 0, rxBufferCap)
	chunk := make([]byte, rxBufferCap)

	for {
		select {
		case <-stop:
			return
		default:
		}

		needed := frame.MinSize
		if len(buf) > 0 {
			var consumed int
			consumed, needed = i.scan(buf)
			if consumed > 0 {
				buf = buf[:copy(buf, buf[consumed:])]
			}
		}
		if needed > len(chunk) {
			needed = len(chunk)
		}

		n, err := t.ReadBounded(chunk[:needed])
		if err != nil {
			i.reportError(fmt.Sprintf("serial read failed: %v", err))
		}
		if n == 0 && len(buf) > 0 {
			i.reportError("possibly out of sync with device, read timeout in the middle of a frame")
		}
		buf = append(buf, chunk[:n]...)

		select {
		case <-stop:
			return
		case <-time.After(readThrottle):
		}
	}
}

// scan walks buf front to back, dispatching every complete frame and
// reporting skipped garbage, in wire order. It returns how many bytes
// to drop from the front of buf and how many bytes the next read should
// request. A partial frame candidate is left unconsumed at the front.
//
// A failed decode advances one byte only, so a start byte appearing
// inside garbage costs at most one retry per position and the pass
// always terminates.
func (i *Interface) scan(buf []byte) (consumed, needed int) {
	needed = frame.MinSize
	var pos, mark int
	for pos < len(buf) {
		if b := buf[pos]; b != frame.SOFSmall && b != frame.SOFLarge {
			pos++
			continue
		}
		payload, n, err := frame.Decode(buf[pos:])
		if err == nil {
			if skipped := pos - mark; skipped > 0 {
				i.reportError(fmt.Sprintf("out of sync with device, discarding %d bytes before valid frame", skipped))
			}
			if msg, derr := msgs.Decode(payload); derr != nil {
				i.reportError(fmt.Sprintf("dropping frame: %v", derr))
			} else {
				i.dispatch(msg)
			}
			pos += n
			mark = pos
			continue
		}
		var more *frame.NeedMoreError
		if errors.As(err, &more) {
			needed = more.Bytes
			break
		}
		i.reportError(err.Error())
		pos++
	}
	if skipped := pos - mark; skipped > 0 {
		i.reportError(fmt.Sprintf("out of sync with device, discarding %d bytes", skipped))
	}
	return pos, needed
}

func (i *Interface) dispatch(msg msgs.Message) {
	if h := i.handler; h != nil {
		h.HandlePacket(msg)
	}
}

func (i *Interface) reportError(diag string) {
	if h := i.errors; h != nil {
		h.HandleError(diag)
	}
}
