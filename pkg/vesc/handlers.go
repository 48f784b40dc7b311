package vesc

import "github.com/robotalks/vesc.go/pkg/vesc/msgs"

// PacketHandler is called once per decoded inbound message, in the
// order frames appear on the wire. It runs on the reader goroutine and
// must not block for long.
type PacketHandler interface {
	HandlePacket(msgs.Message)
}

// HandlePacketFunc is func type of PacketHandler.
type HandlePacketFunc func(msgs.Message)

// HandlePacket implements PacketHandler.
func (f HandlePacketFunc) HandlePacket(msg msgs.Message) {
	f(msg)
}

// ErrorHandler is called once per non-fatal stream diagnostic.
type ErrorHandler interface {
	HandleError(string)
}

// HandleErrorFunc is func type of ErrorHandler.
type HandleErrorFunc func(string)

// HandleError implements ErrorHandler.
func (f HandleErrorFunc) HandleError(diag string) {
	f(diag)
}
