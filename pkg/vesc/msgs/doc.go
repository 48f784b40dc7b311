// Package msgs defines the typed messages exchanged with the controller.
package msgs

// Outbound commands and inbound responses are disjoint sets: a Command
// encodes itself into a frame payload, a Message is decoded from one.
// The payload always starts with the command ID byte; multi-byte values
// are big-endian with fixed scaling factors defined by the firmware.
