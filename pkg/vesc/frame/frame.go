// Package frame implements the VESC wire framing.
package frame

import "fmt"

// Frame layout constants. The format is owned by the VESC firmware:
// a start byte selecting the length-field width, the payload length,
// the payload, a CRC16 over the payload and a terminating end byte.
const (
	// SOFSmall starts a frame with a 1-byte length field.
	SOFSmall byte = 0x02
	// SOFLarge starts a frame with a 2-byte length field.
	SOFLarge byte = 0x03
	// EOF terminates every frame.
	EOF byte = 0x03

	// MinSize is the size of the smallest possible frame
	// (small start, length, 1-byte payload... a zero-length payload
	// is not valid on this wire, so: SOF + len + payload + CRC16 + EOF).
	MinSize = 5

	// MaxPayload is the largest payload the firmware accepts.
	MaxPayload = 1024

	smallOverhead = 5 // SOF + len(1) + CRC16 + EOF
	largeOverhead = 6 // SOF + len(2) + CRC16 + EOF
)

// NeedMoreError reports an incomplete but so-far-valid frame.
type NeedMoreError struct {
	// Bytes is how many additional bytes are required before
	// decoding can be retried.
	Bytes int
}

// Error implements error.
func (e *NeedMoreError) Error() string {
	return fmt.Sprintf("incomplete frame, need %d more bytes", e.Bytes)
}

// InvalidError reports a byte range that is not a frame.
type InvalidError struct {
	Reason string
}

// Error implements error.
func (e *InvalidError) Error() string {
	return "invalid frame: " + e.Reason
}

func invalid(format string, args ...interface{}) error {
	return &InvalidError{Reason: fmt.Sprintf(format, args...)}
}

func needMore(n int) error {
	return &NeedMoreError{Bytes: n}
}

// Encode frames a payload for transmission. The small variant is used
// whenever the payload length fits in one byte.
func Encode(payload []byte) []byte {
	var b []byte
	if len(payload) <= 0xff {
		b = make([]byte, 0, len(payload)+smallOverhead)
		b = append(b, SOFSmall, byte(len(payload)))
	} else {
		b = make([]byte, 0, len(payload)+largeOverhead)
		b = append(b, SOFLarge, byte(len(payload)>>8), byte(len(payload)))
	}
	b = append(b, payload...)
	crc := Checksum(payload)
	return append(b, byte(crc>>8), byte(crc), EOF)
}

// Decode attempts to decode exactly one frame from the front of b.
// On success it returns the payload and the total number of bytes the
// frame occupies. If b is a prefix of a possibly valid frame, the error
// is a *NeedMoreError carrying how many additional bytes are required.
// Any other error means no valid frame starts at b[0].
//
// Decode never consumes bytes beyond a single frame and never accepts a
// frame failing the checksum.
func Decode(b []byte) (payload []byte, n int, err error) {
	if len(b) == 0 {
		return nil, 0, needMore(MinSize)
	}

	var headerLen, payloadLen int
	switch b[0] {
	case SOFSmall:
		headerLen = 2
		if len(b) < headerLen {
			return nil, 0, needMore(MinSize - len(b))
		}
		payloadLen = int(b[1])
	case SOFLarge:
		headerLen = 3
		if len(b) < headerLen {
			return nil, 0, needMore(headerLen + 3 - len(b))
		}
		payloadLen = int(b[1])<<8 | int(b[2])
	default:
		return nil, 0, invalid("bad start byte 0x%02x", b[0])
	}

	if payloadLen == 0 {
		return nil, 0, invalid("zero-length payload")
	}
	if payloadLen > MaxPayload {
		return nil, 0, invalid("payload length %d exceeds %d", payloadLen, MaxPayload)
	}

	total := headerLen + payloadLen + 3
	if len(b) < total {
		return nil, 0, needMore(total - len(b))
	}

	payload = b[headerLen : headerLen+payloadLen]
	crc := uint16(b[headerLen+payloadLen])<<8 | uint16(b[headerLen+payloadLen+1])
	if sum := Checksum(payload); sum != crc {
		return nil, 0, invalid("checksum mismatch: frame 0x%04x, computed 0x%04x", crc, sum)
	}
	if b[total-1] != EOF {
		return nil, 0, invalid("bad end byte 0x%02x", b[total-1])
	}

	out := make([]byte, payloadLen)
	copy(out, payload)
	return out, total, nil
}
