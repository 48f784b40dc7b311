package msgs

import "encoding/binary"

// Payload value helpers. The firmware packs scaled fixed-point values
// big-endian; scaling factors are per-field and fixed.

func appendInt32(b []byte, v int32) []byte {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], uint32(v))
	return append(b, tmp[:]...)
}

func appendUint16(b []byte, v uint16) []byte {
	var tmp [2]byte
	binary.BigEndian.PutUint16(tmp[:], v)
	return append(b, tmp[:]...)
}

func appendScaled32(b []byte, v, scale float64) []byte {
	return appendInt32(b, int32(v*scale))
}

func appendScaled16(b []byte, v, scale float64) []byte {
	return appendUint16(b, uint16(int16(v*scale)))
}

// reader consumes fixed-width values from the front of a payload.
// Overrun is tracked instead of panicking so message decoders can
// validate length once at the end.
type reader struct {
	b     []byte
	pos   int
	short bool
}

func (r *reader) int16() int16 {
	if r.pos+2 > len(r.b) {
		r.short = true
		return 0
	}
	v := int16(binary.BigEndian.Uint16(r.b[r.pos:]))
	r.pos += 2
	return v
}

func (r *reader) int32() int32 {
	if r.pos+4 > len(r.b) {
		r.short = true
		return 0
	}
	v := int32(binary.BigEndian.Uint32(r.b[r.pos:]))
	r.pos += 4
	return v
}

func (r *reader) byte() byte {
	if r.pos >= len(r.b) {
		r.short = true
		return 0
	}
	v := r.b[r.pos]
	r.pos++
	return v
}

func (r *reader) scaled16(scale float64) float64 {
	return float64(r.int16()) / scale
}

func (r *reader) scaled32(scale float64) float64 {
	return float64(r.int32()) / scale
}
