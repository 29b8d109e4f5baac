package testutil

import (
	"encoding/binary"
	"math"
)

// Capture assembles bit-exact capture bytes for tests. The session-start
// record is written by NewCapture.
type Capture struct {
	buf []byte
}

// NewCapture starts a capture with a 32-byte session-start record.
func NewCapture() *Capture {
	start := make([]byte, 32)
	for i := range start {
		start[i] = byte(0xA0 + i)
	}
	return &Capture{buf: start}
}

// Bytes returns the assembled capture.
func (c *Capture) Bytes() []byte {
	out := make([]byte, len(c.buf))
	copy(out, c.buf)
	return out
}

// Raw appends arbitrary bytes.
func (c *Capture) Raw(b ...byte) *Capture {
	c.buf = append(c.buf, b...)
	return c
}

// Service appends a 16-byte service record.
func (c *Capture) Service(messageType, valueType byte) *Capture {
	h := make([]byte, 16)
	h[0], h[1] = 0xFF, 0xFF
	h[6] = messageType
	h[7] = valueType
	return c.Raw(h...)
}

// Long appends a Long record.
func (c *Capture) Long(number uint16, ms uint32, dim, attr byte, value int32) *Capture {
	h := header(number, ms, dim, attr, 0)
	binary.BigEndian.PutUint32(h[12:16], uint32(value))
	return c.Raw(h...)
}

// Double appends a Double record.
func (c *Capture) Double(number uint16, ms uint32, dim, attr byte, value float64) *Capture {
	h := header(number, ms, dim, attr, 1)
	binary.BigEndian.PutUint64(h[8:16], math.Float64bits(value))
	return c.Raw(h...)
}

// DoubleBits appends a Double record carrying the given raw bit pattern.
func (c *Capture) DoubleBits(number uint16, ms uint32, dim, attr byte, bits uint64) *Capture {
	h := header(number, ms, dim, attr, 1)
	binary.BigEndian.PutUint64(h[8:16], bits)
	return c.Raw(h...)
}

// Code appends a Code record.
func (c *Capture) Code(number uint16, ms uint32, dim, attr, lengthBits byte, value int32) *Capture {
	h := header(number, ms, dim, attr, 2)
	h[9] = lengthBits
	binary.BigEndian.PutUint32(h[12:16], uint32(value))
	return c.Raw(h...)
}

// Point appends a Point record followed by data.
func (c *Capture) Point(number uint16, ms uint32, dim, attr, elementSize byte, data []byte) *Capture {
	return c.PointDeclared(number, ms, dim, attr, elementSize, uint16(len(data)), data)
}

// PointDeclared appends a Point header declaring length bytes followed by
// data, which may be shorter than declared.
func (c *Capture) PointDeclared(number uint16, ms uint32, dim, attr, elementSize byte, length uint16, data []byte) *Capture {
	h := header(number, ms, dim, attr, 3)
	h[8] = elementSize
	binary.BigEndian.PutUint16(h[10:12], length)
	c.Raw(h...)
	return c.Raw(data...)
}

// Typed appends a record with an arbitrary raw value type and no payload.
func (c *Capture) Typed(number uint16, ms uint32, dim, attr, valueType byte) *Capture {
	return c.Raw(header(number, ms, dim, attr, valueType)...)
}

func header(number uint16, ms uint32, dim, attr, valueType byte) []byte {
	h := make([]byte, 16)
	binary.BigEndian.PutUint16(h[0:2], number)
	binary.BigEndian.PutUint32(h[2:6], ms)
	h[6] = dim
	h[7] = attr<<4 | valueType&0x0F
	return h
}
