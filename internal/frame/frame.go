package frame

import (
	"encoding/binary"
	"fmt"
)

const (
	// SessionStartSize is the length of the opaque record opening every capture.
	SessionStartSize = 32
	// HeaderSize is the fixed length of every record header after the session start.
	HeaderSize = 16
	// ServiceParam marks a service record.
	ServiceParam = 0xFFFF
)

// Header is a decoded 16-byte record header. For service records only
// ParamNumber, MessageType and ServiceType are meaningful.
type Header struct {
	Raw           [HeaderSize]byte
	ParamNumber   uint16
	Time          uint32
	DimensionCode byte
	Attribute     byte
	RawValueType  byte

	MessageType byte
	ServiceType byte
}

// IsService reports whether the header carries the service sentinel.
func (h Header) IsService() bool { return h.ParamNumber == ServiceParam }

// Parse interprets a record header. Every byte pattern yields a header.
func Parse(raw []byte) (Header, error) {
	if len(raw) < HeaderSize {
		return Header{}, fmt.Errorf("record header too short: %d bytes", len(raw))
	}
	var h Header
	copy(h.Raw[:], raw[:HeaderSize])
	h.ParamNumber = binary.BigEndian.Uint16(raw[0:2])
	if h.IsService() {
		h.MessageType = raw[6]
		h.ServiceType = raw[7]
		return h, nil
	}
	h.Time = binary.BigEndian.Uint32(raw[2:6])
	h.DimensionCode = raw[6]
	h.Attribute = raw[7] >> 4
	h.RawValueType = raw[7] & 0x0F
	return h, nil
}

// Payload returns the header bytes following the first eight, which hold the
// fixed-size value fields.
func (h Header) Payload() []byte { return h.Raw[8:HeaderSize] }

// String renders the header for diagnostics.
func (h Header) String() string {
	if h.IsService() {
		return fmt.Sprintf("service msg=0x%02X type=0x%02X", h.MessageType, h.ServiceType)
	}
	return fmt.Sprintf("param=%d time=%d dim=%d attr=%d type=%d", h.ParamNumber, h.Time, h.DimensionCode, h.Attribute, h.RawValueType)
}
