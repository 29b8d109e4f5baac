package records

import (
	"fmt"

	"github.com/Thg-prog/laba8sem/internal/frame"
)

// Raw value types carried in the low nibble of header byte 7. Values 4-15
// decode as Unknown.
const (
	TypeLong   byte = 0
	TypeDouble byte = 1
	TypeCode   byte = 2
	TypePoint  byte = 3
)

// Kind enumerates the record variants.
type Kind uint8

const (
	KindService Kind = iota
	KindLong
	KindDouble
	KindCode
	KindPoint
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindService:
		return "service"
	case KindLong:
		return "long"
	case KindDouble:
		return "double"
	case KindCode:
		return "code"
	case KindPoint:
		return "point"
	case KindUnknown:
		return "unknown"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Record is one decoded capture record. The set of implementations is closed
// to this package: Service, Long, Double, Code, Point and Unknown.
type Record interface {
	Kind() Kind
	Meta() Common
	isRecord()
}

// Common holds the header fields shared by every non-service record.
type Common struct {
	Number       uint16
	Name         string
	Time         uint32 // milliseconds since start of day
	Dimension    string
	Attribute    uint8
	RawValueType uint8
}

// Meta returns the shared header fields.
func (c Common) Meta() Common { return c }

func (Common) isRecord() {}

// Service is a fixed-layout record with the reserved parameter number. The
// session-start record at offset 0 is a Service with SessionStart set and no
// interpreted fields.
type Service struct {
	Offset       int64
	SessionStart bool
	MessageType  byte
	ServiceType  byte
	Raw          []byte
}

func (Service) Kind() Kind { return KindService }

// Meta returns only the reserved parameter number.
func (Service) Meta() Common { return Common{Number: frame.ServiceParam} }

func (Service) isRecord() {}

// Long carries a 32-bit signed integer.
type Long struct {
	Common
	Value int32
}

func (Long) Kind() Kind { return KindLong }

// Double carries a 64-bit IEEE-754 value.
type Double struct {
	Common
	Value float64
}

func (Double) Kind() Kind { return KindDouble }

// Code carries an integer code and its significant bit length.
type Code struct {
	Common
	LengthBits uint8
	Value      int32
}

func (Code) Kind() Kind { return KindCode }

// Point carries an opaque array payload. ElementSize is informational.
type Point struct {
	Common
	ElementSize uint8
	DataLength  uint16
	Data        []byte
}

func (Point) Kind() Kind { return KindPoint }

// Unknown keeps the header of a record whose value type is not understood.
type Unknown struct {
	Common
	RawHeader [frame.HeaderSize]byte
	RawData   []byte
}

func (Unknown) Kind() Kind { return KindUnknown }
