package payload

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/Thg-prog/laba8sem/internal/frame"
	"github.com/Thg-prog/laba8sem/internal/records"
)

// Reader supplies exact-length reads for variable payloads.
type Reader interface {
	ReadExact(n int) ([]byte, error)
}

// Decode builds the typed record for a non-service header. Only Point
// records consume bytes beyond the header; a short Point payload returns
// the reader's error and no record.
func Decode(h frame.Header, common records.Common, r Reader) (records.Record, error) {
	p := h.Payload() // header bytes [8:16)
	switch h.RawValueType {
	case records.TypeLong:
		return records.Long{
			Common: common,
			Value:  int32(binary.BigEndian.Uint32(p[4:8])),
		}, nil
	case records.TypeDouble:
		return records.Double{
			Common: common,
			Value:  math.Float64frombits(binary.BigEndian.Uint64(p[0:8])),
		}, nil
	case records.TypeCode:
		return records.Code{
			Common:     common,
			LengthBits: p[1],
			Value:      int32(binary.BigEndian.Uint32(p[4:8])),
		}, nil
	case records.TypePoint:
		length := binary.BigEndian.Uint16(p[2:4])
		data, err := r.ReadExact(int(length))
		if err != nil {
			return nil, fmt.Errorf("point payload for param %d: %w", common.Number, err)
		}
		return records.Point{
			Common:      common,
			ElementSize: p[0],
			DataLength:  length,
			Data:        data,
		}, nil
	default:
		return records.Unknown{
			Common:    common,
			RawHeader: h.Raw,
			RawData:   []byte{},
		}, nil
	}
}
