package stats

import "github.com/Thg-prog/laba8sem/internal/records"

// ParamStats summarises the records of a single parameter.
type ParamStats struct {
	Total         int `json:"total" cbor:"total"`
	Long          int `json:"long" cbor:"long"`
	Double        int `json:"double" cbor:"double"`
	Code          int `json:"code" cbor:"code"`
	Point         int `json:"point" cbor:"point"`
	Unknown       int `json:"unknown" cbor:"unknown"`
	PointLess4    int `json:"point_lt4" cbor:"point_lt4"`
	PointGreater4 int `json:"point_ge4" cbor:"point_ge4"`
	CodeLess8     int `json:"code_lt8" cbor:"code_lt8"`
	CodeGreater8  int `json:"code_ge8" cbor:"code_ge8"`
}

// ForParameter counts the records of one name bucket using the same
// boundaries as the capture-wide counters.
func ForParameter(rs []records.Record) ParamStats {
	var p ParamStats
	for _, r := range rs {
		p.Total++
		switch v := r.(type) {
		case records.Long:
			p.Long++
		case records.Double:
			p.Double++
		case records.Code:
			p.Code++
			if v.LengthBits < codeBoundaryBits {
				p.CodeLess8++
			} else {
				p.CodeGreater8++
			}
		case records.Point:
			p.Point++
			if v.DataLength < pointBoundaryBytes {
				p.PointLess4++
			} else {
				p.PointGreater4++
			}
		case records.Unknown:
			p.Unknown++
		case records.Service:
			p.Total--
		}
	}
	return p
}
