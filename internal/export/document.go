// Package export renders decoded captures as reports and writes them to
// JSON, CBOR and SQLite.
package export

import (
	"github.com/Thg-prog/laba8sem/internal/decoder"
	"github.com/Thg-prog/laba8sem/internal/records"
	"github.com/Thg-prog/laba8sem/internal/stats"
)

// Document is the serialisable form of a decoded capture.
type Document struct {
	Source      string           `json:"source" cbor:"source"`
	Digest      string           `json:"digest" cbor:"digest"`
	Compression string           `json:"compression" cbor:"compression"`
	Bytes       int64            `json:"bytes" cbor:"bytes"`
	Truncated   bool             `json:"truncated" cbor:"truncated"`
	Statistics  stats.Statistics `json:"statistics" cbor:"statistics"`
	Records     []Record         `json:"records" cbor:"records"`
}

// Record is one non-service record. Only the value fields of its kind are
// set.
type Record struct {
	Seq         int      `json:"seq" cbor:"seq"`
	Kind        string   `json:"kind" cbor:"kind"`
	Number      uint16   `json:"number" cbor:"number"`
	Name        string   `json:"name" cbor:"name"`
	Time        uint32   `json:"time_ms" cbor:"time_ms"`
	Dimension   string   `json:"dimension" cbor:"dimension"`
	Attribute   uint8    `json:"attribute" cbor:"attribute"`
	ValueType   uint8    `json:"value_type" cbor:"value_type"`
	Int         *int32   `json:"int,omitempty" cbor:"int,omitempty"`
	Real        *float64 `json:"real,omitempty" cbor:"real,omitempty"`
	CodeBits    *uint8   `json:"code_bits,omitempty" cbor:"code_bits,omitempty"`
	ElementSize *uint8   `json:"element_size,omitempty" cbor:"element_size,omitempty"`
	DataLength  *uint16  `json:"data_length,omitempty" cbor:"data_length,omitempty"`
	Data        []byte   `json:"data,omitempty" cbor:"data,omitempty"`
	Rendered    string   `json:"rendered" cbor:"rendered"`
}

// Meta describes where a decoded stream came from.
type Meta struct {
	Source      string
	Digest      string
	Compression string
}

// NewDocument flattens a decoded stream.
func NewDocument(meta Meta, s *decoder.Stream) Document {
	recs := s.Records()
	doc := Document{
		Source:      meta.Source,
		Digest:      meta.Digest,
		Compression: meta.Compression,
		Bytes:       s.BytesRead(),
		Truncated:   s.Truncated(),
		Statistics:  s.Stats(),
		Records:     make([]Record, 0, len(recs)),
	}
	for i, r := range recs {
		doc.Records = append(doc.Records, flatten(i, r))
	}
	return doc
}

func flatten(seq int, r records.Record) Record {
	m := r.Meta()
	out := Record{
		Seq:       seq,
		Kind:      r.Kind().String(),
		Number:    m.Number,
		Name:      m.Name,
		Time:      m.Time,
		Dimension: m.Dimension,
		Attribute: m.Attribute,
		ValueType: m.RawValueType,
		Rendered:  records.Render(r),
	}
	switch v := r.(type) {
	case records.Long:
		out.Int = &v.Value
	case records.Double:
		out.Real = &v.Value
	case records.Code:
		out.Int = &v.Value
		out.CodeBits = &v.LengthBits
	case records.Point:
		out.ElementSize = &v.ElementSize
		out.DataLength = &v.DataLength
		out.Data = v.Data
	case records.Unknown:
	}
	return out
}
