package decoder

import (
	"github.com/Thg-prog/laba8sem/internal/records"
	"github.com/Thg-prog/laba8sem/internal/stats"
	"github.com/Thg-prog/laba8sem/internal/stream"
)

// Stream is the read-only result of one decode.
type Stream struct {
	records    []records.Record
	services   []records.Service
	buckets    map[string][]records.Record
	names      []string
	stats      stats.Statistics
	bytesRead  int64
	truncation *stream.TruncatedError
}

func freeze(cat *stats.Catalog, cur *stream.Cursor, te *stream.TruncatedError) *Stream {
	return &Stream{
		records:    cat.Records(),
		services:   cat.Services(),
		buckets:    cat.Buckets(),
		names:      stats.Names(cat.Buckets()),
		stats:      cat.Snapshot(),
		bytesRead:  cur.Position(),
		truncation: te,
	}
}

// Records returns the non-service records in arrival order.
func (s *Stream) Records() []records.Record {
	return append([]records.Record(nil), s.records...)
}

// Services returns the service records, session start first.
func (s *Stream) Services() []records.Service {
	return append([]records.Service(nil), s.services...)
}

// Names returns the distinct parameter names in lexical order.
func (s *Stream) Names() []string {
	return append([]string(nil), s.names...)
}

// Bucket returns the records of one name in arrival order.
func (s *Stream) Bucket(name string) []records.Record {
	return append([]records.Record(nil), s.buckets[name]...)
}

// Stats returns the statistics snapshot.
func (s *Stream) Stats() stats.Statistics { return s.stats }

// ParamStats returns the statistics of one name bucket.
func (s *Stream) ParamStats(name string) stats.ParamStats {
	return stats.ForParameter(s.buckets[name])
}

// BytesRead returns the number of capture bytes consumed.
func (s *Stream) BytesRead() int64 { return s.bytesRead }

// Truncated reports whether decoding stopped inside a record.
func (s *Stream) Truncated() bool { return s.truncation != nil }

// Truncation describes where decoding stopped, or nil.
func (s *Stream) Truncation() *stream.TruncatedError { return s.truncation }
