package stats

import (
	"sort"

	"github.com/Thg-prog/laba8sem/internal/records"
)

const (
	pointBoundaryBytes = 4
	codeBoundaryBits   = 8
)

// Statistics is a snapshot of the aggregate counters of a decode.
type Statistics struct {
	TotalRecords     int    `json:"total_records" cbor:"total_records"`
	ServiceRecords   int    `json:"service_records" cbor:"service_records"`
	UsefulRecords    int    `json:"useful_records" cbor:"useful_records"`
	UnknownRecords   int    `json:"unknown_records" cbor:"unknown_records"`
	TypeCounts       [4]int `json:"type_counts" cbor:"type_counts"`
	PointLess4       int    `json:"point_lt4" cbor:"point_lt4"`
	PointGreater4    int    `json:"point_ge4" cbor:"point_ge4"`
	CodeLess8        int    `json:"code_lt8" cbor:"code_lt8"`
	CodeGreater8     int    `json:"code_ge8" cbor:"code_ge8"`
	UniqueParameters int    `json:"unique_parameters" cbor:"unique_parameters"`
}

// Catalog accumulates records in arrival order, buckets them by name and
// maintains the counters. It is owned by one decode call.
type Catalog struct {
	stats    Statistics
	records  []records.Record
	services []records.Service
	byName   map[string][]records.Record
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{byName: make(map[string][]records.Record)}
}

// Add counts r and files it. Service records are counted but never bucketed
// by name or appended to the record list.
func (c *Catalog) Add(r records.Record) {
	c.stats.TotalRecords++
	switch v := r.(type) {
	case records.Service:
		c.stats.ServiceRecords++
		c.services = append(c.services, v)
		return
	case records.Unknown:
		c.stats.UnknownRecords++
	case records.Long, records.Double:
		c.countUseful(v)
	case records.Code:
		c.countUseful(v)
		if v.LengthBits < codeBoundaryBits {
			c.stats.CodeLess8++
		} else {
			c.stats.CodeGreater8++
		}
	case records.Point:
		c.countUseful(v)
		if v.DataLength < pointBoundaryBytes {
			c.stats.PointLess4++
		} else {
			c.stats.PointGreater4++
		}
	}
	c.records = append(c.records, r)
	name := r.Meta().Name
	if _, seen := c.byName[name]; !seen {
		c.stats.UniqueParameters++
	}
	c.byName[name] = append(c.byName[name], r)
}

func (c *Catalog) countUseful(r records.Record) {
	c.stats.UsefulRecords++
	c.stats.TypeCounts[r.Meta().RawValueType]++
}

// Snapshot returns a copy of the counters.
func (c *Catalog) Snapshot() Statistics { return c.stats }

// Records returns the non-service records in arrival order.
func (c *Catalog) Records() []records.Record { return c.records }

// Services returns the service records in arrival order.
func (c *Catalog) Services() []records.Service { return c.services }

// Buckets returns the name buckets. Each bucket keeps arrival order.
func (c *Catalog) Buckets() map[string][]records.Record { return c.byName }

// Names returns the bucket names in lexical order.
func Names(buckets map[string][]records.Record) []string {
	names := make([]string, 0, len(buckets))
	for name := range buckets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
