package decoder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/Thg-prog/laba8sem/internal/frame"
	"github.com/Thg-prog/laba8sem/internal/options"
	"github.com/Thg-prog/laba8sem/internal/payload"
	"github.com/Thg-prog/laba8sem/internal/records"
	"github.com/Thg-prog/laba8sem/internal/stats"
	"github.com/Thg-prog/laba8sem/internal/stream"
)

var (
	// ErrSourceUnavailable reports that the capture could not be read at all.
	ErrSourceUnavailable = errors.New("capture source unavailable")
	// ErrShortCapture reports a capture shorter than the session-start record.
	ErrShortCapture = errors.New("capture shorter than session-start record")
)

// localDimensionLimit bounds the reserved local dimension namespace; codes
// below it are rendered as fmt<code> without consulting the catalog.
const localDimensionLimit = 32

// ParameterCatalog resolves parameter numbers to names.
type ParameterCatalog interface {
	Name(number uint16) string
}

// DimensionCatalog resolves dimension codes to unit labels.
type DimensionCatalog interface {
	Dimension(code uint8) string
}

// Decode reads a complete capture from r. Running out of bytes part-way
// through a record is not an error: the stream decoded so far is returned
// with Truncated set. A capture shorter than the session-start record, or a
// source that fails before it is read, returns an error and no stream.
//
// Cancellation is honoured between records only. A cancelled decode, or a
// source that fails mid-capture, returns the partial stream together with
// the error.
func Decode(ctx context.Context, r io.Reader, params ParameterCatalog, dims DimensionCatalog) (*Stream, error) {
	log := options.Logger(ctx)
	cur := stream.NewCursor(r)
	res := newResolver(params, dims)
	cat := stats.NewCatalog()

	start, err := cur.ReadExact(frame.SessionStartSize)
	if err != nil {
		if errors.Is(err, stream.ErrTruncated) {
			return nil, fmt.Errorf("%w: %v", ErrShortCapture, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	cat.Add(records.Service{Offset: 0, SessionStart: true, Raw: start})

	for {
		if err := ctx.Err(); err != nil {
			return freeze(cat, cur, nil), err
		}
		offset := cur.Position()
		raw, err := cur.ReadExact(frame.HeaderSize)
		if err != nil {
			if atRecordBoundary(err) {
				return freeze(cat, cur, nil), nil
			}
			return finish(log, cat, cur, err)
		}
		h, err := frame.Parse(raw)
		if err != nil {
			return freeze(cat, cur, nil), err
		}
		if h.IsService() {
			cat.Add(records.Service{
				Offset:      offset,
				MessageType: h.MessageType,
				ServiceType: h.ServiceType,
				Raw:         raw,
			})
			continue
		}
		rec, err := payload.Decode(h, res.common(h), cur)
		if err != nil {
			return finish(log, cat, cur, err)
		}
		cat.Add(rec)
	}
}

// finish turns the error that ended the record loop into a result.
func finish(log *logrus.Entry, cat *stats.Catalog, cur *stream.Cursor, err error) (*Stream, error) {
	var te *stream.TruncatedError
	if errors.As(err, &te) {
		log.WithFields(logrus.Fields{
			"offset":    te.Offset,
			"needed":    te.Needed,
			"available": te.Available,
		}).Warn("capture truncated, keeping records decoded so far")
		return freeze(cat, cur, te), nil
	}
	log.WithError(err).WithField("offset", cur.Position()).Error("capture read failed mid-stream")
	s := freeze(cat, cur, &stream.TruncatedError{Offset: cur.Position()})
	return s, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
}

// atRecordBoundary reports a header read that found the source exhausted
// before its first byte: the capture ended cleanly.
func atRecordBoundary(err error) bool {
	var te *stream.TruncatedError
	return errors.As(err, &te) && te.Available == 0
}

type resolver struct {
	params ParameterCatalog
	dims   DimensionCatalog
	names  map[uint16]string
	units  map[uint8]string
}

func newResolver(params ParameterCatalog, dims DimensionCatalog) *resolver {
	return &resolver{
		params: params,
		dims:   dims,
		names:  make(map[uint16]string),
		units:  make(map[uint8]string),
	}
}

func (r *resolver) common(h frame.Header) records.Common {
	return records.Common{
		Number:       h.ParamNumber,
		Name:         r.name(h.ParamNumber),
		Time:         h.Time,
		Dimension:    r.dimension(h.DimensionCode),
		Attribute:    h.Attribute,
		RawValueType: h.RawValueType,
	}
}

func (r *resolver) name(number uint16) string {
	if name, ok := r.names[number]; ok {
		return name
	}
	var name string
	if r.params != nil {
		name = r.params.Name(number)
	} else {
		name = "UNKNOWN_" + strconv.Itoa(int(number))
	}
	r.names[number] = name
	return name
}

func (r *resolver) dimension(code uint8) string {
	if code < localDimensionLimit {
		return "fmt" + strconv.Itoa(int(code))
	}
	if unit, ok := r.units[code]; ok {
		return unit
	}
	var unit string
	if r.dims != nil {
		unit = r.dims.Dimension(code)
	} else {
		unit = "[" + strconv.Itoa(int(code)) + "]"
	}
	r.units[code] = unit
	return unit
}
