package decoder

import (
	"bytes"
	"context"
	"errors"
	"io"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Thg-prog/laba8sem/internal/records"
	"github.com/Thg-prog/laba8sem/internal/stream"
	"github.com/Thg-prog/laba8sem/internal/testutil"
)

type fakeParams map[uint16]string

func (f fakeParams) Name(n uint16) string {
	if name, ok := f[n]; ok {
		return name
	}
	return "UNKNOWN_" + string(rune('0'+n%10))
}

type fakeDims struct {
	units   map[uint8]string
	queried []uint8
}

func (f *fakeDims) Dimension(code uint8) string {
	f.queried = append(f.queried, code)
	if u, ok := f.units[code]; ok {
		return u
	}
	return "?"
}

var params = fakeParams{10: "U_BUS", 11: "T_BOARD", 12: "MODE", 13: "WAVEFORM"}

func newDims() *fakeDims {
	return &fakeDims{units: map[uint8]string{40: "V", 41: "°C"}}
}

func decode(t *testing.T, raw []byte) *Stream {
	t.Helper()
	s, err := Decode(context.Background(), bytes.NewReader(raw), params, newDims())
	require.NoError(t, err)
	return s
}

func TestDecodeLongRecord(t *testing.T) {
	dims := newDims()
	raw := testutil.NewCapture().Long(10, 123456, 40, 3, -7).Bytes()
	s, err := Decode(context.Background(), bytes.NewReader(raw), params, dims)
	require.NoError(t, err)
	require.False(t, s.Truncated())

	recs := s.Records()
	require.Len(t, recs, 1)
	long, ok := recs[0].(records.Long)
	require.True(t, ok)
	require.Equal(t, records.Common{
		Number:       10,
		Name:         "U_BUS",
		Time:         123456,
		Dimension:    dims.Dimension(40),
		Attribute:    3,
		RawValueType: 0,
	}, long.Common)
	require.Equal(t, int32(-7), long.Value)
}

func TestDecodeDoubleBits(t *testing.T) {
	raw := testutil.NewCapture().DoubleBits(11, 5, 41, 0, 0x3FF0000000000000).Bytes()
	s := decode(t, raw)
	require.Equal(t, 1.0, s.Records()[0].(records.Double).Value)
}

func TestDecodeCounters(t *testing.T) {
	raw := testutil.NewCapture().
		Long(10, 1, 40, 0, 1).
		Service(0x01, 0x02).
		Double(11, 2, 41, 0, 2.5).
		Code(12, 3, 40, 0, 8, 3).
		Typed(13, 4, 40, 0, 9).
		Point(13, 5, 40, 0, 1, []byte{1, 2, 3, 4, 5}).
		Service(0x03, 0x04).
		Code(12, 6, 40, 0, 7, 1).
		Typed(14, 7, 40, 0, 15).
		Bytes()
	s := decode(t, raw)
	st := s.Stats()

	n, u, m := 5, 2, 2
	require.Equal(t, n+u+m+1, st.TotalRecords)
	require.Equal(t, m+1, st.ServiceRecords)
	require.Equal(t, n, st.UsefulRecords)
	require.Equal(t, u, st.UnknownRecords)
	require.Equal(t, [4]int{1, 1, 2, 1}, st.TypeCounts)
	require.Equal(t, 1, st.CodeGreater8)
	require.Equal(t, 1, st.CodeLess8)
	require.Equal(t, 1, st.PointGreater4)
	require.Equal(t, 0, st.PointLess4)
	require.Equal(t, 5, st.UniqueParameters)
	require.Equal(t, int64(len(raw)), s.BytesRead())

	services := s.Services()
	require.Len(t, services, 3)
	require.True(t, services[0].SessionStart)
	require.Equal(t, int64(0), services[0].Offset)
	require.Len(t, services[0].Raw, 32)
	require.Equal(t, int64(48), services[1].Offset)
	require.Equal(t, byte(0x01), services[1].MessageType)
	for _, svc := range services {
		require.Equal(t, uint16(0xFFFF), svc.Meta().Number)
	}
	for _, r := range s.Records() {
		require.NotEqual(t, uint16(0xFFFF), r.Meta().Number)
	}
}

func TestDecodeBucketsKeepArrivalOrder(t *testing.T) {
	raw := testutil.NewCapture().
		Long(10, 300, 40, 0, 1).
		Long(11, 100, 40, 0, 9).
		Long(10, 100, 40, 0, 2).
		Long(10, 200, 40, 0, 3).
		Bytes()
	s := decode(t, raw)
	require.Equal(t, []string{"T_BOARD", "U_BUS"}, s.Names())

	bucket := s.Bucket("U_BUS")
	var values []int32
	for _, r := range bucket {
		values = append(values, r.(records.Long).Value)
	}
	require.Equal(t, []int32{1, 2, 3}, values)

	sorted := records.SortByTime(bucket)
	require.Equal(t, uint32(100), sorted[0].Meta().Time)
	require.Equal(t, int32(1), s.Bucket("U_BUS")[0].(records.Long).Value)
}

func TestDecodeTruncatedPoint(t *testing.T) {
	raw := testutil.NewCapture().
		Long(10, 1, 40, 0, 1).
		Code(12, 2, 40, 0, 4, 1).
		PointDeclared(13, 3, 40, 0, 1, 10, []byte{1, 2, 3, 4, 5}).
		Bytes()
	s, err := Decode(context.Background(), bytes.NewReader(raw), params, newDims())
	require.NoError(t, err)
	require.True(t, s.Truncated())
	require.Len(t, s.Records(), 2)
	require.Empty(t, s.Bucket("WAVEFORM"))
	require.Equal(t, 0, s.Stats().TypeCounts[3])
	require.Equal(t, int64(64+16), s.Truncation().Offset)
	require.Equal(t, 10, s.Truncation().Needed)
	require.Equal(t, 5, s.Truncation().Available)
}

func TestDecodeTruncatedHeader(t *testing.T) {
	raw := testutil.NewCapture().Long(10, 1, 40, 0, 1).Raw(0x00, 0x0A, 0x00).Bytes()
	s := decode(t, raw)
	require.True(t, s.Truncated())
	require.Len(t, s.Records(), 1)
	require.Equal(t, 2, s.Stats().TotalRecords)
}

func TestDecodeCleanEndIsNotTruncated(t *testing.T) {
	s := decode(t, testutil.NewCapture().Bytes())
	require.False(t, s.Truncated())
	require.Equal(t, 1, s.Stats().TotalRecords)
	require.Equal(t, 1, s.Stats().ServiceRecords)
	require.Empty(t, s.Records())
}

func TestDecodeShortCapture(t *testing.T) {
	_, err := Decode(context.Background(), bytes.NewReader(make([]byte, 31)), params, newDims())
	require.ErrorIs(t, err, ErrShortCapture)
}

type brokenReader struct {
	data []byte
	fail bool
}

func (b *brokenReader) Read(p []byte) (int, error) {
	if len(b.data) == 0 {
		if b.fail {
			return 0, io.ErrClosedPipe
		}
		return 0, io.EOF
	}
	n := copy(p, b.data)
	b.data = b.data[n:]
	return n, nil
}

func TestDecodeSourceUnavailable(t *testing.T) {
	_, err := Decode(context.Background(), &brokenReader{fail: true}, params, newDims())
	require.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestDecodeMidStreamFailureKeepsPartial(t *testing.T) {
	raw := testutil.NewCapture().Long(10, 1, 40, 0, 1).Bytes()
	s, err := Decode(context.Background(), &brokenReader{data: raw, fail: true}, params, newDims())
	require.ErrorIs(t, err, ErrSourceUnavailable)
	require.NotNil(t, s)
	require.Len(t, s.Records(), 1)
	require.True(t, s.Truncated())
}

func TestDecodeDimensionNamespace(t *testing.T) {
	dims := newDims()
	raw := testutil.NewCapture().
		Long(10, 1, 5, 0, 1).
		Long(10, 2, 31, 0, 1).
		Long(10, 3, 40, 0, 1).
		Long(10, 4, 40, 0, 1).
		Long(10, 5, 200, 0, 1).
		Bytes()
	s, err := Decode(context.Background(), bytes.NewReader(raw), params, dims)
	require.NoError(t, err)
	recs := s.Records()
	require.Equal(t, "fmt5", recs[0].Meta().Dimension)
	require.Equal(t, "fmt31", recs[1].Meta().Dimension)
	require.Equal(t, "V", recs[2].Meta().Dimension)
	require.Equal(t, "?", recs[4].Meta().Dimension)
	require.Equal(t, []uint8{40, 200}, dims.queried)
}

func TestDecodeNilCatalogs(t *testing.T) {
	raw := testutil.NewCapture().Long(77, 1, 50, 0, 1).Bytes()
	s, err := Decode(context.Background(), bytes.NewReader(raw), nil, nil)
	require.NoError(t, err)
	meta := s.Records()[0].Meta()
	require.Equal(t, "UNKNOWN_77", meta.Name)
	require.Equal(t, "[50]", meta.Dimension)
}

func TestDecodeCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	raw := testutil.NewCapture().Long(10, 1, 40, 0, 1).Bytes()
	s, err := Decode(ctx, bytes.NewReader(raw), params, newDims())
	require.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, s)
	require.Equal(t, 1, s.Stats().ServiceRecords)
	require.Equal(t, int64(32), s.BytesRead())
}

func TestDecodeIdempotent(t *testing.T) {
	raw := testutil.NewCapture().
		Long(10, 3, 40, 0, 1).
		Code(12, 1, 40, 0, 9, 2).
		Point(13, 2, 41, 0, 2, []byte{9, 9}).
		Long(10, 1, 40, 0, 4).
		Typed(11, 0, 40, 0, 6).
		Bytes()
	a := decode(t, raw)
	b := decode(t, raw)
	require.Equal(t, a.Stats(), b.Stats())
	require.Equal(t, a.Names(), b.Names())
	for _, name := range a.Names() {
		require.True(t, reflect.DeepEqual(a.Bucket(name), b.Bucket(name)), name)
	}
}

func TestTruncatedErrorIsSoft(t *testing.T) {
	raw := testutil.NewCapture().PointDeclared(13, 1, 40, 0, 1, 4, nil).Bytes()
	s, err := Decode(context.Background(), bytes.NewReader(raw), params, newDims())
	require.NoError(t, err)
	require.True(t, errors.Is(s.Truncation(), stream.ErrTruncated))
}
