package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/Thg-prog/laba8sem/internal/decoder"
	"github.com/Thg-prog/laba8sem/internal/stats"
)

// WriteSummary writes the full capture statistics report.
func WriteSummary(w io.Writer, meta Meta, s *decoder.Stream) error {
	st := s.Stats()
	var b strings.Builder
	fmt.Fprintf(&b, "Capture: %s\n", meta.Source)
	if meta.Digest != "" {
		fmt.Fprintf(&b, "  Digest: %s\n", meta.Digest)
	}
	if meta.Compression != "" && meta.Compression != "none" {
		fmt.Fprintf(&b, "  Compression: %s\n", meta.Compression)
	}
	fmt.Fprintf(&b, "  Size: %s (%d bytes)\n", humanize.Bytes(uint64(s.BytesRead())), s.BytesRead())
	if s.Truncated() {
		fmt.Fprintf(&b, "  WARNING: %v\n", s.Truncation())
	}
	b.WriteString("Statistics:\n")
	fmt.Fprintf(&b, "  Total records: %d\n", st.TotalRecords)
	fmt.Fprintf(&b, "  Service records: %d\n", st.ServiceRecords)
	fmt.Fprintf(&b, "  Useful records: %d\n", st.UsefulRecords)
	fmt.Fprintf(&b, "  Unknown-type records: %d\n", st.UnknownRecords)
	b.WriteString("  Useful records by type:\n")
	fmt.Fprintf(&b, "    Long  (0): %d\n", st.TypeCounts[0])
	fmt.Fprintf(&b, "    Double(1): %d\n", st.TypeCounts[1])
	fmt.Fprintf(&b, "    Code  (2): %d\n", st.TypeCounts[2])
	fmt.Fprintf(&b, "    Point (3): %d\n", st.TypeCounts[3])
	fmt.Fprintf(&b, "  Unique parameters: %d\n", st.UniqueParameters)
	fmt.Fprintf(&b, "  Point < 4 bytes: %d\n", st.PointLess4)
	fmt.Fprintf(&b, "  Point >= 4 bytes: %d\n", st.PointGreater4)
	fmt.Fprintf(&b, "  Code < 8 bits: %d\n", st.CodeLess8)
	fmt.Fprintf(&b, "  Code >= 8 bits: %d\n", st.CodeGreater8)
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteSelected writes only the chosen statistics. Per-parameter items
// require param to name a bucket of the stream.
func WriteSelected(w io.Writer, s *decoder.Stream, general, perParam []stats.Item, param string) error {
	if len(general) == 0 && len(perParam) == 0 {
		_, err := io.WriteString(w, "Nothing selected.\n")
		return err
	}
	var b strings.Builder
	st := s.Stats()
	for _, it := range general {
		v, _ := st.Value(it.Key)
		fmt.Fprintf(&b, "%s: %d\n", it.Label, v)
	}
	if len(perParam) > 0 {
		if param == "" {
			return fmt.Errorf("per-parameter statistics need a parameter name")
		}
		if len(s.Bucket(param)) == 0 {
			return fmt.Errorf("parameter %q not present in capture", param)
		}
		ps := s.ParamStats(param)
		for _, it := range perParam {
			v, _ := ps.Value(it.Key)
			fmt.Fprintf(&b, "%s (%s): %d\n", it.Label, param, v)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
