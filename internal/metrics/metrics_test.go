package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/Thg-prog/laba8sem/internal/stats"
)

func TestDecodeMetrics(t *testing.T) {
	m := New()
	s := stats.Statistics{
		TotalRecords:     10,
		ServiceRecords:   2,
		UsefulRecords:    7,
		UnknownRecords:   1,
		TypeCounts:       [4]int{3, 2, 1, 1},
		UniqueParameters: 4,
	}
	m.Observe(s, 256, true, 5*time.Millisecond)

	if got := testutil.ToFloat64(m.records.WithLabelValues("long")); got != 3 {
		t.Fatalf("expected long counter 3, got %f", got)
	}
	if got := testutil.ToFloat64(m.records.WithLabelValues("unknown")); got != 1 {
		t.Fatalf("expected unknown counter 1, got %f", got)
	}
	if got := testutil.ToFloat64(m.bytes); got != 256 {
		t.Fatalf("expected bytes 256, got %f", got)
	}
	if got := testutil.ToFloat64(m.truncated); got != 1 {
		t.Fatalf("expected truncated 1, got %f", got)
	}
	if got := testutil.ToFloat64(m.unique); got != 4 {
		t.Fatalf("expected unique gauge 4, got %f", got)
	}
	if samples := testutil.CollectAndCount(m.latency); samples != 1 {
		t.Fatalf("expected latency histogram to record 1 sample, got %d", samples)
	}
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.Observe(stats.Statistics{ServiceRecords: 1}, 32, false, time.Millisecond)
	path := filepath.Join(t.TempDir(), "tmi.prom")
	if err := m.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), "tmi_captures_decoded_total 1") {
		t.Fatalf("textfile missing capture counter:\n%s", data)
	}
}
