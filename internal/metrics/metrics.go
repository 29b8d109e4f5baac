package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Thg-prog/laba8sem/internal/stats"
)

// Decode exposes counters describing decoded captures. Each instance owns its
// registry so independent decodes never share collectors.
type Decode struct {
	reg       *prometheus.Registry
	records   *prometheus.CounterVec
	bytes     prometheus.Counter
	captures  prometheus.Counter
	truncated prometheus.Counter
	unique    prometheus.Gauge
	latency   prometheus.Histogram
}

func New() *Decode {
	d := &Decode{
		reg: prometheus.NewRegistry(),
		records: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tmi_records_decoded_total",
			Help: "Records decoded from captures, by record kind.",
		}, []string{"kind"}),
		bytes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tmi_capture_bytes_total",
			Help: "Capture bytes consumed by the decoder.",
		}),
		captures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tmi_captures_decoded_total",
			Help: "Captures decoded.",
		}),
		truncated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tmi_captures_truncated_total",
			Help: "Captures whose decode stopped inside a record.",
		}),
		unique: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tmi_unique_parameters",
			Help: "Distinct parameter names in the last decoded capture.",
		}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "tmi_decode_duration_seconds",
			Help:    "Wall time spent decoding a capture.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		}),
	}
	d.reg.MustRegister(d.records, d.bytes, d.captures, d.truncated, d.unique, d.latency)
	return d
}

// Observe records the outcome of one decode.
func (d *Decode) Observe(s stats.Statistics, bytesRead int64, truncated bool, elapsed time.Duration) {
	d.captures.Inc()
	d.bytes.Add(float64(bytesRead))
	if truncated {
		d.truncated.Inc()
	}
	d.records.WithLabelValues("service").Add(float64(s.ServiceRecords))
	d.records.WithLabelValues("long").Add(float64(s.TypeCounts[0]))
	d.records.WithLabelValues("double").Add(float64(s.TypeCounts[1]))
	d.records.WithLabelValues("code").Add(float64(s.TypeCounts[2]))
	d.records.WithLabelValues("point").Add(float64(s.TypeCounts[3]))
	d.records.WithLabelValues("unknown").Add(float64(s.UnknownRecords))
	d.unique.Set(float64(s.UniqueParameters))
	d.latency.Observe(elapsed.Seconds())
}

// Registry returns the registry holding the decode collectors.
func (d *Decode) Registry() *prometheus.Registry { return d.reg }

// WriteTextfile writes the metrics in the text exposition format, suitable
// for the node_exporter textfile collector.
func (d *Decode) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, d.reg)
}
