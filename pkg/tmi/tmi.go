package tmi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Thg-prog/laba8sem/internal/decoder"
	"github.com/Thg-prog/laba8sem/internal/digest"
	"github.com/Thg-prog/laba8sem/internal/export"
	internalopts "github.com/Thg-prog/laba8sem/internal/options"
	"github.com/Thg-prog/laba8sem/internal/stream"
)

// Result captures the outcome of a decode.
type Result struct {
	Source      string
	Digest      string
	Compression string
	Elapsed     time.Duration
	Stream      *decoder.Stream
}

// Meta returns the export metadata of the result.
func (r Result) Meta() export.Meta {
	return export.Meta{Source: r.Source, Digest: r.Digest, Compression: r.Compression}
}

// Document flattens the result for export.
func (r Result) Document() export.Document {
	return export.NewDocument(r.Meta(), r.Stream)
}

// String renders a human-readable representation of the result.
func (r Result) String() string {
	summary := map[string]any{
		"source":      r.Source,
		"digest":      r.Digest,
		"compression": r.Compression,
	}
	if r.Stream != nil {
		summary["bytes"] = r.Stream.BytesRead()
		summary["truncated"] = r.Stream.Truncated()
		summary["statistics"] = r.Stream.Stats()
		summary["parameters"] = r.Stream.Names()
	}
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Sprintf("source: %s digest:%s (marshal error: %v)", r.Source, r.Digest, err)
	}
	return string(data)
}

// DecodeFile opens the capture at path, decompressing it when needed, and
// decodes it.
func DecodeFile(ctx context.Context, path string, opts DecodeOptions) (Result, error) {
	src, err := stream.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", decoder.ErrSourceUnavailable, err)
	}
	defer src.Close()
	return decode(ctx, path, src, opts)
}

// Decode decodes a capture read from r. Compressed input is detected and
// unpacked.
func Decode(ctx context.Context, r io.Reader, opts DecodeOptions) (Result, error) {
	src, err := stream.Wrap(r)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", decoder.ErrSourceUnavailable, err)
	}
	defer src.Close()
	return decode(ctx, "", src, opts)
}

func decode(ctx context.Context, name string, src *stream.Source, opts DecodeOptions) (Result, error) {
	ctx, params, dims := opts.toInternal(ctx)
	log := internalopts.Logger(ctx).WithField("capture", name)

	hashed := digest.NewReader(src)
	started := time.Now()
	s, err := decoder.Decode(ctx, hashed, params, dims)
	elapsed := time.Since(started)

	result := Result{
		Source:      name,
		Compression: src.Compression.String(),
		Elapsed:     elapsed,
		Stream:      s,
	}
	if s == nil {
		return result, err
	}
	if err == nil {
		// Cover bytes after a truncation point so the digest names the whole capture.
		if _, drainErr := io.Copy(io.Discard, hashed); drainErr != nil {
			log.WithError(drainErr).Warn("could not read capture tail for digest")
		}
		result.Digest = hashed.Sum()
	}
	if opts.Metrics != nil {
		opts.Metrics.Observe(s.Stats(), s.BytesRead(), s.Truncated(), elapsed)
	}
	st := s.Stats()
	log.WithFields(logrus.Fields{
		"records":   st.TotalRecords,
		"useful":    st.UsefulRecords,
		"unknown":   st.UnknownRecords,
		"service":   st.ServiceRecords,
		"truncated": s.Truncated(),
		"elapsed":   elapsed,
	}).Info("capture decoded")
	return result, err
}
