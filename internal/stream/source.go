package stream

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies the container wrapping a capture on disk.
type Compression uint8

const (
	CompressionNone Compression = iota
	CompressionZstd
	CompressionLZ4
)

// String returns the human-readable name of the compression.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

var (
	zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}
	lz4Magic  = []byte{0x04, 0x22, 0x4D, 0x18}
)

// Source is an opened capture. Close releases the file and any decompressor.
type Source struct {
	io.Reader
	Compression Compression
	closers     []func() error
}

// Close releases every resource held by the source.
func (s *Source) Close() error {
	var first error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	s.closers = nil
	return first
}

// Open opens the capture at path. Zstandard and LZ4 framed captures are
// detected by their magic numbers and decompressed transparently.
func Open(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	src, err := Wrap(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	src.closers = append([]func() error{f.Close}, src.closers...)
	return src, nil
}

// Wrap sniffs r for a compression container and returns a Source yielding
// the raw capture bytes. Wrap does not take ownership of r.
func Wrap(r io.Reader) (*Source, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(len(zstdMagic))
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("peek capture header: %w", err)
	}
	switch {
	case bytes.HasPrefix(head, zstdMagic):
		dec, err := zstd.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("zstd reader: %w", err)
		}
		return &Source{
			Reader:      dec,
			Compression: CompressionZstd,
			closers:     []func() error{func() error { dec.Close(); return nil }},
		}, nil
	case bytes.HasPrefix(head, lz4Magic):
		return &Source{Reader: lz4.NewReader(br), Compression: CompressionLZ4}, nil
	default:
		return &Source{Reader: br, Compression: CompressionNone}, nil
	}
}
