package stream

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

var sample = bytes.Repeat([]byte{0xFF, 0xFF, 0x00, 0x10, 0x22, 0x33, 0x44, 0x55}, 64)

func TestWrapPlain(t *testing.T) {
	src, err := Wrap(bytes.NewReader(sample))
	if err != nil {
		t.Fatalf("Wrap: %v", err)
	}
	defer src.Close()
	assertContents(t, src, CompressionNone)
}

func TestWrapShortInput(t *testing.T) {
	src, err := Wrap(bytes.NewReader([]byte{0x28}))
	if err != nil {
		t.Fatalf("Wrap: %v", err)
	}
	got, err := io.ReadAll(src)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if src.Compression != CompressionNone || !bytes.Equal(got, []byte{0x28}) {
		t.Fatalf("unexpected result %v %v", src.Compression, got)
	}
}

func TestWrapZstd(t *testing.T) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatalf("zstd writer: %v", err)
	}
	compressed := enc.EncodeAll(sample, nil)
	enc.Close()

	src, err := Wrap(bytes.NewReader(compressed))
	if err != nil {
		t.Fatalf("Wrap: %v", err)
	}
	defer src.Close()
	assertContents(t, src, CompressionZstd)
}

func TestOpenLZ4(t *testing.T) {
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	if _, err := w.Write(sample); err != nil {
		t.Fatalf("lz4 write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("lz4 close: %v", err)
	}
	path := filepath.Join(t.TempDir(), "capture.KNP.lz4")
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	src, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer src.Close()
	assertContents(t, src, CompressionLZ4)
}

func TestOpenMissing(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "missing.KNP")); err == nil {
		t.Fatalf("expected error for missing capture")
	}
}

func assertContents(t *testing.T, src *Source, want Compression) {
	t.Helper()
	if src.Compression != want {
		t.Fatalf("compression %s, want %s", src.Compression, want)
	}
	got, err := io.ReadAll(src)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if !bytes.Equal(got, sample) {
		t.Fatalf("decompressed %d bytes, want %d", len(got), len(sample))
	}
}
