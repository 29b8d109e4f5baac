package stream

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestReadExact(t *testing.T) {
	c := NewCursor(bytes.NewReader([]byte{1, 2, 3, 4, 5}))
	got, err := c.ReadExact(3)
	if err != nil {
		t.Fatalf("ReadExact: %v", err)
	}
	if !bytes.Equal(got, []byte{1, 2, 3}) {
		t.Fatalf("unexpected bytes %v", got)
	}
	if c.Position() != 3 {
		t.Fatalf("position %d, want 3", c.Position())
	}
	empty, err := c.ReadExact(0)
	if err != nil || len(empty) != 0 {
		t.Fatalf("zero read: %v %v", empty, err)
	}
}

func TestReadExactTruncated(t *testing.T) {
	c := NewCursor(bytes.NewReader([]byte{1, 2, 3, 4, 5}))
	if _, err := c.ReadExact(4); err != nil {
		t.Fatalf("ReadExact: %v", err)
	}
	_, err := c.ReadExact(4)
	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
	var te *TruncatedError
	if !errors.As(err, &te) {
		t.Fatalf("expected *TruncatedError, got %T", err)
	}
	if te.Offset != 4 || te.Needed != 4 || te.Available != 1 {
		t.Fatalf("unexpected truncation details %+v", te)
	}

	_, err = c.ReadExact(1)
	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated at end of stream, got %v", err)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, io.ErrClosedPipe }

func TestReadExactSourceError(t *testing.T) {
	c := NewCursor(failingReader{})
	_, err := c.ReadExact(2)
	if err == nil || errors.Is(err, ErrTruncated) {
		t.Fatalf("expected non-truncation error, got %v", err)
	}
	if !errors.Is(err, io.ErrClosedPipe) {
		t.Fatalf("expected wrapped source error, got %v", err)
	}
}
