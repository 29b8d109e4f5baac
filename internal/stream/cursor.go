package stream

import (
	"errors"
	"fmt"
	"io"
)

// ErrTruncated reports that fewer bytes remain than a read requires.
var ErrTruncated = errors.New("stream truncated")

// TruncatedError carries the position and byte counts of a short read.
type TruncatedError struct {
	Offset    int64
	Needed    int
	Available int
}

func (e *TruncatedError) Error() string {
	return fmt.Sprintf("stream truncated at offset %d: need %d bytes, %d available", e.Offset, e.Needed, e.Available)
}

// Unwrap lets errors.Is match ErrTruncated.
func (e *TruncatedError) Unwrap() error { return ErrTruncated }

// Cursor consumes a byte source sequentially and tracks the absolute offset.
// A Cursor belongs to a single decode call and is not safe for concurrent use.
type Cursor struct {
	r   io.Reader
	pos int64
}

// NewCursor wraps r. The position starts at zero.
func NewCursor(r io.Reader) *Cursor {
	return &Cursor{r: r}
}

// Position returns the number of bytes consumed so far.
func (c *Cursor) Position() int64 { return c.pos }

// ReadExact returns exactly n bytes. When the source ends early the partial
// bytes are consumed and a *TruncatedError is returned. Other read failures
// are returned wrapped.
func (c *Cursor) ReadExact(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("negative read length %d", n)
	}
	buf := make([]byte, n)
	if n == 0 {
		return buf, nil
	}
	got, err := io.ReadFull(c.r, buf)
	start := c.pos
	c.pos += int64(got)
	switch {
	case err == nil:
		return buf, nil
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return nil, &TruncatedError{Offset: start, Needed: n, Available: got}
	default:
		return nil, fmt.Errorf("read %d bytes at offset %d: %w", n, start, err)
	}
}
