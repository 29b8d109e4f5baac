// Package digest fingerprints capture contents so exports of the same capture
// share a key regardless of file name or compression.
package digest

import (
	"encoding/hex"
	"io"

	"github.com/zeebo/blake3"
)

// Size is the length in bytes of a capture digest.
const Size = 32

// Reader hashes everything read through it.
type Reader struct {
	r io.Reader
	h *blake3.Hasher
}

// NewReader returns a Reader hashing the bytes read from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r, h: blake3.New()}
}

func (d *Reader) Read(p []byte) (int, error) {
	n, err := d.r.Read(p)
	if n > 0 {
		d.h.Write(p[:n])
	}
	return n, err
}

// Sum returns the hex digest of the bytes read so far.
func (d *Reader) Sum() string {
	return hex.EncodeToString(d.h.Sum(nil))
}

// Bytes returns the hex digest of b.
func Bytes(b []byte) string {
	sum := blake3.Sum256(b)
	return hex.EncodeToString(sum[:])
}
