package loader

import (
	"encoding/hex"
	"hash"
	"io"

	"golang.org/x/crypto/blake2b"
)

// digestReader hashes every byte read through it.
type digestReader struct {
	r io.Reader
	h hash.Hash
}

func newDigestReader(r io.Reader) *digestReader {
	// New256 only fails for keys longer than 64 bytes.
	h, _ := blake2b.New256(nil)
	return &digestReader{r: io.TeeReader(r, h), h: h}
}

func (d *digestReader) Read(p []byte) (int, error) {
	return d.r.Read(p)
}

// Sum returns the hex digest of everything read so far.
func (d *digestReader) Sum() string {
	return hex.EncodeToString(d.h.Sum(nil))
}

// Digest returns the BLAKE2b-256 hex digest of data, as reported in loads.
func Digest(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}
