package tlsha256

import (
	"crypto/sha256"

	"github.com/gordian-engine/talon/tlhash"
)

const HashSize = sha256.Size

// Hasher is a [tlhash.Hasher] backed by SHA-256,
// with distinct domain tags for leaf and inner hashes.
type Hasher struct{}

func (Hasher) HashLeaf(dst, leaf []byte) ([]byte, error) {
	h := sha256.New()
	_, _ = h.Write([]byte("L."))
	_, _ = h.Write(leaf)
	return h.Sum(dst), nil
}

func (Hasher) HashInner(dst, left, right []byte) ([]byte, error) {
	if len(left) != HashSize {
		return nil, tlhash.InputSizeError{Got: len(left), Want: HashSize}
	}
	if len(right) != HashSize {
		return nil, tlhash.InputSizeError{Got: len(right), Want: HashSize}
	}

	h := sha256.New()
	_, _ = h.Write([]byte("N."))
	_, _ = h.Write(left)
	_, _ = h.Write(right)
	return h.Sum(dst), nil
}

func (Hasher) EmptyDigest() ([]byte, error) {
	// The canonical empty slot is the leaf digest of no data.
	return Hasher{}.HashLeaf(nil, nil)
}

func (Hasher) Size() int {
	return HashSize
}
