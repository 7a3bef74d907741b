package tlshake256

import (
	"golang.org/x/crypto/sha3"

	"github.com/gordian-engine/talon/tlhash"
)

// HashSize is the digest size in bytes.
// SHAKE-256 has variable output; 32 bytes retains its full security level.
const HashSize = 32

const (
	leafPrefix byte = 0x00
	nodePrefix byte = 0x01
)

// Hasher is a [tlhash.Hasher] backed by SHAKE-256,
// domain separating leaf and inner hashes with single-byte prefixes.
type Hasher struct{}

func (Hasher) HashLeaf(dst, leaf []byte) ([]byte, error) {
	h := sha3.NewShake256()
	_, _ = h.Write([]byte{leafPrefix})
	_, _ = h.Write(leaf)

	var out [HashSize]byte
	if _, err := h.Read(out[:]); err != nil {
		return nil, err
	}
	return append(dst, out[:]...), nil
}

func (Hasher) HashInner(dst, left, right []byte) ([]byte, error) {
	if len(left) != HashSize {
		return nil, tlhash.InputSizeError{Got: len(left), Want: HashSize}
	}
	if len(right) != HashSize {
		return nil, tlhash.InputSizeError{Got: len(right), Want: HashSize}
	}

	h := sha3.NewShake256()
	_, _ = h.Write([]byte{nodePrefix})
	_, _ = h.Write(left)
	_, _ = h.Write(right)

	var out [HashSize]byte
	if _, err := h.Read(out[:]); err != nil {
		return nil, err
	}
	return append(dst, out[:]...), nil
}

func (Hasher) EmptyDigest() ([]byte, error) {
	return Hasher{}.HashLeaf(nil, nil)
}

func (Hasher) Size() int {
	return HashSize
}
