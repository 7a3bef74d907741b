package tlsha256_test

import (
	"crypto/sha256"
	"testing"

	"github.com/gordian-engine/talon/tlhash"
	"github.com/gordian-engine/talon/tlhash/tlhashtest"
	"github.com/gordian-engine/talon/tlhash/tlsha256"
	"github.com/stretchr/testify/require"
)

func TestCompliance(t *testing.T) {
	t.Parallel()

	tlhashtest.TestHasherCompliance(t, func() tlhash.Hasher {
		return tlsha256.Hasher{}
	})
}

func TestHasher_knownDigests(t *testing.T) {
	t.Parallel()

	var h tlsha256.Hasher

	leaf, err := h.HashLeaf(nil, []byte("hello"))
	require.NoError(t, err)

	exp := sha256.Sum256([]byte("L.hello"))
	require.Equal(t, exp[:], leaf)

	inner, err := h.HashInner(nil, leaf, leaf)
	require.NoError(t, err)

	expInner := sha256.Sum256(append(append([]byte("N."), leaf...), leaf...))
	require.Equal(t, expInner[:], inner)
}

func TestHasher_innerInputSize(t *testing.T) {
	t.Parallel()

	var h tlsha256.Hasher

	ok, err := h.HashLeaf(nil, []byte("x"))
	require.NoError(t, err)

	_, err = h.HashInner(nil, ok[:8], ok)
	var sizeErr tlhash.InputSizeError
	require.ErrorAs(t, err, &sizeErr)
	require.Equal(t, 8, sizeErr.Got)
	require.Equal(t, tlsha256.HashSize, sizeErr.Want)
}
