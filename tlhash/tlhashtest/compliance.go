package tlhashtest

import (
	"testing"

	"github.com/gordian-engine/talon/tlhash"
	"github.com/stretchr/testify/require"
)

// HasherFactory returns a fresh hasher for one compliance subtest.
type HasherFactory func() tlhash.Hasher

// TestHasherCompliance runs the standard compliance assertions
// that any [tlhash.Hasher] implementation must satisfy
// in order to back a commitment tree.
func TestHasherCompliance(t *testing.T, f HasherFactory) {
	t.Run("leaf digest is deterministic", func(t *testing.T) {
		t.Parallel()

		h := f()

		d1, err := h.HashLeaf(nil, []byte("deterministic_data"))
		require.NoError(t, err)

		d2, err := h.HashLeaf(nil, []byte("deterministic_data"))
		require.NoError(t, err)

		require.Equal(t, d1, d2)
	})

	t.Run("inner digest is deterministic", func(t *testing.T) {
		t.Parallel()

		h := f()

		l, err := h.HashLeaf(nil, []byte("left"))
		require.NoError(t, err)
		r, err := h.HashLeaf(nil, []byte("right"))
		require.NoError(t, err)

		d1, err := h.HashInner(nil, l, r)
		require.NoError(t, err)
		d2, err := h.HashInner(nil, l, r)
		require.NoError(t, err)

		require.Equal(t, d1, d2)
	})

	t.Run("inner digest respects child order", func(t *testing.T) {
		t.Parallel()

		h := f()

		l, err := h.HashLeaf(nil, []byte("left"))
		require.NoError(t, err)
		r, err := h.HashLeaf(nil, []byte("right"))
		require.NoError(t, err)

		lr, err := h.HashInner(nil, l, r)
		require.NoError(t, err)
		rl, err := h.HashInner(nil, r, l)
		require.NoError(t, err)

		require.NotEqual(t, lr, rl)
	})

	t.Run("leaf and inner hashes are domain separated", func(t *testing.T) {
		t.Parallel()

		h := f()

		l, err := h.HashLeaf(nil, []byte("left"))
		require.NoError(t, err)
		r, err := h.HashLeaf(nil, []byte("right"))
		require.NoError(t, err)

		inner, err := h.HashInner(nil, l, r)
		require.NoError(t, err)

		// Hashing the concatenated children as a leaf
		// must not collide with the inner hash.
		cat := append(append([]byte{}, l...), r...)
		leaf, err := h.HashLeaf(nil, cat)
		require.NoError(t, err)

		require.NotEqual(t, inner, leaf)
	})

	t.Run("digests have the declared size", func(t *testing.T) {
		t.Parallel()

		h := f()
		sz := h.Size()
		require.Positive(t, sz)

		leaf, err := h.HashLeaf(nil, []byte("sized"))
		require.NoError(t, err)
		require.Len(t, leaf, sz)

		inner, err := h.HashInner(nil, leaf, leaf)
		require.NoError(t, err)
		require.Len(t, inner, sz)
	})

	t.Run("empty digest is stable and sized", func(t *testing.T) {
		t.Parallel()

		h := f()

		e1, err := h.EmptyDigest()
		require.NoError(t, err)
		require.Len(t, e1, h.Size())

		e2, err := h.EmptyDigest()
		require.NoError(t, err)
		require.Equal(t, e1, e2)
	})

	t.Run("inner rejects wrong-size children", func(t *testing.T) {
		t.Parallel()

		h := f()

		ok, err := h.HashLeaf(nil, []byte("ok"))
		require.NoError(t, err)

		bad := make([]byte, h.Size()+1)

		_, err = h.HashInner(nil, bad, ok)
		require.Error(t, err)

		_, err = h.HashInner(nil, ok, bad)
		require.Error(t, err)
	})

	t.Run("digests append to dst", func(t *testing.T) {
		t.Parallel()

		h := f()

		plain, err := h.HashLeaf(nil, []byte("append"))
		require.NoError(t, err)

		dst := []byte("prefix_")
		out, err := h.HashLeaf(dst, []byte("append"))
		require.NoError(t, err)

		require.Equal(t, append([]byte("prefix_"), plain...), out)
	})
}
