package tlhash

// Hasher is the user-defined hash capability backing a commitment tree.
// The tree passes serialized leaf bytes to HashLeaf to create leaf digests,
// and it passes pairs of digests to HashInner for every internal node.
//
// To be allocation-efficient, implementations must append the digest to dst
// and return the extended slice, instead of allocating a new one when dst
// has capacity. Implementations must not retain references to dst.
//
// Hasher methods must be safe to call concurrently: row hashing may run
// batches on multiple goroutines.
//
// A Hasher must be position-independent. The digest of a leaf or of a pair
// of children may depend only on the input bytes, never on where in the
// tree they sit; incremental rebuilds relocate leaf digests when the tree
// grows, and padding rehashes the sub-root against the empty digest.
type Hasher interface {
	// HashLeaf appends the digest of the serialized leaf to dst.
	HashLeaf(dst, leaf []byte) ([]byte, error)

	// HashInner appends the digest of two child digests to dst.
	// Both children must be exactly Size bytes.
	HashInner(dst, left, right []byte) ([]byte, error)

	// EmptyDigest returns the canonical digest of an empty leaf slot.
	// The returned slice must not be modified by the caller.
	EmptyDigest() ([]byte, error)

	// Size returns the digest size in bytes.
	Size() int
}
