package talon

import (
	"bytes"
	"fmt"
	"time"

	"github.com/bits-and-blooms/bitset"
)

// Rebuild returns a new Tree with newLeaves appended at leaf positions
// [startIndex, startIndex+len(newLeaves)).
// Leaf positions [0, startIndex) must already be present and correctly
// hashed in t; their digests carry over without rehashing, as do all
// internal digests the appended leaves cannot have affected.
//
// t is never mutated. Any failure leaves t fully intact,
// so a caller can safely keep using the old tree after an error.
//
// Passing a startIndex outside t's hashed leaf row is a caller bug
// and panics.
func (t *Tree) Rebuild(startIndex int, newLeaves [][]byte) (*Tree, error) {
	start := time.Now()

	if startIndex < 0 || startIndex > len(t.HashedLeaves()) {
		panic(fmt.Errorf(
			"BUG: startIndex %d outside already-hashed leaf range [0, %d]",
			startIndex, len(t.HashedLeaves()),
		))
	}

	cfg := t.cfg
	h := cfg.Params.Hasher

	total := startIndex + len(newLeaves)
	lastLevelSize := nextPowerOfTwo(total)
	treeSize := 2*lastLevelSize - 1
	actualDepth := treeDepth(treeSize)

	if actualDepth > cfg.Params.Depth {
		return nil, InvalidTreeDepthError{Actual: actualDepth, Limit: cfg.Params.Depth}
	}

	empty, err := emptyDigest(h)
	if err != nil {
		return nil, err
	}

	nt := &Tree{
		cfg:        cfg,
		nodes:      newNodeSlots(treeSize, h.Size(), empty),
		leafOffset: lastLevelSize - 1,
	}

	// The beginning of the leaf row carries over from the old tree.
	for i := range startIndex {
		copy(nt.nodes[nt.leafOffset+i], t.nodes[t.leafOffset+i])
	}

	// Only the appended leaves require hashing.
	newSlots := nt.nodes[nt.leafOffset+startIndex : nt.leafOffset+total]
	if err := hashLeafRow(h, cfg.runner(), cfg.batchSize(), newLeaves, newSlots); err != nil {
		return nil, err
	}

	// Every strict ancestor of an appended leaf must be rehashed.
	// The membership test below is authoritative;
	// comparing child digests against the old tree is a fast path
	// that also catches nodes whose position did not exist before
	// (the rebuilt tree may be wider than the old one).
	dirty := bitset.New(uint(nt.leafOffset))
	for i := startIndex; i < total; i++ {
		for a := range ancestorIndices(nt.leafOffset + i) {
			dirty.Set(uint(a))
		}
	}

	if nt.leafOffset > 0 {
		upper := nt.leafOffset
		for levelStart := parentIdx(upper); ; levelStart = parentIdx(levelStart) {
			for i := levelStart; i < upper; i++ {
				l, r := leftChild(i), rightChild(i)

				if dirty.Test(uint(i)) ||
					!t.nodeEqual(l, nt.nodes[l]) ||
					!t.nodeEqual(r, nt.nodes[r]) {
					out, err := h.HashInner(nt.nodes[i][:0], nt.nodes[l], nt.nodes[r])
					if err != nil {
						return nil, fmt.Errorf("failed to hash node %d: %w", i, err)
					}
					if len(out) != len(nt.nodes[i]) {
						return nil, fmt.Errorf(
							"hash capability wrote a %d-byte inner digest, want %d",
							len(out), len(nt.nodes[i]),
						)
					}
				} else {
					// Unaffected by the appended range;
					// the old digest is still correct here.
					copy(nt.nodes[i], t.nodes[i])
				}
			}

			upper = levelStart
			if isRoot(levelStart) {
				break
			}
		}
	}

	// If the real sub-root is unchanged, the entire padding chain above it
	// is provably unchanged too, and both trees can share it.
	if actualDepth == t.actualDepth() && bytes.Equal(nt.nodes[0], t.nodes[0]) {
		nt.root = t.root
		nt.padding = t.padding
	} else {
		nt.root, nt.padding, err = extendToDepth(h, nt.nodes[0], actualDepth, cfg.Params.Depth, empty)
		if err != nil {
			return nil, err
		}
	}

	if cfg.Log != nil {
		cfg.Log.Debug(
			"Rebuilt commitment tree",
			"start_index", startIndex,
			"appended", len(newLeaves),
			"depth", actualDepth,
			"elapsed", time.Since(start),
		)
	}

	return nt, nil
}

// nodeEqual reports whether the digest at node index i equals other.
// Positions beyond the tree's node count never match:
// a wider rebuilt tree must treat them as changed.
func (t *Tree) nodeEqual(i int, other []byte) bool {
	if i >= len(t.nodes) {
		return false
	}
	return bytes.Equal(t.nodes[i], other)
}
