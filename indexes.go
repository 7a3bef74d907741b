package talon

import (
	"iter"
	"math/bits"
)

// Index arithmetic for a complete binary tree stored root-first in a flat
// array, where node i has its children at 2i+1 and 2i+2.

func isRoot(i int) bool {
	return i == 0
}

func leftChild(i int) int {
	return 2*i + 1
}

func rightChild(i int) int {
	return 2*i + 2
}

// parentIdx returns the parent of i, or -1 at the root.
func parentIdx(i int) int {
	if i == 0 {
		return -1
	}
	return (i - 1) / 2
}

// siblingIdx returns the sibling of i, or -1 at the root.
// Odd indices are left children, so their sibling is one to the right.
func siblingIdx(i int) int {
	if i == 0 {
		return -1
	}
	if i%2 == 1 {
		return i + 1
	}
	return i - 1
}

// ancestorIndices returns the ancestors of i in order from its parent up to
// the root, excluding i itself.
// The sequence is recomputed on every range, so it is safe to reuse.
func ancestorIndices(i int) iter.Seq[int] {
	return func(yield func(int) bool) {
		for p := parentIdx(i); p >= 0; p = parentIdx(p) {
			if !yield(p) {
				return
			}
		}
	}
}

// nextPowerOfTwo returns the smallest power of two >= n, and 1 for n <= 1.
func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

// treeDepth returns the depth of a complete tree with the given node count.
// A single-node tree has depth zero.
func treeDepth(treeSize int) int {
	return bits.Len(uint(treeSize)) - 1
}
