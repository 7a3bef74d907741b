package talon_test

import (
	"errors"
	"sync/atomic"

	"github.com/gordian-engine/talon/tlhash"
)

// countingHasher wraps a hash capability and counts leaf and inner calls,
// for asserting how much work a build or rebuild performed.
type countingHasher struct {
	inner tlhash.Hasher

	leafCalls, innerCalls atomic.Int64
}

func (c *countingHasher) HashLeaf(dst, leaf []byte) ([]byte, error) {
	c.leafCalls.Add(1)
	return c.inner.HashLeaf(dst, leaf)
}

func (c *countingHasher) HashInner(dst, left, right []byte) ([]byte, error) {
	c.innerCalls.Add(1)
	return c.inner.HashInner(dst, left, right)
}

func (c *countingHasher) EmptyDigest() ([]byte, error) {
	return c.inner.EmptyDigest()
}

func (c *countingHasher) Size() int {
	return c.inner.Size()
}

var errHashFailure = errors.New("injected hash failure")

// failingHasher wraps a hash capability and fails leaf hashing
// once the call count exceeds failLeafAfter.
type failingHasher struct {
	inner tlhash.Hasher

	failLeafAfter int64
	leafCalls     atomic.Int64
}

func (f *failingHasher) HashLeaf(dst, leaf []byte) ([]byte, error) {
	if f.leafCalls.Add(1) > f.failLeafAfter {
		return nil, errHashFailure
	}
	return f.inner.HashLeaf(dst, leaf)
}

func (f *failingHasher) HashInner(dst, left, right []byte) ([]byte, error) {
	return f.inner.HashInner(dst, left, right)
}

func (f *failingHasher) EmptyDigest() ([]byte, error) {
	return f.inner.EmptyDigest()
}

func (f *failingHasher) Size() int {
	return f.inner.Size()
}
