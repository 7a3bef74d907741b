package talon_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/gordian-engine/talon"
	"github.com/gordian-engine/talon/internal/ttest"
	"github.com/gordian-engine/talon/tlhash/tlsha256"
	"github.com/stretchr/testify/require"
)

func TestRebuild_equivalentToFullBuild(t *testing.T) {
	t.Parallel()

	leaves := ttest.LeavesForTest(t, 10, 32)

	full, err := talon.New(leaves, sha256Config(5))
	require.NoError(t, err)

	for split := 0; split <= len(leaves); split++ {
		t.Run(fmt.Sprintf("split_%d", split), func(t *testing.T) {
			t.Parallel()

			prefix, err := talon.New(leaves[:split], sha256Config(5))
			require.NoError(t, err)

			rebuilt, err := prefix.Rebuild(split, leaves[split:])
			require.NoError(t, err)

			require.Equal(t, full.Root(), rebuilt.Root())
			require.Equal(t, full.Nodes(), rebuilt.Nodes())
			require.Equal(t, full.HashedLeaves(), rebuilt.HashedLeaves())
		})
	}
}

func TestRebuild_acrossGrowth(t *testing.T) {
	t.Parallel()

	// Four leaves fill a four-slot row; nine need sixteen,
	// so the rebuilt tree is wider and every leaf digest relocates.
	leaves := ttest.LeavesForTest(t, 9, 32)

	full, err := talon.New(leaves, sha256Config(5))
	require.NoError(t, err)

	prefix, err := talon.New(leaves[:4], sha256Config(5))
	require.NoError(t, err)
	require.Len(t, prefix.Nodes(), 7)

	rebuilt, err := prefix.Rebuild(4, leaves[4:])
	require.NoError(t, err)
	require.Len(t, rebuilt.Nodes(), 31)

	require.Equal(t, full.Root(), rebuilt.Root())
	require.Equal(t, full.Nodes(), rebuilt.Nodes())
}

func TestRebuild_noNewLeaves(t *testing.T) {
	t.Parallel()

	// Depth six with a depth-two real tree exercises the cached padding:
	// the rebuild must reuse the old chain rather than recompute it.
	leaves := ttest.LeavesForTest(t, 3, 32)

	tree, err := talon.New(leaves, sha256Config(6))
	require.NoError(t, err)

	rebuilt, err := tree.Rebuild(3, nil)
	require.NoError(t, err)

	require.Equal(t, tree.Root(), rebuilt.Root())
	require.Equal(t, tree.Nodes(), rebuilt.Nodes())

	// Proofs from the rebuilt tree still verify against the shared root.
	p, err := rebuilt.GenerateProof(1, leaves[1])
	require.NoError(t, err)
	require.Len(t, p.Siblings(), 6)
}

func TestRebuild_rejectsOverDeepTree(t *testing.T) {
	t.Parallel()

	leaves := ttest.LeavesForTest(t, 9, 32)

	tree, err := talon.New(leaves[:4], sha256Config(3))
	require.NoError(t, err)

	_, err = tree.Rebuild(4, leaves[4:])

	var depthErr talon.InvalidTreeDepthError
	require.ErrorAs(t, err, &depthErr)
	require.Equal(t, 4, depthErr.Actual)
	require.Equal(t, 3, depthErr.Limit)
}

func TestRebuild_panicsOnStartIndexBeyondLeafRow(t *testing.T) {
	t.Parallel()

	leaves := ttest.LeavesForTest(t, 3, 32)

	tree, err := talon.New(leaves, sha256Config(4))
	require.NoError(t, err)

	// Three leaves occupy a four-slot row, so five is out of range.
	require.Panics(t, func() {
		_, _ = tree.Rebuild(5, [][]byte{[]byte("x")})
	})
	require.Panics(t, func() {
		_, _ = tree.Rebuild(-1, nil)
	})
}

func TestRebuild_failureLeavesOldTreeIntact(t *testing.T) {
	t.Parallel()

	leaves := ttest.LeavesForTest(t, 13, 32)

	fh := &failingHasher{inner: tlsha256.Hasher{}, failLeafAfter: 10}
	cfg := talon.TreeConfig{
		Params: &talon.Parameters{Hasher: fh, Depth: 5},
	}

	tree, err := talon.New(leaves[:8], cfg)
	require.NoError(t, err)

	rootBefore := bytes.Clone(tree.Root())
	nodesBefore := make([][]byte, len(tree.Nodes()))
	for i, n := range tree.Nodes() {
		nodesBefore[i] = bytes.Clone(n)
	}

	// The ninth and tenth leaf hashes succeed, the eleventh fails.
	_, err = tree.Rebuild(8, leaves[8:])
	require.ErrorIs(t, err, errHashFailure)

	require.Equal(t, rootBefore, tree.Root())
	require.Equal(t, nodesBefore, tree.Nodes())
}

func TestRebuild_minimalRecomputation(t *testing.T) {
	t.Parallel()

	leaves := ttest.LeavesForTest(t, 64, 32)

	ch := &countingHasher{inner: tlsha256.Hasher{}}
	cfg := talon.TreeConfig{
		Params: &talon.Parameters{Hasher: ch, Depth: 6},
	}

	// 33 leaves round up to a 64-slot row, the same shape as the
	// final tree, so the rebuild can reuse untouched subtrees.
	tree, err := talon.New(leaves[:33], cfg)
	require.NoError(t, err)

	buildInner := ch.innerCalls.Load()
	require.Equal(t, int64(63), buildInner)

	rebuilt, err := tree.Rebuild(33, leaves[33:])
	require.NoError(t, err)

	rebuildLeaf := ch.leafCalls.Load() - 33
	rebuildInner := ch.innerCalls.Load() - buildInner

	require.Equal(t, int64(31), rebuildLeaf)

	// Only the ancestors of the appended leaves are rehashed:
	// 16 + 8 + 4 + 2 + 1 + the root.
	require.Equal(t, int64(32), rebuildInner)
	require.Less(t, rebuildInner, buildInner)

	// Every node disjoint from the appended leaves' ancestor paths
	// is byte-identical to the old tree's node.
	leafOffset := 63
	dirty := make(map[int]bool)
	for leaf := 33; leaf < 64; leaf++ {
		for i := leafOffset + leaf; i > 0; {
			i = (i - 1) / 2
			dirty[i] = true
		}
	}
	for i := range leafOffset {
		if dirty[i] {
			continue
		}
		require.Equal(t, tree.Nodes()[i], rebuilt.Nodes()[i], "node %d", i)
	}

	// The rebuilt tree matches a from-scratch build of all 64 leaves.
	full, err := talon.New(leaves, sha256Config(6))
	require.NoError(t, err)
	require.Equal(t, full.Root(), rebuilt.Root())
	require.Equal(t, full.Nodes(), rebuilt.Nodes())
}
