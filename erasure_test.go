package talon_test

import (
	"testing"

	"github.com/gordian-engine/talon"
	"github.com/gordian-engine/talon/internal/ttest"
	"github.com/gordian-engine/talon/talontest"
	"github.com/klauspost/reedsolomon"
	"github.com/stretchr/testify/require"
)

// Committing to erasure-coded shards is the primary intended use:
// a distributor hands out one shard plus its authentication path,
// and receivers verify each shard against the advertised root
// before attempting reconstruction.
func TestTree_commitsToErasureCodedShards(t *testing.T) {
	t.Parallel()

	const (
		dataShards   = 8
		parityShards = 2
	)

	payload := ttest.LeavesForTest(t, 1, 4096)[0]

	enc, err := reedsolomon.New(dataShards, parityShards)
	require.NoError(t, err)

	shards, err := enc.Split(payload)
	require.NoError(t, err)
	require.NoError(t, enc.Encode(shards))

	tree, err := talon.New(shards, sha256Config(5))
	require.NoError(t, err)

	for i, shard := range shards {
		p, err := tree.GenerateProof(i, shard)
		require.NoError(t, err)

		root, err := talontest.RecomputeRoot(p, shard)
		require.NoError(t, err)
		require.Equal(t, tree.Root(), root)
	}

	// A corrupted shard no longer proves against the tree.
	corrupt := append([]byte{}, shards[3]...)
	corrupt[0] ^= 0xff

	_, err = tree.GenerateProof(3, corrupt)
	var leafErr talon.IncorrectLeafIndexError
	require.ErrorAs(t, err, &leafErr)
}
