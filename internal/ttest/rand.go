package ttest

import (
	"crypto/sha256"
	"math/rand/v2"
	"testing"
)

// LeavesForTest returns n pseudorandom serialized leaves of size sz each,
// derived from a seed based on the test name,
// so the same test always commits to the same data.
func LeavesForTest(t *testing.T, n, sz int) [][]byte {
	// Sha256 happens to be the right size for the chacha8 seed,
	// and it removes any limit on the test name length.
	seed := sha256.Sum256([]byte(t.Name()))
	chacha := rand.NewChaCha8(seed)

	mem := make([]byte, n*sz)
	if _, err := chacha.Read(mem); err != nil {
		panic(err)
	}

	leaves := make([][]byte, n)
	for i := range leaves {
		leaves[i] = mem[i*sz : (i+1)*sz]
	}
	return leaves
}
