package talon

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gordian-engine/talon/tlhash"
)

// Parameters binds a hash capability to a fixed tree depth.
//
// A Parameters value is shared, read-only configuration:
// every [Tree] and [Path] derived from it holds the same pointer,
// and none of them ever mutates it.
type Parameters struct {
	// Hasher is the hash capability producing every digest in the tree.
	Hasher tlhash.Hasher

	// Depth is the fixed depth every root commits to.
	// A leaf collection that fits a shallower tree
	// is padded up to exactly Depth,
	// and a collection requiring a deeper tree is rejected.
	Depth int
}

// TreeConfig is the configuration passed to [New].
type TreeConfig struct {
	// Params must be non-nil.
	Params *Parameters

	// Runner schedules row-hashing batches.
	// Nil means [SerialRunner].
	Runner Runner

	// BatchSize bounds how many hashes one batch performs.
	// It tunes scheduling only and never changes the resulting tree.
	// Zero means [DefaultBatchSize].
	BatchSize int

	// Log, when non-nil, receives debug-level build and rebuild summaries.
	Log *slog.Logger
}

func (cfg TreeConfig) runner() Runner {
	if cfg.Runner == nil {
		return SerialRunner{}
	}
	return cfg.Runner
}

func (cfg TreeConfig) batchSize() int {
	if cfg.BatchSize <= 0 {
		return DefaultBatchSize
	}
	return cfg.BatchSize
}

// Tree is an immutable fixed-depth binary Merkle commitment tree.
//
// The real tree's digests are stored root-first in a flat array backed by
// a single allocation; leaf slots beyond the supplied leaves hold the
// hash capability's canonical empty digest.
// The root is always computed relative to [Parameters.Depth],
// padding the real tree's top with empty-digest hashes as needed.
//
// A Tree is never mutated after construction.
// Appending leaves goes through [*Tree.Rebuild],
// which returns a structurally fresh Tree.
type Tree struct {
	cfg TreeConfig

	// The commitment digest of the fully padded tree.
	root []byte

	// Views into the single backing slice, root first.
	nodes [][]byte

	// Index of the first leaf slot within nodes.
	leafOffset int

	// Cached padding levels strictly below the top,
	// ordered from just above the real tree upward.
	padding []paddingPair
}

// New builds a Tree committing to the given ordered, serialized leaves.
//
// The number of leaves is rounded up to the next power of two L (at least
// one), yielding a real tree of 2L-1 nodes. If that tree would be deeper
// than the configured depth, New returns an [InvalidTreeDepthError].
//
// New never retains the leaves slice or its contents.
func New(leaves [][]byte, cfg TreeConfig) (*Tree, error) {
	start := time.Now()

	if cfg.Params == nil {
		panic(fmt.Errorf("BUG: TreeConfig.Params must not be nil"))
	}
	if cfg.Params.Hasher == nil {
		panic(fmt.Errorf("BUG: Parameters.Hasher must not be nil"))
	}
	if cfg.Params.Depth < 0 {
		panic(fmt.Errorf(
			"BUG: Parameters.Depth must be non-negative (got %d)", cfg.Params.Depth,
		))
	}

	h := cfg.Params.Hasher

	lastLevelSize := nextPowerOfTwo(len(leaves))
	treeSize := 2*lastLevelSize - 1
	actualDepth := treeDepth(treeSize)

	if actualDepth > cfg.Params.Depth {
		return nil, InvalidTreeDepthError{Actual: actualDepth, Limit: cfg.Params.Depth}
	}

	empty, err := emptyDigest(h)
	if err != nil {
		return nil, err
	}

	t := &Tree{
		cfg:        cfg,
		nodes:      newNodeSlots(treeSize, h.Size(), empty),
		leafOffset: lastLevelSize - 1,
	}

	// Hash the supplied leaves into the leaf row.
	// Slots beyond them keep the empty digest.
	leafSlots := t.nodes[t.leafOffset : t.leafOffset+len(leaves)]
	if err := hashLeafRow(h, cfg.runner(), cfg.batchSize(), leaves, leafSlots); err != nil {
		return nil, err
	}

	if err := hashInnerLevels(h, cfg.runner(), cfg.batchSize(), t.nodes, t.leafOffset); err != nil {
		return nil, err
	}

	t.root, t.padding, err = extendToDepth(h, t.nodes[0], actualDepth, cfg.Params.Depth, empty)
	if err != nil {
		return nil, err
	}

	if cfg.Log != nil {
		cfg.Log.Debug(
			"Built commitment tree",
			"leaves", len(leaves),
			"depth", actualDepth,
			"configured_depth", cfg.Params.Depth,
			"elapsed", time.Since(start),
		)
	}

	return t, nil
}

// Root returns the commitment digest, computed relative to the configured
// depth rather than the real tree's depth.
// The returned slice must not be modified.
func (t *Tree) Root() []byte {
	return t.root
}

// Nodes returns every digest of the real tree, root first.
// It is exposed read-only for tooling and debugging;
// neither the slice nor its contents may be modified.
func (t *Tree) Nodes() [][]byte {
	return t.nodes
}

// HashedLeaves returns the leaf-level digests,
// including the empty-digest slots beyond the supplied leaves.
// The returned slices must not be modified.
func (t *Tree) HashedLeaves() [][]byte {
	return t.nodes[t.leafOffset:]
}

// Params returns the shared parameters the tree was built with.
func (t *Tree) Params() *Parameters {
	return t.cfg.Params
}

// actualDepth returns the depth of the real (unpadded) tree.
func (t *Tree) actualDepth() int {
	return treeDepth(len(t.nodes))
}

// newNodeSlots backs treeSize digest slots with a single allocation,
// each slot initialized to the empty digest.
// Slots are capacity-capped so a misbehaving hash capability
// cannot overwrite a neighboring node.
func newNodeSlots(treeSize, hashSize int, empty []byte) [][]byte {
	mem := make([]byte, treeSize*hashSize)

	nodes := make([][]byte, treeSize)
	for i := range nodes {
		start := i * hashSize
		end := start + hashSize

		s := mem[start:end:end]
		copy(s, empty)
		nodes[i] = s
	}
	return nodes
}

// emptyDigest fetches the canonical empty digest,
// validating it against the capability's declared size.
func emptyDigest(h tlhash.Hasher) ([]byte, error) {
	empty, err := h.EmptyDigest()
	if err != nil {
		return nil, fmt.Errorf("failed to compute empty digest: %w", err)
	}
	if len(empty) != h.Size() {
		return nil, fmt.Errorf(
			"hash capability produced a %d-byte empty digest, want %d",
			len(empty), h.Size(),
		)
	}
	return empty, nil
}
