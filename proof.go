package talon

import (
	"bytes"
	"fmt"
)

// Path is an authentication path:
// the ordered sibling digests from one leaf up to the root
// of a fixed-depth commitment tree.
//
// A Path always holds exactly [Parameters.Depth] siblings,
// the tail covering the padding levels above the real tree.
// It is immutable once generated and is consumed by an external verifier
// that recomputes the root from a claimed leaf value.
type Path struct {
	params *Parameters

	siblings  [][]byte
	leafIndex int
}

// Params returns the shared parameters the path was generated under.
// A verifier needs them for the hash capability and the expected depth.
func (p *Path) Params() *Parameters {
	return p.params
}

// Siblings returns the sibling digests in leaf-to-root order.
// Neither the slice nor its contents may be modified.
func (p *Path) Siblings() [][]byte {
	return p.siblings
}

// LeafIndex returns the logical index of the proven leaf.
func (p *Path) LeafIndex() int {
	return p.leafIndex
}

// GenerateProof produces the authentication path for the leaf value at the
// given logical index.
//
// The supplied leaf is rehashed and compared against the tree's recorded
// digest at that position; a mismatch or an out-of-range index returns an
// [IncorrectLeafIndexError].
func (t *Tree) GenerateProof(index int, leaf []byte) (*Path, error) {
	params := t.cfg.Params
	h := params.Hasher

	// The node array index corresponding to the logical leaf index.
	treeIndex := index + t.leafOffset
	if index < 0 || treeIndex >= len(t.nodes) {
		return nil, IncorrectLeafIndexError{Index: treeIndex}
	}

	leafDigest, err := h.HashLeaf(make([]byte, 0, h.Size()), leaf)
	if err != nil {
		return nil, fmt.Errorf("failed to hash leaf: %w", err)
	}

	if !bytes.Equal(leafDigest, t.nodes[treeIndex]) {
		return nil, IncorrectLeafIndexError{Index: treeIndex}
	}

	// Walk from the leaf to the real tree's root,
	// collecting each visited node's sibling.
	siblings := make([][]byte, 0, params.Depth)
	for cur := treeIndex; !isRoot(cur); cur = parentIdx(cur) {
		siblings = append(siblings, t.nodes[siblingIdx(cur)])
	}

	if len(siblings) > params.Depth {
		return nil, InvalidPathLengthError{Got: len(siblings), Want: params.Depth}
	}

	if len(siblings) != params.Depth {
		// The first padding level's sibling is the empty digest itself;
		// the cached pairs cover every level above it.
		empty, err := emptyDigest(h)
		if err != nil {
			return nil, err
		}
		siblings = append(siblings, empty)

		for _, pair := range t.padding {
			siblings = append(siblings, pair.sibling)
		}
	}

	if len(siblings) != params.Depth {
		return nil, IncorrectPathLengthError{Got: len(siblings)}
	}

	return &Path{
		params: params,

		siblings:  siblings,
		leafIndex: index,
	}, nil
}
