package talontest

import (
	"fmt"

	"github.com/gordian-engine/talon"
)

// RecomputeRoot walks the authentication path from the claimed leaf value
// up to the root, exactly as an external verifier would:
// hash the leaf, then fold in each sibling in leaf-to-root order,
// choosing the left/right position from the leaf index at each level.
//
// The returned digest equals the tree's root
// if and only if the leaf value, index, and path are consistent.
func RecomputeRoot(p *talon.Path, leaf []byte) ([]byte, error) {
	h := p.Params().Hasher

	cur, err := h.HashLeaf(nil, leaf)
	if err != nil {
		return nil, fmt.Errorf("failed to hash leaf: %w", err)
	}

	idx := p.LeafIndex()
	for _, sibling := range p.Siblings() {
		// An even position within its level is a left child.
		// Once the walk passes the real tree's root,
		// idx stays zero and the accumulator keeps the left slot,
		// matching how padding levels are hashed.
		if idx%2 == 0 {
			cur, err = h.HashInner(nil, cur, sibling)
		} else {
			cur, err = h.HashInner(nil, sibling, cur)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to hash path level: %w", err)
		}

		idx /= 2
	}

	return cur, nil
}
