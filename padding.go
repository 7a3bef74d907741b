package talon

import (
	"bytes"
	"fmt"

	"github.com/gordian-engine/talon/tlhash"
)

// paddingPair is one cached padding level:
// the accumulated hash after folding in that level,
// and the sibling it was hashed against.
// The sibling is always the empty digest;
// it is cached anyway because proof generation
// appends the sibling halves verbatim.
type paddingPair struct {
	acc     []byte
	sibling []byte
}

// extendToDepth folds the real sub-root against the empty digest until the
// tree reaches the configured depth, returning the final root digest and
// the cached pairs for every padding level strictly below the top.
// When actualDepth == depth there is no padding
// and the root is a copy of the sub-root.
func extendToDepth(
	h tlhash.Hasher,
	subRoot []byte,
	actualDepth, depth int,
	empty []byte,
) ([]byte, []paddingPair, error) {
	cur := bytes.Clone(subRoot)

	var pairs []paddingPair
	if n := depth - actualDepth - 1; n > 0 {
		pairs = make([]paddingPair, 0, n)
	}

	for d := actualDepth; d < depth; d++ {
		next, err := h.HashInner(nil, cur, empty)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to hash padding level %d: %w", d+1, err)
		}
		cur = next

		// The top level is folded into the root but never cached.
		if d < depth-1 {
			pairs = append(pairs, paddingPair{acc: cur, sibling: empty})
		}
	}

	return cur, pairs, nil
}
