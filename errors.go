package talon

import "fmt"

// InvalidTreeDepthError is returned by [New] and [*Tree.Rebuild]
// when the leaf count requires a tree deeper than the configured depth.
// It is reported before any leaf is hashed.
type InvalidTreeDepthError struct {
	Actual, Limit int
}

func (e InvalidTreeDepthError) Error() string {
	return fmt.Sprintf("tree depth %d exceeds configured depth %d", e.Actual, e.Limit)
}

// IncorrectLeafIndexError is returned by [*Tree.GenerateProof]
// when the supplied leaf's digest does not match the tree's digest
// at the derived node position:
// wrong leaf value, wrong index, or a stale tree.
type IncorrectLeafIndexError struct {
	// Index is the position within the tree's node array,
	// not the logical leaf index.
	Index int
}

func (e IncorrectLeafIndexError) Error() string {
	return fmt.Sprintf("leaf digest does not match tree node at index %d", e.Index)
}

// InvalidPathLengthError is returned by [*Tree.GenerateProof]
// if the collected sibling path is longer than the configured depth.
// Construction rejects over-deep trees,
// so this error indicates a logic defect if it ever surfaces.
type InvalidPathLengthError struct {
	Got, Want int
}

func (e InvalidPathLengthError) Error() string {
	return fmt.Sprintf("collected path of length %d, want at most %d", e.Got, e.Want)
}

// IncorrectPathLengthError is returned by [*Tree.GenerateProof]
// if the assembled path does not end at exactly the configured depth.
// Downstream verifiers rely on exact-length paths,
// so the length is enforced rather than assumed.
type IncorrectPathLengthError struct {
	Got int
}

func (e IncorrectPathLengthError) Error() string {
	return fmt.Sprintf("assembled path has incorrect length %d", e.Got)
}
