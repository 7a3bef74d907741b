// Package talon implements a fixed-depth binary Merkle commitment tree.
//
// A tree commits to an ordered collection of opaque serialized leaves,
// producing a single root digest and, per leaf, an authentication path
// that an independent verifier can walk to recompute that root.
//
// Every root is computed relative to the configured [Parameters.Depth],
// regardless of how many leaves were supplied: a shallower tree is padded
// up to the configured depth by repeatedly hashing against the canonical
// empty digest of the hash capability. Two trees built with the same
// parameters are therefore always comparable by root, even when they hold
// different leaf counts.
//
// Trees are immutable values. Build one with [New], and append leaves with
// [*Tree.Rebuild], which returns a new tree reusing every internal digest
// the appended leaves cannot have affected.
//
// The hash capability is pluggable; see [github.com/gordian-engine/talon/tlhash].
package talon
