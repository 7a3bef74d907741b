package talon

import (
	"fmt"

	"github.com/gordian-engine/talon/tlhash"
)

// DefaultBatchSize is how many hashes one row batch performs
// when [TreeConfig.BatchSize] is zero.
// Arbitrary, experimentally derived.
const DefaultBatchSize = 500

// hashLeafRow hashes the serialized leaves into the dst node slots,
// one digest per leaf, splitting the work into batches for the runner.
// The result is identical to hashing sequentially.
func hashLeafRow(
	h tlhash.Hasher,
	r Runner,
	batchSize int,
	leaves [][]byte,
	dst [][]byte,
) error {
	tasks := make([]func() error, 0, (len(leaves)+batchSize-1)/batchSize)

	for start := 0; start < len(leaves); start += batchSize {
		end := min(start+batchSize, len(leaves))

		tasks = append(tasks, func() error {
			for i := start; i < end; i++ {
				out, err := h.HashLeaf(dst[i][:0], leaves[i])
				if err != nil {
					return fmt.Errorf("failed to hash leaf %d: %w", i, err)
				}
				if len(out) != len(dst[i]) {
					return fmt.Errorf(
						"hash capability wrote a %d-byte leaf digest, want %d",
						len(out), len(dst[i]),
					)
				}
			}
			return nil
		})
	}

	return r.Run(tasks)
}

// hashInnerLevels hashes every internal level of nodes,
// from the level directly above the leaves up to the root.
// A level is hashed only once the level below it is complete,
// so only sibling pairs within one level are ever batched together.
func hashInnerLevels(
	h tlhash.Hasher,
	r Runner,
	batchSize int,
	nodes [][]byte,
	leafOffset int,
) error {
	if leafOffset == 0 {
		// Single-node tree; nothing above the leaf level.
		return nil
	}

	upper := leafOffset
	for start := parentIdx(upper); ; start = parentIdx(start) {
		if err := hashInnerLevel(h, r, batchSize, nodes, start, upper); err != nil {
			return err
		}
		upper = start
		if isRoot(start) {
			return nil
		}
	}
}

// hashInnerLevel hashes the nodes in [start, end),
// each from its two children, batched across the whole level.
func hashInnerLevel(
	h tlhash.Hasher,
	r Runner,
	batchSize int,
	nodes [][]byte,
	start, end int,
) error {
	tasks := make([]func() error, 0, (end-start+batchSize-1)/batchSize)

	for bStart := start; bStart < end; bStart += batchSize {
		bEnd := min(bStart+batchSize, end)

		tasks = append(tasks, func() error {
			for i := bStart; i < bEnd; i++ {
				out, err := h.HashInner(
					nodes[i][:0],
					nodes[leftChild(i)],
					nodes[rightChild(i)],
				)
				if err != nil {
					return fmt.Errorf("failed to hash node %d: %w", i, err)
				}
				if len(out) != len(nodes[i]) {
					return fmt.Errorf(
						"hash capability wrote a %d-byte inner digest, want %d",
						len(out), len(nodes[i]),
					)
				}
			}
			return nil
		})
	}

	return r.Run(tasks)
}
