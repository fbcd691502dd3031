package ssz

import (
	"fmt"

	"github.com/geanlabs/ethlc/types"
)

// VerifyProof checks that leaf sits under root at generalizedIndex, given an
// ordered sibling-digest proof.
//
// generalizedIndex is the 1-based breadth-first position of leaf's node in
// the binary tree: the root is 1, its children 2 and 3, and so on. The
// proof must contain exactly floor(log2(generalizedIndex)) siblings, walking
// from the leaf's immediate sibling up to the root's child; a mismatched
// proof length is rejected rather than silently ignored.
func VerifyProof(root types.Hash32, leaf types.Hash32, proof []types.Hash32, generalizedIndex uint64) (bool, error) {
	if generalizedIndex == 0 {
		return false, fmt.Errorf("ssz: generalized index must be >= 1")
	}

	depth := bitLength(generalizedIndex) - 1
	if len(proof) != depth {
		return false, fmt.Errorf("ssz: proof has %d items, want %d for generalized index %d", len(proof), depth, generalizedIndex)
	}

	node := leaf
	idx := generalizedIndex
	for _, sibling := range proof {
		if idx&1 == 1 {
			// idx is a right child: sibling is the left node.
			node = HashNodes(sibling, node)
		} else {
			node = HashNodes(node, sibling)
		}
		idx >>= 1
	}

	return node == root, nil
}

// bitLength returns the number of bits needed to represent x, i.e.
// floor(log2(x)) + 1 for x >= 1.
func bitLength(x uint64) int {
	n := 0
	for x > 0 {
		n++
		x >>= 1
	}
	return n
}
