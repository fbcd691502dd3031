package fixtures

import (
	"math/bits"

	"github.com/geanlabs/ethlc/constants"
	"github.com/geanlabs/ethlc/ssz"
	"github.com/geanlabs/ethlc/types"
)

// BlockBody synthesizes a header's body_root together with the SSZ
// proofs needed to later verify a single transaction and the receipts
// root within it. It does not model a real execution block body — it
// only needs to be internally consistent, since the verification core
// never inspects anything about the body besides the root and the
// generalized-index proofs against it.
type BlockBody struct {
	BodyRoot             types.Hash32
	TransactionSszProof  []types.Hash32
	ReceiptsRootSszProof []types.Hash32
	ReceiptsRoot         types.Hash32
}

// BuildBlockBody produces a BlockBody whose body_root is consistent with
// transactionLeaf sitting at generalized index
// constants.TransactionInBlockBody+transactionIndex and receiptsRoot
// sitting at constants.ReceiptsRootInBlockBody. For transaction indices
// below 2^21 the two generalized indices fall under different children
// of the root (otherwise BuildBlockBody panics): each path is climbed independently up to (but
// not including) that shared root, and the two resulting subtree roots
// are hashed together to produce body_root, with each proof's final
// item being the other side's subtree root.
func BuildBlockBody(transactionLeaf types.Hash32, transactionIndex uint64, receiptsRoot types.Hash32, seed byte) BlockBody {
	txGidx := constants.TransactionInBlockBody + transactionIndex
	rrGidx := constants.ReceiptsRootInBlockBody

	txSubRoot, txProof := climbToChild(transactionLeaf, txGidx, seed^0x11)
	rrSubRoot, rrProof := climbToChild(receiptsRoot, rrGidx, seed^0x22)

	txLeft := isLeftChild(txGidx)
	rrLeft := isLeftChild(rrGidx)
	if txLeft == rrLeft {
		panic("fixtures: transaction and receipts-root generalized indices collide under the same top-level child")
	}

	var bodyRoot types.Hash32
	if txLeft {
		bodyRoot = ssz.HashNodes(txSubRoot, rrSubRoot)
	} else {
		bodyRoot = ssz.HashNodes(rrSubRoot, txSubRoot)
	}

	return BlockBody{
		BodyRoot:             bodyRoot,
		TransactionSszProof:  append(txProof, rrSubRoot),
		ReceiptsRootSszProof: append(rrProof, txSubRoot),
		ReceiptsRoot:         receiptsRoot,
	}
}

// isLeftChild reports whether generalizedIndex's ancestor one level
// below the root is the root's left child (2) rather than its right
// child (3): equivalently, whether the bit just below the leading 1 is
// clear.
func isLeftChild(generalizedIndex uint64) bool {
	l := bits.Len64(generalizedIndex)
	return generalizedIndex&(1<<uint(l-2)) == 0
}

// climbToChild synthesizes a sibling path from leaf at generalizedIndex
// up to (but not including) the root of its top-level subtree, filling
// every sibling with deterministic filler. It returns that subtree's
// root together with the partial proof accumulated so far; the caller
// appends one more item (the other top-level subtree's root) to reach
// a full, correctly-sized proof against the real body root.
func climbToChild(leaf types.Hash32, generalizedIndex uint64, seed byte) (types.Hash32, []types.Hash32) {
	subDepth := bits.Len64(generalizedIndex) - 2
	proof := make([]types.Hash32, 0, subDepth)
	node := leaf
	idx := generalizedIndex
	for d := 0; d < subDepth; d++ {
		sibling := fillerHash(seed, idx)
		proof = append(proof, sibling)
		if idx&1 == 1 {
			node = ssz.HashNodes(sibling, node)
		} else {
			node = ssz.HashNodes(node, sibling)
		}
		idx >>= 1
	}
	return node, proof
}

func fillerHash(seed byte, counter uint64) types.Hash32 {
	var h types.Hash32
	h[0] = seed
	for i := 0; i < 8; i++ {
		h[1+i] = byte(counter >> (8 * uint(i)))
	}
	return h
}
