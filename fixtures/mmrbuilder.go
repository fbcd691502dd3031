package fixtures

import (
	"math/bits"

	"github.com/geanlabs/ethlc/mmr"
	"github.com/geanlabs/ethlc/ssz"
	"github.com/geanlabs/ethlc/store"
	"github.com/geanlabs/ethlc/types"
)

// MMRBuilder is the mutable MMR abstraction spec.md §6 keeps external to
// the verification core: "a mutable MMR abstraction backed by a Store
// is used only during test-fixture preparation... to produce proofs; the
// verification core itself never calls it." It persists every appended
// leaf digest to a Store (keyed by its real MMR node position, via
// mmr.LeafIndexToPos) and can produce a batch inclusion proof for any
// subset of its leaves on demand.
type MMRBuilder struct {
	store  store.Store
	leaves []types.Hash32
}

// NewMMRBuilder returns an empty builder backed by s.
func NewMMRBuilder(s store.Store) *MMRBuilder {
	return &MMRBuilder{store: s}
}

// Append adds one more leaf digest and returns its zero-based leaf index.
func (b *MMRBuilder) Append(digest types.Hash32) uint64 {
	idx := uint64(len(b.leaves))
	b.leaves = append(b.leaves, digest)
	b.store.PutNode(mmr.LeafIndexToPos(idx), digest)
	return idx
}

// Size returns the committed MMR size for the leaves appended so far.
func (b *MMRBuilder) Size() uint64 {
	if len(b.leaves) == 0 {
		return 0
	}
	return mmr.LeafIndexToMMRSize(uint64(len(b.leaves)) - 1)
}

// Root bags the current peaks into the MMR root.
func (b *MMRBuilder) Root() types.Hash32 {
	return bagCurrentPeaks(b.leaves)
}

// Prove produces the ordered list of sibling/peak digests a verifier
// needs to check inclusion of the leaves at leafIndices, given every
// other leaf appended so far.
func (b *MMRBuilder) Prove(leafIndices []uint64) []types.Hash32 {
	targets := make(map[uint64]bool, len(leafIndices))
	for _, i := range leafIndices {
		targets[i] = true
	}

	var items []types.Hash32
	for _, r := range peakRanges(uint64(len(b.leaves))) {
		_, blockItems := produceSubtreeProof(r.start, r.size, b.leaves, targets)
		items = append(items, blockItems...)
	}
	return items
}

type leafRange struct {
	start uint64
	size  uint64
}

// peakRanges decomposes n leaves into strictly decreasing power-of-two
// blocks, left to right — the same mountain decomposition mmr.peakBlocks
// derives from an mmr size, expressed directly over a leaf count since
// fixture code builds the leaf array itself.
func peakRanges(n uint64) []leafRange {
	var out []leafRange
	var start uint64
	for n > 0 {
		h := uint64(1) << uint(bits.Len64(n)-1)
		out = append(out, leafRange{start: start, size: h})
		start += h
		n -= h
	}
	return out
}

func produceSubtreeProof(startLeaf, size uint64, leaves []types.Hash32, targets map[uint64]bool) (types.Hash32, []types.Hash32) {
	if !anyTargetIn(startLeaf, size, targets) {
		root := subtreeRootFromLeaves(startLeaf, size, leaves)
		return root, []types.Hash32{root}
	}
	if size == 1 {
		return leaves[startLeaf], nil
	}
	half := size / 2
	leftRoot, leftItems := produceSubtreeProof(startLeaf, half, leaves, targets)
	rightRoot, rightItems := produceSubtreeProof(startLeaf+half, half, leaves, targets)
	return ssz.HashNodes(leftRoot, rightRoot), append(leftItems, rightItems...)
}

func subtreeRootFromLeaves(startLeaf, size uint64, leaves []types.Hash32) types.Hash32 {
	if size == 1 {
		return leaves[startLeaf]
	}
	half := size / 2
	left := subtreeRootFromLeaves(startLeaf, half, leaves)
	right := subtreeRootFromLeaves(startLeaf+half, half, leaves)
	return ssz.HashNodes(left, right)
}

func anyTargetIn(start, size uint64, targets map[uint64]bool) bool {
	for t := range targets {
		if t >= start && t < start+size {
			return true
		}
	}
	return false
}

func bagCurrentPeaks(leaves []types.Hash32) types.Hash32 {
	ranges := peakRanges(uint64(len(leaves)))
	if len(ranges) == 0 {
		return types.Hash32{}
	}
	peaks := make([]types.Hash32, len(ranges))
	for i, r := range ranges {
		peaks[i] = subtreeRootFromLeaves(r.start, r.size, leaves)
	}
	acc := peaks[len(peaks)-1]
	for i := len(peaks) - 2; i >= 0; i-- {
		acc = ssz.HashNodes(peaks[i], acc)
	}
	return acc
}
