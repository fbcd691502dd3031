package mmr

import (
	"errors"
	"fmt"
	"sort"

	"github.com/geanlabs/ethlc/ssz"
	"github.com/geanlabs/ethlc/types"
)

// ErrInvalidSize is returned when mmrSize does not correspond to any valid,
// fully-bagged MMR (a node exists with no completed parent).
var ErrInvalidSize = errors.New("mmr: invalid mmr size")

// LeafEntry is one (leaf index, leaf digest) pair supplied to batch
// inclusion verification. LeafIndex is the zero-based append order, not
// the MMR node position — callers never need to compute positions
// themselves; VerifyInclusion derives them internally.
type LeafEntry struct {
	LeafIndex uint64
	Digest    types.Hash32
}

// proofCursor hands out proof items in order and reports if any are left
// unconsumed, so a short or long proof is rejected rather than silently
// accepted or truncated.
type proofCursor struct {
	items []types.Hash32
	pos   int
}

func (c *proofCursor) next() (types.Hash32, error) {
	if c.pos >= len(c.items) {
		return types.Hash32{}, fmt.Errorf("mmr: proof exhausted")
	}
	v := c.items[c.pos]
	c.pos++
	return v, nil
}

func (c *proofCursor) remaining() int {
	return len(c.items) - c.pos
}

// VerifyInclusion checks that every entry in leaves occupies its claimed
// position in the MMR of size mmrSize committed to by root, using proof as
// the ordered list of sibling/peak digests for everything not supplied in
// leaves.
//
// The algorithm decomposes mmrSize into its peaks (each a perfect binary
// subtree covering a contiguous, power-of-two block of leaf indices), then
// recursively reconstructs each peak's root: a subtree with no supplied
// leaf in it contributes a single proof item directly; a subtree that is
// exactly one supplied leaf returns that leaf's digest; otherwise its two
// halves are resolved (recursively, or from the proof) and combined. The
// peak roots are then bagged right to left into the final root and
// compared to the claimed one.
func VerifyInclusion(root types.Hash32, leaves []LeafEntry, mmrSize uint64, proof []types.Hash32) (bool, error) {
	blocks := peakBlocks(mmrSize)
	if blocks == nil {
		return false, ErrInvalidSize
	}

	sorted := make([]LeafEntry, len(leaves))
	copy(sorted, leaves)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].LeafIndex < sorted[j].LeafIndex })
	for i := 1; i < len(sorted); i++ {
		if sorted[i].LeafIndex == sorted[i-1].LeafIndex {
			return false, fmt.Errorf("mmr: duplicate leaf index %d", sorted[i].LeafIndex)
		}
	}

	cur := &proofCursor{items: proof}
	peakHashes := make([]types.Hash32, len(blocks))
	cursor := 0
	for i, b := range blocks {
		start := cursor
		for cursor < len(sorted) && sorted[cursor].LeafIndex < b.StartLeaf+b.Size {
			cursor++
		}
		window := sorted[start:cursor]
		h, err := subtreeRoot(b.StartLeaf, b.Size, window, cur)
		if err != nil {
			return false, err
		}
		peakHashes[i] = h
	}
	if cursor != len(sorted) {
		return false, fmt.Errorf("mmr: %d leaf entries fall outside the mmr of size %d", len(sorted)-cursor, mmrSize)
	}
	if cur.remaining() != 0 {
		return false, fmt.Errorf("mmr: %d unused proof items", cur.remaining())
	}

	bagged := bagPeaks(peakHashes)
	return bagged == root, nil
}

// subtreeRoot resolves the root of the perfect subtree covering leaf
// indices [startLeaf, startLeaf+size), given whichever of those leaves
// were supplied (window, sorted by leaf index) and a cursor over the
// remaining proof items.
func subtreeRoot(startLeaf, size uint64, window []LeafEntry, cur *proofCursor) (types.Hash32, error) {
	if len(window) == 0 {
		return cur.next()
	}
	if size == 1 {
		if len(window) != 1 || window[0].LeafIndex != startLeaf {
			return types.Hash32{}, fmt.Errorf("mmr: inconsistent leaf window at index %d", startLeaf)
		}
		return window[0].Digest, nil
	}

	half := size / 2
	mid := startLeaf + half
	split := sort.Search(len(window), func(i int) bool { return window[i].LeafIndex >= mid })

	left, err := subtreeRoot(startLeaf, half, window[:split], cur)
	if err != nil {
		return types.Hash32{}, err
	}
	right, err := subtreeRoot(mid, half, window[split:], cur)
	if err != nil {
		return types.Hash32{}, err
	}
	return ssz.HashNodes(left, right), nil
}

// bagPeaks folds peak digests right to left: H(p0, H(p1, H(..., H(p_{n-2},
// p_{n-1})))).
func bagPeaks(peaks []types.Hash32) types.Hash32 {
	acc := peaks[len(peaks)-1]
	for i := len(peaks) - 2; i >= 0; i-- {
		acc = ssz.HashNodes(peaks[i], acc)
	}
	return acc
}
