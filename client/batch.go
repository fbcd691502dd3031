package client

import (
	"github.com/geanlabs/ethlc/mmr"
	"github.com/geanlabs/ethlc/types"
)

// firstHeaderCheck carries the apply-only continuity requirements on the
// batch's first header: it must continue the caller's existing tip.
type firstHeaderCheck struct {
	ExpectedSlot       uint64
	ExpectedParentRoot types.Hash32
}

// batchResult is what a single pass over a batch of updates produces: the
// MMR leaves to verify, the slot of the last header, the tip root carried
// forward (if any non-empty header was seen), and whether one was seen at
// all.
type batchResult struct {
	Leaves      []mmr.LeafEntry
	MaximalSlot uint64
	TipRoot     types.Hash32
	AnchorFound bool
}

// buildLeaves performs the single linear pass over updates that both
// construction and apply share: it carries the previous header's cache
// across the loop boundary, checking slot continuity and parent-root
// chaining between consecutive headers, and emits one MMR leaf per header
// (the last header's leaf is emitted once after the loop ends, not
// inside it). startLeafIndex is the running zero-based MMR leaf index of
// the first header in updates. firstCheck, when non-nil, additionally
// pins the batch's first header to a required slot and parent root (used
// by apply; construction leaves this nil).
func buildLeaves(updates []types.FinalityUpdate, startLeafIndex uint64, firstCheck *firstHeaderCheck) (batchResult, error) {
	if len(updates) == 0 {
		return batchResult{}, ErrEmptyUpdates
	}

	curr := updates[0].FinalizedHeader
	if firstCheck != nil {
		if curr.Slot != firstCheck.ExpectedSlot {
			return batchResult{}, ErrFirstHeaderSlot
		}
		if curr.ParentRoot != firstCheck.ExpectedParentRoot {
			return batchResult{}, ErrFirstHeaderParentRoot
		}
	}

	var result batchResult
	leafIndex := startLeafIndex

	for i := 1; i < len(updates); i++ {
		prevCache, err := mmr.CalcCache(curr)
		if err != nil {
			return batchResult{}, ErrOther
		}
		next := updates[i].FinalizedHeader
		if prevCache.Inner.Slot+1 != next.Slot {
			return batchResult{}, ErrUncontinuousSlot
		}
		if prevCache.Root != next.ParentRoot {
			return batchResult{}, ErrUnmatchedParentRoot
		}

		result.Leaves = append(result.Leaves, mmr.LeafEntry{LeafIndex: leafIndex, Digest: prevCache.Digest})
		leafIndex++

		if !prevCache.Inner.IsEmpty() {
			result.TipRoot = prevCache.Root
			result.AnchorFound = true
		}

		curr = next
	}

	lastCache, err := mmr.CalcCache(curr)
	if err != nil {
		return batchResult{}, ErrOther
	}
	result.Leaves = append(result.Leaves, mmr.LeafEntry{LeafIndex: leafIndex, Digest: lastCache.Digest})
	if !lastCache.Inner.IsEmpty() {
		result.TipRoot = lastCache.Root
		result.AnchorFound = true
	}
	result.MaximalSlot = curr.Slot

	return result, nil
}

// verifyHeadersMmr checks the batch's emitted leaves against the claimed
// root under mmrSize, returning the appropriate typed error on any
// mismatch: ErrHeadersMmrProof for a claimed-size mismatch or a clean
// verification failure, ErrOther for an internal MMR structural error.
func verifyHeadersMmr(pu types.ProofUpdate, leaves []mmr.LeafEntry, mmrSize uint64) error {
	if pu.NewHeadersMmrProof.MmrSize != mmrSize {
		return ErrHeadersMmrProof
	}
	ok, err := mmr.VerifyInclusion(pu.NewHeadersMmrRoot, leaves, mmrSize, pu.NewHeadersMmrProof.Items)
	if err != nil {
		return ErrOther
	}
	if !ok {
		return ErrHeadersMmrProof
	}
	return nil
}
