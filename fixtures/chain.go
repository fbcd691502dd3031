// Package fixtures is the test-side collaborator spec.md keeps external
// to the verification core: it synthesizes header chains (with
// configurable runs of skipped slots), builds the append-only MMR over
// them, and produces the SSZ and Merkle-Patricia-Trie proofs a
// TransactionProof needs. Nothing in client, mmr, ssz, or trie imports
// this package — it exists only to hand those packages' verifiers
// inputs they can check.
package fixtures

import (
	"crypto/sha256"

	"github.com/geanlabs/ethlc/mmr"
	"github.com/geanlabs/ethlc/types"
)

// ChainConfig parameterizes a synthetic header chain.
type ChainConfig struct {
	StartSlot  uint64
	Count      uint64
	EmptySlots map[uint64]bool // slots (absolute) left as skipped placeholders

	// BodyRootOverrides pins specific slots' body_root to a caller-chosen
	// value instead of the deterministic derivation, so a scenario can
	// build a header whose body_root is already consistent with a
	// previously constructed transaction/receipt proof.
	BodyRootOverrides map[uint64]types.Hash32
}

// BuildChain generates Count headers starting at StartSlot, each
// chaining its ParentRoot to the SSZ root of the previous header. Slots
// named in EmptySlots get the skipped-slot placeholder (real slot and
// parent root, zero proposer index / state root / body root); every
// other slot gets deterministic synthetic content derived from its slot
// number, except that a slot named in BodyRootOverrides uses the given
// body_root instead of the derived one.
func BuildChain(cfg ChainConfig) ([]types.Header, error) {
	headers := make([]types.Header, 0, cfg.Count)
	var parentRoot types.Hash32
	for i := uint64(0); i < cfg.Count; i++ {
		slot := cfg.StartSlot + i
		var h types.Header
		if cfg.EmptySlots[slot] {
			h = types.Header{Slot: slot, ParentRoot: parentRoot}
		} else {
			h = syntheticHeader(slot, parentRoot)
			if override, ok := cfg.BodyRootOverrides[slot]; ok {
				h.BodyRoot = override
			}
		}
		headers = append(headers, h)

		cache, err := mmr.CalcCache(h)
		if err != nil {
			return nil, err
		}
		parentRoot = cache.Root
	}
	return headers, nil
}

func syntheticHeader(slot uint64, parentRoot types.Hash32) types.Header {
	return types.Header{
		Slot:          slot,
		ProposerIndex: slot % 64,
		ParentRoot:    parentRoot,
		StateRoot:     deriveRoot(slot, 1),
		BodyRoot:      deriveRoot(slot, 2),
	}
}

func deriveRoot(slot uint64, tag byte) types.Hash32 {
	var buf [9]byte
	buf[0] = tag
	for i := 0; i < 8; i++ {
		buf[1+i] = byte(slot >> (8 * uint(i)))
	}
	return types.Hash32(sha256.Sum256(buf[:]))
}
