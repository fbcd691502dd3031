package mmr

import (
	"crypto/sha256"

	"github.com/geanlabs/ethlc/ssz"
	"github.com/geanlabs/ethlc/types"
)

// HeaderWithCache pairs a header with its two derived values: the SSZ
// tree-hash root and the MMR leaf digest. Both are pure functions of the
// header and are never persisted — only recomputed on demand by CalcCache.
type HeaderWithCache struct {
	Inner  types.Header
	Root   types.Hash32
	Digest types.Hash32
}

// CalcCache derives a header's cache values. It draws no distinction
// between empty and non-empty headers: a skipped slot's placeholder
// still has a real slot and parent root, and its cache is computed the
// same way so it can chain with its neighbors and occupy its MMR leaf.
func CalcCache(h types.Header) (HeaderWithCache, error) {
	root, err := ssz.HeaderHashTreeRoot(h)
	if err != nil {
		return HeaderWithCache{}, err
	}
	return HeaderWithCache{
		Inner:  h,
		Root:   root,
		Digest: leafDigest(root, h.Slot, h.ProposerIndex),
	}, nil
}

// leafDigest computes sha256(root || slot_le || proposer_index_le), the
// MMR leaf value for a header with the given tree-hash root.
func leafDigest(root types.Hash32, slot, proposerIndex uint64) types.Hash32 {
	var buf [48]byte
	copy(buf[:32], root[:])
	putUint64LE(buf[32:40], slot)
	putUint64LE(buf[40:48], proposerIndex)
	return types.Hash32(sha256.Sum256(buf[:]))
}

func putUint64LE(b []byte, v uint64) {
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * uint(i)))
	}
}
