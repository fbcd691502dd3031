package ssz

import (
	"fmt"

	"github.com/geanlabs/ethlc/types"
)

// MaxBytesPerTransaction bounds the SSZ variable-length byte-list an
// execution transaction is tree-hashed as.
const MaxBytesPerTransaction = 1 << 30

// TransactionTreeHash computes the tree-hash root of an opaque transaction
// payload, treated as an SSZ `List[byte, MAX_BYTES_PER_TRANSACTION]`: chunk,
// merkleize bounded by the list's chunk limit, mix in the byte length.
//
// Returns an error rather than panicking if data exceeds the bound — the
// bound check is part of verification, not an invariant the caller is
// trusted to have already enforced.
func TransactionTreeHash(data []byte) (types.Hash32, error) {
	if len(data) > MaxBytesPerTransaction {
		return types.Hash32{}, fmt.Errorf("ssz: transaction payload of %d bytes exceeds MAX_BYTES_PER_TRANSACTION (%d)", len(data), MaxBytesPerTransaction)
	}
	limit := (MaxBytesPerTransaction + 31) / 32
	root := MerkleizeChunks(chunksFromBytes(data), limit)
	return MixInLength(root, uint64(len(data))), nil
}
