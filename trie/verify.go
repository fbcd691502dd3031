// Package trie verifies Merkle-Patricia-Trie inclusion proofs against an
// execution-layer receipts root, using go-ethereum's own trie and RLP
// packages rather than a hand-rolled nibble decoder — this is the proof
// format go-ethereum itself produces and verifies.
package trie

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethdb/memorydb"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/ethereum/go-ethereum/trie"

	"github.com/geanlabs/ethlc/types"
)

// TransactionIndexKey returns the trie key for transaction index idx: the
// RLP encoding of idx, exactly as go-ethereum keys the transactions and
// receipts tries by transaction position.
func TransactionIndexKey(idx uint64) ([]byte, error) {
	key, err := rlp.EncodeToBytes(idx)
	if err != nil {
		return nil, fmt.Errorf("trie: rlp-encoding transaction index %d: %w", idx, err)
	}
	return key, nil
}

// VerifyProof checks that key maps to value in the trie committed to by
// root, given proof as the ordered set of trie nodes along the path
// (order does not matter to go-ethereum's verifier, which indexes them by
// Keccak256 hash).
func VerifyProof(root types.Hash32, key []byte, value []byte, proof [][]byte) (bool, error) {
	db := memorydb.New()
	for _, node := range proof {
		if err := db.Put(crypto.Keccak256(node), node); err != nil {
			return false, fmt.Errorf("trie: loading proof node: %w", err)
		}
	}

	got, err := trie.VerifyProof(common.Hash(root), key, db)
	if err != nil {
		return false, nil
	}
	return bytes.Equal(got, value), nil
}
