package fixtures

import (
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/geanlabs/ethlc/trie"
	"github.com/geanlabs/ethlc/types"
)

// ReceiptTrie is a minimal, single-entry Merkle-Patricia Trie committing
// to one transaction's receipt, built the same way trie's own tests build
// one: a lone MPT leaf node, hex-prefix encoded, without depending on
// go-ethereum's trie builder.
type ReceiptTrie struct {
	Root  types.Hash32
	Key   []byte
	Proof [][]byte
}

// BuildReceiptTrie returns the root and proof for a trie containing
// exactly the (transactionIndex, receipt) pair.
func BuildReceiptTrie(transactionIndex uint64, receipt []byte) (ReceiptTrie, error) {
	key, err := trie.TransactionIndexKey(transactionIndex)
	if err != nil {
		return ReceiptTrie{}, err
	}

	path := compactEncode(nibblesOf(key), true)
	leaf, err := rlp.EncodeToBytes([][]byte{path, receipt})
	if err != nil {
		return ReceiptTrie{}, err
	}

	return ReceiptTrie{
		Root:  types.BytesToHash32(crypto.Keccak256(leaf)),
		Key:   key,
		Proof: [][]byte{leaf},
	}, nil
}

// compactEncode implements Ethereum's hex-prefix (HP) encoding for a
// single leaf node's path.
func compactEncode(nibbles []byte, terminator bool) []byte {
	flag := byte(0)
	if terminator {
		flag = 2
	}
	odd := len(nibbles) % 2
	flag += byte(odd)

	out := make([]byte, len(nibbles)/2+1)
	out[0] = flag << 4
	if odd == 1 {
		out[0] |= nibbles[0]
		nibbles = nibbles[1:]
	}
	for i := 0; i < len(nibbles); i += 2 {
		out[i/2+1] = nibbles[i]<<4 | nibbles[i+1]
	}
	return out
}

func nibblesOf(key []byte) []byte {
	out := make([]byte, 0, len(key)*2)
	for _, b := range key {
		out = append(out, b>>4, b&0x0f)
	}
	return out
}
