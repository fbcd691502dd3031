// Package ssz implements the SSZ tree-hashing and generalized-index Merkle
// proof primitives the verification core needs: container hashing for
// beacon headers, bounded byte-list hashing for transactions, and the
// proof verifier that checks a leaf against a root at a generalized index.
//
// This package does not attempt to be a general SSZ codec. It hashes the
// handful of shapes the light client actually sees.
package ssz

import (
	"crypto/sha256"

	"github.com/geanlabs/ethlc/types"
)

// HashNodes combines two sibling digests the way every SSZ merkleization
// step does: sha256 of the concatenation.
func HashNodes(a, b types.Hash32) types.Hash32 {
	h := sha256.New()
	h.Write(a[:])
	h.Write(b[:])
	var out types.Hash32
	copy(out[:], h.Sum(nil))
	return out
}

// zeroHashes[d] is the root of a perfect binary tree of depth d whose every
// leaf is the zero chunk. zeroHashes[0] is the zero chunk itself.
var zeroHashes = buildZeroHashes(64)

func buildZeroHashes(depth int) []types.Hash32 {
	out := make([]types.Hash32, depth+1)
	for d := 1; d <= depth; d++ {
		out[d] = HashNodes(out[d-1], out[d-1])
	}
	return out
}

// depthFor returns ceil(log2(n)) for n >= 1, and 0 for n <= 1.
func depthFor(n int) int {
	d := 0
	size := 1
	for size < n {
		size *= 2
		d++
	}
	return d
}

// MerkleizeChunks computes the SSZ merkleization root of chunks, padded (or
// bounded) to limit chunks of zero. limit <= 0 means "exactly len(chunks),
// rounded up to the next power of two" — the fixed-container case.
//
// Unlike padding chunks out to a full limit-sized slice, this walks only the
// present chunks level by level, substituting the precomputed zero-subtree
// hash for any missing right sibling. That keeps the cost proportional to
// len(chunks) + depth even when limit is enormous (MAX_BYTES_PER_TRANSACTION
// implies a limit of 2^25 chunks; a transaction is typically a few hundred
// bytes long).
func MerkleizeChunks(chunks []types.Hash32, limit int) types.Hash32 {
	n := len(chunks)

	depth := depthFor(n)
	if limit > 0 {
		limitDepth := depthFor(limit)
		if limitDepth > depth {
			depth = limitDepth
		}
	}

	if n == 0 {
		return zeroHashes[depth]
	}

	level := make([]types.Hash32, n)
	copy(level, chunks)

	for d := 0; d < depth; d++ {
		next := make([]types.Hash32, (len(level)+1)/2)
		zh := zeroHashes[d]
		for i := range next {
			left := level[i*2]
			right := zh
			if i*2+1 < len(level) {
				right = level[i*2+1]
			}
			next[i] = HashNodes(left, right)
		}
		level = next
	}

	return level[0]
}

// MixInLength appends the SSZ length-mixin step: hash(root, little_endian(length)).
func MixInLength(root types.Hash32, length uint64) types.Hash32 {
	var lenChunk types.Hash32
	putUint64LE(lenChunk[:8], length)
	return HashNodes(root, lenChunk)
}

func putUint64LE(b []byte, v uint64) {
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * uint(i)))
	}
}

// chunksFromBytes splits data into 32-byte chunks, zero-padding the final
// partial chunk.
func chunksFromBytes(data []byte) []types.Hash32 {
	if len(data) == 0 {
		return nil
	}
	n := (len(data) + 31) / 32
	out := make([]types.Hash32, n)
	for i := 0; i < n; i++ {
		start := i * 32
		end := start + 32
		if end > len(data) {
			end = len(data)
		}
		copy(out[i][:], data[start:end])
	}
	return out
}
