package ssz

import (
	fastssz "github.com/ferranbt/fastssz"

	"github.com/geanlabs/ethlc/types"
)

// Generated-style hash-tree-root methods for the fixed-size containers, in
// the shape `go:generate sszgen` would have produced: a HashTreeRoot entry
// point backed by the package's default hasher pool, and a
// HashTreeRootWith that does the actual field-by-field merkleization. Kept
// hand-written here since no schema compiler runs in this repository.

// HeaderHashTreeRoot returns the SSZ tree-hash root of a types.Header,
// computed through the header adapter's fastssz.HashRoot implementation.
func HeaderHashTreeRoot(h types.Header) (types.Hash32, error) {
	return fastssz.HashWithDefaultHasher(header{h})
}

// header adapts types.Header to fastssz.HashRoot without types importing
// fastssz directly.
type header struct {
	h types.Header
}

func (w header) HashTreeRoot() ([32]byte, error) {
	return fastssz.HashWithDefaultHasher(w)
}

func (w header) HashTreeRootWith(hh *fastssz.Hasher) error {
	indx := hh.Index()
	hh.PutUint64(w.h.Slot)
	hh.PutUint64(w.h.ProposerIndex)
	hh.PutBytes(w.h.ParentRoot[:])
	hh.PutBytes(w.h.StateRoot[:])
	hh.PutBytes(w.h.BodyRoot[:])
	hh.Merkleize(indx)
	return nil
}

// EmptyHeaderRoot is the tree-hash root of the all-zero header. A
// skipped-slot placeholder in a chain carries its real slot and parent
// root, so its root generally differs from this value.
var EmptyHeaderRoot = mustEmptyHeaderRoot()

func mustEmptyHeaderRoot() types.Hash32 {
	root, err := HeaderHashTreeRoot(types.Header{})
	if err != nil {
		// Hashing a fixed, in-memory container cannot fail; a failure here
		// means fastssz itself is broken.
		panic("ssz: hashing the empty header failed: " + err.Error())
	}
	return root
}
