// Package store defines the node-storage boundary the verification core
// never crosses: a place to persist MMR node digests and the client's
// committed state between runs. Per spec.md §6, this is a test-side and
// deployment-side collaborator — client and mmr never import it.
package store

import "github.com/geanlabs/ethlc/types"

// Store is the storage interface for MMR nodes and the client's committed
// state, mirroring the teacher's block/state Store split (storage/interface.go)
// narrowed to this domain's two persisted shapes.
type Store interface {
	GetNode(pos uint64) (types.Hash32, bool)
	PutNode(pos uint64, digest types.Hash32)
	GetClient() (types.Client, bool)
	PutClient(c types.Client)
	Close() error
}
