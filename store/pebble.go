package store

import (
	"encoding/binary"
	"fmt"
	"log/slog"

	"github.com/cockroachdb/pebble"
	"github.com/golang/snappy"

	"github.com/geanlabs/ethlc/codec"
	"github.com/geanlabs/ethlc/types"
)

// Pebble is a disk-resident Store backed by cockroachdb/pebble. Node
// digests are stored raw (32 bytes doesn't benefit from compression);
// the packed Client value is snappy-compressed first, the same
// varint-prefixed-then-compressed shape networking/reqresp/stream.go
// uses for wire messages, reused here for the at-rest encoding.
//
// PutNode/PutClient have no error return (Store is a void-write
// interface, matching Memory's map writes, which can't fail), so a real
// pebble write failure is logged here rather than silently dropped.
type Pebble struct {
	db     *pebble.DB
	logger *slog.Logger
}

var clientKey = []byte("client")

// OpenPebble opens (creating if absent) a pebble database at dir.
func OpenPebble(dir string) (*Pebble, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("store: open pebble at %s: %w", dir, err)
	}
	return &Pebble{db: db, logger: slog.Default()}, nil
}

func nodeKey(pos uint64) []byte {
	k := make([]byte, 9)
	k[0] = 'n'
	binary.BigEndian.PutUint64(k[1:], pos)
	return k
}

func (p *Pebble) GetNode(pos uint64) (types.Hash32, bool) {
	v, closer, err := p.db.Get(nodeKey(pos))
	if err != nil {
		return types.Hash32{}, false
	}
	defer closer.Close()
	if len(v) != 32 {
		return types.Hash32{}, false
	}
	return types.BytesToHash32(v), true
}

func (p *Pebble) PutNode(pos uint64, digest types.Hash32) {
	if err := p.db.Set(nodeKey(pos), digest.Bytes(), pebble.Sync); err != nil {
		p.logger.Error("store: put node failed", "pos", pos, "error", err)
	}
}

func (p *Pebble) GetClient() (types.Client, bool) {
	v, closer, err := p.db.Get(clientKey)
	if err != nil {
		return types.Client{}, false
	}
	defer closer.Close()

	raw, err := snappy.Decode(nil, v)
	if err != nil {
		return types.Client{}, false
	}
	c, err := codec.UnmarshalClient(raw)
	if err != nil {
		return types.Client{}, false
	}
	return c, true
}

func (p *Pebble) PutClient(c types.Client) {
	compressed := snappy.Encode(nil, codec.MarshalClient(c))
	if err := p.db.Set(clientKey, compressed, pebble.Sync); err != nil {
		p.logger.Error("store: put client failed", "error", err)
	}
}

func (p *Pebble) Close() error {
	return p.db.Close()
}
