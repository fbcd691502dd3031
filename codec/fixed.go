// Package codec implements the packed binary encoding of every boundary
// type (Client, Header, FinalityUpdate, ProofUpdate, TransactionProof,
// TransactionPayload, MmrProof): deterministic, bit-exact pack/unpack, and
// zero-copy reader views over already-received byte slices.
//
// The layout follows the same offset-table convention a schema compiler
// (fastssz's sszgen, or molecule in the original source) would produce:
// fixed-size fields inline, variable-size fields replaced in the fixed
// section by a little-endian uint32 byte offset into a trailing variable
// section.
package codec

import (
	"encoding/binary"
	"fmt"

	"github.com/geanlabs/ethlc/types"
)

const (
	hash32Size = 32
	headerSize = 8 + 8 + 32 + 32 + 32 // slot, proposer_index, parent_root, state_root, body_root
	clientSize = 8 + 8 + 32 + 32       // minimal_slot, maximal_slot, tip_valid_header_root, headers_mmr_root
)

func putUint64(b []byte, v uint64) { binary.LittleEndian.PutUint64(b, v) }
func getUint64(b []byte) uint64    { return binary.LittleEndian.Uint64(b) }
func putOffset(b []byte, v uint32) { binary.LittleEndian.PutUint32(b, v) }
func getOffset(b []byte) uint32    { return binary.LittleEndian.Uint32(b) }

// MarshalHeader packs a Header into its fixed 112-byte layout.
func MarshalHeader(h types.Header) []byte {
	buf := make([]byte, headerSize)
	putUint64(buf[0:8], h.Slot)
	putUint64(buf[8:16], h.ProposerIndex)
	copy(buf[16:48], h.ParentRoot[:])
	copy(buf[48:80], h.StateRoot[:])
	copy(buf[80:112], h.BodyRoot[:])
	return buf
}

// UnmarshalHeader unpacks a Header from exactly headerSize bytes.
func UnmarshalHeader(buf []byte) (types.Header, error) {
	if len(buf) != headerSize {
		return types.Header{}, fmt.Errorf("codec: header has %d bytes, want %d", len(buf), headerSize)
	}
	return types.Header{
		Slot:          getUint64(buf[0:8]),
		ProposerIndex: getUint64(buf[8:16]),
		ParentRoot:    types.BytesToHash32(buf[16:48]),
		StateRoot:     types.BytesToHash32(buf[48:80]),
		BodyRoot:      types.BytesToHash32(buf[80:112]),
	}, nil
}

// MarshalFinalityUpdate packs a FinalityUpdate. It is currently a thin
// wrapper over Header so its wire shape is Header's, but kept as its own
// function so adding fields later (a sync-committee aggregate, a signature
// slot) only touches this one place.
func MarshalFinalityUpdate(fu types.FinalityUpdate) []byte {
	return MarshalHeader(fu.FinalizedHeader)
}

// UnmarshalFinalityUpdate unpacks a FinalityUpdate from exactly headerSize
// bytes.
func UnmarshalFinalityUpdate(buf []byte) (types.FinalityUpdate, error) {
	h, err := UnmarshalHeader(buf)
	if err != nil {
		return types.FinalityUpdate{}, err
	}
	return types.FinalityUpdate{FinalizedHeader: h}, nil
}

// MarshalClient packs a Client into its fixed 80-byte layout.
func MarshalClient(c types.Client) []byte {
	buf := make([]byte, clientSize)
	putUint64(buf[0:8], c.MinimalSlot)
	putUint64(buf[8:16], c.MaximalSlot)
	copy(buf[16:48], c.TipValidHeaderRoot[:])
	copy(buf[48:80], c.HeadersMmrRoot[:])
	return buf
}

// UnmarshalClient unpacks a Client from exactly clientSize bytes.
func UnmarshalClient(buf []byte) (types.Client, error) {
	if len(buf) != clientSize {
		return types.Client{}, fmt.Errorf("codec: client has %d bytes, want %d", len(buf), clientSize)
	}
	return types.Client{
		MinimalSlot:        getUint64(buf[0:8]),
		MaximalSlot:        getUint64(buf[8:16]),
		TipValidHeaderRoot: types.BytesToHash32(buf[16:48]),
		HeadersMmrRoot:     types.BytesToHash32(buf[48:80]),
	}, nil
}

// marshalHash32List concatenates a slice of Hash32 with no length prefix:
// since every element is a fixed 32 bytes, the element count is implicit
// in the byte range a caller slices out for it.
func marshalHash32List(items []types.Hash32) []byte {
	buf := make([]byte, len(items)*hash32Size)
	for i, it := range items {
		copy(buf[i*hash32Size:(i+1)*hash32Size], it[:])
	}
	return buf
}

func unmarshalHash32List(buf []byte) ([]types.Hash32, error) {
	if len(buf)%hash32Size != 0 {
		return nil, fmt.Errorf("codec: hash32 list of %d bytes is not a multiple of %d", len(buf), hash32Size)
	}
	n := len(buf) / hash32Size
	if n == 0 {
		return nil, nil
	}
	out := make([]types.Hash32, n)
	for i := range out {
		out[i] = types.BytesToHash32(buf[i*hash32Size : (i+1)*hash32Size])
	}
	return out, nil
}

// marshalByteList packs a list of variable-length byte strings using a
// leading table of uint32 offsets (one per item, relative to the start of
// this section), mirroring how SSZ encodes List[List[byte]].
func marshalByteList(items [][]byte) []byte {
	headerLen := len(items) * 4
	total := headerLen
	for _, it := range items {
		total += len(it)
	}
	buf := make([]byte, total)
	offset := uint32(headerLen)
	for i, it := range items {
		putOffset(buf[i*4:i*4+4], offset)
		offset += uint32(len(it))
	}
	cursor := headerLen
	for _, it := range items {
		copy(buf[cursor:cursor+len(it)], it)
		cursor += len(it)
	}
	return buf
}

func unmarshalByteList(buf []byte) ([][]byte, error) {
	if len(buf) == 0 {
		return nil, nil
	}
	if len(buf) < 4 {
		return nil, fmt.Errorf("codec: byte list section too short for an offset table")
	}
	first := getOffset(buf[0:4])
	if first%4 != 0 || int(first) > len(buf) {
		return nil, fmt.Errorf("codec: byte list has malformed first offset %d", first)
	}
	n := int(first / 4)
	offsets := make([]uint32, n)
	for i := 0; i < n; i++ {
		if i*4+4 > len(buf) {
			return nil, fmt.Errorf("codec: byte list offset table truncated")
		}
		offsets[i] = getOffset(buf[i*4 : i*4+4])
	}
	out := make([][]byte, n)
	for i := 0; i < n; i++ {
		start := offsets[i]
		end := uint32(len(buf))
		if i+1 < n {
			end = offsets[i+1]
		}
		if end < start || int(end) > len(buf) {
			return nil, fmt.Errorf("codec: byte list item %d has invalid range [%d,%d)", i, start, end)
		}
		out[i] = append([]byte(nil), buf[start:end]...)
	}
	return out, nil
}
