package codec

import (
	"fmt"

	"github.com/geanlabs/ethlc/types"
)

const mmrProofFixedSize = 8 + 4 // mmr_size, offset to items

// MarshalMmrProof packs an MmrProof: mmr_size inline, items in the
// trailing variable section.
func MarshalMmrProof(p types.MmrProof) []byte {
	items := marshalHash32List(p.Items)
	buf := make([]byte, mmrProofFixedSize+len(items))
	putUint64(buf[0:8], p.MmrSize)
	putOffset(buf[8:12], mmrProofFixedSize)
	copy(buf[mmrProofFixedSize:], items)
	return buf
}

// UnmarshalMmrProof unpacks an MmrProof.
func UnmarshalMmrProof(buf []byte) (types.MmrProof, error) {
	if len(buf) < mmrProofFixedSize {
		return types.MmrProof{}, fmt.Errorf("codec: mmr proof shorter than fixed header")
	}
	mmrSize := getUint64(buf[0:8])
	off := getOffset(buf[8:12])
	if off != mmrProofFixedSize {
		return types.MmrProof{}, fmt.Errorf("codec: mmr proof items offset %d, want %d", off, mmrProofFixedSize)
	}
	items, err := unmarshalHash32List(buf[off:])
	if err != nil {
		return types.MmrProof{}, fmt.Errorf("codec: mmr proof items: %w", err)
	}
	return types.MmrProof{MmrSize: mmrSize, Items: items}, nil
}

const proofUpdateFixedSize = 32 + 4 + 4 // new_headers_mmr_root, offset to mmr_proof, offset to updates

// MarshalProofUpdate packs a ProofUpdate.
func MarshalProofUpdate(pu types.ProofUpdate) []byte {
	mmrProofBytes := MarshalMmrProof(pu.NewHeadersMmrProof)
	updatesBytes := make([]byte, 0, len(pu.Updates)*headerSize)
	for _, u := range pu.Updates {
		updatesBytes = append(updatesBytes, MarshalFinalityUpdate(u)...)
	}

	off1 := uint32(proofUpdateFixedSize)
	off2 := off1 + uint32(len(mmrProofBytes))

	buf := make([]byte, proofUpdateFixedSize, int(off2)+len(updatesBytes))
	copy(buf[0:32], pu.NewHeadersMmrRoot[:])
	putOffset(buf[32:36], off1)
	putOffset(buf[36:40], off2)
	buf = append(buf, mmrProofBytes...)
	buf = append(buf, updatesBytes...)
	return buf
}

// UnmarshalProofUpdate unpacks a ProofUpdate.
func UnmarshalProofUpdate(buf []byte) (types.ProofUpdate, error) {
	if len(buf) < proofUpdateFixedSize {
		return types.ProofUpdate{}, fmt.Errorf("codec: proof update shorter than fixed header")
	}
	root := types.BytesToHash32(buf[0:32])
	off1 := getOffset(buf[32:36])
	off2 := getOffset(buf[36:40])
	if off1 != proofUpdateFixedSize || off2 < off1 || int(off2) > len(buf) {
		return types.ProofUpdate{}, fmt.Errorf("codec: proof update offsets [%d,%d] invalid for %d bytes", off1, off2, len(buf))
	}

	mmrProof, err := UnmarshalMmrProof(buf[off1:off2])
	if err != nil {
		return types.ProofUpdate{}, fmt.Errorf("codec: proof update mmr proof: %w", err)
	}

	updatesBytes := buf[off2:]
	if len(updatesBytes)%headerSize != 0 {
		return types.ProofUpdate{}, fmt.Errorf("codec: proof update's updates section of %d bytes is not a multiple of %d", len(updatesBytes), headerSize)
	}
	n := len(updatesBytes) / headerSize
	updates := make([]types.FinalityUpdate, n)
	for i := 0; i < n; i++ {
		fu, err := UnmarshalFinalityUpdate(updatesBytes[i*headerSize : (i+1)*headerSize])
		if err != nil {
			return types.ProofUpdate{}, fmt.Errorf("codec: proof update entry %d: %w", i, err)
		}
		updates[i] = fu
	}

	return types.ProofUpdate{
		NewHeadersMmrRoot:  root,
		NewHeadersMmrProof: mmrProof,
		Updates:            updates,
	}, nil
}

const transactionPayloadFixedSize = 4 + 4 // offset to transaction, offset to receipt

// MarshalTransactionPayload packs a TransactionPayload.
func MarshalTransactionPayload(p types.TransactionPayload) []byte {
	off1 := uint32(transactionPayloadFixedSize)
	off2 := off1 + uint32(len(p.Transaction))

	buf := make([]byte, transactionPayloadFixedSize, int(off2)+len(p.Receipt))
	putOffset(buf[0:4], off1)
	putOffset(buf[4:8], off2)
	buf = append(buf, p.Transaction...)
	buf = append(buf, p.Receipt...)
	return buf
}

// UnmarshalTransactionPayload unpacks a TransactionPayload.
func UnmarshalTransactionPayload(buf []byte) (types.TransactionPayload, error) {
	if len(buf) < transactionPayloadFixedSize {
		return types.TransactionPayload{}, fmt.Errorf("codec: transaction payload shorter than fixed header")
	}
	off1 := getOffset(buf[0:4])
	off2 := getOffset(buf[4:8])
	if off1 != transactionPayloadFixedSize || off2 < off1 || int(off2) > len(buf) {
		return types.TransactionPayload{}, fmt.Errorf("codec: transaction payload offsets [%d,%d] invalid for %d bytes", off1, off2, len(buf))
	}
	return types.TransactionPayload{
		Transaction: append([]byte(nil), buf[off1:off2]...),
		Receipt:     append([]byte(nil), buf[off2:]...),
	}, nil
}

const transactionProofFixedSize = headerSize + 8 + 32 + 4 + 4 + 4 + 4

// MarshalTransactionProof packs a TransactionProof.
func MarshalTransactionProof(tp types.TransactionProof) []byte {
	headerBytes := MarshalHeader(tp.Header)
	hmp := marshalHash32List(tp.HeaderMmrProof)
	tsp := marshalHash32List(tp.TransactionSszProof)
	rmp := marshalByteList(tp.ReceiptMptProof)
	rrsp := marshalHash32List(tp.ReceiptsRootSszProof)

	off1 := uint32(transactionProofFixedSize)
	off2 := off1 + uint32(len(hmp))
	off3 := off2 + uint32(len(tsp))
	off4 := off3 + uint32(len(rmp))

	buf := make([]byte, transactionProofFixedSize, int(off4)+len(rrsp))
	copy(buf[0:headerSize], headerBytes)
	cursor := headerSize
	putUint64(buf[cursor:cursor+8], tp.TransactionIndex)
	cursor += 8
	copy(buf[cursor:cursor+32], tp.ReceiptsRoot[:])
	cursor += 32
	putOffset(buf[cursor:cursor+4], off1)
	cursor += 4
	putOffset(buf[cursor:cursor+4], off2)
	cursor += 4
	putOffset(buf[cursor:cursor+4], off3)
	cursor += 4
	putOffset(buf[cursor:cursor+4], off4)

	buf = append(buf, hmp...)
	buf = append(buf, tsp...)
	buf = append(buf, rmp...)
	buf = append(buf, rrsp...)
	return buf
}

// UnmarshalTransactionProof unpacks a TransactionProof.
func UnmarshalTransactionProof(buf []byte) (types.TransactionProof, error) {
	if len(buf) < transactionProofFixedSize {
		return types.TransactionProof{}, fmt.Errorf("codec: transaction proof shorter than fixed header")
	}
	header, err := UnmarshalHeader(buf[0:headerSize])
	if err != nil {
		return types.TransactionProof{}, fmt.Errorf("codec: transaction proof header: %w", err)
	}
	cursor := headerSize
	txIndex := getUint64(buf[cursor : cursor+8])
	cursor += 8
	receiptsRoot := types.BytesToHash32(buf[cursor : cursor+32])
	cursor += 32
	off1 := getOffset(buf[cursor : cursor+4])
	cursor += 4
	off2 := getOffset(buf[cursor : cursor+4])
	cursor += 4
	off3 := getOffset(buf[cursor : cursor+4])
	cursor += 4
	off4 := getOffset(buf[cursor : cursor+4])

	if off1 != transactionProofFixedSize || off2 < off1 || off3 < off2 || off4 < off3 || int(off4) > len(buf) {
		return types.TransactionProof{}, fmt.Errorf("codec: transaction proof offsets [%d,%d,%d,%d] invalid for %d bytes", off1, off2, off3, off4, len(buf))
	}

	hmp, err := unmarshalHash32List(buf[off1:off2])
	if err != nil {
		return types.TransactionProof{}, fmt.Errorf("codec: transaction proof header mmr proof: %w", err)
	}
	tsp, err := unmarshalHash32List(buf[off2:off3])
	if err != nil {
		return types.TransactionProof{}, fmt.Errorf("codec: transaction proof transaction ssz proof: %w", err)
	}
	rmp, err := unmarshalByteList(buf[off3:off4])
	if err != nil {
		return types.TransactionProof{}, fmt.Errorf("codec: transaction proof receipt mpt proof: %w", err)
	}
	rrsp, err := unmarshalHash32List(buf[off4:])
	if err != nil {
		return types.TransactionProof{}, fmt.Errorf("codec: transaction proof receipts root ssz proof: %w", err)
	}

	return types.TransactionProof{
		Header:               header,
		TransactionIndex:     txIndex,
		ReceiptsRoot:         receiptsRoot,
		HeaderMmrProof:       hmp,
		TransactionSszProof:  tsp,
		ReceiptMptProof:      rmp,
		ReceiptsRootSszProof: rrsp,
	}, nil
}
