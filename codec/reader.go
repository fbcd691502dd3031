package codec

import (
	"fmt"

	"github.com/geanlabs/ethlc/types"
)

// ProofUpdateReader is a zero-copy view over a packed ProofUpdate: it
// validates the fixed header and offset table on construction (rejecting
// malformed shapes outright) but defers decoding of individual updates and
// proof items to its accessors, never copying the underlying buffer.
type ProofUpdateReader struct {
	buf            []byte
	mmrProofOffset uint32
	updatesOffset  uint32
}

// NewProofUpdateReader validates buf's shape and returns a reader over it.
// buf is retained, not copied; the caller must not mutate it afterward.
func NewProofUpdateReader(buf []byte) (*ProofUpdateReader, error) {
	if len(buf) < proofUpdateFixedSize {
		return nil, fmt.Errorf("codec: proof update reader: buffer shorter than fixed header")
	}
	off1 := getOffset(buf[32:36])
	off2 := getOffset(buf[36:40])
	if off1 != proofUpdateFixedSize || off2 < off1 || int(off2) > len(buf) {
		return nil, fmt.Errorf("codec: proof update reader: offsets [%d,%d] invalid for %d bytes", off1, off2, len(buf))
	}
	if len(buf[off1:off2]) < mmrProofFixedSize {
		return nil, fmt.Errorf("codec: proof update reader: mmr proof section shorter than its fixed header")
	}
	if (len(buf)-int(off2))%headerSize != 0 {
		return nil, fmt.Errorf("codec: proof update reader: updates section is not a multiple of %d bytes", headerSize)
	}
	return &ProofUpdateReader{buf: buf, mmrProofOffset: off1, updatesOffset: off2}, nil
}

// NewHeadersMmrRoot returns the claimed root without allocating.
func (r *ProofUpdateReader) NewHeadersMmrRoot() types.Hash32 {
	return types.BytesToHash32(r.buf[0:32])
}

// MmrProof decodes the accompanying MmrProof.
func (r *ProofUpdateReader) MmrProof() (types.MmrProof, error) {
	return UnmarshalMmrProof(r.buf[r.mmrProofOffset:r.updatesOffset])
}

// UpdatesLen returns the number of FinalityUpdate entries without decoding
// any of them.
func (r *ProofUpdateReader) UpdatesLen() int {
	return (len(r.buf) - int(r.updatesOffset)) / headerSize
}

// Update decodes the i-th FinalityUpdate on demand.
func (r *ProofUpdateReader) Update(i int) (types.FinalityUpdate, error) {
	if i < 0 || i >= r.UpdatesLen() {
		return types.FinalityUpdate{}, fmt.Errorf("codec: proof update reader: index %d out of range", i)
	}
	start := int(r.updatesOffset) + i*headerSize
	return UnmarshalFinalityUpdate(r.buf[start : start+headerSize])
}

// TransactionProofReader is a zero-copy view over a packed TransactionProof.
type TransactionProofReader struct {
	buf                   []byte
	headerMmrProofOffset  uint32
	transactionSszOffset  uint32
	receiptMptOffset      uint32
	receiptsRootSszOffset uint32
}

// NewTransactionProofReader validates buf's shape and returns a reader
// over it.
func NewTransactionProofReader(buf []byte) (*TransactionProofReader, error) {
	if len(buf) < transactionProofFixedSize {
		return nil, fmt.Errorf("codec: transaction proof reader: buffer shorter than fixed header")
	}
	cursor := headerSize + 8 + 32
	off1 := getOffset(buf[cursor : cursor+4])
	off2 := getOffset(buf[cursor+4 : cursor+8])
	off3 := getOffset(buf[cursor+8 : cursor+12])
	off4 := getOffset(buf[cursor+12 : cursor+16])
	if off1 != transactionProofFixedSize || off2 < off1 || off3 < off2 || off4 < off3 || int(off4) > len(buf) {
		return nil, fmt.Errorf("codec: transaction proof reader: offsets [%d,%d,%d,%d] invalid for %d bytes", off1, off2, off3, off4, len(buf))
	}
	return &TransactionProofReader{
		buf:                   buf,
		headerMmrProofOffset:  off1,
		transactionSszOffset:  off2,
		receiptMptOffset:      off3,
		receiptsRootSszOffset: off4,
	}, nil
}

// Header decodes the fixed header field.
func (r *TransactionProofReader) Header() (types.Header, error) {
	return UnmarshalHeader(r.buf[0:headerSize])
}

// TransactionIndex returns the fixed transaction_index field.
func (r *TransactionProofReader) TransactionIndex() uint64 {
	return getUint64(r.buf[headerSize : headerSize+8])
}

// ReceiptsRoot returns the fixed receipts_root field.
func (r *TransactionProofReader) ReceiptsRoot() types.Hash32 {
	return types.BytesToHash32(r.buf[headerSize+8 : headerSize+8+32])
}

// HeaderMmrProof decodes the header_mmr_proof section.
func (r *TransactionProofReader) HeaderMmrProof() ([]types.Hash32, error) {
	return unmarshalHash32List(r.buf[r.headerMmrProofOffset:r.transactionSszOffset])
}

// TransactionSszProof decodes the transaction_ssz_proof section.
func (r *TransactionProofReader) TransactionSszProof() ([]types.Hash32, error) {
	return unmarshalHash32List(r.buf[r.transactionSszOffset:r.receiptMptOffset])
}

// ReceiptMptProof decodes the receipt_mpt_proof section.
func (r *TransactionProofReader) ReceiptMptProof() ([][]byte, error) {
	return unmarshalByteList(r.buf[r.receiptMptOffset:r.receiptsRootSszOffset])
}

// ReceiptsRootSszProof decodes the receipts_root_ssz_proof section.
func (r *TransactionProofReader) ReceiptsRootSszProof() ([]types.Hash32, error) {
	return unmarshalHash32List(r.buf[r.receiptsRootSszOffset:])
}

// ToValue materializes the full TransactionProof value from the reader.
func (r *TransactionProofReader) ToValue() (types.TransactionProof, error) {
	h, err := r.Header()
	if err != nil {
		return types.TransactionProof{}, err
	}
	hmp, err := r.HeaderMmrProof()
	if err != nil {
		return types.TransactionProof{}, err
	}
	tsp, err := r.TransactionSszProof()
	if err != nil {
		return types.TransactionProof{}, err
	}
	rmp, err := r.ReceiptMptProof()
	if err != nil {
		return types.TransactionProof{}, err
	}
	rrsp, err := r.ReceiptsRootSszProof()
	if err != nil {
		return types.TransactionProof{}, err
	}
	return types.TransactionProof{
		Header:               h,
		TransactionIndex:     r.TransactionIndex(),
		ReceiptsRoot:         r.ReceiptsRoot(),
		HeaderMmrProof:       hmp,
		TransactionSszProof:  tsp,
		ReceiptMptProof:      rmp,
		ReceiptsRootSszProof: rrsp,
	}, nil
}
