package client

import (
	"github.com/geanlabs/ethlc/constants"
	"github.com/geanlabs/ethlc/mmr"
	"github.com/geanlabs/ethlc/ssz"
	"github.com/geanlabs/ethlc/trie"
	"github.com/geanlabs/ethlc/types"
)

// VerifyTransactionProof checks that tp.Header is the header occupying
// slot tp.Header.Slot within self's committed MMR range. It does not
// touch the transaction or receipt payload itself — see VerifyPayload
// for that.
func VerifyTransactionProof(self types.Client, tp types.TransactionProof) error {
	slot := tp.Header.Slot
	if slot < self.MinimalSlot || slot > self.MaximalSlot {
		return ErrUnsynchronized
	}

	cache, err := mmr.CalcCache(tp.Header)
	if err != nil {
		return ErrTxOther
	}

	leafIndex := slot - self.MinimalSlot
	mmrSize := mmr.LeafIndexToMMRSize(self.MaximalSlot - self.MinimalSlot)
	leaf := mmr.LeafEntry{LeafIndex: leafIndex, Digest: cache.Digest}

	ok, err := mmr.VerifyInclusion(self.HeadersMmrRoot, []mmr.LeafEntry{leaf}, mmrSize, tp.HeaderMmrProof)
	if err != nil {
		return ErrTxOther
	}
	if !ok {
		return ErrHeaderMmrProof
	}
	return nil
}

// VerifyPayload checks that payload's transaction and receipt are the
// ones tp attests to: the transaction is bound-checked and SSZ-verified
// against the header's body root, the receipt is MPT-verified against
// the claimed receipts root, and that receipts root is itself SSZ-verified
// against the body root. Steps are ordered; the first failure is returned.
func VerifyPayload(tp types.TransactionProof, payload types.TransactionPayload) error {
	if len(payload.Transaction) > constants.MaxBytesPerTransaction {
		return ErrTxOther
	}

	txLeaf, err := ssz.TransactionTreeHash(payload.Transaction)
	if err != nil {
		return ErrTxOther
	}
	txGeneralizedIndex := constants.TransactionInBlockBody + tp.TransactionIndex
	ok, err := ssz.VerifyProof(tp.Header.BodyRoot, txLeaf, tp.TransactionSszProof, txGeneralizedIndex)
	if err != nil {
		return ErrTxOther
	}
	if !ok {
		return ErrTransactionSszProof
	}

	key, err := trie.TransactionIndexKey(tp.TransactionIndex)
	if err != nil {
		return ErrTxOther
	}
	ok, err = trie.VerifyProof(tp.ReceiptsRoot, key, payload.Receipt, tp.ReceiptMptProof)
	if err != nil {
		return ErrTxOther
	}
	if !ok {
		return ErrReceiptMptProof
	}

	ok, err = ssz.VerifyProof(tp.Header.BodyRoot, tp.ReceiptsRoot, tp.ReceiptsRootSszProof, constants.ReceiptsRootInBlockBody)
	if err != nil {
		return ErrTxOther
	}
	if !ok {
		return ErrReceiptsRootSszProof
	}

	return nil
}
