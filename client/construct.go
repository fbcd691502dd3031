package client

import (
	"github.com/geanlabs/ethlc/mmr"
	"github.com/geanlabs/ethlc/types"
)

// NewFromProofUpdate bootstraps a Client from a genesis proof update using
// AcceptAllSignatures — see NewFromProofUpdateWithVerifier.
func NewFromProofUpdate(pu types.ProofUpdate) (types.Client, error) {
	return NewFromProofUpdateWithVerifier(pu, AcceptAllSignatures{})
}

// NewFromProofUpdateWithVerifier bootstraps a Client from a genesis proof
// update: the batch's headers become the client's entire synchronized
// range, and the last non-empty header among them anchors
// TipValidHeaderRoot. At least one header in the batch must be non-empty,
// since an all-empty genesis batch would leave the client with no valid
// anchor to build on. After the empty-batch check, verifier runs over the
// batch before anything else is checked; a nil verifier is treated as
// AcceptAllSignatures.
func NewFromProofUpdateWithVerifier(pu types.ProofUpdate, verifier SignatureVerifier) (types.Client, error) {
	if len(pu.Updates) == 0 {
		return types.Client{}, ErrEmptyUpdates
	}
	if verifier == nil {
		verifier = AcceptAllSignatures{}
	}
	if err := verifier.VerifyUpdates(pu.Updates); err != nil {
		return types.Client{}, ErrSignatureVerification
	}

	minimalSlot := pu.Updates[0].FinalizedHeader.Slot

	result, err := buildLeaves(pu.Updates, 0, nil)
	if err != nil {
		return types.Client{}, err
	}
	if !result.AnchorFound {
		return types.Client{}, ErrNoAnchorHeader
	}

	mmrSize := mmr.LeafIndexToMMRSize(result.MaximalSlot - minimalSlot)
	if err := verifyHeadersMmr(pu, result.Leaves, mmrSize); err != nil {
		return types.Client{}, err
	}

	return types.Client{
		MinimalSlot:        minimalSlot,
		MaximalSlot:        result.MaximalSlot,
		TipValidHeaderRoot: result.TipRoot,
		HeadersMmrRoot:     pu.NewHeadersMmrRoot,
	}, nil
}
