package client

import (
	"github.com/geanlabs/ethlc/mmr"
	"github.com/geanlabs/ethlc/types"
)

// TryApply extends self with a further batch of headers using
// AcceptAllSignatures — see TryApplyWithVerifier.
func TryApply(self types.Client, pu types.ProofUpdate) (types.Client, error) {
	return TryApplyWithVerifier(self, pu, AcceptAllSignatures{})
}

// TryApplyWithVerifier extends self with a further batch of headers. The
// batch's first header must continue self's tip exactly: its slot must be
// self.MaximalSlot+1 and its parent root must equal self.TipValidHeaderRoot.
// If every header in the batch is empty, TipValidHeaderRoot is carried
// forward unchanged rather than rejected, since an all-empty batch simply
// extends the synchronized range without moving the anchor. After the
// empty-batch check, verifier runs over the batch before anything else is
// checked; a nil verifier is treated as AcceptAllSignatures.
func TryApplyWithVerifier(self types.Client, pu types.ProofUpdate, verifier SignatureVerifier) (types.Client, error) {
	if len(pu.Updates) == 0 {
		return types.Client{}, ErrEmptyUpdates
	}
	if verifier == nil {
		verifier = AcceptAllSignatures{}
	}
	if err := verifier.VerifyUpdates(pu.Updates); err != nil {
		return types.Client{}, ErrSignatureVerification
	}

	startLeafIndex := self.LeafCount()
	firstCheck := &firstHeaderCheck{
		ExpectedSlot:       self.MaximalSlot + 1,
		ExpectedParentRoot: self.TipValidHeaderRoot,
	}

	result, err := buildLeaves(pu.Updates, startLeafIndex, firstCheck)
	if err != nil {
		return types.Client{}, err
	}

	tipRoot := self.TipValidHeaderRoot
	if result.AnchorFound {
		tipRoot = result.TipRoot
	}

	mmrSize := mmr.LeafIndexToMMRSize(result.MaximalSlot - self.MinimalSlot)
	if err := verifyHeadersMmr(pu, result.Leaves, mmrSize); err != nil {
		return types.Client{}, err
	}

	return types.Client{
		MinimalSlot:        self.MinimalSlot,
		MaximalSlot:        result.MaximalSlot,
		TipValidHeaderRoot: tipRoot,
		HeadersMmrRoot:     pu.NewHeadersMmrRoot,
	}, nil
}
