package client

import "github.com/geanlabs/ethlc/types"

// SignatureVerifier is the extension point for sync-committee signature
// verification over a batch of finality updates. The core does not
// implement BLS itself; a caller that needs it supplies an implementation
// here. NewFromProofUpdate and TryApply, and a nil verifier passed to their
// WithVerifier variants, use AcceptAllSignatures, which performs no check
// at all — this mirrors the upstream source's deferred "verify more,
// such as BLS" TODO rather than pretending to implement it.
type SignatureVerifier interface {
	VerifyUpdates(updates []types.FinalityUpdate) error
}

// AcceptAllSignatures is the default, no-op SignatureVerifier.
type AcceptAllSignatures struct{}

// VerifyUpdates always succeeds.
func (AcceptAllSignatures) VerifyUpdates(updates []types.FinalityUpdate) error {
	return nil
}
