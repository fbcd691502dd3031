// Package client implements the light client's state machine: constructing
// from a proof-update batch, applying further batches, and verifying
// transaction-inclusion proofs against the committed state.
package client

// ProofUpdateError is the closed set of ways a batch construction or
// apply can fail. Values are comparable with errors.Is against the
// package-level sentinels below.
type ProofUpdateError string

func (e ProofUpdateError) Error() string { return string(e) }

// Proof-update error variants.
const (
	ErrEmptyUpdates          ProofUpdateError = "client: proof update carries no updates"
	ErrUncontinuousSlot      ProofUpdateError = "client: header slot does not continue the previous one"
	ErrUnmatchedParentRoot   ProofUpdateError = "client: header parent root does not match the previous header's root"
	ErrFirstHeaderSlot       ProofUpdateError = "client: first header's slot does not continue the client's maximal slot"
	ErrFirstHeaderParentRoot ProofUpdateError = "client: first header's parent root does not match the client's tip"
	ErrHeadersMmrProof       ProofUpdateError = "client: headers mmr inclusion proof failed to verify"
	ErrNoAnchorHeader        ProofUpdateError = "client: batch contains no non-empty header to anchor the tip"
	ErrSignatureVerification ProofUpdateError = "client: signature verification failed"
	ErrOther                 ProofUpdateError = "client: internal mmr error"
)

// TxVerificationError is the closed set of ways transaction-inclusion
// verification can fail.
type TxVerificationError string

func (e TxVerificationError) Error() string { return string(e) }

// Transaction-verification error variants.
const (
	ErrUnsynchronized       TxVerificationError = "client: header slot outside the client's synchronized range"
	ErrHeaderMmrProof       TxVerificationError = "client: header mmr inclusion proof failed to verify"
	ErrTransactionSszProof  TxVerificationError = "client: transaction ssz inclusion proof failed to verify"
	ErrReceiptMptProof      TxVerificationError = "client: receipt mpt inclusion proof failed to verify"
	ErrReceiptsRootSszProof TxVerificationError = "client: receipts root ssz inclusion proof failed to verify"
	ErrTxOther              TxVerificationError = "client: internal verification error"
)
