package types

// Header is the canonical beacon block header: the tuple the light client
// accumulates into its MMR. It mirrors the teacher's BlockHeader
// (types/containers.go) field for field.
type Header struct {
	Slot          uint64
	ProposerIndex uint64
	ParentRoot    Hash32
	StateRoot     Hash32
	BodyRoot      Hash32
}

// IsEmpty reports whether h is the placeholder for a skipped slot.
//
// Slot and ParentRoot are deliberately excluded from this check: a
// skipped slot still occupies a real position in the chain and still
// chains from its predecessor's root (otherwise a run of several
// consecutive skips could never satisfy slot continuity or parent-root
// chaining against one another). What marks a header as empty is that
// it carries no content of its own — no proposer, no state transition,
// no block body.
func (h Header) IsEmpty() bool {
	return h.ProposerIndex == 0 &&
		h.StateRoot.IsZero() &&
		h.BodyRoot.IsZero()
}

// FinalityUpdate wraps a single finalized header. The wrapper exists so
// that future fields (a sync-committee aggregate, a signature slot) can be
// added to the wire schema without breaking existing decoders.
type FinalityUpdate struct {
	FinalizedHeader Header
}

// MmrProof is an ordered list of sibling/peak digests accompanying a
// claimed MMR size.
type MmrProof struct {
	MmrSize uint64
	Items   []Hash32
}

// ProofUpdate is the boundary object of a batch advance: a claimed new MMR
// root, the proof that the batch's headers belong under that root, and the
// ordered sequence of headers being added.
type ProofUpdate struct {
	NewHeadersMmrRoot  Hash32
	NewHeadersMmrProof MmrProof
	Updates            []FinalityUpdate
}

// Client is the light client's committed state.
//
// Invariants (see DESIGN.md and spec.md §3):
//  1. MinimalSlot <= MaximalSlot.
//  2. HeadersMmrRoot is the root of an MMR whose leaves are, in slot
//     order, the MMR digests of the headers occupying
//     [MinimalSlot, MaximalSlot]. A skipped slot's leaf is the digest of
//     its placeholder header, which keeps the real slot and parent root;
//     it is not one fixed digest shared by every skipped slot.
//  3. TipValidHeaderRoot is the SSZ tree-hash root of the most recent
//     non-empty header in that range.
//  4. The leaf count equals MaximalSlot - MinimalSlot + 1.
type Client struct {
	MinimalSlot        uint64
	MaximalSlot        uint64
	TipValidHeaderRoot Hash32
	HeadersMmrRoot     Hash32
}

// LeafCount returns the number of MMR leaves the client's range occupies.
func (c Client) LeafCount() uint64 {
	return c.MaximalSlot - c.MinimalSlot + 1
}

// TransactionProof bundles everything needed to prove a single execution
// transaction (and its receipt) was included in a specific beacon block
// within a client's summarized range.
type TransactionProof struct {
	Header               Header
	TransactionIndex     uint64
	ReceiptsRoot         Hash32
	HeaderMmrProof       []Hash32
	TransactionSszProof  []Hash32
	ReceiptMptProof      [][]byte
	ReceiptsRootSszProof []Hash32
}

// TransactionPayload carries the opaque, RLP-encoded transaction and
// receipt bytes whose inclusion a TransactionProof attests to.
type TransactionPayload struct {
	Transaction []byte
	Receipt     []byte
}
