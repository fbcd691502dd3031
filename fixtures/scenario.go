package fixtures

import (
	"fmt"

	"github.com/geanlabs/ethlc/mmr"
	"github.com/geanlabs/ethlc/ssz"
	"github.com/geanlabs/ethlc/store"
	"github.com/geanlabs/ethlc/types"
)

// Scenario bundles a synthetic header chain with the MMR built over it,
// ready to hand to client.NewFromProofUpdate, client.TryApply,
// client.VerifyTransactionProof and client.VerifyPayload.
type Scenario struct {
	Headers []types.Header
	Builder *MMRBuilder
}

// BuildScenario synthesizes a chain per cfg and appends every header's
// MMR cache digest, in slot order, to a fresh MMRBuilder backed by an
// in-memory store.
func BuildScenario(cfg ChainConfig) (*Scenario, error) {
	headers, err := BuildChain(cfg)
	if err != nil {
		return nil, err
	}
	builder := NewMMRBuilder(store.NewMemory())
	for _, h := range headers {
		cache, err := mmr.CalcCache(h)
		if err != nil {
			return nil, err
		}
		builder.Append(cache.Digest)
	}
	return &Scenario{Headers: headers, Builder: builder}, nil
}

// ProofUpdate returns a types.ProofUpdate advancing to this scenario's
// entire chain in a single batch, suitable for client.NewFromProofUpdate.
func (s *Scenario) ProofUpdate() types.ProofUpdate {
	return s.ProofUpdateRange(0, uint64(len(s.Headers)))
}

// ProofUpdateRange returns a types.ProofUpdate covering headers
// [start, end) of the scenario's chain, suitable for client.TryApply
// against a client already synchronized up to start. The claimed root,
// size and proof are those of the MMR over the first end leaves.
func (s *Scenario) ProofUpdateRange(start, end uint64) types.ProofUpdate {
	updates := make([]types.FinalityUpdate, 0, end-start)
	leafIndices := make([]uint64, 0, end-start)
	for i := start; i < end; i++ {
		updates = append(updates, types.FinalityUpdate{FinalizedHeader: s.Headers[i]})
		leafIndices = append(leafIndices, i)
	}
	prefix := &MMRBuilder{leaves: s.Builder.leaves[:end]}
	return types.ProofUpdate{
		NewHeadersMmrRoot: prefix.Root(),
		NewHeadersMmrProof: types.MmrProof{
			MmrSize: prefix.Size(),
			Items:   prefix.Prove(leafIndices),
		},
		Updates: updates,
	}
}

// TransactionScenario is a Scenario together with one header singled out
// to carry a synthetic transaction and receipt.
type TransactionScenario struct {
	*Scenario
	TransactionProof   types.TransactionProof
	TransactionPayload types.TransactionPayload
}

// BuildTransactionScenario builds a chain per cfg in which the header at
// leafIndex (relative to cfg.StartSlot) carries a synthetic transaction
// at transactionIndex, and returns the chain's scenario together with a
// ready-to-verify TransactionProof/TransactionPayload pair for it.
func BuildTransactionScenario(cfg ChainConfig, leafIndex, transactionIndex uint64, transaction, receipt []byte, seed byte) (*TransactionScenario, error) {
	if leafIndex >= cfg.Count {
		return nil, fmt.Errorf("fixtures: leaf index %d out of range for chain of %d headers", leafIndex, cfg.Count)
	}
	targetSlot := cfg.StartSlot + leafIndex

	txLeaf, err := ssz.TransactionTreeHash(transaction)
	if err != nil {
		return nil, fmt.Errorf("fixtures: hashing transaction: %w", err)
	}
	receiptTrie, err := BuildReceiptTrie(transactionIndex, receipt)
	if err != nil {
		return nil, fmt.Errorf("fixtures: building receipt trie: %w", err)
	}
	body := BuildBlockBody(txLeaf, transactionIndex, receiptTrie.Root, seed)

	cfg.BodyRootOverrides = mergeBodyRootOverrides(cfg.BodyRootOverrides, targetSlot, body.BodyRoot)

	scenario, err := BuildScenario(cfg)
	if err != nil {
		return nil, err
	}

	headerProof := scenario.Builder.Prove([]uint64{leafIndex})

	tp := types.TransactionProof{
		Header:               scenario.Headers[leafIndex],
		TransactionIndex:     transactionIndex,
		ReceiptsRoot:         receiptTrie.Root,
		HeaderMmrProof:       headerProof,
		TransactionSszProof:  body.TransactionSszProof,
		ReceiptMptProof:      receiptTrie.Proof,
		ReceiptsRootSszProof: body.ReceiptsRootSszProof,
	}
	payload := types.TransactionPayload{
		Transaction: transaction,
		Receipt:     receipt,
	}

	return &TransactionScenario{Scenario: scenario, TransactionProof: tp, TransactionPayload: payload}, nil
}

func mergeBodyRootOverrides(existing map[uint64]types.Hash32, slot uint64, root types.Hash32) map[uint64]types.Hash32 {
	out := make(map[uint64]types.Hash32, len(existing)+1)
	for k, v := range existing {
		out[k] = v
	}
	out[slot] = root
	return out
}
