package fixtures_test

import (
	"errors"
	"testing"

	"github.com/geanlabs/ethlc/client"
	"github.com/geanlabs/ethlc/fixtures"
	"github.com/geanlabs/ethlc/mmr"
)

func TestBuildScenario_ConstructFromProofUpdate(t *testing.T) {
	scenario, err := fixtures.BuildScenario(fixtures.ChainConfig{StartSlot: 100, Count: 3})
	if err != nil {
		t.Fatalf("BuildScenario: %v", err)
	}

	c, err := client.NewFromProofUpdate(scenario.ProofUpdate())
	if err != nil {
		t.Fatalf("NewFromProofUpdate: %v", err)
	}
	if c.MinimalSlot != 100 || c.MaximalSlot != 102 {
		t.Fatalf("got range [%d,%d], want [100,102]", c.MinimalSlot, c.MaximalSlot)
	}
	if c.HeadersMmrRoot != scenario.Builder.Root() {
		t.Fatal("client's committed mmr root does not match the builder's")
	}
}

func TestBuildScenario_ConstructSkipsEmptySlots(t *testing.T) {
	scenario, err := fixtures.BuildScenario(fixtures.ChainConfig{
		StartSlot:  100,
		Count:      4,
		EmptySlots: map[uint64]bool{102: true, 103: true},
	})
	if err != nil {
		t.Fatalf("BuildScenario: %v", err)
	}

	c, err := client.NewFromProofUpdate(scenario.ProofUpdate())
	if err != nil {
		t.Fatalf("NewFromProofUpdate: %v", err)
	}
	cache, err := mmr.CalcCache(scenario.Headers[1]) // last non-empty header is index 1 (slot 101)
	if err != nil {
		t.Fatalf("computing expected tip: %v", err)
	}
	if c.TipValidHeaderRoot != cache.Root {
		t.Fatal("expected tip to anchor to the last non-empty header despite trailing skips")
	}
}

func TestBuildScenario_ApplyExtendsRange(t *testing.T) {
	scenario, err := fixtures.BuildScenario(fixtures.ChainConfig{StartSlot: 200, Count: 4})
	if err != nil {
		t.Fatalf("BuildScenario: %v", err)
	}

	c, err := client.NewFromProofUpdate(scenario.ProofUpdateRange(0, 2))
	if err != nil {
		t.Fatalf("NewFromProofUpdate: %v", err)
	}

	c, err = client.TryApply(c, scenario.ProofUpdateRange(2, 4))
	if err != nil {
		t.Fatalf("TryApply: %v", err)
	}
	if c.MinimalSlot != 200 || c.MaximalSlot != 203 {
		t.Fatalf("got range [%d,%d], want [200,203]", c.MinimalSlot, c.MaximalSlot)
	}
	if c.HeadersMmrRoot != scenario.Builder.Root() {
		t.Fatal("client's committed mmr root does not match the builder's after apply")
	}
}

func TestBuildTransactionScenario_VerifiesEndToEnd(t *testing.T) {
	ts, err := fixtures.BuildTransactionScenario(
		fixtures.ChainConfig{StartSlot: 500, Count: 4},
		2, 7,
		[]byte("rlp-encoded-transaction-bytes"),
		[]byte("rlp-encoded-receipt-bytes"),
		0x42,
	)
	if err != nil {
		t.Fatalf("BuildTransactionScenario: %v", err)
	}

	c, err := client.NewFromProofUpdate(ts.ProofUpdate())
	if err != nil {
		t.Fatalf("NewFromProofUpdate: %v", err)
	}

	if err := client.VerifyTransactionProof(c, ts.TransactionProof); err != nil {
		t.Fatalf("VerifyTransactionProof: %v", err)
	}
	if err := client.VerifyPayload(ts.TransactionProof, ts.TransactionPayload); err != nil {
		t.Fatalf("VerifyPayload: %v", err)
	}
}

func TestBuildTransactionScenario_RejectsTamperedTransaction(t *testing.T) {
	ts, err := fixtures.BuildTransactionScenario(
		fixtures.ChainConfig{StartSlot: 500, Count: 4},
		2, 7,
		[]byte("rlp-encoded-transaction-bytes"),
		[]byte("rlp-encoded-receipt-bytes"),
		0x42,
	)
	if err != nil {
		t.Fatalf("BuildTransactionScenario: %v", err)
	}

	ts.TransactionPayload.Transaction = []byte("tampered-transaction-bytes")
	err = client.VerifyPayload(ts.TransactionProof, ts.TransactionPayload)
	if !errors.Is(err, client.ErrTransactionSszProof) {
		t.Fatalf("got %v, want ErrTransactionSszProof", err)
	}
}

func TestBuildTransactionScenario_RejectsTamperedReceipt(t *testing.T) {
	ts, err := fixtures.BuildTransactionScenario(
		fixtures.ChainConfig{StartSlot: 500, Count: 4},
		2, 7,
		[]byte("rlp-encoded-transaction-bytes"),
		[]byte("rlp-encoded-receipt-bytes"),
		0x42,
	)
	if err != nil {
		t.Fatalf("BuildTransactionScenario: %v", err)
	}

	ts.TransactionPayload.Receipt = []byte("tampered-receipt-bytes")
	err = client.VerifyPayload(ts.TransactionProof, ts.TransactionPayload)
	if !errors.Is(err, client.ErrReceiptMptProof) {
		t.Fatalf("got %v, want ErrReceiptMptProof", err)
	}
}
