package codec

import (
	"reflect"
	"testing"

	"github.com/geanlabs/ethlc/types"
)

func h32(b byte) types.Hash32 {
	var h types.Hash32
	h[0] = b
	return h
}

func sampleHeader(slot uint64) types.Header {
	return types.Header{
		Slot:          slot,
		ProposerIndex: slot + 1,
		ParentRoot:    h32(byte(slot)),
		StateRoot:     h32(byte(slot + 1)),
		BodyRoot:      h32(byte(slot + 2)),
	}
}

func TestHeaderRoundTrip(t *testing.T) {
	want := sampleHeader(42)
	got, err := UnmarshalHeader(MarshalHeader(want))
	if err != nil {
		t.Fatalf("UnmarshalHeader error: %v", err)
	}
	if got != want {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, want)
	}
}

func TestClientRoundTrip(t *testing.T) {
	want := types.Client{
		MinimalSlot:        10,
		MaximalSlot:        20,
		TipValidHeaderRoot: h32(1),
		HeadersMmrRoot:     h32(2),
	}
	got, err := UnmarshalClient(MarshalClient(want))
	if err != nil {
		t.Fatalf("UnmarshalClient error: %v", err)
	}
	if got != want {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, want)
	}
}

func TestMmrProofRoundTrip(t *testing.T) {
	want := types.MmrProof{
		MmrSize: 15,
		Items:   []types.Hash32{h32(1), h32(2), h32(3)},
	}
	got, err := UnmarshalMmrProof(MarshalMmrProof(want))
	if err != nil {
		t.Fatalf("UnmarshalMmrProof error: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, want)
	}
}

func TestMmrProofRoundTrip_EmptyItems(t *testing.T) {
	want := types.MmrProof{MmrSize: 1}
	got, err := UnmarshalMmrProof(MarshalMmrProof(want))
	if err != nil {
		t.Fatalf("UnmarshalMmrProof error: %v", err)
	}
	if got.MmrSize != want.MmrSize || len(got.Items) != 0 {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, want)
	}
}

func TestProofUpdateRoundTrip(t *testing.T) {
	want := types.ProofUpdate{
		NewHeadersMmrRoot: h32(9),
		NewHeadersMmrProof: types.MmrProof{
			MmrSize: 7,
			Items:   []types.Hash32{h32(1), h32(2)},
		},
		Updates: []types.FinalityUpdate{
			{FinalizedHeader: sampleHeader(1)},
			{FinalizedHeader: sampleHeader(2)},
			{FinalizedHeader: sampleHeader(3)},
		},
	}
	got, err := UnmarshalProofUpdate(MarshalProofUpdate(want))
	if err != nil {
		t.Fatalf("UnmarshalProofUpdate error: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, want)
	}
}

func TestTransactionPayloadRoundTrip(t *testing.T) {
	want := types.TransactionPayload{
		Transaction: []byte{1, 2, 3, 4, 5},
		Receipt:     []byte{6, 7, 8},
	}
	got, err := UnmarshalTransactionPayload(MarshalTransactionPayload(want))
	if err != nil {
		t.Fatalf("UnmarshalTransactionPayload error: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, want)
	}
}

func TestTransactionPayloadRoundTrip_EmptyFields(t *testing.T) {
	want := types.TransactionPayload{}
	got, err := UnmarshalTransactionPayload(MarshalTransactionPayload(want))
	if err != nil {
		t.Fatalf("UnmarshalTransactionPayload error: %v", err)
	}
	if len(got.Transaction) != 0 || len(got.Receipt) != 0 {
		t.Fatalf("expected empty fields, got %+v", got)
	}
}

func sampleTransactionProof() types.TransactionProof {
	return types.TransactionProof{
		Header:               sampleHeader(100),
		TransactionIndex:     3,
		ReceiptsRoot:         h32(77),
		HeaderMmrProof:       []types.Hash32{h32(1), h32(2)},
		TransactionSszProof:  []types.Hash32{h32(3)},
		ReceiptMptProof:      [][]byte{{0xaa}, {0xbb, 0xcc}, nil},
		ReceiptsRootSszProof: []types.Hash32{h32(4), h32(5), h32(6)},
	}
}

func TestTransactionProofRoundTrip(t *testing.T) {
	want := sampleTransactionProof()
	got, err := UnmarshalTransactionProof(MarshalTransactionProof(want))
	if err != nil {
		t.Fatalf("UnmarshalTransactionProof error: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch:\n got  %+v\n want %+v", got, want)
	}
}

func TestTransactionProofReader_MatchesUnmarshal(t *testing.T) {
	want := sampleTransactionProof()
	buf := MarshalTransactionProof(want)

	r, err := NewTransactionProofReader(buf)
	if err != nil {
		t.Fatalf("NewTransactionProofReader error: %v", err)
	}
	got, err := r.ToValue()
	if err != nil {
		t.Fatalf("ToValue error: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("reader mismatch:\n got  %+v\n want %+v", got, want)
	}
}

func TestProofUpdateReader_MatchesUnmarshal(t *testing.T) {
	want := types.ProofUpdate{
		NewHeadersMmrRoot:  h32(9),
		NewHeadersMmrProof: types.MmrProof{MmrSize: 7, Items: []types.Hash32{h32(1)}},
		Updates: []types.FinalityUpdate{
			{FinalizedHeader: sampleHeader(1)},
			{FinalizedHeader: sampleHeader(2)},
		},
	}
	buf := MarshalProofUpdate(want)

	r, err := NewProofUpdateReader(buf)
	if err != nil {
		t.Fatalf("NewProofUpdateReader error: %v", err)
	}
	if r.NewHeadersMmrRoot() != want.NewHeadersMmrRoot {
		t.Fatalf("root mismatch")
	}
	if r.UpdatesLen() != len(want.Updates) {
		t.Fatalf("updates len = %d, want %d", r.UpdatesLen(), len(want.Updates))
	}
	for i, u := range want.Updates {
		got, err := r.Update(i)
		if err != nil {
			t.Fatalf("Update(%d) error: %v", i, err)
		}
		if got != u {
			t.Fatalf("Update(%d) = %+v, want %+v", i, got, u)
		}
	}
}

func TestUnmarshalHeader_RejectsTruncated(t *testing.T) {
	if _, err := UnmarshalHeader(MarshalHeader(sampleHeader(1))[:headerSize-1]); err == nil {
		t.Fatal("expected truncated header to error")
	}
}

func TestUnmarshalProofUpdate_RejectsTamperedOffset(t *testing.T) {
	buf := MarshalProofUpdate(types.ProofUpdate{
		NewHeadersMmrProof: types.MmrProof{MmrSize: 1},
		Updates:            []types.FinalityUpdate{{FinalizedHeader: sampleHeader(1)}},
	})
	putOffset(buf[32:36], 999)
	if _, err := UnmarshalProofUpdate(buf); err == nil {
		t.Fatal("expected tampered offset to be rejected")
	}
}
