package fixtures_test

import (
	"testing"

	"github.com/geanlabs/ethlc/fixtures"
	"github.com/geanlabs/ethlc/mmr"
)

func TestBuildChain_ChainsParentRoots(t *testing.T) {
	headers, err := fixtures.BuildChain(fixtures.ChainConfig{StartSlot: 10, Count: 3})
	if err != nil {
		t.Fatalf("BuildChain: %v", err)
	}
	if len(headers) != 3 {
		t.Fatalf("got %d headers, want 3", len(headers))
	}
	for i, h := range headers {
		if h.Slot != 10+uint64(i) {
			t.Fatalf("header %d has slot %d, want %d", i, h.Slot, 10+uint64(i))
		}
		if h.IsEmpty() {
			t.Fatalf("header %d unexpectedly empty", i)
		}
		if i > 0 {
			prev, err := mmr.CalcCache(headers[i-1])
			if err != nil {
				t.Fatalf("CalcCache: %v", err)
			}
			if h.ParentRoot != prev.Root {
				t.Fatalf("header %d parent root does not match header %d's root", i, i-1)
			}
		}
	}
}

func TestBuildChain_EmptySlotsPreserveSlotAndParentRoot(t *testing.T) {
	headers, err := fixtures.BuildChain(fixtures.ChainConfig{
		StartSlot:  10,
		Count:      3,
		EmptySlots: map[uint64]bool{11: true},
	})
	if err != nil {
		t.Fatalf("BuildChain: %v", err)
	}
	if !headers[1].IsEmpty() {
		t.Fatal("expected slot 11 to be empty")
	}
	if headers[1].Slot != 11 {
		t.Fatalf("got slot %d, want 11", headers[1].Slot)
	}
	if headers[1].ParentRoot.IsZero() {
		t.Fatal("expected the empty header's parent root to be non-zero (chained from slot 10)")
	}
}
