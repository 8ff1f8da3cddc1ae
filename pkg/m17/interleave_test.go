package m17

import "testing"

func TestQPPIsPermutation(t *testing.T) {
	seen := make(map[int]bool, InterleaverSize)
	for i := 0; i < InterleaverSize; i++ {
		p := qppTable[i]
		if p < 0 || p >= InterleaverSize {
			t.Fatalf("qppTable[%d] = %d out of range", i, p)
		}
		if seen[p] {
			t.Fatalf("qppTable is not a permutation: index %d collides", p)
		}
		seen[p] = true
	}
}

func TestQPPIsInvolution(t *testing.T) {
	for i := 0; i < InterleaverSize; i++ {
		if qppTable[qppTable[i]] != i {
			t.Fatalf("QPP is not an involution at index %d", i)
		}
	}
}

func TestInterleaveApplyInvertRoundTrip(t *testing.T) {
	in := make([]Bit, InterleaverSize)
	for i := range in {
		in[i] = Bit(i % 2)
	}
	out, err := InterleaveApply(in)
	if err != nil {
		t.Fatalf("InterleaveApply: %v", err)
	}
	back, err := InterleaveInvert(out)
	if err != nil {
		t.Fatalf("InterleaveInvert: %v", err)
	}
	for i := range in {
		if back[i] != in[i] {
			t.Errorf("bit %d: got %d, want %d", i, back[i], in[i])
		}
	}
}

func TestInterleaveWrongLength(t *testing.T) {
	if _, err := InterleaveApply(make([]Bit, 10)); err == nil {
		t.Error("expected ErrInvalidInput for short input")
	}
}
