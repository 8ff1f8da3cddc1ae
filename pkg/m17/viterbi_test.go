package m17

import (
	"math/rand"
	"testing"
)

func TestViterbiDecodeCleanRoundTrip(t *testing.T) {
	tests := [][]Bit{
		{0, 0, 0, 0, 0, 0, 0, 0},
		{1, 1, 1, 1, 1, 1, 1, 1},
		{1, 0, 1, 1, 0, 0, 1, 0, 1, 1, 0, 1, 0, 0, 1, 1},
	}
	for _, info := range tests {
		encoded := ConvEncode(info)
		soft := make([]SoftBit, len(encoded))
		for i, b := range encoded {
			soft[i] = SoftFromBit(b)
		}
		decoded, err := ViterbiDecode(soft, len(info))
		if err != nil {
			t.Fatalf("ViterbiDecode: %v", err)
		}
		for i := range info {
			if decoded[i] != info[i] {
				t.Errorf("bit %d: got %d, want %d (info=%v)", i, decoded[i], info[i], info)
				break
			}
		}
	}
}

func TestViterbiDecodeToleratesSparseErrors(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	info := make([]Bit, 144)
	for i := range info {
		info[i] = Bit(rng.Intn(2))
	}
	encoded := ConvEncode(info)
	soft := make([]SoftBit, len(encoded))
	for i, b := range encoded {
		soft[i] = SoftFromBit(b)
	}
	// Flip a handful of soft bits to their opposite rail; the code's
	// distance should still let Viterbi recover the original sequence.
	for _, i := range []int{3, 40, 77, 150} {
		if soft[i] == 0xFF {
			soft[i] = 0x00
		} else {
			soft[i] = 0xFF
		}
	}
	decoded, err := ViterbiDecode(soft, len(info))
	if err != nil {
		t.Fatalf("ViterbiDecode: %v", err)
	}
	mismatches := 0
	for i := range info {
		if decoded[i] != info[i] {
			mismatches++
		}
	}
	if mismatches != 0 {
		t.Errorf("mismatches after sparse bit errors: %d/%d, want 0", mismatches, len(info))
	}
}

func TestViterbiDecodeWrongLengthInput(t *testing.T) {
	if _, err := ViterbiDecode(make([]SoftBit, 5), 10); err == nil {
		t.Error("expected ErrInvalidInput for mismatched soft-bit length")
	}
}
