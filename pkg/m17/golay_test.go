package m17

import "testing"

func TestGolay24RoundTrip(t *testing.T) {
	tests := []uint16{
		0x000, 0x001, 0x002, 0x010, 0x020, 0x040, 0x080, 0x100, 0x200, 0x400, 0x800,
		0x123, 0x456, 0x789, 0xABC, 0xDEF, 0xFFF,
	}
	for _, data := range tests {
		encoded := Encode24(data)
		decoded, err := Decode24(encoded)
		if err != nil {
			t.Fatalf("Decode24(%03X): %v", data, err)
		}
		if decoded != data {
			t.Errorf("round trip failed for %03X: encoded=%06X, decoded=%03X", data, encoded, decoded)
		}
	}
}

func TestGolay24ErrorCorrection(t *testing.T) {
	data := uint16(0x123)
	encoded := Encode24(data)

	for _, pattern := range [][]uint{{10}, {10, 15}, {5, 10, 15}} {
		corrupted := encoded
		for _, bit := range pattern {
			corrupted ^= 1 << bit
		}
		decoded, err := Decode24(corrupted)
		if err != nil {
			t.Fatalf("Decode24 with %d-bit error: %v", len(pattern), err)
		}
		if decoded != data {
			t.Errorf("%d-bit error correction failed: got %03X, want %03X", len(pattern), decoded, data)
		}
	}
}

func TestGolay24FourBitErrorNotSilentlyWrong(t *testing.T) {
	// Four-bit errors exceed the code's guaranteed correction range;
	// decoding must either fail or (rarely, by chance) still land on the
	// correct word, never silently on some OTHER valid-looking word that
	// differs from both the transmitted data and an honest failure.
	data := uint16(0x555)
	encoded := Encode24(data)
	corrupted := encoded ^ (1 << 2) ^ (1 << 7) ^ (1 << 12) ^ (1 << 18)
	decoded, err := Decode24(corrupted)
	if err == nil && decoded == data {
		t.Skip("decoder happened to still recover the original word for this pattern")
	}
	if err == nil && decoded != data {
		t.Errorf("four-bit error silently decoded to %03X, want %03X or an error", decoded, data)
	}
}

func TestSoftDecode24MatchesHardOnCleanInput(t *testing.T) {
	data := uint16(0x2AA)
	encoded := Encode24(data)
	codeBits := make([]Bit, 24)
	for i := 0; i < 24; i++ {
		codeBits[i] = Bit((encoded >> uint(23-i)) & 1)
	}
	soft := make([]SoftBit, 24)
	for i, b := range codeBits {
		soft[i] = SoftFromBit(b)
	}
	decoded, err := SoftDecode24(soft)
	if err != nil {
		t.Fatalf("SoftDecode24: %v", err)
	}
	if decoded != data {
		t.Errorf("got %03X, want %03X", decoded, data)
	}
}

func TestEncodeDecodeLICHRoundTrip(t *testing.T) {
	unit := [6]byte{0x12, 0x34, 0x56, 0x78, 0x9A, 0xBC}
	encoded := EncodeLICH(unit)
	decoded, err := DecodeLICH(encoded)
	if err != nil {
		t.Fatalf("DecodeLICH: %v", err)
	}
	if decoded != unit {
		t.Errorf("got %X, want %X", decoded, unit)
	}
}
