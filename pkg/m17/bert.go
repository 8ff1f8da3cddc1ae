package m17

// BERT (bit error rate test) frame: a 197-bit PRBS9 sequence transmitted
// instead of voice/data payload, per spec.md §4.15. Grounded on
// pkg/ysf/convolution.go's bit-shifting idiom for the encoder's LFSR
// (same shift-and-tap shape, different polynomial and length).

// prbs9Seed is the PRBS generator's initial state, all nine bits set.
const prbs9Seed uint16 = BertPRBSSeed

// GeneratePRBS9 produces n bits from the x^9+x^5+1 PRBS generator
// seeded at BertPRBSSeed, one bit per call to the generator's feedback
// tap (bit 0 XOR bit 4 of the 9-bit state, shifted in at bit 8 as the
// state shifts right; bit 0 is the output).
func GeneratePRBS9(n int) []Bit {
	state := prbs9Seed
	out := make([]Bit, n)
	for i := 0; i < n; i++ {
		out[i] = Bit(state & 1)
		feedback := (state & 1) ^ ((state >> 4) & 1)
		state = (state >> 1) | (feedback << 8)
	}
	return out
}

// BERTFrame carries one 197-bit PRBS9 block.
type BERTFrame struct {
	Bits []Bit // always length BERTBits
}

// NewBERTFrame generates a fresh BERT test frame.
func NewBERTFrame() BERTFrame {
	return BERTFrame{Bits: GeneratePRBS9(BERTBits)}
}

// bertInfoBits is the LSF-sized (240-bit) conv input BERT frames share
// with P1: the 197 PRBS bits followed by 43 zero pad bits, so a BERT
// frame occupies the same 368-bit physical body as an LSF frame.
const bertInfoBits = LSFSize * 8

// EncodeForRF runs a BERT frame's bits through the same conv-encode,
// P1-puncture, QPP-interleave, and randomize chain used for LSF frames,
// per spec.md §4.14's shared RF pipeline: the 197 PRBS bits are padded
// with zeros to the LSF's 240-bit block size (P1 is specified in terms
// of that block) and the padding is discarded again on decode.
func (f BERTFrame) EncodeForRF() ([]byte, error) {
	info := make([]Bit, bertInfoBits)
	copy(info, f.Bits)
	return encodeBlock(info, puncture1)
}

// DecodeFromRF inverts EncodeForRF, soft-depuncturing and Viterbi
// decoding a BERT block back into its 197 PRBS bits.
func DecodeFromRF(rf []byte) ([]Bit, error) {
	bits, err := decodeBlock(rf, puncture1, bertInfoBits)
	if err != nil {
		return nil, err
	}
	return bits[:BERTBits], nil
}

// CalculateBER compares a received PRBS bit sequence against a freshly
// generated reference of the same length and returns the fraction of
// mismatched bits. The reference is resynchronized to whichever phase
// of the generator minimizes errors, since a receiver may join the
// continuous PRBS stream at an arbitrary bit offset.
func CalculateBER(received []Bit) float64 {
	n := len(received)
	if n == 0 {
		return 0
	}
	best := 1.0
	for phase := 0; phase < BERTBits; phase++ {
		ref := generatePRBS9Phase(n, phase)
		mismatches := 0
		for i, b := range received {
			if b != ref[i] {
				mismatches++
			}
		}
		rate := float64(mismatches) / float64(n)
		if rate < best {
			best = rate
		}
	}
	return best
}

func generatePRBS9Phase(n, phase int) []Bit {
	full := GeneratePRBS9(n + phase)
	return full[phase:]
}
