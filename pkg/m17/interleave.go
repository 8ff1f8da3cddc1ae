package m17

// Quadratic permutation polynomial interleaver over 368 bits, per
// spec.md §4.7: pi(i) = (45*i + 92*i^2) mod 368. This permutation is its
// own inverse (the spec's involution property), so InterleaveApply and
// InterleaveInvert are the same operation; both are exposed so call
// sites can state their intent.
//
// Grounded on the bit-reordering shape of pkg/ysf/convolution.go's
// interleave tables (a fixed permutation applied via a lookup array
// built once at init), generalized from YSF's small fixed table to the
// QPP formula M17 specifies.

var qppTable [InterleaverSize]int

func init() {
	for i := 0; i < InterleaverSize; i++ {
		qppTable[i] = (45*i + 92*i*i) % InterleaverSize
	}
}

// InterleaveApply permutes exactly InterleaverSize bits: out[pi(i)] = in[i].
func InterleaveApply(in []Bit) ([]Bit, error) {
	if len(in) != InterleaverSize {
		return nil, ErrInvalidInput
	}
	out := make([]Bit, InterleaverSize)
	for i, v := range in {
		out[qppTable[i]] = v
	}
	return out, nil
}

// InterleaveInvert reverses InterleaveApply. Because the QPP permutation
// is an involution, this performs the identical index mapping.
func InterleaveInvert(in []Bit) ([]Bit, error) {
	if len(in) != InterleaverSize {
		return nil, ErrInvalidInput
	}
	out := make([]Bit, InterleaverSize)
	for i, v := range in {
		out[qppTable[i]] = v
	}
	return out, nil
}

// InterleaveApplySoft is InterleaveApply for soft bits, used when
// de-interleaving a received, still-soft frame before Viterbi decoding.
func InterleaveApplySoft(in []SoftBit) ([]SoftBit, error) {
	if len(in) != InterleaverSize {
		return nil, ErrInvalidInput
	}
	out := make([]SoftBit, InterleaverSize)
	for i, v := range in {
		out[qppTable[i]] = v
	}
	return out, nil
}
