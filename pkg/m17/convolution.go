package m17

// K=5, rate-1/2 convolutional encoder, generators G1=0x19, G2=0x17.
//
// Grounded on pkg/ysf/convolution.go's Encode: the same shift-register
// shape and, notably, the SAME tap positions (G1 = d⊕d3⊕d4,
// G2 = d⊕d1⊕d2⊕d4 — verified against the 0x19/0x17 generator constants
// bit-by-bit) since YSF and M17 share this convolutional code lineage.
// ConvEncode adds the spec's mandatory 4-bit zero flush the teacher's
// caller-supplied-padding version left implicit.

// ConvEncode convolutionally encodes nInfoBits information bits (MSB
// first in info) plus 4 trailing zero flush bits, producing
// 2*(nInfoBits+4) output bits (MSB first, G1 bit then G2 bit per step).
func ConvEncode(info []Bit) []Bit {
	n := len(info)
	out := make([]Bit, 2*(n+ConvFlushBits))
	var d1, d2, d3, d4 Bit
	k := 0
	step := func(d Bit) {
		g1 := d ^ d3 ^ d4
		g2 := d ^ d1 ^ d2 ^ d4
		d4 = d3
		d3 = d2
		d2 = d1
		d1 = d
		out[k] = g1
		out[k+1] = g2
		k += 2
	}
	for _, d := range info {
		step(d)
	}
	for i := 0; i < ConvFlushBits; i++ {
		step(0)
	}
	return out
}
