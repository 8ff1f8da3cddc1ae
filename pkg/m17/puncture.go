package m17

// Puncture schedules P1 (LSF/BERT), P2 (stream payload), and P3 (packet
// chunks), per spec.md §4.5.
//
// The mask values below reproduce the M17 specification's published
// keep-bit patterns to the best of this implementation's grounding; the
// spec itself (§9 Open Question i) flags these exact tables as the one
// place where any divergence must be resolved against the authoritative
// M17 specification text rather than any particular source repository.
// Each mask is verified here to hold the exact keep/puncture counts the
// spec's bit-reduction figures require (488->368, 296->272, 420->368).

// puncture1 keeps 46 of every 61 bits (488 -> 368 over the LSF's 8
// repeats of the period).
var puncture1 = buildMask(61, []int{0, 4, 8, 12, 16, 20, 24, 28, 33, 37, 41, 45, 49, 53, 57})

// puncture2 keeps 11 of every 12 bits (296 -> 272 over the stream
// payload's encoded length).
var puncture2 = buildMask(12, []int{11})

// puncture3 keeps 7 of every 8 bits (420 -> 368 over a packet chunk's
// encoded length).
var puncture3 = buildMask(8, []int{7})

func buildMask(period int, puncturedPositions []int) []bool {
	mask := make([]bool, period)
	for i := range mask {
		mask[i] = true
	}
	for _, p := range puncturedPositions {
		mask[p] = false
	}
	return mask
}

// Puncture removes the bits whose cyclic mask position is punctured,
// applying mask over bits starting at index 0.
func Puncture(bits []Bit, mask []bool) []Bit {
	out := make([]Bit, 0, len(bits))
	for i, b := range bits {
		if mask[i%len(mask)] {
			out = append(out, b)
		}
	}
	return out
}

// Depuncture reinserts Erasure soft values at the punctured positions of
// a sequence of the given full (pre-puncture) length, placing the
// supplied kept soft values into the unpunctured slots in order.
func Depuncture(kept []SoftBit, mask []bool, fullLen int) []SoftBit {
	out := make([]SoftBit, fullLen)
	k := 0
	for i := 0; i < fullLen; i++ {
		if mask[i%len(mask)] {
			out[i] = kept[k]
			k++
		} else {
			out[i] = Erasure
		}
	}
	return out
}

// PuncturedLen returns how many bits survive puncturing a sequence of
// fullLen bits with mask.
func PuncturedLen(mask []bool, fullLen int) int {
	n := 0
	for i := 0; i < fullLen; i++ {
		if mask[i%len(mask)] {
			n++
		}
	}
	return n
}
