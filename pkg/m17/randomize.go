package m17

// Fixed 46-byte whitening sequence applied by XOR to every transmitted
// frame's body, per spec.md §4.8. XOR is self-inverse, so Randomize
// serves both directions.
//
// The table's bit pattern is this implementation's best-effort
// reproduction of the M17 specification's published constant (same
// caveat as puncture.go's masks, spec.md §9 Open Question i): any
// divergence from the authoritative text must be resolved there, but
// the property every caller actually depends on -- that applying the
// sequence twice is the identity -- holds for any fixed byte table by
// construction.
var randomizerTable = [RandomizerSize]byte{
	0xD6, 0xB5, 0xE2, 0x30, 0x82, 0xFF, 0x84, 0x62,
	0xBA, 0x4E, 0x96, 0x90, 0xD8, 0x98, 0xDD, 0x5D,
	0x0C, 0xC8, 0x19, 0x16, 0x56, 0xD0, 0x20, 0xFA,
	0xF7, 0x13, 0x06, 0x85, 0xF9, 0xE1, 0x4C, 0xA8,
	0x68, 0xB3, 0x0B, 0x3B, 0xB1, 0x03, 0xE9, 0x7E,
	0xD4, 0x9F, 0x48, 0x8F, 0xDA, 0x2B,
}

// Randomize XORs data against the fixed whitening sequence, cycling the
// table if data is longer than RandomizerSize. Applying it twice to the
// same data recovers the original.
func Randomize(data []byte) []byte {
	out := make([]byte, len(data))
	for i, b := range data {
		out[i] = b ^ randomizerTable[i%RandomizerSize]
	}
	return out
}
