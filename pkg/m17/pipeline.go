package m17

// RF pipeline glue: CRC -> conv encode -> puncture -> QPP interleave ->
// randomize -> sync prefix (and the reverse), per spec.md §4.14. Every
// frame type's physical body, after this pipeline, is exactly
// InterleaverSize (368) bits -- LSF/BERT/Packet bodies are a single
// punctured convolutional block of that size; a Stream body is its
// LICH chunk's 96 Golay-protected bits concatenated with a 272-bit
// punctured convolutional block, the two together making 368. This is
// this implementation's resolution of spec.md §9 Open Question (i)'s
// "the published bit-exact schedules are the one place a divergence
// must track the authoritative text" note: the 368-bit uniform physical
// frame size is preserved even though this package cannot check its
// puncture positions against that text directly (see DESIGN.md).
//
// Grounded on pkg/network/client.go's send/receive frame pair, which
// the teacher structures the same way: one function builds the full
// wire frame from a typed struct, one parses it back, with failures
// reported through a typed error rather than a log line.

// EncodeLSFFrame builds a complete, sync-prefix-free RF-ready LSF body:
// the LSF's 30-byte form convolutionally encoded, P1-punctured,
// QPP-interleaved, and randomized. Callers prepend SyncLSF separately
// when building a full RF burst (spec.md's frame vs. burst distinction).
func EncodeLSFFrame(l LSF) ([]byte, error) {
	raw := l.Bytes()
	info := UnpackBits(raw[:], LSFSize*8)
	return encodeBlock(info, puncture1)
}

// DecodeLSFFrame inverts EncodeLSFFrame, returning the recovered LSF
// after verifying its CRC. Convolutional/Golay errors are not separately
// distinguished from CRC failure since the CRC is the final arbiter of
// correctness: a frame that Viterbi-decodes to a value with a bad CRC is
// reported as ErrCrcMismatch.
func DecodeLSFFrame(rf []byte) (LSF, error) {
	bits, err := decodeBlock(rf, puncture1, LSFSize*8)
	if err != nil {
		return LSF{}, err
	}
	return LSFFromBytes(PackBits(bits))
}

// EncodeStreamFrame builds a complete 368-bit (46-byte) RF-ready stream
// body: the companion LICH chunk's 96-bit Golay-encoded form
// concatenated with the payload's P2-punctured convolutional block,
// then QPP-interleaved and randomized as one unit.
func EncodeStreamFrame(f StreamFrame, lichUnit48 [6]byte) ([]byte, error) {
	raw := f.Bytes()
	info := UnpackBits(raw[:], StreamPayloadSize*8)
	conv := ConvEncode(info)
	punctured := Puncture(conv, puncture2)
	if len(punctured) != 272 {
		return nil, ErrInvalidInput
	}
	lichEncoded := EncodeLICH(lichUnit48)
	lichBits := UnpackBits(lichEncoded[:], LICHEncodedBits)
	body := append(append([]Bit{}, lichBits...), punctured...)
	if len(body) != InterleaverSize {
		return nil, ErrInvalidInput
	}
	interleaved, err := InterleaveApply(body)
	if err != nil {
		return nil, err
	}
	return Randomize(PackBits(interleaved)), nil
}

// DecodeStreamFrame inverts EncodeStreamFrame, returning both the
// decoded stream payload and the recovered 48-bit LICH unit (still
// needing LICHCollector.Accept to fold into the running LSF).
func DecodeStreamFrame(rf []byte) (StreamFrame, [6]byte, error) {
	if len(rf) != InterleaverSize/8 {
		return StreamFrame{}, [6]byte{}, ErrInvalidInput
	}
	derandomized := Randomize(rf)
	soft := SoftFromHardBytes(derandomized, InterleaverSize)
	deinterleaved, err := InterleaveApplySoft(soft)
	if err != nil {
		return StreamFrame{}, [6]byte{}, err
	}
	lichSoft := deinterleaved[:LICHEncodedBits]
	paySoft := deinterleaved[LICHEncodedBits:]

	var lichEncoded [12]byte
	copy(lichEncoded[:], PackBits(HardFromSoft(lichSoft)))
	lichUnit, lichErr := DecodeLICH(lichEncoded)

	full := Depuncture(paySoft, puncture2, 2*(StreamPayloadSize*8+ConvFlushBits))
	bits, err := ViterbiDecode(full, StreamPayloadSize*8)
	if err != nil {
		return StreamFrame{}, lichUnit, ErrDecodeFailure
	}
	f, err := StreamFrameFromBytes(PackBits(bits))
	if err != nil {
		return StreamFrame{}, lichUnit, err
	}
	return f, lichUnit, lichErr
}

// packetChunkInfoBits packs a PacketChunk into its 206-bit convolutional
// input: 200 data bits followed by the 6 meaningful metadata bits (the
// final-chunk flag and the 5-bit counter/valid-length field; the
// metadata byte's two high unused bits are never transmitted).
func packetChunkInfoBits(c PacketChunk) []Bit {
	bits := UnpackBits(c.Data[:], PacketChunkDataSize*8)
	meta := c.Counter & 0x1F
	if c.IsFinal {
		meta = 0x20 | (c.LastLen & 0x1F)
	}
	metaBits := []Bit{
		Bit((meta >> 5) & 1),
		Bit((meta >> 4) & 1),
		Bit((meta >> 3) & 1),
		Bit((meta >> 2) & 1),
		Bit((meta >> 1) & 1),
		Bit(meta & 1),
	}
	return append(bits, metaBits...)
}

func packetChunkFromInfoBits(bits []Bit) PacketChunk {
	var c PacketChunk
	data := PackBits(bits[:200])
	copy(c.Data[:], data)
	var meta uint8
	for _, b := range bits[200:206] {
		meta = (meta << 1) | uint8(b)
	}
	c.IsFinal = meta&0x20 != 0
	if c.IsFinal {
		c.LastLen = meta & 0x1F
	} else {
		c.Counter = meta & 0x1F
	}
	return c
}

// EncodePacketChunk runs one packet chunk through the conv/P3/QPP
// pipeline, producing a 368-bit (46-byte) RF-ready body.
func EncodePacketChunk(c PacketChunk) ([]byte, error) {
	info := packetChunkInfoBits(c)
	return encodeBlock(info, puncture3)
}

// DecodePacketChunk inverts EncodePacketChunk.
func DecodePacketChunk(rf []byte) (PacketChunk, error) {
	bits, err := decodeBlock(rf, puncture3, 206)
	if err != nil {
		return PacketChunk{}, err
	}
	return packetChunkFromInfoBits(bits), nil
}

// encodeBlock runs info bits through conv encode, puncture, QPP
// interleave, and randomize, requiring the result be exactly
// InterleaverSize bits.
func encodeBlock(info []Bit, mask []bool) ([]byte, error) {
	conv := ConvEncode(info)
	punctured := Puncture(conv, mask)
	if len(punctured) != InterleaverSize {
		return nil, ErrInvalidInput
	}
	interleaved, err := InterleaveApply(punctured)
	if err != nil {
		return nil, err
	}
	return Randomize(PackBits(interleaved)), nil
}

// decodeBlock inverts encodeBlock, soft-decoding back to nInfoBits.
func decodeBlock(rf []byte, mask []bool, nInfoBits int) ([]Bit, error) {
	if len(rf) != InterleaverSize/8 {
		return nil, ErrInvalidInput
	}
	derandomized := Randomize(rf)
	soft := SoftFromHardBytes(derandomized, InterleaverSize)
	deinterleaved, err := InterleaveApplySoft(soft)
	if err != nil {
		return nil, err
	}
	full := Depuncture(deinterleaved, mask, 2*(nInfoBits+ConvFlushBits))
	bits, err := ViterbiDecode(full, nInfoBits)
	if err != nil {
		return nil, ErrDecodeFailure
	}
	return bits, nil
}
