package m17

import "encoding/binary"

// Stream frame body: FN[2] PAYLOAD[16], carried alongside a LICH chunk
// that incrementally rebuilds the governing LSF, per spec.md §4.2/§4.9.
//
// Grounded on pkg/ysf/ysf_frame.go's per-frame-type struct plus the
// teacher's fragment-collector pattern in pkg/peer/subscription.go
// (accumulate-until-complete state keyed by a running counter),
// generalized here to LICH's 6-slot, best-metric-wins collection rule.

// StreamFrame is one frame of a voice/data stream superframe.
type StreamFrame struct {
	FrameNumber uint16 // bit 15 is the EOT flag; bits 14..0 are the counter
	Payload     [16]byte
}

// EOT reports whether this frame ends the transmission.
func (f StreamFrame) EOT() bool { return f.FrameNumber&0x8000 != 0 }

// Counter returns the 15-bit frame counter, ignoring the EOT bit.
func (f StreamFrame) Counter() uint16 { return f.FrameNumber & 0x7FFF }

// Bytes serializes f to its 18-byte wire form.
func (f StreamFrame) Bytes() [StreamPayloadSize]byte {
	var b [StreamPayloadSize]byte
	binary.BigEndian.PutUint16(b[0:2], f.FrameNumber)
	copy(b[2:18], f.Payload[:])
	return b
}

// StreamFrameFromBytes parses an 18-byte stream frame body.
func StreamFrameFromBytes(b []byte) (StreamFrame, error) {
	if len(b) != StreamPayloadSize {
		return StreamFrame{}, ErrInvalidInput
	}
	f := StreamFrame{FrameNumber: binary.BigEndian.Uint16(b[0:2])}
	copy(f.Payload[:], b[2:18])
	return f, nil
}

// BuildLICHUnit packs a 0..5 slot index and its 40-bit (5-byte) LSF
// chunk into the 48-bit unit EncodeLICH expects: a 3-bit counter, the
// 40 chunk bits, and 5 reserved zero bits filling the unit out to
// LICHUnitBits (4 evenly-sized 12-bit Golay words).
func BuildLICHUnit(slotIndex int, chunk [5]byte) [6]byte {
	var unit [6]byte
	bits := make([]Bit, 0, LICHUnitBits)
	bits = append(bits,
		Bit((slotIndex>>2)&1), Bit((slotIndex>>1)&1), Bit(slotIndex&1))
	bits = append(bits, UnpackBits(chunk[:], LICHChunkBits)...)
	for len(bits) < LICHUnitBits {
		bits = append(bits, 0)
	}
	copy(unit[:], PackBits(bits))
	return unit
}

// SplitLICHUnit inverts BuildLICHUnit, recovering the slot index and
// 5-byte chunk from a decoded 48-bit LICH unit.
func SplitLICHUnit(unit [6]byte) (slotIndex int, chunk [5]byte) {
	bits := UnpackBits(unit[:], LICHUnitBits)
	slotIndex = int(bits[0])<<2 | int(bits[1])<<1 | int(bits[2])
	copy(chunk[:], PackBits(bits[3:3+LICHChunkBits]))
	return slotIndex, chunk
}

// lichSlot is one of the 6 accumulated LICH chunks for a given stream.
type lichSlot struct {
	filled bool
	data   [5]byte
	metric uint32 // lower is better; Golay soft-decode cost, 0 for hard
}

// LICHCollector accumulates the 6 rotating LICH chunks of a stream's
// governing LSF, keeping the best-metric chunk seen so far per slot so a
// single corrupted repeat does not poison an otherwise complete LSF.
type LICHCollector struct {
	slots [6]lichSlot
}

// NewLICHCollector returns an empty collector.
func NewLICHCollector() *LICHCollector { return &LICHCollector{} }

// Accept records a decoded LICH chunk for the given 0..5 slot index.
// If the slot already holds a chunk, the new one replaces it only when
// its metric is strictly lower (a better, more trustworthy decode).
func (c *LICHCollector) Accept(slotIndex int, data [5]byte, metric uint32) {
	if slotIndex < 0 || slotIndex > 5 {
		return
	}
	s := &c.slots[slotIndex]
	if !s.filled || metric < s.metric {
		s.filled = true
		s.data = data
		s.metric = metric
	}
}

// Complete reports whether all 6 slots have been filled.
func (c *LICHCollector) Complete() bool {
	for _, s := range c.slots {
		if !s.filled {
			return false
		}
	}
	return true
}

// TryAssemble reassembles the governing LSF once all 6 slots are filled
// and its CRC verifies. It returns ErrReassemblyError if any slot is
// still missing, or ErrCrcMismatch if a corrupted chunk slipped through.
func (c *LICHCollector) TryAssemble() (LSF, error) {
	if !c.Complete() {
		return LSF{}, ErrReassemblyError
	}
	var chunks [6][5]byte
	for i, s := range c.slots {
		chunks[i] = s.data
	}
	return LSFFromChunks(chunks)
}

// Reset clears the collector for reuse on a new stream-id.
func (c *LICHCollector) Reset() {
	*c = LICHCollector{}
}
