package m17

import (
	"bytes"
	"encoding/binary"
)

// M17-over-IP frame: MAGIC[4] STREAMID[2] LSF-without-CRC[28]
// STREAMFRAME[18] CRC[2], 54 bytes total, per spec.md §4.13. STREAMFRAME
// is a full stream-frame body (FN[2]+PAYLOAD[16], StreamPayloadSize
// bytes). The CRC covers everything from STREAMID through STREAMFRAME
// (bytes 4..51 inclusive).
//
// Grounded on pkg/network/client.go's fixed-header UDP datagram
// parse/build pair (magic check, then field-by-field binary.BigEndian
// reads), the teacher's own wire format for its reflector protocol.

// IPFrame is a parsed M17-over-IP datagram.
type IPFrame struct {
	StreamID    uint16
	LSFNoCRC    [LSFNoCRCSize]byte
	StreamFrame [StreamPayloadSize]byte
}

// Bytes serializes f to its 54-byte wire form.
func (f IPFrame) Bytes() [IPFrameSize]byte {
	var out [IPFrameSize]byte
	copy(out[0:4], IPMagic[:])
	binary.BigEndian.PutUint16(out[4:6], f.StreamID)
	copy(out[6:34], f.LSFNoCRC[:])
	copy(out[34:52], f.StreamFrame[:])
	crc := CRC(out[4:52])
	binary.BigEndian.PutUint16(out[52:54], crc)
	return out
}

// IPFrameFromBytes parses and validates a 54-byte M17-over-IP datagram.
func IPFrameFromBytes(b []byte) (IPFrame, error) {
	if len(b) != IPFrameSize {
		return IPFrame{}, ErrInvalidInput
	}
	if !bytes.Equal(b[0:4], IPMagic[:]) {
		return IPFrame{}, ErrBadMagic
	}
	crc := binary.BigEndian.Uint16(b[52:54])
	if CRC(b[4:52]) != crc {
		return IPFrame{}, ErrCrcMismatch
	}
	var f IPFrame
	f.StreamID = binary.BigEndian.Uint16(b[4:6])
	copy(f.LSFNoCRC[:], b[6:34])
	copy(f.StreamFrame[:], b[34:52])
	return f, nil
}
