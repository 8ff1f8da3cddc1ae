package m17

import (
	"encoding/binary"
	"math"
)

// Link Setup Frame: DST[6] SRC[6] TYPE[2] META[14] CRC[2], per spec.md
// §4.2. META's interpretation depends on the TYPE v3 Meta field (or is
// opaque under v2).
//
// Grounded on pkg/ysf/ysf_frame.go's fixed-layout header struct plus
// to_bytes/from_bytes pair; META variant dispatch mirrors the way the
// teacher's pkg/protocol packages switch on a leading discriminator byte
// before parsing a variable sub-structure.

// gnssLatScale and gnssLonScale are the degrees-per-LSB of the 3-byte
// signed fixed-point latitude/longitude fields, per spec.md §4.9.
const (
	gnssLatScale = 180.0 / float64(1<<23)
	gnssLonScale = 360.0 / float64(1<<23)
	gnssAltBiasM = 1500
)

// GNSSMeta carries a position report in the META field (Meta = MetaGNSS).
type GNSSMeta struct {
	Source      uint8   // data-source identifier, 1 byte
	StationType uint8   // 1 byte
	Latitude    float64 // degrees, encoded as 3-byte signed fixed-point (scale 180/2^23)
	Longitude   float64 // degrees, encoded as 3-byte signed fixed-point (scale 360/2^23)
	Altitude    int32   // meters above MSL, encoded as 2-byte value biased by +1500m
	Bearing     uint16  // degrees, 0-359, 2 bytes
	Speed       uint8   // km/h, capped at 255, 1 byte
}

func put24Signed(b []byte, v int32) {
	u := uint32(v) & 0x00FFFFFF
	b[0] = byte(u >> 16)
	b[1] = byte(u >> 8)
	b[2] = byte(u)
}

func get24Signed(b []byte) int32 {
	u := uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
	if u&0x800000 != 0 {
		u |= 0xFF000000
	}
	return int32(u)
}

func (g GNSSMeta) bytes() [14]byte {
	var b [14]byte
	b[0] = g.Source
	b[1] = g.StationType
	put24Signed(b[2:5], int32(math.Round(g.Latitude/gnssLatScale)))
	put24Signed(b[5:8], int32(math.Round(g.Longitude/gnssLonScale)))
	binary.BigEndian.PutUint16(b[8:10], uint16(g.Altitude+gnssAltBiasM))
	binary.BigEndian.PutUint16(b[10:12], g.Bearing)
	b[12] = g.Speed
	return b
}

func gnssMetaFromBytes(b [14]byte) GNSSMeta {
	return GNSSMeta{
		Source:      b[0],
		StationType: b[1],
		Latitude:    float64(get24Signed(b[2:5])) * gnssLatScale,
		Longitude:   float64(get24Signed(b[5:8])) * gnssLonScale,
		Altitude:    int32(binary.BigEndian.Uint16(b[8:10])) - gnssAltBiasM,
		Bearing:     binary.BigEndian.Uint16(b[10:12]),
		Speed:       b[12],
	}
}

// ExtendedCallsignMeta carries up to two additional 6-byte addresses
// (Meta = MetaExtendedCallsign), e.g. a relay chain or a second recipient.
type ExtendedCallsignMeta struct {
	Extra [2]Address
}

func (e ExtendedCallsignMeta) bytes() [14]byte {
	var b [14]byte
	a0 := e.Extra[0].Bytes()
	a1 := e.Extra[1].Bytes()
	copy(b[0:6], a0[:])
	copy(b[6:12], a1[:])
	return b
}

func extendedCallsignMetaFromBytes(b [14]byte) ExtendedCallsignMeta {
	var a0, a1 [6]byte
	copy(a0[:], b[0:6])
	copy(a1[:], b[6:12])
	return ExtendedCallsignMeta{Extra: [2]Address{AddressFromBytes(a0), AddressFromBytes(a1)}}
}

// NonceMeta carries a 14-byte encryption nonce (Meta = MetaAESIV covers
// the related AES-IV case; Nonce is used when TYPE's Encryption field
// calls for a scrambler/stream nonce rather than a full AES IV).
type NonceMeta struct {
	Nonce [14]byte
}

// AESIVMeta carries a 14-byte AES initialization vector (Meta = MetaAESIV).
type AESIVMeta struct {
	IV [14]byte
}

// MaxTextBlocks and MaxTextBytes bound a text message per spec.md §3:
// BLOCK_COUNT is a 4-bit field in [1,15], giving 15 blocks of 13 bytes.
const (
	MaxTextBlocks = 15
	MaxTextBytes  = MaxTextBlocks * 13
)

// TextMeta carries one block (up to 13 bytes plus a 1-byte control
// header) of a possibly multi-frame text message (Meta = MetaText).
// CreateTextMessageFrames splits an arbitrary string into the sequence
// of TextMeta blocks needed to carry it. BlockCount lets a collector
// recognize the full set is present and that no indices are missing or
// out of order; it is constant across every block of one message.
type TextMeta struct {
	BlockCount uint8 // total blocks in the message, 1-15
	BlockIndex uint8 // 0-based position of this block, < BlockCount
	Text       [13]byte
	TextLen    uint8 // valid bytes of Text in this block
}

func (t TextMeta) bytes() [14]byte {
	var b [14]byte
	b[0] = (t.BlockCount&0x0F)<<4 | (t.BlockIndex & 0x0F)
	copy(b[1:14], t.Text[:])
	return b
}

func textMetaFromBytes(b [14]byte) TextMeta {
	t := TextMeta{
		BlockCount: b[0] >> 4 & 0x0F,
		BlockIndex: b[0] & 0x0F,
	}
	copy(t.Text[:], b[1:14])
	return t
}

// CreateTextMessageFrames splits text into the TextMeta blocks needed to
// carry it across one or more LSF-bearing stream superframes, 13 bytes
// of text per block, up to MaxTextBlocks blocks. It returns
// ErrInvalidInput if text exceeds MaxTextBytes.
func CreateTextMessageFrames(text string) ([]TextMeta, error) {
	data := []byte(text)
	if len(data) > MaxTextBytes {
		return nil, ErrInvalidInput
	}
	if len(data) == 0 {
		return []TextMeta{{BlockCount: 1, BlockIndex: 0}}, nil
	}
	count := uint8((len(data) + 12) / 13)
	blocks := make([]TextMeta, 0, count)
	for i := 0; i < len(data); i += 13 {
		end := i + 13
		if end > len(data) {
			end = len(data)
		}
		var tb TextMeta
		tb.BlockCount = count
		tb.BlockIndex = uint8(i / 13)
		tb.TextLen = uint8(end - i)
		copy(tb.Text[:], data[i:end])
		blocks = append(blocks, tb)
	}
	return blocks, nil
}

// LSF is the decoded Link Setup Frame.
type LSF struct {
	Dst  Address
	Src  Address
	Type uint16 // raw TYPE value; use ParseV2/ParseV3 per DetectVersion
	Meta [14]byte
}

// NewLSF builds an LSF from its three addressed/typed fields plus a raw
// 14-byte META payload (callers building a specific META variant should
// use its .bytes() helper or the With*Meta methods below).
func NewLSF(dst, src Address, typeField uint16, meta [14]byte) LSF {
	return LSF{Dst: dst, Src: src, Type: typeField, Meta: meta}
}

// WithGNSSMeta returns a copy of l carrying the given GNSS position in META.
func (l LSF) WithGNSSMeta(g GNSSMeta) LSF {
	l.Meta = g.bytes()
	return l
}

// WithExtendedCallsignMeta returns a copy of l carrying extra addresses in META.
func (l LSF) WithExtendedCallsignMeta(e ExtendedCallsignMeta) LSF {
	l.Meta = e.bytes()
	return l
}

// WithTextMeta returns a copy of l carrying one text block in META.
func (l LSF) WithTextMeta(t TextMeta) LSF {
	l.Meta = t.bytes()
	return l
}

// WithAESIVMeta returns a copy of l carrying an AES IV in META.
func (l LSF) WithAESIVMeta(iv AESIVMeta) LSF {
	l.Meta = iv.IV
	return l
}

// WithNonceMeta returns a copy of l carrying a nonce in META.
func (l LSF) WithNonceMeta(n NonceMeta) LSF {
	l.Meta = n.Nonce
	return l
}

// GNSSMeta interprets l.Meta as a position report.
func (l LSF) GNSSMeta() GNSSMeta { return gnssMetaFromBytes(l.Meta) }

// ExtendedCallsignMeta interprets l.Meta as two extra addresses.
func (l LSF) ExtendedCallsignMeta() ExtendedCallsignMeta {
	return extendedCallsignMetaFromBytes(l.Meta)
}

// TextMeta interprets l.Meta as one text block.
func (l LSF) TextMeta() TextMeta { return textMetaFromBytes(l.Meta) }

// noCRCBytes returns the first LSFNoCRCSize bytes: DST SRC TYPE META.
func (l LSF) noCRCBytes() [LSFNoCRCSize]byte {
	var b [LSFNoCRCSize]byte
	dst := l.Dst.Bytes()
	src := l.Src.Bytes()
	copy(b[0:6], dst[:])
	copy(b[6:12], src[:])
	binary.BigEndian.PutUint16(b[12:14], l.Type)
	copy(b[14:28], l.Meta[:])
	return b
}

// NoCRCBytes exports noCRCBytes for callers building IP frames, which
// carry the LSF without its trailing CRC (spec.md §4.13).
func (l LSF) NoCRCBytes() [LSFNoCRCSize]byte { return l.noCRCBytes() }

// LSFFromNoCRCBytes parses the 28-byte DST/SRC/TYPE/META body carried by
// an IP frame, which has no trailing CRC of its own to verify.
func LSFFromNoCRCBytes(b []byte) (LSF, error) {
	if len(b) != LSFNoCRCSize {
		return LSF{}, ErrInvalidInput
	}
	var dst, src [6]byte
	copy(dst[:], b[0:6])
	copy(src[:], b[6:12])
	l := LSF{
		Dst:  AddressFromBytes(dst),
		Src:  AddressFromBytes(src),
		Type: binary.BigEndian.Uint16(b[12:14]),
	}
	copy(l.Meta[:], b[14:28])
	return l, nil
}

// Bytes serializes l to its 30-byte wire form, appending the CRC.
func (l LSF) Bytes() [LSFSize]byte {
	noCRC := l.noCRCBytes()
	crc := CRC(noCRC[:])
	var out [LSFSize]byte
	copy(out[:LSFNoCRCSize], noCRC[:])
	binary.BigEndian.PutUint16(out[LSFNoCRCSize:], crc)
	return out
}

// LSFFromBytes parses and CRC-verifies a 30-byte LSF.
func LSFFromBytes(b []byte) (LSF, error) {
	if len(b) != LSFSize {
		return LSF{}, ErrInvalidInput
	}
	if !VerifyCRC(b) {
		return LSF{}, ErrCrcMismatch
	}
	var dst, src [6]byte
	copy(dst[:], b[0:6])
	copy(src[:], b[6:12])
	l := LSF{
		Dst:  AddressFromBytes(dst),
		Src:  AddressFromBytes(src),
		Type: binary.BigEndian.Uint16(b[12:14]),
	}
	copy(l.Meta[:], b[14:28])
	return l, nil
}

// Chunks splits l's full 30-byte wire form (DST‖SRC‖TYPE‖META‖CRC) into
// 6 chunks of 5 bytes (40 bits) each, per spec.md §4.2/§4.9, ready for
// LICH Golay encoding by the stream-frame collector. The CRC rides in
// the last chunk so a collector can verify the reassembled LSF instead
// of just trusting that all 6 slots arrived.
func (l LSF) Chunks() [6][5]byte {
	b := l.Bytes()
	var out [6][5]byte
	for i := 0; i < 6; i++ {
		copy(out[i][:], b[i*5:i*5+5])
	}
	return out
}

// LSFFromChunks reassembles an LSF from 6 previously collected 5-byte
// chunks (see LICHCollector) and CRC-verifies the result, per spec.md
// §4.10: a corrupted or mis-collected chunk set must not be accepted.
func LSFFromChunks(chunks [6][5]byte) (LSF, error) {
	var b [LSFSize]byte
	for i := 0; i < 6; i++ {
		copy(b[i*5:i*5+5], chunks[i][:])
	}
	return LSFFromBytes(b[:])
}
