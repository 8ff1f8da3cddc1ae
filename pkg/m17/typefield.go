package m17

// TYPE field build/parse for both the legacy v2.0.3 and redesigned
// v3.0.0 layouts (spec.md §3/§4.3). The 16-bit value is kept raw inside
// the LSF and parsed on demand by the caller's requested layout — see
// spec.md §9's "version detection through a single integer" note.
//
// Grounded on pkg/protocol/constants.go's bitfield-offset/mask constant
// style (teacher expresses DMR slot-byte fields the same way).

// Version distinguishes the two mutually exclusive TYPE layouts.
type Version int

const (
	V2 Version = iota
	V3
)

// DetectVersion probes the v3 PAYLOAD nibble (bits 0..3 from MSB): zero
// means the frame is almost certainly v2 (whose matching bit position
// carries the 1-bit Stream/Packet flag plus high DataType bits, which in
// practice is very rarely all-zero amid a valid v2 TYPE — this is the
// spec's own backward-compatibility hinge, not a guarantee).
func DetectVersion(t uint16) Version {
	payloadNibble := (t >> 12) & 0xF
	if payloadNibble == 0 {
		return V2
	}
	return V3
}

// --- v2.0.3 layout ---
//
// MSB-first 16 bits: StreamPacket(1) DataType(2) EncryptionType(2)
// EncryptionSubType(2) CAN(4) Reserved(5).

type DataTypeV2 int

const (
	DataTypeV2Unknown DataTypeV2 = iota
	DataTypeV2Voice
	DataTypeV2Data
	DataTypeV2VoiceData
)

type EncryptionTypeV2 int

const (
	EncTypeV2None EncryptionTypeV2 = iota
	EncTypeV2Scrambler
	EncTypeV2AES
	EncTypeV2Other
)

// TypeV2 is the decoded legacy TYPE field.
type TypeV2 struct {
	Packet            bool // true = packet, false = stream
	DataType          DataTypeV2
	EncryptionType    EncryptionTypeV2
	EncryptionSubType uint8 // 2 bits, raw
	CAN               uint8 // 4 bits
}

// BuildV2 assembles a raw v2.0.3 TYPE value.
func BuildV2(isPacket bool, dataType DataTypeV2, enc EncryptionTypeV2, sub uint8, can uint8) uint16 {
	var t uint16
	if isPacket {
		t |= 1 << 15
	}
	t |= uint16(dataType&0x3) << 13
	t |= uint16(enc&0x3) << 11
	t |= uint16(sub&0x3) << 9
	t |= uint16(can&0xF) << 5
	return t
}

// ParseV2 decodes t as a legacy v2.0.3 TYPE field.
func ParseV2(t uint16) TypeV2 {
	return TypeV2{
		Packet:            (t>>15)&1 == 1,
		DataType:          DataTypeV2((t >> 13) & 0x3),
		EncryptionType:    EncryptionTypeV2((t >> 11) & 0x3),
		EncryptionSubType: uint8((t >> 9) & 0x3),
		CAN:               uint8((t >> 5) & 0xF),
	}
}

// --- v3.0.0 layout ---
//
// MSB-first 16 bits: PAYLOAD(4) ENCRYPTION(3) SIGNED(1) META(4) CAN(4).

// Payload identifies the v3 payload kind. Unknown codes are preserved
// via UnknownPayload rather than rejected (spec.md §9 Open Question ii).
type Payload uint8

const (
	PayloadDataOnly Payload = iota
	PayloadVoice3200
	PayloadVoice1600Data
	PayloadPacket
)

// Encryption identifies the v3 encryption algorithm slot.
type Encryption uint8

const (
	EncryptionNone Encryption = iota
	EncryptionScrambler8
	EncryptionScrambler16
	EncryptionScrambler24
	EncryptionAES128
	EncryptionAES192
	EncryptionAES256
	EncryptionReserved
)

// Meta identifies the LSF META variant carried by a v3 frame.
type Meta uint8

const (
	MetaNone Meta = iota
	MetaGNSS
	MetaExtendedCallsign
	MetaText
	MetaAESIV
)

// TypeV3 is the decoded v3.0.0 TYPE field. Enum fields beyond those
// named above are NOT rejected: the raw 3/4-bit code is preserved
// verbatim in Payload/Encryption/Meta (as an out-of-range value of the
// same underlying uint8 type) so round-tripping an unknown forward code
// is lossless; callers that care can compare against the named
// constants and treat anything else as "Unknown(n)".
type TypeV3 struct {
	Payload    Payload
	Encryption Encryption
	Signed     bool
	Meta       Meta
	CAN        uint8
}

// BuildV3 assembles a raw v3.0.0 TYPE value.
func BuildV3(payload Payload, enc Encryption, signed bool, meta Meta, can uint8) uint16 {
	var t uint16
	t |= uint16(payload&0xF) << 12
	t |= uint16(enc&0x7) << 9
	if signed {
		t |= 1 << 8
	}
	t |= uint16(meta&0xF) << 4
	t |= uint16(can & 0xF)
	return t
}

// ParseV3 decodes t as a v3.0.0 TYPE field.
func ParseV3(t uint16) TypeV3 {
	return TypeV3{
		Payload:    Payload((t >> 12) & 0xF),
		Encryption: Encryption((t >> 9) & 0x7),
		Signed:     (t>>8)&1 == 1,
		Meta:       Meta((t >> 4) & 0xF),
		CAN:        uint8(t & 0xF),
	}
}
