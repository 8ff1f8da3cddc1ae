package m17

// Sync words, frame sizes, and protocol identifiers, bit-exact per
// spec.md §6. Grounded on pkg/ysf/defines.go + pkg/protocol/constants.go's
// constant-block style.
const (
	SyncLSF    uint16 = 0x55F7
	SyncStream uint16 = 0xFF5D
	SyncPacket uint16 = 0x75FF
	SyncBERT   uint16 = 0xDF55
	SyncEOT    uint16 = 0x555D
)

// IPMagic is the 4-byte ASCII magic prefixing an M17-over-IP frame.
var IPMagic = [4]byte{'M', '1', '7', ' '}

// Frame sizes.
const (
	LSFSize        = 30 // DST[6] SRC[6] TYPE[2] META[14] CRC[2]
	LSFMetaSize    = 14
	LSFNoCRCSize   = 28
	StreamPayloadSize = 18 // frame-number[2] + payload[16]
	LICHChunkBits  = 40 // LSF bits per chunk before the 3-bit counter
	LICHUnitBits   = 48 // 3-bit counter + LICHChunkBits + 5 reserved bits, Golay-input size
	LICHEncodedBits = 96 // 4 x Golay(24,12) codewords
	PacketChunkDataSize = 25
	PacketChunkSize     = 26 // 25 data bytes + 1 metadata byte
	IPFrameSize    = 54
	BERTBits       = 197
)

// ProtocolID identifies the payload protocol carried by a Packet frame.
type ProtocolID uint8

const (
	ProtocolRAW     ProtocolID = 0
	ProtocolAX25    ProtocolID = 1
	ProtocolAPRS    ProtocolID = 2
	Protocol6LoWPAN ProtocolID = 3
	ProtocolIPv4    ProtocolID = 4
	ProtocolSMS     ProtocolID = 5
	ProtocolWinlink ProtocolID = 6
	ProtocolTLE     ProtocolID = 7
)

// Convolutional encoder parameters: K=5 (memory 4), rate 1/2.
const (
	ConvConstraintK = 5
	ConvGen1        = 0x19
	ConvGen2        = 0x17
	ConvNumStates   = 16
	ConvFlushBits   = 4
)

// Interleaver size.
const InterleaverSize = 368

// RandomizerSize is the fixed whitening sequence length in bytes
// (46 * 8 = 368 bits, exactly InterleaverSize).
const RandomizerSize = 46

// BERT PRBS parameters: x^9 + x^5 + 1, seed 0x1FF.
const (
	BertPRBSSeed = 0x1FF
)
