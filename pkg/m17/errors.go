package m17

import "errors"

// Error taxonomy per spec.md §7. The core reports every error to the
// caller; it never logs or retries internally.
var (
	// ErrInvalidInput covers malformed callsigns, out-of-range numerics,
	// and wrong-length buffers.
	ErrInvalidInput = errors.New("m17: invalid input")

	// ErrCrcMismatch covers LSF/IP/packet checksum failures.
	ErrCrcMismatch = errors.New("m17: crc mismatch")

	// ErrBadMagic covers an IP frame that did not begin with "M17 ".
	ErrBadMagic = errors.New("m17: bad ip frame magic")

	// ErrDecodeFailure covers Golay/Viterbi failing to recover a valid
	// codeword/path within tolerance.
	ErrDecodeFailure = errors.New("m17: decode failure")

	// ErrReassemblyError covers missing/duplicate/out-of-order packet or
	// LICH chunks.
	ErrReassemblyError = errors.New("m17: reassembly error")

	// ErrUnsupportedVersion covers a TYPE field encoding a value the
	// caller explicitly opted out of.
	ErrUnsupportedVersion = errors.New("m17: unsupported type version")
)
