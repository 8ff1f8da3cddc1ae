package m17

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustAddr(t *testing.T, cs string) Address {
	t.Helper()
	a, err := AddressFromCallsign(cs)
	if err != nil {
		t.Fatalf("AddressFromCallsign(%q): %v", cs, err)
	}
	return a
}

func TestLSFBytesLength(t *testing.T) {
	l := NewLSF(mustAddr(t, "W2FBI"), mustAddr(t, "N0CALL"), BuildV3(PayloadVoice3200, EncryptionNone, false, MetaNone, 0), [14]byte{})
	b := l.Bytes()
	if len(b) != LSFSize {
		t.Errorf("got %d bytes, want %d", len(b), LSFSize)
	}
}

func TestLSFRoundTrip(t *testing.T) {
	l := NewLSF(mustAddr(t, "W2FBI"), mustAddr(t, "N0CALL"), BuildV3(PayloadVoice3200, EncryptionNone, true, MetaGNSS, 3), [14]byte{})
	// Latitude/Longitude chosen as exact multiples of their fixed-point
	// LSB so quantization doesn't lose precision across the round trip.
	l = l.WithGNSSMeta(GNSSMeta{Source: 1, StationType: 2, Latitude: 45, Longitude: -90, Altitude: 100, Bearing: 270, Speed: 42})
	b := l.Bytes()
	back, err := LSFFromBytes(b[:])
	if err != nil {
		t.Fatalf("LSFFromBytes: %v", err)
	}
	if diff := cmp.Diff(l.Dst, back.Dst); diff != "" {
		t.Errorf("Dst mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(l.Src, back.Src); diff != "" {
		t.Errorf("Src mismatch (-want +got):\n%s", diff)
	}
	if back.Type != l.Type {
		t.Errorf("Type mismatch: got %v, want %v", back.Type, l.Type)
	}
	if diff := cmp.Diff(l.GNSSMeta(), back.GNSSMeta()); diff != "" {
		t.Errorf("GNSS meta mismatch (-want +got):\n%s", diff)
	}
}

func TestLSFFromBytesRejectsBadCRC(t *testing.T) {
	l := NewLSF(mustAddr(t, "W2FBI"), mustAddr(t, "N0CALL"), 0, [14]byte{})
	b := l.Bytes()
	b[0] ^= 0xFF
	if _, err := LSFFromBytes(b[:]); err != ErrCrcMismatch {
		t.Errorf("got error %v, want ErrCrcMismatch", err)
	}
}

func TestLSFFromBytesRejectsWrongLength(t *testing.T) {
	if _, err := LSFFromBytes(make([]byte, 10)); err != ErrInvalidInput {
		t.Errorf("got error %v, want ErrInvalidInput", err)
	}
}

func TestLSFChunksRoundTrip(t *testing.T) {
	l := NewLSF(mustAddr(t, "W2FBI"), mustAddr(t, "N0CALL"), BuildV3(PayloadVoice3200, EncryptionNone, false, MetaText, 5), [14]byte{})
	l = l.WithTextMeta(TextMeta{BlockCount: 1, BlockIndex: 0, TextLen: 5, Text: [13]byte{'H', 'E', 'L', 'L', 'O'}})
	chunks := l.Chunks()
	back, err := LSFFromChunks(chunks)
	if err != nil {
		t.Fatalf("LSFFromChunks: %v", err)
	}
	if !back.Dst.Equal(l.Dst) || !back.Src.Equal(l.Src) || back.Type != l.Type || back.Meta != l.Meta {
		t.Errorf("chunk round trip mismatch: %+v vs %+v", back, l)
	}
}

func TestLSFFromChunksRejectsBadCRC(t *testing.T) {
	l := NewLSF(mustAddr(t, "W2FBI"), mustAddr(t, "N0CALL"), BuildV3(PayloadVoice3200, EncryptionNone, false, MetaText, 5), [14]byte{})
	chunks := l.Chunks()
	chunks[0][0] ^= 0xFF
	if _, err := LSFFromChunks(chunks); err != ErrCrcMismatch {
		t.Errorf("got error %v, want ErrCrcMismatch", err)
	}
}

func TestCreateTextMessageFramesSplitsAcrossBlocks(t *testing.T) {
	text := "this message is definitely longer than thirteen bytes"
	blocks, err := CreateTextMessageFrames(text)
	if err != nil {
		t.Fatalf("CreateTextMessageFrames: %v", err)
	}
	if len(blocks) < 2 {
		t.Fatalf("expected multiple blocks for a %d-byte message, got %d", len(text), len(blocks))
	}
	var rebuilt []byte
	for i, b := range blocks {
		if int(b.BlockIndex) != i {
			t.Errorf("block %d has index %d", i, b.BlockIndex)
		}
		if int(b.BlockCount) != len(blocks) {
			t.Errorf("block %d has BlockCount %d, want %d", i, b.BlockCount, len(blocks))
		}
		rebuilt = append(rebuilt, b.Text[:b.TextLen]...)
	}
	if string(rebuilt) != text {
		t.Errorf("got %q, want %q", rebuilt, text)
	}
}

func TestCreateTextMessageFramesEmptyText(t *testing.T) {
	blocks, err := CreateTextMessageFrames("")
	if err != nil {
		t.Fatalf("CreateTextMessageFrames: %v", err)
	}
	if len(blocks) != 1 || blocks[0].BlockCount != 1 {
		t.Errorf("expected a single block with BlockCount 1, got %+v", blocks)
	}
}

func TestCreateTextMessageFramesRejectsOverlong(t *testing.T) {
	text := make([]byte, MaxTextBytes+1)
	if _, err := CreateTextMessageFrames(string(text)); err != ErrInvalidInput {
		t.Errorf("got error %v, want ErrInvalidInput", err)
	}
}
