package m17

import (
	"bytes"
	"testing"
)

func TestPacketFrameBytesRoundTrip(t *testing.T) {
	p := PacketFrame{Protocol: ProtocolSMS, Payload: []byte("hello packet world")}
	b := p.Bytes()
	back, err := PacketFrameFromBytes(b)
	if err != nil {
		t.Fatalf("PacketFrameFromBytes: %v", err)
	}
	if back.Protocol != p.Protocol || !bytes.Equal(back.Payload, p.Payload) {
		t.Errorf("got %+v, want %+v", back, p)
	}
}

func TestPacketFrameFromBytesRejectsBadCRC(t *testing.T) {
	p := PacketFrame{Protocol: ProtocolRAW, Payload: []byte{1, 2, 3}}
	b := p.Bytes()
	b[0] ^= 0xFF
	if _, err := PacketFrameFromBytes(b); err != ErrCrcMismatch {
		t.Errorf("got %v, want ErrCrcMismatch", err)
	}
}

func TestChunkAndReassemblePacket(t *testing.T) {
	p := PacketFrame{Protocol: ProtocolAX25, Payload: bytes.Repeat([]byte("X"), 100)}
	full := p.Bytes()
	chunks := ChunkPacket(full)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks for a %d-byte payload, got %d", len(full), len(chunks))
	}

	r := NewPacketReassembler()
	for _, c := range chunks {
		if err := r.Add(c); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	if !r.Done() {
		t.Fatal("expected reassembler to be done")
	}
	back, err := r.Finish()
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if back.Protocol != p.Protocol || !bytes.Equal(back.Payload, p.Payload) {
		t.Errorf("got %+v, want %+v", back, p)
	}
}

func TestPacketReassemblerRejectsGap(t *testing.T) {
	p := PacketFrame{Protocol: ProtocolAX25, Payload: bytes.Repeat([]byte("Y"), 100)}
	chunks := ChunkPacket(p.Bytes())
	r := NewPacketReassembler()
	if err := r.Add(chunks[0]); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if len(chunks) < 3 {
		t.Fatal("test requires at least 3 chunks")
	}
	if err := r.Add(chunks[2]); err == nil {
		t.Error("expected ErrReassemblyError for an out-of-order chunk")
	}
}

func TestPacketReassemblerRejectsDuplicate(t *testing.T) {
	p := PacketFrame{Protocol: ProtocolAX25, Payload: bytes.Repeat([]byte("Z"), 100)}
	chunks := ChunkPacket(p.Bytes())
	r := NewPacketReassembler()
	if err := r.Add(chunks[0]); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := r.Add(chunks[0]); err == nil {
		t.Error("expected ErrReassemblyError for a duplicate chunk")
	}
}

func TestTLEBytesRoundTrip(t *testing.T) {
	tle := TLE{
		Name:  "ISS (ZARYA)",
		Line1: "1 25544U 98067A   24001.50000000  .00016717  00000-0  10270-3 0  9004",
		Line2: "2 25544  51.6400 208.9163 0006317  69.9862  25.2906 15.49560043123456",
	}
	b, err := tle.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	back, err := TLEFromBytes(b)
	if err != nil {
		t.Fatalf("TLEFromBytes: %v", err)
	}
	if back.Name != tle.Name || back.Line1 != tle.Line1 || back.Line2 != tle.Line2 {
		t.Errorf("got %+v, want %+v", back, tle)
	}
}

func TestTLERejectsWrongLineLength(t *testing.T) {
	tle := TLE{Name: "BAD", Line1: "too short", Line2: "also too short"}
	if _, err := tle.Bytes(); err == nil {
		t.Error("expected error for non-69-character TLE lines")
	}
}

func TestTLERejectsLongName(t *testing.T) {
	tle := TLE{
		Name:  "THIS NAME IS DEFINITELY TOO LONG FOR A TLE",
		Line1: string(bytes.Repeat([]byte("1"), 69)),
		Line2: string(bytes.Repeat([]byte("2"), 69)),
	}
	if _, err := tle.Bytes(); err == nil {
		t.Error("expected error for a name over 24 characters")
	}
}
