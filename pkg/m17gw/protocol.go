// Package m17gw implements a thin IP-frame gateway client: it dials a
// reflector/peer UDP endpoint, frames outgoing streams as M17 IP frames,
// decodes inbound ones, and reassembles each stream's governing LSF from
// its LICH chunks. It does not implement reflector linking semantics
// (module/reflector selection, multi-hop routing) — only raw transport,
// matching the protocol core's own boundary.
package m17gw

// Connect/disconnect/keepalive packet identifiers exchanged with a
// reflector, generalized from the teacher's RPTL/RPTACK/MSTNAK-style
// login handshake (pkg/protocol/constants.go) into the 4-byte magics
// used by on-air M17 reflectors.
const (
	PacketTypeConn = "CONN" // connect request: CONN + module letter + callsign (base-40, 6 bytes)
	PacketTypeAckn = "ACKN" // connect accepted
	PacketTypeNack = "NACK" // connect refused
	PacketTypePing = "PING" // keepalive from client
	PacketTypePong = "PONG" // keepalive reply from reflector
	PacketTypeDisc = "DISC" // disconnect, either direction
)

// Packet sizes, in bytes.
const (
	ConnPacketSize = 4 + 1 + 6 // CONN + module + callsign
	AcknPacketSize = 4
	NackPacketSize = 4
	PingPacketSize = 4 + 6 // PING + callsign
	PongPacketSize = 4
	DiscPacketSize = 4 + 6 // DISC + callsign
)
