package wire

import "github.com/pan-protocol/pan/core/uid"

// PacketBuilder assembles a Packet with defaults applied once at
// construction. The zero-value Config fields mean "no spread, no flags";
// TTL defaults come from the Config handed to the constructor.
type PacketBuilder struct {
	packet *Packet
}

// NewPacket starts a builder for the given type and destination. The packet
// gets a fresh message ID, the binary format version, and the defaults from
// cfg.
func NewPacket(cfg Config, t MessageType, from Peer, to Destination) *PacketBuilder {
	return &PacketBuilder{
		packet: &Packet{
			Version:   VersionBinary,
			Spread:    cfg.Spread,
			TTL:       cfg.TTL,
			Type:      t,
			Flags:     cfg.Flags,
			From:      from,
			To:        to,
			MessageID: uid.New(),
		},
	}
}

// NewDirected starts a builder for a directed packet to a node/connection.
func NewDirected(cfg Config, from Peer, to Peer) *PacketBuilder {
	return NewPacket(cfg, TypeDirected, from, Destination{NodeID: to.NodeID, ConnID: to.ConnID})
}

// NewControl starts a builder for a control packet to a node/connection.
func NewControl(cfg Config, from Peer, to Peer) *PacketBuilder {
	return NewPacket(cfg, TypeControl, from, Destination{NodeID: to.NodeID, ConnID: to.ConnID})
}

// NewBroadcast starts a builder for a broadcast packet to a group.
func NewBroadcast(cfg Config, from Peer, groupID, messageType string) *PacketBuilder {
	return NewPacket(cfg, TypeBroadcast, from, Destination{GroupID: groupID, MessageType: messageType})
}

// JSON switches the packet to the JSON wire format.
func (pb *PacketBuilder) JSON() *PacketBuilder {
	pb.packet.Version = VersionJSON
	return pb
}

// TTL overrides the default hop budget.
func (pb *PacketBuilder) TTL(ttl byte) *PacketBuilder {
	pb.packet.TTL = ttl
	return pb
}

// Spread overrides the default fan-out hint.
func (pb *PacketBuilder) Spread(spread byte) *PacketBuilder {
	pb.packet.Spread = spread
	return pb
}

// Flags overrides the default flag bits.
func (pb *PacketBuilder) Flags(flags byte) *PacketBuilder {
	pb.packet.Flags = flags
	return pb
}

// Payload sets the packet payload.
func (pb *PacketBuilder) Payload(p Payload) *PacketBuilder {
	pb.packet.Payload = p
	return pb
}

// Build returns the assembled packet.
func (pb *PacketBuilder) Build() *Packet {
	return pb.packet
}
