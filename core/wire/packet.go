package wire

import (
	"encoding/json"
	"fmt"

	"github.com/pan-protocol/pan/core/validate"
)

// Version selects the wire format. Only VersionBinary (major 0x01) and
// VersionJSON (major 0x7B) are recognized.
type Version struct {
	Major byte `json:"major"`
	Minor byte `json:"minor"`
}

// Recognized format versions.
var (
	VersionBinary = Version{Major: BinaryMajor, Minor: 0x00}
	VersionJSON   = Version{Major: JSONMajor, Minor: JSONMinor}
)

// Peer identifies a packet origin: the node and the connection it owns.
type Peer struct {
	NodeID string `json:"node_id"`
	ConnID string `json:"conn_id"`
}

// Destination is the type-dependent "to" address. Directed and control
// packets populate NodeID/ConnID; broadcast packets populate
// GroupID/MessageType. The unused pair stays empty.
type Destination struct {
	NodeID      string `json:"node_id,omitempty"`
	ConnID      string `json:"conn_id,omitempty"`
	GroupID     string `json:"group_id,omitempty"`
	MessageType string `json:"message_type,omitempty"`
}

type payloadKind int

const (
	payloadAbsent payloadKind = iota
	payloadBytes
	payloadJSON
)

// Payload is a tagged variant: either raw bytes carried opaquely, or an
// arbitrary JSON-serializable value encoded to UTF-8 text on the JSON path.
// The zero value is absent and encodes as zero bytes.
type Payload struct {
	kind  payloadKind
	raw   []byte
	value any
}

// BytesPayload wraps raw bytes for opaque carriage on either format.
func BytesPayload(b []byte) Payload {
	return Payload{kind: payloadBytes, raw: b}
}

// JSONPayload wraps a JSON-serializable value. Valid on the JSON format
// only; the binary format rejects it with ErrPayloadNotBytes.
func JSONPayload(v any) Payload {
	return Payload{kind: payloadJSON, value: v}
}

// IsBytes reports whether the payload carries raw bytes.
func (p Payload) IsBytes() bool { return p.kind == payloadBytes }

// IsJSON reports whether the payload carries a JSON value awaiting encoding.
func (p Payload) IsJSON() bool { return p.kind == payloadJSON }

// Raw returns the payload's byte form, or nil for an absent or JSON-valued
// payload. For decoded packets the slice aliases the input buffer; copy it
// out if the buffer will be reused.
func (p Payload) Raw() []byte {
	if p.kind == payloadBytes {
		return p.raw
	}
	return nil
}

// bytes normalizes the payload to its wire byte form: raw bytes pass
// through, absent becomes nil, a JSON value is serialized to UTF-8 text.
func (p Payload) bytes() ([]byte, error) {
	switch p.kind {
	case payloadAbsent:
		return nil, nil
	case payloadBytes:
		return p.raw, nil
	}
	b, err := json.Marshal(p.value)
	if err != nil {
		return nil, fmt.Errorf("encode json payload: %w", err)
	}
	return b, nil
}

// Packet is the in-memory unit the codec operates on. It is built by a
// caller and passed once through Encode, or produced once by Decode; the
// codec holds no reference to it afterwards.
type Packet struct {
	Version   Version
	Spread    byte
	TTL       byte
	Type      MessageType
	Flags     byte
	From      Peer
	To        Destination
	MessageID string
	Payload   Payload
}

// headerView adapts the packet header to the validator's representation.
func (p *Packet) headerView() *validate.Header {
	ttl := int(p.TTL)
	return &validate.Header{
		MessageID: p.MessageID,
		From:      validate.Peer(p.From),
		To:        (*validate.Dest)(&p.To),
		TTL:       &ttl,
		Type:      string(p.Type),
	}
}

// Config holds the named header defaults applied when packets are built.
type Config struct {
	Spread byte `json:"spread,omitempty"`
	TTL    byte `json:"ttl,omitempty"`
	Flags  byte `json:"flags,omitempty"`
}

// DefaultConfig returns the protocol defaults: no fan-out hint, a single
// hop of TTL, no flags.
func DefaultConfig() Config {
	return Config{TTL: 1}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.Spread != 0 {
		c.Spread = source.Spread
	}
	if source.TTL != 0 {
		c.TTL = source.TTL
	}
	if source.Flags != 0 {
		c.Flags = source.Flags
	}
}
