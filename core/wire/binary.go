package wire

import (
	"encoding/binary"
	"fmt"

	"github.com/pan-protocol/pan/core/uid"
)

// BinaryMajor is the first wire byte of a binary-format frame.
const BinaryMajor byte = 0x01

// BinaryHeaderSize is the fixed binary header length in bytes.
const BinaryHeaderSize = 88

// MaxPayloadSize caps the payload in both wire formats (60 KiB).
const MaxPayloadSize = 61440

// Fixed field offsets of the binary header. All multi-byte integers are
// big-endian.
const (
	offMajor     = 0
	offMinor     = 1
	offTotalLen  = 2 // u16
	offSpread    = 4
	offTTL       = 5
	offType      = 6
	offFlags     = 7
	offFromNode  = 8
	offFromConn  = 24
	offToPrimary = 40 // node_id or group_id, by type
	offToSecond  = 56 // conn_id or message_type, by type
	offMessageID = 72
)

// destPair resolves the two destination UUID slots for the packet's type:
// node/conn for control and directed, group/message_type for broadcast.
func destPair(t MessageType, to Destination) (string, string, error) {
	code, err := t.WireCode()
	if err != nil {
		return "", "", err
	}
	if code == codeBroadcast {
		return to.GroupID, to.MessageType, nil
	}
	return to.NodeID, to.ConnID, nil
}

// encodeBinary serializes a packet in format v1.0: the fixed 88-byte header
// followed by the raw payload. The payload must already be bytes. If the
// packet has no message ID a fresh one is generated and written back.
//
// This path performs no header validation; the caller's flow is trusted.
// Codec.Encode offers opt-in validation via WithBinaryValidation.
func encodeBinary(p *Packet) ([]byte, error) {
	if p.Payload.IsJSON() {
		return nil, ErrPayloadNotBytes
	}
	payload := p.Payload.Raw()
	if len(payload) > MaxPayloadSize {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", ErrPayloadTooLarge, len(payload), MaxPayloadSize)
	}

	typeCode, err := p.Type.WireCode()
	if err != nil {
		return nil, err
	}
	toPrimary, toSecond, err := destPair(p.Type, p.To)
	if err != nil {
		return nil, err
	}

	if p.MessageID == "" {
		p.MessageID = uid.New()
	}

	fromNode, err := uid.ToBytes(p.From.NodeID)
	if err != nil {
		return nil, fmt.Errorf("from.node_id: %w", err)
	}
	fromConn, err := uid.ToBytes(p.From.ConnID)
	if err != nil {
		return nil, fmt.Errorf("from.conn_id: %w", err)
	}
	toA, err := uid.ToBytes(toPrimary)
	if err != nil {
		return nil, fmt.Errorf("to primary id: %w", err)
	}
	toB, err := uid.ToBytes(toSecond)
	if err != nil {
		return nil, fmt.Errorf("to secondary id: %w", err)
	}
	msgID, err := uid.ToBytes(p.MessageID)
	if err != nil {
		return nil, fmt.Errorf("message_id: %w", err)
	}

	buf := make([]byte, BinaryHeaderSize+len(payload))
	buf[offMajor] = BinaryMajor
	buf[offMinor] = p.Version.Minor
	binary.BigEndian.PutUint16(buf[offTotalLen:], uint16(len(buf)))
	buf[offSpread] = p.Spread
	buf[offTTL] = p.TTL
	buf[offType] = typeCode
	buf[offFlags] = p.Flags
	copy(buf[offFromNode:], fromNode[:])
	copy(buf[offFromConn:], fromConn[:])
	copy(buf[offToPrimary:], toA[:])
	copy(buf[offToSecond:], toB[:])
	copy(buf[offMessageID:], msgID[:])
	copy(buf[BinaryHeaderSize:], payload)
	return buf, nil
}

// decodeBinary parses a format v1.0 frame. The returned packet's payload
// aliases buf; callers that reuse the buffer must copy it out first.
//
// An unrecognized type code fails with ErrUnknownMessageType rather than
// yielding a packet with no destination.
func decodeBinary(buf []byte) (*Packet, error) {
	if len(buf) < BinaryHeaderSize {
		return nil, fmt.Errorf("%w: %d bytes, need %d", ErrTruncated, len(buf), BinaryHeaderSize)
	}
	declared := int(binary.BigEndian.Uint16(buf[offTotalLen:]))
	if declared != len(buf) {
		return nil, fmt.Errorf("%w: declared %d, actual %d", ErrLengthMismatch, declared, len(buf))
	}

	msgType, err := TypeFromWireCode(buf[offType])
	if err != nil {
		return nil, err
	}

	fromNode, _ := uid.FromBytes(buf[offFromNode : offFromNode+uid.Size])
	fromConn, _ := uid.FromBytes(buf[offFromConn : offFromConn+uid.Size])
	toA, _ := uid.FromBytes(buf[offToPrimary : offToPrimary+uid.Size])
	toB, _ := uid.FromBytes(buf[offToSecond : offToSecond+uid.Size])
	msgID, _ := uid.FromBytes(buf[offMessageID : offMessageID+uid.Size])

	var to Destination
	if msgType.IsBroadcast() {
		to = Destination{GroupID: toA, MessageType: toB}
	} else {
		to = Destination{NodeID: toA, ConnID: toB}
	}

	return &Packet{
		Version:   Version{Major: buf[offMajor], Minor: buf[offMinor]},
		Spread:    buf[offSpread],
		TTL:       buf[offTTL],
		Type:      msgType,
		Flags:     buf[offFlags],
		From:      Peer{NodeID: fromNode, ConnID: fromConn},
		To:        to,
		MessageID: msgID,
		Payload:   BytesPayload(buf[BinaryHeaderSize:]),
	}, nil
}
