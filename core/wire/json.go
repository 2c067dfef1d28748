package wire

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/pan-protocol/pan/core/uid"
	"github.com/pan-protocol/pan/core/validate"
)

// JSONMajor is the first wire byte of a JSON-format frame. It is '{', so a
// JSON frame is distinguishable from a binary one on the first byte.
const JSONMajor byte = 0x7B

// JSONMinor is the only minor version of the JSON format.
const JSONMinor byte = 0x00

// MaxJSONHeaderSize caps the serialized JSON header in bytes.
const MaxJSONHeaderSize = 442

// jsonPrefixSize is the fixed frame prefix: major, minor, total length u16,
// header length u16, all big-endian.
const jsonPrefixSize = 6

const (
	offJSONTotalLen  = 2 // u16
	offJSONHeaderLen = 4 // u16
)

// jsonHeader is the wire shape of the JSON format's header object.
type jsonHeader struct {
	Spread    byte         `json:"spread"`
	TTL       *int         `json:"ttl"`
	Type      string       `json:"type"`
	Flags     byte         `json:"flags"`
	From      Peer         `json:"from"`
	To        *Destination `json:"to"`
	MessageID string       `json:"message_id"`
}

// headerView adapts the parsed header to the validator's representation.
func (h *jsonHeader) headerView() *validate.Header {
	var to *validate.Dest
	if h.To != nil {
		to = (*validate.Dest)(h.To)
	}
	return &validate.Header{
		MessageID: h.MessageID,
		From:      validate.Peer(h.From),
		To:        to,
		TTL:       h.TTL,
		Type:      h.Type,
	}
}

// encodeJSON serializes a packet in format v0x7B.0x00: the 6-byte prefix,
// the JSON header, then the payload bytes. A JSON-valued payload is
// serialized to UTF-8 text; an absent payload becomes zero bytes. The header
// is validated (node origin) before any bytes are produced. If the packet
// has no message ID a fresh one is generated and written back.
func encodeJSON(p *Packet) ([]byte, error) {
	payload, err := p.Payload.bytes()
	if err != nil {
		return nil, err
	}
	if len(payload) > MaxPayloadSize {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", ErrPayloadTooLarge, len(payload), MaxPayloadSize)
	}

	if p.MessageID == "" {
		p.MessageID = uid.New()
	}

	ttl := int(p.TTL)
	hdr := jsonHeader{
		Spread:    p.Spread,
		TTL:       &ttl,
		Type:      string(p.Type),
		Flags:     p.Flags,
		From:      p.From,
		To:        &p.To,
		MessageID: p.MessageID,
	}
	if !validate.ValidateHeader(hdr.headerView(), payload, false) {
		return nil, ErrInvalidHeader
	}

	headerBytes, err := json.Marshal(&hdr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedHeader, err)
	}
	if len(headerBytes) > MaxJSONHeaderSize {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", ErrHeaderTooLarge, len(headerBytes), MaxJSONHeaderSize)
	}

	total := jsonPrefixSize + len(headerBytes) + len(payload)
	buf := make([]byte, total)
	buf[0] = JSONMajor
	buf[1] = JSONMinor
	binary.BigEndian.PutUint16(buf[offJSONTotalLen:], uint16(total))
	binary.BigEndian.PutUint16(buf[offJSONHeaderLen:], uint16(len(headerBytes)))
	copy(buf[jsonPrefixSize:], headerBytes)
	copy(buf[jsonPrefixSize+len(headerBytes):], payload)
	return buf, nil
}

// decodeJSON parses a format v0x7B frame. The returned packet's payload is
// a zero-copy view into buf; callers that reuse the buffer must copy it out
// first. The header is validated as agent-originated, so inbound TTL is
// bounded to [0,1].
func decodeJSON(buf []byte) (*Packet, error) {
	if len(buf) < jsonPrefixSize {
		return nil, fmt.Errorf("%w: %d bytes, need %d", ErrTruncated, len(buf), jsonPrefixSize)
	}
	if buf[0] != JSONMajor || buf[1] != JSONMinor {
		return nil, fmt.Errorf("%w: %d.%d", ErrUnsupportedVersion, buf[0], buf[1])
	}

	declared := int(binary.BigEndian.Uint16(buf[offJSONTotalLen:]))
	if declared != len(buf) {
		return nil, fmt.Errorf("%w: declared %d, actual %d", ErrLengthMismatch, declared, len(buf))
	}

	headerLen := int(binary.BigEndian.Uint16(buf[offJSONHeaderLen:]))
	if headerLen == 0 || headerLen > MaxJSONHeaderSize {
		return nil, fmt.Errorf("%w: %d", ErrInvalidHeaderLength, headerLen)
	}
	if jsonPrefixSize+headerLen > len(buf) {
		return nil, fmt.Errorf("%w: header %d bytes, frame %d", ErrHeaderOutOfBounds, headerLen, len(buf))
	}

	var hdr jsonHeader
	if err := json.Unmarshal(buf[jsonPrefixSize:jsonPrefixSize+headerLen], &hdr); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedHeader, err)
	}

	payload := buf[jsonPrefixSize+headerLen:]
	if !validate.ValidateHeader(hdr.headerView(), payload, true) {
		return nil, ErrInvalidHeader
	}

	// Validation guarantees a recognized type and a present TTL.
	msgType, err := ParseType(hdr.Type)
	if err != nil {
		return nil, err
	}

	return &Packet{
		Version:   Version{Major: buf[0], Minor: buf[1]},
		Spread:    hdr.Spread,
		TTL:       byte(*hdr.TTL),
		Type:      msgType,
		Flags:     hdr.Flags,
		From:      hdr.From,
		To:        *hdr.To,
		MessageID: hdr.MessageID,
		Payload:   BytesPayload(payload),
	}, nil
}
