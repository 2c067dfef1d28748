package wire

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"
)

// EncodePacket serializes a packet in the format selected by its declared
// major version: 0x01 for binary, 0x7B for JSON. Any other major version
// fails with ErrUnsupportedVersion.
func EncodePacket(p *Packet) ([]byte, error) {
	switch p.Version.Major {
	case BinaryMajor:
		return encodeBinary(p)
	case JSONMajor:
		return encodeJSON(p)
	}
	return nil, fmt.Errorf("%w: major 0x%02x", ErrUnsupportedVersion, p.Version.Major)
}

// DecodePacket parses a received frame, dispatching on its first byte with
// the same rule as EncodePacket. The returned packet's payload aliases buf.
func DecodePacket(buf []byte) (*Packet, error) {
	if len(buf) == 0 {
		return nil, fmt.Errorf("%w: empty buffer", ErrTruncated)
	}
	switch buf[0] {
	case BinaryMajor:
		return decodeBinary(buf)
	case JSONMajor:
		return decodeJSON(buf)
	}
	return nil, fmt.Errorf("%w: major 0x%02x", ErrUnsupportedVersion, buf[0])
}

// DecodeJSONPayload decodes a packet's payload bytes as UTF-8 JSON text.
// Decode never does this implicitly; the payload stays opaque bytes until a
// caller asks. Fails with ErrMalformedPayload on invalid UTF-8 or invalid
// JSON.
func DecodeJSONPayload(p *Packet) (any, error) {
	raw := p.Payload.Raw()
	if !utf8.Valid(raw) {
		return nil, fmt.Errorf("%w: invalid utf-8", ErrMalformedPayload)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return v, nil
}
