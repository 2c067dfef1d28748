// Package wire implements the dual-format codec for PAN packets: the binary
// envelope (format v1.0) and the JSON envelope (format v0x7B.0x00), with
// version dispatch on the first wire byte.
//
// # Formats
//
// Binary frames carry a fixed 88-byte header followed by raw payload bytes:
//
//	offset  size  field
//	0       1     major version (0x01)
//	1       1     minor version
//	2       2     total frame length, big-endian
//	4       1     spread
//	5       1     ttl
//	6       1     type code (0=control, 1=directed, 2=broadcast)
//	7       1     flags
//	8       16    from.node_id
//	24      16    from.conn_id
//	40      16    to primary id (node_id or group_id, by type)
//	56      16    to secondary id (conn_id or message_type, by type)
//	72      16    message_id
//	88      N     payload
//
// JSON frames carry a 6-byte prefix [major=0x7B, minor=0x00, total length
// u16 BE, header length u16 BE], then the UTF-8 JSON header, then the
// payload bytes. The serialized header may not exceed 442 bytes.
//
// Payloads are capped at 61440 bytes (60 KiB) in both formats, and the
// total length recorded in each frame must equal the actual buffer length
// on decode.
//
// # Usage
//
// Pure, stateless entry points:
//
//	buf, err := wire.EncodePacket(packet)
//	packet, err := wire.DecodePacket(buf)
//	value, err := wire.DecodeJSONPayload(packet)
//
// Or through a Codec for defaults, metrics, and observer events:
//
//	codec := wire.New(wire.WithObserver(obs))
//	p := wire.NewDirected(codec.Config(), from, to).
//		Payload(wire.BytesPayload(data)).
//		Build()
//	buf, err := codec.Encode(ctx, p)
//
// # Payload ownership
//
// Decoded payloads are zero-copy views into the input buffer. A decoded
// packet must not outlive the buffer it was parsed from unless the caller
// copies the payload out first.
//
// # Concurrency
//
// All operations are synchronous pure functions over their inputs; there is
// no shared state between calls. Concurrent use is safe as long as each
// call owns its buffers. Codec metrics are atomic.
package wire
