package wire_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/pan-protocol/pan/core/wire"
)

const (
	uuidZeroish = "00000000-0000-0000-0000-000000000000"
	uuid1       = "11111111-1111-1111-1111-111111111111"
	uuid2       = "22222222-2222-2222-2222-222222222222"
	uuid3       = "33333333-3333-3333-3333-333333333333"
	uuid4       = "44444444-4444-4444-4444-444444444444"
	uuid5       = "55555555-5555-5555-5555-555555555555"
)

func directedPacket() *wire.Packet {
	return &wire.Packet{
		Version:   wire.VersionBinary,
		Spread:    3,
		TTL:       7,
		Type:      wire.TypeDirected,
		Flags:     0x80,
		From:      wire.Peer{NodeID: uuid1, ConnID: uuid2},
		To:        wire.Destination{NodeID: uuid3, ConnID: uuid4},
		MessageID: uuid5,
		Payload:   wire.BytesPayload([]byte("hello")),
	}
}

func TestBinaryRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		packet *wire.Packet
	}{
		{name: "directed", packet: directedPacket()},
		{
			name: "control",
			packet: &wire.Packet{
				Version:   wire.VersionBinary,
				TTL:       1,
				Type:      wire.TypeControl,
				From:      wire.Peer{NodeID: uuid1, ConnID: uuid2},
				To:        wire.Destination{NodeID: uuid3, ConnID: uuid4},
				MessageID: uuid5,
				Payload:   wire.BytesPayload([]byte{0xDE, 0xAD}),
			},
		},
		{
			name: "broadcast",
			packet: &wire.Packet{
				Version:   wire.VersionBinary,
				Spread:    10,
				TTL:       255,
				Type:      wire.TypeBroadcast,
				From:      wire.Peer{NodeID: uuid1, ConnID: uuid2},
				To:        wire.Destination{GroupID: uuid3, MessageType: uuid4},
				MessageID: uuid5,
				Payload:   wire.BytesPayload(nil),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, err := wire.EncodePacket(tt.packet)
			if err != nil {
				t.Fatalf("EncodePacket error: %v", err)
			}
			if len(buf) != wire.BinaryHeaderSize+len(tt.packet.Payload.Raw()) {
				t.Fatalf("frame length = %d, want %d", len(buf), wire.BinaryHeaderSize+len(tt.packet.Payload.Raw()))
			}

			got, err := wire.DecodePacket(buf)
			if err != nil {
				t.Fatalf("DecodePacket error: %v", err)
			}

			want := tt.packet
			if got.Version != want.Version {
				t.Errorf("Version = %+v, want %+v", got.Version, want.Version)
			}
			if got.Spread != want.Spread || got.TTL != want.TTL || got.Flags != want.Flags {
				t.Errorf("spread/ttl/flags = %d/%d/%d, want %d/%d/%d",
					got.Spread, got.TTL, got.Flags, want.Spread, want.TTL, want.Flags)
			}
			if got.Type != want.Type {
				t.Errorf("Type = %q, want %q", got.Type, want.Type)
			}
			if got.From != want.From {
				t.Errorf("From = %+v, want %+v", got.From, want.From)
			}
			if got.To != want.To {
				t.Errorf("To = %+v, want %+v", got.To, want.To)
			}
			if got.MessageID != want.MessageID {
				t.Errorf("MessageID = %q, want %q", got.MessageID, want.MessageID)
			}
			if !bytes.Equal(got.Payload.Raw(), want.Payload.Raw()) {
				t.Errorf("payload = %x, want %x", got.Payload.Raw(), want.Payload.Raw())
			}
		})
	}
}

func TestBinaryEncode_ControlScenario(t *testing.T) {
	p := &wire.Packet{
		Version: wire.VersionBinary,
		TTL:     1,
		Type:    wire.TypeControl,
		From:    wire.Peer{NodeID: uuid1, ConnID: uuid2},
		To:      wire.Destination{NodeID: uuid3, ConnID: uuid4},
		Payload: wire.BytesPayload([]byte{0x01, 0x02, 0x03}),
	}

	buf, err := wire.EncodePacket(p)
	if err != nil {
		t.Fatalf("EncodePacket error: %v", err)
	}
	if len(buf) != 91 {
		t.Fatalf("frame length = %d, want 91", len(buf))
	}
	if buf[6] != 0 {
		t.Errorf("type byte = %d, want 0 (control)", buf[6])
	}
	if p.MessageID == "" {
		t.Fatal("MessageID not generated on encode")
	}
	if bytes.Equal(buf[72:88], make([]byte, 16)) {
		t.Error("message_id bytes are zero, want fresh id")
	}

	got, err := wire.DecodePacket(buf)
	if err != nil {
		t.Fatalf("DecodePacket error: %v", err)
	}
	if got.TTL != 1 || got.Type != wire.TypeControl {
		t.Errorf("decoded ttl/type = %d/%q, want 1/control", got.TTL, got.Type)
	}
	if got.From != p.From || got.To != p.To {
		t.Errorf("decoded addressing mismatch: from %+v to %+v", got.From, got.To)
	}
	if got.MessageID != p.MessageID {
		t.Errorf("MessageID = %q, want %q", got.MessageID, p.MessageID)
	}
	if !bytes.Equal(got.Payload.Raw(), []byte{0x01, 0x02, 0x03}) {
		t.Errorf("payload = %x, want 010203", got.Payload.Raw())
	}
}

func TestBinaryEncode_PayloadBoundary(t *testing.T) {
	p := directedPacket()

	p.Payload = wire.BytesPayload(make([]byte, wire.MaxPayloadSize))
	buf, err := wire.EncodePacket(p)
	if err != nil {
		t.Fatalf("EncodePacket at limit error: %v", err)
	}
	if len(buf) != wire.BinaryHeaderSize+wire.MaxPayloadSize {
		t.Errorf("frame length = %d, want %d", len(buf), wire.BinaryHeaderSize+wire.MaxPayloadSize)
	}

	p.Payload = wire.BytesPayload(make([]byte, wire.MaxPayloadSize+1))
	if _, err := wire.EncodePacket(p); !errors.Is(err, wire.ErrPayloadTooLarge) {
		t.Errorf("EncodePacket over limit err = %v, want ErrPayloadTooLarge", err)
	}
}

func TestBinaryEncode_RejectsJSONPayload(t *testing.T) {
	p := directedPacket()
	p.Payload = wire.JSONPayload(map[string]any{"k": "v"})

	if _, err := wire.EncodePacket(p); !errors.Is(err, wire.ErrPayloadNotBytes) {
		t.Errorf("err = %v, want ErrPayloadNotBytes", err)
	}
}

func TestBinaryEncode_BadUUID(t *testing.T) {
	p := directedPacket()
	p.From.NodeID = "not-a-uuid"

	if _, err := wire.EncodePacket(p); err == nil {
		t.Error("EncodePacket with bad from.node_id succeeded")
	}
}

func TestBinaryDecode_Truncated(t *testing.T) {
	for _, n := range []int{1, 10, wire.BinaryHeaderSize - 1} {
		buf := make([]byte, n)
		buf[0] = 0x01
		if _, err := wire.DecodePacket(buf); !errors.Is(err, wire.ErrTruncated) {
			t.Errorf("DecodePacket(len %d) err = %v, want ErrTruncated", n, err)
		}
	}
}

func TestBinaryDecode_LengthMismatch(t *testing.T) {
	buf, err := wire.EncodePacket(directedPacket())
	if err != nil {
		t.Fatalf("EncodePacket error: %v", err)
	}

	// Flip the declared total length without changing the buffer.
	binary.BigEndian.PutUint16(buf[2:4], uint16(len(buf)+1))
	if _, err := wire.DecodePacket(buf); !errors.Is(err, wire.ErrLengthMismatch) {
		t.Errorf("err = %v, want ErrLengthMismatch", err)
	}
}

func TestBinaryDecode_UnknownTypeCode(t *testing.T) {
	buf, err := wire.EncodePacket(directedPacket())
	if err != nil {
		t.Fatalf("EncodePacket error: %v", err)
	}

	buf[6] = 9
	if _, err := wire.DecodePacket(buf); !errors.Is(err, wire.ErrUnknownMessageType) {
		t.Errorf("err = %v, want ErrUnknownMessageType", err)
	}
}

func TestBinaryDecode_PayloadAliasesBuffer(t *testing.T) {
	buf, err := wire.EncodePacket(directedPacket())
	if err != nil {
		t.Fatalf("EncodePacket error: %v", err)
	}

	got, err := wire.DecodePacket(buf)
	if err != nil {
		t.Fatalf("DecodePacket error: %v", err)
	}

	buf[wire.BinaryHeaderSize] = 'H'
	if got.Payload.Raw()[0] != 'H' {
		t.Error("payload does not alias the input buffer")
	}
}
