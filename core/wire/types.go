package wire

import "fmt"

// MessageType classifies a packet and determines the shape of its
// destination. The canonical names are the binary wire vocabulary;
// "direct" is accepted as a legacy alias of "directed" and normalizes
// to the canonical name on parse.
type MessageType string

const (
	TypeControl   MessageType = "control"
	TypeDirected  MessageType = "directed"
	TypeBroadcast MessageType = "broadcast"
)

// typeAliasDirect is the validator-side legacy spelling of TypeDirected.
const typeAliasDirect = "direct"

// Wire codes for the binary format's type byte.
const (
	codeControl   byte = 0
	codeDirected  byte = 1
	codeBroadcast byte = 2
)

// WireCode returns the binary format's code for the type.
func (t MessageType) WireCode() (byte, error) {
	switch t {
	case TypeControl:
		return codeControl, nil
	case TypeDirected, typeAliasDirect:
		return codeDirected, nil
	case TypeBroadcast:
		return codeBroadcast, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMessageType, string(t))
}

// TypeFromWireCode maps a binary type code back to its message type.
func TypeFromWireCode(code byte) (MessageType, error) {
	switch code {
	case codeControl:
		return TypeControl, nil
	case codeDirected:
		return TypeDirected, nil
	case codeBroadcast:
		return TypeBroadcast, nil
	}
	return "", fmt.Errorf("%w: code %d", ErrUnknownMessageType, code)
}

// ParseType normalizes a type name to its canonical MessageType.
// The "direct" alias normalizes to TypeDirected.
func ParseType(s string) (MessageType, error) {
	switch s {
	case string(TypeControl):
		return TypeControl, nil
	case string(TypeDirected), typeAliasDirect:
		return TypeDirected, nil
	case string(TypeBroadcast):
		return TypeBroadcast, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMessageType, s)
}

// IsBroadcast reports whether the type addresses a group rather than a
// single node/connection pair.
func (t MessageType) IsBroadcast() bool {
	return t == TypeBroadcast
}
