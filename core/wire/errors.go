package wire

import "errors"

// Sentinel errors for encode/decode failures. Every failure is terminal for
// the call that detected it; callers branch with errors.Is.
var (
	// ErrUnsupportedVersion means the packet's declared major version, or
	// the first byte of a received buffer, matches no known wire format.
	ErrUnsupportedVersion = errors.New("unsupported wire version")

	// ErrTruncated means the buffer is shorter than the format's minimum
	// frame size.
	ErrTruncated = errors.New("truncated frame")

	// ErrLengthMismatch means the total length recorded in the frame header
	// disagrees with the actual buffer length.
	ErrLengthMismatch = errors.New("declared length does not match buffer")

	// ErrPayloadTooLarge means the payload exceeds MaxPayloadSize.
	ErrPayloadTooLarge = errors.New("payload too large")

	// ErrPayloadNotBytes means a JSON-valued payload was handed to the
	// binary format, which carries raw bytes only.
	ErrPayloadNotBytes = errors.New("binary format requires a byte payload")

	// ErrHeaderTooLarge means the serialized JSON header exceeds
	// MaxJSONHeaderSize.
	ErrHeaderTooLarge = errors.New("json header too large")

	// ErrInvalidHeaderLength means the declared JSON header length is zero
	// or exceeds MaxJSONHeaderSize.
	ErrInvalidHeaderLength = errors.New("invalid json header length")

	// ErrHeaderOutOfBounds means the declared JSON header length runs past
	// the end of the buffer.
	ErrHeaderOutOfBounds = errors.New("json header exceeds frame bounds")

	// ErrMalformedHeader means the JSON header bytes failed to parse.
	ErrMalformedHeader = errors.New("malformed json header")

	// ErrInvalidHeader means the header failed structural validation.
	ErrInvalidHeader = errors.New("invalid header")

	// ErrUnknownMessageType means a type name or wire code matches no
	// recognized message type.
	ErrUnknownMessageType = errors.New("unknown message type")

	// ErrMalformedPayload means payload bytes could not be decoded as
	// UTF-8 JSON.
	ErrMalformedPayload = errors.New("malformed json payload")
)
