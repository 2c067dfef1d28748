// Package uid converts between canonical UUID text and the fixed 16-byte
// binary representation used by the PAN wire formats.
//
// Input text is case-insensitive and dashes may appear anywhere; output is
// always the canonical lower-case dashed form. Binary form is always exactly
// 16 bytes.
package uid

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Size is the length of a UUID in binary form.
const Size = 16

// TextLen is the length of a UUID in canonical dashed text form.
const TextLen = 36

// ErrFormat is returned when input is not a syntactically valid UUID.
var ErrFormat = errors.New("invalid uuid format")

// ToBytes converts UUID text to its 16-byte binary form. Dashes are stripped
// before parsing; the remainder must be exactly 32 hex characters.
func ToBytes(s string) ([Size]byte, error) {
	var out [Size]byte

	hexOnly := strings.ReplaceAll(s, "-", "")
	if len(hexOnly) != 2*Size {
		return out, fmt.Errorf("%w: %d hex chars, want %d", ErrFormat, len(hexOnly), 2*Size)
	}
	if _, err := hex.Decode(out[:], []byte(hexOnly)); err != nil {
		return out, fmt.Errorf("%w: %q", ErrFormat, s)
	}
	return out, nil
}

// FromBytes converts a 16-byte binary UUID to canonical lower-case dashed
// text. The input must be exactly 16 bytes.
func FromBytes(b []byte) (string, error) {
	u, err := uuid.FromBytes(b)
	if err != nil {
		return "", fmt.Errorf("%w: %d bytes, want %d", ErrFormat, len(b), Size)
	}
	return u.String(), nil
}

// Normalize returns the canonical lower-case dashed form of a UUID string.
func Normalize(s string) (string, error) {
	b, err := ToBytes(s)
	if err != nil {
		return "", err
	}
	return FromBytes(b[:])
}

// New generates a fresh UUID in canonical text form.
func New() string {
	return uuid.Must(uuid.NewV7()).String()
}
