package wire

import (
	"encoding/binary"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/google/uuid"
)

// EncodeBool writes a single 0x00/0x01 byte.
func EncodeBool(w io.Writer, v bool) error {
	b := byte(0)
	if v {
		b = 1
	}
	_, err := w.Write([]byte{b})
	return err
}

// DecodeBool reads a single byte and rejects anything but 0x00 or 0x01.
func DecodeBool(r io.Reader) (bool, error) {
	buf := make([]byte, 1)
	if _, err := io.ReadFull(r, buf); err != nil {
		return false, err
	}
	switch buf[0] {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("decoded boolean is not 0 or 1 (got %d)", buf[0])
	}
}

// EncodeU16/DecodeU16 — big-endian 16-bit unsigned integer.
func EncodeU16(w io.Writer, v uint16) error {
	buf := make([]byte, 2)
	binary.BigEndian.PutUint16(buf, v)
	_, err := w.Write(buf)
	return err
}

func DecodeU16(r io.Reader) (uint16, error) {
	buf := make([]byte, 2)
	if _, err := io.ReadFull(r, buf); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(buf), nil
}

// EncodeU64/DecodeU64 — big-endian 64-bit unsigned integer. Used for the
// Ping/Pong payload, which this codec treats as an opaque 8-byte run
// (see the design notes on signed-vs-unsigned ambiguity in the source).
func EncodeU64(w io.Writer, v uint64) error {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, v)
	_, err := w.Write(buf)
	return err
}

func DecodeU64(r io.Reader) (uint64, error) {
	buf := make([]byte, 8)
	if _, err := io.ReadFull(r, buf); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(buf), nil
}

// EncodeString writes the UTF-8 byte length as a varint followed by the
// bytes themselves. Lengths beyond math.MaxInt32 are an encode error.
func EncodeString(w io.Writer, s string) error {
	const maxInt32 = 1<<31 - 1
	if len(s) > maxInt32 {
		return fmt.Errorf("byte length of string (%d) exceeds i32::MAX", len(s))
	}
	if err := EncodeVarInt(w, int32(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

// DecodeString reads a varint byte length followed by that many bytes,
// rejecting negative lengths and invalid UTF-8.
func DecodeString(r io.Reader) (string, error) {
	n, err := DecodeVarInt(r)
	if err != nil {
		return "", err
	}
	if n < 0 {
		return "", fmt.Errorf("attempt to decode string with negative length %d", n)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", fmt.Errorf("not enough data remaining to decode string of length %d: %w", n, err)
	}
	if !utf8.Valid(buf) {
		return "", fmt.Errorf("decoded string is not valid UTF-8")
	}
	return string(buf), nil
}

// EncodeUUID writes v as its 16 raw big-endian bytes — the vanilla
// protocol encodes UUIDs as two fixed u64 halves rather than a
// varint-prefixed sequence.
func EncodeUUID(w io.Writer, v uuid.UUID) error {
	_, err := w.Write(v[:])
	return err
}

// DecodeUUID reads 16 raw bytes into a uuid.UUID.
func DecodeUUID(r io.Reader) (uuid.UUID, error) {
	var v uuid.UUID
	if _, err := io.ReadFull(r, v[:]); err != nil {
		return uuid.UUID{}, err
	}
	return v, nil
}

// EncodeOptionalUUID writes the presence boolean followed by the UUID
// when present.
func EncodeOptionalUUID(w io.Writer, v *uuid.UUID) error {
	if err := EncodeBool(w, v != nil); err != nil {
		return err
	}
	if v == nil {
		return nil
	}
	return EncodeUUID(w, *v)
}

// DecodeOptionalUUID reads the presence boolean and, when true, the UUID.
func DecodeOptionalUUID(r io.Reader) (*uuid.UUID, error) {
	present, err := DecodeBool(r)
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, nil
	}
	v, err := DecodeUUID(r)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// EncodeRaw writes the trailing opaque byte run verbatim, with no length
// prefix — it is expected to consume the remainder of its containing body.
func EncodeRaw(w io.Writer, b []byte) error {
	_, err := w.Write(b)
	return err
}

// DecodeRaw reads every remaining byte from r.
func DecodeRaw(r io.Reader) ([]byte, error) {
	return io.ReadAll(r)
}
