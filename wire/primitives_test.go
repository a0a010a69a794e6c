package wire

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestBoolRoundTrip(t *testing.T) {
	for _, v := range []bool{true, false} {
		var buf bytes.Buffer
		if err := EncodeBool(&buf, v); err != nil {
			t.Fatalf("encode %v: %v", v, err)
		}
		decoded, err := DecodeBool(&buf)
		if err != nil {
			t.Fatalf("decode %v: %v", v, err)
		}
		if decoded != v {
			t.Errorf("round trip bool %v -> %v", v, decoded)
		}
	}
}

func TestDecodeBoolRejectsInvalidByte(t *testing.T) {
	_, err := DecodeBool(bytes.NewReader([]byte{0x02}))
	if err == nil {
		t.Fatal("expected error for non-0/1 boolean byte")
	}
}

func TestU16RoundTrip(t *testing.T) {
	for _, v := range []uint16{0, 1, 25565, 65535} {
		var buf bytes.Buffer
		if err := EncodeU16(&buf, v); err != nil {
			t.Fatalf("encode %d: %v", v, err)
		}
		decoded, err := DecodeU16(&buf)
		if err != nil {
			t.Fatalf("decode %d: %v", v, err)
		}
		if decoded != v {
			t.Errorf("round trip u16 %d -> %d", v, decoded)
		}
	}
}

func TestU64RoundTrip(t *testing.T) {
	payload := uint64(0x0123456789ABCDEF)
	var buf bytes.Buffer
	if err := EncodeU64(&buf, payload); err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := []byte{0x01, 0x23, 0x45, 0x67, 0x89, 0xAB, 0xCD, 0xEF}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("EncodeU64 = % X, want % X", buf.Bytes(), want)
	}
	decoded, err := DecodeU64(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded != payload {
		t.Errorf("round trip u64 %d -> %d", payload, decoded)
	}
}

func TestStringRoundTrip(t *testing.T) {
	lengths := []int{0, 1, 127, 128, 65535}
	for _, n := range lengths {
		s := strings.Repeat("a", n)
		var buf bytes.Buffer
		if err := EncodeString(&buf, s); err != nil {
			t.Fatalf("encode len %d: %v", n, err)
		}
		decoded, err := DecodeString(&buf)
		if err != nil {
			t.Fatalf("decode len %d: %v", n, err)
		}
		if decoded != s {
			t.Errorf("round trip string of length %d mismatched", n)
		}
	}
}

func TestDecodeStringRejectsInvalidUTF8(t *testing.T) {
	var buf bytes.Buffer
	_ = EncodeVarInt(&buf, 1)
	buf.Write([]byte{0xFF})
	if _, err := DecodeString(&buf); err == nil {
		t.Fatal("expected error for invalid UTF-8")
	}
}

func TestDecodeStringRejectsNegativeLength(t *testing.T) {
	var buf bytes.Buffer
	_ = EncodeVarInt(&buf, -1)
	if _, err := DecodeString(&buf); err == nil {
		t.Fatal("expected error for negative length")
	}
}

func TestUUIDRoundTrip(t *testing.T) {
	id := uuid.New()
	var buf bytes.Buffer
	if err := EncodeUUID(&buf, id); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if buf.Len() != 16 {
		t.Fatalf("expected 16 raw bytes, got %d", buf.Len())
	}
	decoded, err := DecodeUUID(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded != id {
		t.Errorf("round trip uuid %v -> %v", id, decoded)
	}
}

func TestOptionalUUIDRoundTrip(t *testing.T) {
	id := uuid.New()

	var withValue bytes.Buffer
	if err := EncodeOptionalUUID(&withValue, &id); err != nil {
		t.Fatalf("encode present: %v", err)
	}
	decoded, err := DecodeOptionalUUID(&withValue)
	if err != nil {
		t.Fatalf("decode present: %v", err)
	}
	if decoded == nil || *decoded != id {
		t.Errorf("round trip optional uuid present: got %v, want %v", decoded, id)
	}

	var absent bytes.Buffer
	if err := EncodeOptionalUUID(&absent, nil); err != nil {
		t.Fatalf("encode absent: %v", err)
	}
	decoded, err = DecodeOptionalUUID(&absent)
	if err != nil {
		t.Fatalf("decode absent: %v", err)
	}
	if decoded != nil {
		t.Errorf("expected nil uuid, got %v", decoded)
	}
}

func TestRawBytesConsumesRemainder(t *testing.T) {
	payload := []byte{0x01, 0x02, 0x03, 0x04}
	var buf bytes.Buffer
	if err := EncodeRaw(&buf, payload); err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := DecodeRaw(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !bytes.Equal(decoded, payload) {
		t.Errorf("round trip raw bytes: got % X, want % X", decoded, payload)
	}
}
