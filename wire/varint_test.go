package wire

import (
	"bytes"
	"math"
	"testing"
)

func TestVarIntBoundaryBytes(t *testing.T) {
	cases := []struct {
		value int32
		bytes []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{127, []byte{0x7F}},
		{128, []byte{0x80, 0x01}},
		{255, []byte{0xFF, 0x01}},
		{2147483647, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0x07}},
		{-1, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0x0F}},
		{-2147483648, []byte{0x80, 0x80, 0x80, 0x80, 0x08}},
	}

	for _, c := range cases {
		var buf bytes.Buffer
		if err := EncodeVarInt(&buf, c.value); err != nil {
			t.Fatalf("EncodeVarInt(%d) failed: %v", c.value, err)
		}
		if !bytes.Equal(buf.Bytes(), c.bytes) {
			t.Errorf("EncodeVarInt(%d) = % X, want % X", c.value, buf.Bytes(), c.bytes)
		}

		decoded, err := DecodeVarInt(bytes.NewReader(c.bytes))
		if err != nil {
			t.Fatalf("DecodeVarInt(% X) failed: %v", c.bytes, err)
		}
		if decoded != c.value {
			t.Errorf("DecodeVarInt(% X) = %d, want %d", c.bytes, decoded, c.value)
		}
	}
}

func TestVarIntTooLarge(t *testing.T) {
	// Six bytes, every one with the continuation bit set.
	input := []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x01}
	_, err := DecodeVarInt(bytes.NewReader(input))
	if err != ErrVarIntTooLarge {
		t.Fatalf("expected ErrVarIntTooLarge, got %v", err)
	}
}

func TestVarIntRoundTrip(t *testing.T) {
	samples := []int32{
		0, 1, -1, 127, 128, -128, 255, -255,
		math.MaxInt32, math.MinInt32,
		math.MaxInt32 - 1, math.MinInt32 + 1,
		1000000, -1000000,
	}
	for _, v := range samples {
		var buf bytes.Buffer
		if err := EncodeVarInt(&buf, v); err != nil {
			t.Fatalf("encode %d: %v", v, err)
		}
		if buf.Len() > 5 {
			t.Errorf("encode %d used %d bytes, want <= 5", v, buf.Len())
		}
		if buf.Len() != SizeOfVarInt(v) {
			t.Errorf("SizeOfVarInt(%d) = %d, actual encoded length %d", v, SizeOfVarInt(v), buf.Len())
		}

		decoded, err := DecodeVarInt(bytes.NewReader(buf.Bytes()))
		if err != nil {
			t.Fatalf("decode %d: %v", v, err)
		}
		if decoded != v {
			t.Errorf("round trip %d -> %d", v, decoded)
		}
	}
}
