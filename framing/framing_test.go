package framing

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/sycrosity/statik/wire"
)

func encodeFrame(t *testing.T, body []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := WriteFrame(&buf, body); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	return buf.Bytes()
}

func TestWriteFrameBeginsWithLengthVarInt(t *testing.T) {
	body := []byte("hello world")
	frame := encodeFrame(t, body)

	var lenBuf bytes.Buffer
	if err := wire.EncodeVarInt(&lenBuf, int32(len(body))); err != nil {
		t.Fatalf("encode length varint: %v", err)
	}

	if !bytes.HasPrefix(frame, lenBuf.Bytes()) {
		t.Fatalf("frame does not begin with the expected length varint")
	}
	if !bytes.Equal(frame[lenBuf.Len():], body) {
		t.Fatalf("frame body mismatch")
	}
}

func TestExtractRoundTripsMultipleFrames(t *testing.T) {
	bodies := [][]byte{[]byte("a"), []byte("bb"), []byte("ccc")}

	var stream bytes.Buffer
	for _, b := range bodies {
		stream.Write(encodeFrame(t, b))
	}

	data := stream.Bytes()
	var got [][]byte
	for len(data) > 0 {
		frame, consumed, err := Extract(data, wire.MaxPacketSize)
		if err != nil {
			t.Fatalf("Extract: %v", err)
		}
		got = append(got, append([]byte(nil), frame...))
		data = data[consumed:]
	}

	if len(got) != len(bodies) {
		t.Fatalf("got %d frames, want %d", len(got), len(bodies))
	}
	for i := range bodies {
		if !bytes.Equal(got[i], bodies[i]) {
			t.Errorf("frame %d mismatch: got %q, want %q", i, got[i], bodies[i])
		}
	}
}

func TestExtractIncompleteOnPartialData(t *testing.T) {
	full := encodeFrame(t, []byte("hello"))

	for cut := 0; cut < len(full); cut++ {
		_, _, err := Extract(full[:cut], wire.MaxPacketSize)
		if err != ErrIncomplete {
			t.Fatalf("at cut %d: got %v, want ErrIncomplete", cut, err)
		}
	}

	// The full frame must now succeed.
	_, consumed, err := Extract(full, wire.MaxPacketSize)
	if err != nil {
		t.Fatalf("Extract full frame: %v", err)
	}
	if consumed != len(full) {
		t.Errorf("consumed %d, want %d", consumed, len(full))
	}
}

func TestExtractRejectsOversizeFrame(t *testing.T) {
	var buf bytes.Buffer
	_ = wire.EncodeVarInt(&buf, int32(wire.MaxPacketSize+1))

	_, _, err := Extract(buf.Bytes(), wire.MaxPacketSize)
	var oversize *ErrOversizeFrame
	if err == nil {
		t.Fatal("expected oversize frame error")
	}
	if !isOversizeErr(err, &oversize) {
		t.Fatalf("expected *ErrOversizeFrame, got %T: %v", err, err)
	}
}

func isOversizeErr(err error, target **ErrOversizeFrame) bool {
	if e, ok := err.(*ErrOversizeFrame); ok {
		*target = e
		return true
	}
	return false
}

func TestReadFrameRejectsOversizeWithoutBufferingBody(t *testing.T) {
	var buf bytes.Buffer
	_ = wire.EncodeVarInt(&buf, int32(wire.MaxPacketSize+1))
	// Deliberately do not write the (huge) body — ReadFrame must fail
	// before attempting to read it.
	r := bufio.NewReader(&buf)

	_, err := ReadFrame(r, wire.MaxPacketSize)
	if err == nil {
		t.Fatal("expected error for oversize frame")
	}
}

func TestReadFrameMatchesExtract(t *testing.T) {
	body := []byte("ping")
	frame := encodeFrame(t, body)
	r := bufio.NewReader(bytes.NewReader(frame))

	got, err := ReadFrame(r, wire.MaxPacketSize)
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if !bytes.Equal(got, body) {
		t.Errorf("got %q, want %q", got, body)
	}

	extracted, _, err := Extract(frame, wire.MaxPacketSize)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !bytes.Equal(got, extracted) {
		t.Errorf("ReadFrame = %q, Extract = %q", got, extracted)
	}
}
