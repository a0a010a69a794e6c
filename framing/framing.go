// Package framing implements the length-prefixed frame codec that sits
// between the raw TCP byte stream and the packet registry: every frame is
// [total_body_length: varint][body], where the body begins with the
// packet id varint followed by the packet's fields.
package framing

import (
	"bufio"
	"fmt"
	"io"

	"github.com/sycrosity/statik/wire"
)

// ErrIncomplete is returned by Extract when fewer bytes are buffered than
// a full frame requires. It is never fatal — the caller should read more
// from the socket and try again.
var ErrIncomplete = fmt.Errorf("incomplete frame")

// ErrOversizeFrame is returned when a frame's declared body length exceeds
// maxSize. The connection holding this frame must be closed; the body is
// never buffered in full.
type ErrOversizeFrame struct {
	Declared int32
	Max      int
}

func (e *ErrOversizeFrame) Error() string {
	return fmt.Sprintf("frame body length %d exceeds maximum %d", e.Declared, e.Max)
}

// Extract is a pure function from a byte slice to either a complete frame
// body and the number of bytes consumed, or ErrIncomplete when not enough
// data has been buffered yet. It never mutates data and never blocks,
// which lets the connection's read loop and its tests exercise framing
// independently of a live socket.
func Extract(data []byte, maxSize int) (body []byte, consumed int, err error) {
	length, lengthBytes, ok := peekVarInt(data)
	if !ok {
		if len(data) >= 5 {
			return nil, 0, wire.ErrVarIntTooLarge
		}
		return nil, 0, ErrIncomplete
	}
	if length < 0 {
		return nil, 0, fmt.Errorf("frame declares negative body length %d", length)
	}
	if int(length) > maxSize {
		return nil, 0, &ErrOversizeFrame{Declared: length, Max: maxSize}
	}

	total := lengthBytes + int(length)
	if len(data) < total {
		return nil, 0, ErrIncomplete
	}

	return data[lengthBytes:total], total, nil
}

// peekVarInt reads a varint from the front of data without requiring an
// io.Reader, returning ok=false if data doesn't yet contain a complete
// varint (at most 5 bytes).
func peekVarInt(data []byte) (value int32, n int, ok bool) {
	var pos uint
	for i := 0; i < len(data) && i < 5; i++ {
		b := data[i]
		value |= int32(b&0x7F) << pos
		if b&0x80 == 0 {
			return value, i + 1, true
		}
		pos += 7
	}
	return 0, 0, false
}

// ReadFrame reads one complete frame body from buf, blocking for more
// socket data as needed via buf's underlying reader. It returns
// ErrOversizeFrame without buffering an oversize body in full.
func ReadFrame(buf *bufio.Reader, maxSize int) ([]byte, error) {
	length, err := wire.DecodeVarInt(buf)
	if err != nil {
		return nil, err
	}
	if length < 0 {
		return nil, fmt.Errorf("frame declares negative body length %d", length)
	}
	if int(length) > maxSize {
		// Drain is intentionally skipped: an oversize frame means the
		// connection is closed immediately rather than trusting the
		// remainder of the stream to still be framed correctly.
		return nil, &ErrOversizeFrame{Declared: length, Max: maxSize}
	}

	body := make([]byte, length)
	if _, err := io.ReadFull(buf, body); err != nil {
		return nil, err
	}
	return body, nil
}

// WriteFrame encodes body's length as a varint prefix and writes both to
// w. Callers are expected to flush w themselves once the response packet
// for a single inbound frame has been fully written.
func WriteFrame(w io.Writer, body []byte) error {
	if err := wire.EncodeVarInt(w, int32(len(body))); err != nil {
		return err
	}
	_, err := w.Write(body)
	return err
}
