package wire

import (
	"fmt"
	"io"
)

// MaxPacketSize bounds both accepted inbound frame bodies and the
// pre-allocation any sequence decoder may perform before reading its
// elements, per the hostile-input guard described for sequence decoding.
const MaxPacketSize = 2097152

// EncodeSequence writes len(values) as a non-negative varint followed by
// each value in order, encoded with encodeElem.
func EncodeSequence[T any](w io.Writer, values []T, encodeElem func(io.Writer, T) error) error {
	if err := EncodeVarInt(w, int32(len(values))); err != nil {
		return err
	}
	for _, v := range values {
		if err := encodeElem(w, v); err != nil {
			return err
		}
	}
	return nil
}

// DecodeSequence reads a non-negative varint element count followed by
// that many decoded elements. To bound memory on hostile inputs, the
// backing slice is pre-reserved to at most MaxPacketSize/elemSize
// elements, clamped by the stated count — never the full claimed count.
func DecodeSequence[T any](r io.Reader, elemSize int, decodeElem func(io.Reader) (T, error)) ([]T, error) {
	n, err := DecodeVarInt(r)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("attempt to decode sequence with negative count %d", n)
	}

	if elemSize < 1 {
		elemSize = 1
	}
	maxReserve := MaxPacketSize / elemSize
	reserve := int(n)
	if reserve > maxReserve {
		reserve = maxReserve
	}

	values := make([]T, 0, reserve)
	for i := int32(0); i < n; i++ {
		v, err := decodeElem(r)
		if err != nil {
			return nil, fmt.Errorf("decoding sequence element %d of %d: %w", i, n, err)
		}
		values = append(values, v)
	}
	return values, nil
}
