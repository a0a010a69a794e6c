// Package codec provides a small pluggable serialization strategy for the
// JSON-shaped values sent over the wire (the status payload, chat text
// components) — independent of the wire package's binary primitive
// codecs, which handle the protocol's own framing and scalar fields.
//
// The protocol only ever calls for JSON here, so there is a single
// implementation. The Codec interface stays anyway: it's the same shape
// the teacher's codec package uses to let a caller ask for serialization
// without naming a concrete format, there it picks between a binary and a
// JSON codec by a CodecType constant.
package codec

import "encoding/json"

// Codec is the interface for serialization/deserialization. Implementing
// it allows adding new formats without changing any caller.
type Codec interface {
	Encode(v any) ([]byte, error)
	Decode(data []byte, v any) error
}

// jsonCodec wraps the standard library's encoding/json behind Codec.
type jsonCodec struct{}

func (jsonCodec) Encode(v any) ([]byte, error) { return json.Marshal(v) }

func (jsonCodec) Decode(data []byte, v any) error { return json.Unmarshal(data, v) }

// JSON is the codec used for every JSON-shaped value this server sends or
// accepts.
var JSON Codec = jsonCodec{}
