package packet

import (
	"io"

	"github.com/sycrosity/statik/wire"
)

// StatusRequest carries no fields; the client sends it to ask for a
// StatusResponse.
type StatusRequest struct{}

const StatusRequestID int32 = 0x00

func (p *StatusRequest) ID() int32             { return StatusRequestID }
func (p *StatusRequest) Encode(w io.Writer) error {
	return wire.EncodeVarInt(w, StatusRequestID)
}
func (p *StatusRequest) Decode(r io.Reader) error { return nil }

// Ping carries an opaque 8-byte payload the server must echo back
// unmodified in a Pong.
type Ping struct {
	Payload uint64
}

const PingID int32 = 0x01

func (p *Ping) ID() int32 { return PingID }

func (p *Ping) Encode(w io.Writer) error {
	if err := wire.EncodeVarInt(w, PingID); err != nil {
		return err
	}
	return wire.EncodeU64(w, p.Payload)
}

func (p *Ping) Decode(r io.Reader) error {
	payload, err := wire.DecodeU64(r)
	if err != nil {
		return err
	}
	p.Payload = payload
	return nil
}

// StatusResponse carries the JSON-serialized status payload shown to a
// client's server list entry.
type StatusResponse struct {
	JSONResponse string
}

const StatusResponseID int32 = 0x00

func (p *StatusResponse) ID() int32 { return StatusResponseID }

func (p *StatusResponse) Encode(w io.Writer) error {
	if err := wire.EncodeVarInt(w, StatusResponseID); err != nil {
		return err
	}
	return wire.EncodeString(w, p.JSONResponse)
}

func (p *StatusResponse) Decode(r io.Reader) error {
	s, err := wire.DecodeString(r)
	if err != nil {
		return err
	}
	p.JSONResponse = s
	return nil
}

// Pong echoes a Ping's payload back to the client.
type Pong struct {
	Payload uint64
}

const PongID int32 = 0x01

func (p *Pong) ID() int32 { return PongID }

func (p *Pong) Encode(w io.Writer) error {
	if err := wire.EncodeVarInt(w, PongID); err != nil {
		return err
	}
	return wire.EncodeU64(w, p.Payload)
}

func (p *Pong) Decode(r io.Reader) error {
	payload, err := wire.DecodeU64(r)
	if err != nil {
		return err
	}
	p.Payload = payload
	return nil
}

// StatusServerboundGroup holds the Status-state, client-to-server packets.
var StatusServerboundGroup = Group{
	StatusRequestID: func() Packet { return &StatusRequest{} },
	PingID:          func() Packet { return &Ping{} },
}

// StatusClientboundGroup holds the Status-state, server-to-client packets.
var StatusClientboundGroup = Group{
	StatusResponseID: func() Packet { return &StatusResponse{} },
	PongID:           func() Packet { return &Pong{} },
}
