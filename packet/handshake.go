package packet

import (
	"io"

	"github.com/sycrosity/statik/wire"
)

// Handshake is the sole Handshake-state packet: the client announces its
// protocol version, the address/port it dialed, and which state it wants
// to move to next.
type Handshake struct {
	ProtocolVersion int32
	ServerAddress   string
	ServerPort      uint16
	NextState       State
}

const HandshakeID int32 = 0x00

func (p *Handshake) ID() int32 { return HandshakeID }

func (p *Handshake) Encode(w io.Writer) error {
	if err := wire.EncodeVarInt(w, HandshakeID); err != nil {
		return err
	}
	if err := wire.EncodeVarInt(w, p.ProtocolVersion); err != nil {
		return err
	}
	if err := wire.EncodeString(w, p.ServerAddress); err != nil {
		return err
	}
	if err := wire.EncodeU16(w, p.ServerPort); err != nil {
		return err
	}
	return wire.EncodeVarInt(w, int32(p.NextState))
}

func (p *Handshake) Decode(r io.Reader) error {
	version, err := wire.DecodeVarInt(r)
	if err != nil {
		return err
	}
	addr, err := wire.DecodeString(r)
	if err != nil {
		return err
	}
	port, err := wire.DecodeU16(r)
	if err != nil {
		return err
	}
	next, err := wire.DecodeVarInt(r)
	if err != nil {
		return err
	}
	p.ProtocolVersion = version
	p.ServerAddress = addr
	p.ServerPort = port
	p.NextState = State(next)
	return nil
}

// HandshakeGroup is the Serverbound Handshake-state packet group. It has
// only one member, but is expressed the same way as every other group for
// consistency with the registry's table-driven dispatch.
var HandshakeGroup = Group{
	HandshakeID: func() Packet { return &Handshake{} },
}
