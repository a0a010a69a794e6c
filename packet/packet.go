package packet

import (
	"fmt"
	"io"
)

// Direction distinguishes client-to-server from server-to-client packets
// within a given State — the same numeric id means different things in
// each direction.
type Direction int

const (
	Serverbound Direction = iota // client -> server
	Clientbound                  // server -> client
)

// Packet is implemented by every record in the registry. Encode writes the
// packet's id varint followed by its fields in declared order; Decode
// reads the fields in declared order (the id varint itself is consumed by
// the enclosing packet group, not by Decode).
type Packet interface {
	ID() int32
	Encode(w io.Writer) error
	Decode(r io.Reader) error
}

// Group is a table-driven tagged union of every packet for one
// (state, direction) pair: a constructor keyed by the packet's numeric
// id, used to decode an inbound frame body once its id varint has been
// read off the front.
type Group map[int32]func() Packet

// Decode constructs the packet registered under id and decodes its fields
// from r; the caller has already read the id varint off the front of the
// body. Unknown ids produce an error naming the offending id.
func (g Group) Decode(id int32, r io.Reader) (Packet, error) {
	newPacket, ok := g[id]
	if !ok {
		return nil, &UnknownPacketError{ID: id}
	}
	p := newPacket()
	if err := p.Decode(r); err != nil {
		return nil, err
	}
	return p, nil
}

// UnknownPacketError reports an id with no matching entry in a Group.
type UnknownPacketError struct {
	ID int32
}

func (e *UnknownPacketError) Error() string {
	return fmt.Sprintf("unknown packet id 0x%02X", e.ID)
}
