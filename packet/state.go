// Package packet defines the Minecraft Java Edition packet registry for
// protocol version 763 (game version 1.20.1): the per-(state, direction)
// packet structs, their varint-id-tagged encode/decode, and the
// table-driven packet groups used to dispatch an inbound frame body to
// the matching packet type.
package packet

import (
	"fmt"

	"github.com/sycrosity/statik/wire"
)

// State is the current phase of a connection. It is encoded on the wire
// only inside the Handshake packet's NextState field, as a varint 0-3.
type State int32

const (
	StateHandshake State = 0
	StateStatus    State = 1
	StateLogin     State = 2
	StatePlay      State = 3
)

func (s State) String() string {
	switch s {
	case StateHandshake:
		return "Handshake"
	case StateStatus:
		return "Status"
	case StateLogin:
		return "Login"
	case StatePlay:
		return "Play"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// ProtocolVersion and MinecraftVersion identify the wire protocol and
// human-readable game version this server impersonates.
const (
	ProtocolVersion  = 763
	MinecraftVersion = "1.20.1"
)

// MaxPacketSize re-exports wire.MaxPacketSize, which is the single
// canonical definition (packet already imports wire, so the constant
// can't live here and be referenced the other way without a cycle).
const MaxPacketSize = wire.MaxPacketSize
