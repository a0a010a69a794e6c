// Package player holds the small amount of per-connection identity this
// server tracks: just enough to name the client in logs and in a rendered
// disconnect message, never anything resembling real game state.
package player

import "github.com/google/uuid"

// Player is populated from a LoginStart packet. Before login, or for a
// connection that never reaches Login state, the zero value is used: an
// empty Username and a nil UUID, matching the original implementation's
// unwrap_or_default behavior when rendering a template for a connection
// that hasn't identified itself yet.
type Player struct {
	Username string
	UUID     *uuid.UUID
}

// UUIDString returns the player's UUID in its canonical hyphenated form,
// or "" if the player has no UUID yet.
func (p Player) UUIDString() string {
	if p.UUID == nil {
		return ""
	}
	return p.UUID.String()
}
