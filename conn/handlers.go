package conn

import (
	"fmt"
	"io"

	"github.com/flosch/pongo2/v6"
	"go.uber.org/zap"

	"github.com/sycrosity/statik/packet"
	"github.com/sycrosity/statik/player"
)

// handleHandshake accepts the sole Handshake-state packet and transitions
// the connection to the state the client asked for. It never closes the
// connection on its own — a bad next_state is a fatal protocol error, the
// state machine has no "stay in Handshake" option.
func (c *Connection) handleHandshake(id int32, r io.Reader) (done bool, err error) {
	p, err := packet.HandshakeGroup.Decode(id, r)
	if err != nil {
		return true, err
	}
	hs := p.(*packet.Handshake)

	if hs.ProtocolVersion != packet.ProtocolVersion {
		c.log.Error("handshake declared a different protocol version",
			zap.Int32("declared", hs.ProtocolVersion),
			zap.Int32("expected", packet.ProtocolVersion))
		return true, fmt.Errorf("protocol version mismatch: declared %d, expected %d", hs.ProtocolVersion, packet.ProtocolVersion)
	}

	switch hs.NextState {
	case packet.StateStatus, packet.StateLogin:
		c.state = hs.NextState
	default:
		return true, fmt.Errorf("handshake requested invalid next state %d", hs.NextState)
	}
	return false, nil
}

// handleStatus answers the two Status-state packets: a StatusRequest gets
// the rendered status payload, a Ping gets its payload echoed back in a
// Pong. A StatusRequest keeps the connection open for the Ping that
// follows; the Pong is terminal — a real client disconnects after it, and
// this server doesn't wait around for it.
func (c *Connection) handleStatus(id int32, r io.Reader) (done bool, err error) {
	p, err := packet.StatusServerboundGroup.Decode(id, r)
	if err != nil {
		return true, err
	}

	switch pkt := p.(type) {
	case *packet.StatusRequest:
		if c.cfg.Snapshot().MC.Hidden {
			return true, nil
		}
		payload := c.buildStatusPayload()
		body, err := payload.Marshal()
		if err != nil {
			return true, fmt.Errorf("marshaling status payload: %w", err)
		}
		if err := c.writePacket(&packet.StatusResponse{JSONResponse: body}); err != nil {
			return true, err
		}
		return false, nil

	case *packet.Ping:
		if err := c.writePacket(&packet.Pong{Payload: pkt.Payload}); err != nil {
			return true, err
		}
		return true, nil

	default:
		return true, fmt.Errorf("unexpected status packet %T", p)
	}
}

// handleLogin answers the one Login-state packet this server understands:
// LoginStart. It always ends the connection with a rendered Disconnect,
// since Play state is never reachable.
func (c *Connection) handleLogin(id int32, r io.Reader) (done bool, err error) {
	p, err := packet.LoginServerboundGroup.Decode(id, r)
	if err != nil {
		return true, err
	}

	start, ok := p.(*packet.LoginStart)
	if !ok {
		// EncryptionResponse/LoginPluginResponse decode successfully (the
		// registry accepts them) but no handshake flow of this server's
		// ever sends the requests that would provoke a real client into
		// sending one.
		return true, fmt.Errorf("unexpected login packet %T", p)
	}

	c.player = player.Player{Username: start.Username, UUID: start.UUID}
	c.log.Info("login start", zap.String("username", c.player.Username), zap.String("uuid", c.player.UUIDString()))

	reason := c.renderDisconnectMessage()
	if err := c.writePacket(&packet.Disconnect{Reason: packet.NewChat(reason)}); err != nil {
		return true, err
	}
	return true, nil
}

func (c *Connection) buildStatusPayload() packet.StatusPayload {
	cfg := c.cfg.Snapshot()

	var players packet.StatusPlayers
	if !cfg.MC.HidePlayerCount {
		max, online := cfg.MC.MaxPlayers, int32(0)
		players = packet.StatusPlayers{Max: &max, Online: &online}
	}

	return packet.StatusPayload{
		Version:            packet.StatusVersion{Name: packet.MinecraftVersion, Protocol: packet.ProtocolVersion},
		Players:            players,
		Description:        packet.StatusDescription{Text: cfg.MC.MOTD},
		Favicon:            c.icon,
		EnforcesSecureChat: false,
	}
}

// handleShutdown makes one best-effort attempt to tell the peer why the
// connection is closing. Login is the only state with a Disconnect
// packet in the real protocol, so a connection still in Handshake or
// Status is simply dropped — it gets no message, same as a real client
// would get none from a server that drops it mid-ping.
func (c *Connection) handleShutdown() {
	if c.state != packet.StateLogin {
		return
	}
	reason := c.renderDisconnectMessage()
	if err := c.writePacket(&packet.Disconnect{Reason: packet.NewChat(reason)}); err != nil {
		c.log.Debug("best-effort shutdown disconnect failed", zap.Error(err))
	}
}

// renderDisconnectMessage renders the configured disconnect_msg template
// against the connecting player. A render failure is never fatal: it is
// logged and the raw template string is sent as-is.
func (c *Connection) renderDisconnectMessage() string {
	cfg := c.cfg.Snapshot()
	raw := cfg.MC.DisconnectMsg

	tpl, err := pongo2.FromString(raw)
	if err != nil {
		c.log.Warn("disconnect message template failed to parse, sending raw template", zap.Error(err))
		return raw
	}

	out, err := tpl.Execute(pongo2.Context{
		"username":         c.player.Username,
		"uuid":             c.player.UUIDString(),
		"protocol_version": packet.ProtocolVersion,
		"server_address":   cfg.General.Host,
	})
	if err != nil {
		c.log.Warn("disconnect message template failed to render, sending raw template", zap.Error(err))
		return raw
	}
	return out
}
