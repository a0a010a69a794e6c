package packet

import (
	"io"

	"github.com/google/uuid"

	"github.com/sycrosity/statik/wire"
)

// LoginStart is the first Login-state packet: the client announces the
// username it wants to join with, and optionally its account UUID.
type LoginStart struct {
	Username string
	UUID     *uuid.UUID
}

const LoginStartID int32 = 0x00

func (p *LoginStart) ID() int32 { return LoginStartID }

func (p *LoginStart) Encode(w io.Writer) error {
	if err := wire.EncodeVarInt(w, LoginStartID); err != nil {
		return err
	}
	if err := wire.EncodeString(w, p.Username); err != nil {
		return err
	}
	return wire.EncodeOptionalUUID(w, p.UUID)
}

func (p *LoginStart) Decode(r io.Reader) error {
	username, err := wire.DecodeString(r)
	if err != nil {
		return err
	}
	id, err := wire.DecodeOptionalUUID(r)
	if err != nil {
		return err
	}
	p.Username = username
	p.UUID = id
	return nil
}

// EncryptionResponse is declared for registry completeness but never
// exercised: this server never sends an EncryptionRequest, so a client
// has no reason to send this.
type EncryptionResponse struct {
	SharedSecret []byte
	VerifyToken  []byte
}

const EncryptionResponseID int32 = 0x01

func (p *EncryptionResponse) ID() int32 { return EncryptionResponseID }

func (p *EncryptionResponse) Encode(w io.Writer) error {
	if err := wire.EncodeVarInt(w, EncryptionResponseID); err != nil {
		return err
	}
	if err := wire.EncodeSequence(w, p.SharedSecret, func(w io.Writer, b byte) error {
		_, err := w.Write([]byte{b})
		return err
	}); err != nil {
		return err
	}
	return wire.EncodeSequence(w, p.VerifyToken, func(w io.Writer, b byte) error {
		_, err := w.Write([]byte{b})
		return err
	})
}

func (p *EncryptionResponse) Decode(r io.Reader) error {
	decodeByte := func(r io.Reader) (byte, error) {
		buf := make([]byte, 1)
		_, err := io.ReadFull(r, buf)
		return buf[0], err
	}
	secret, err := wire.DecodeSequence(r, 1, decodeByte)
	if err != nil {
		return err
	}
	token, err := wire.DecodeSequence(r, 1, decodeByte)
	if err != nil {
		return err
	}
	p.SharedSecret = secret
	p.VerifyToken = token
	return nil
}

// LoginPluginResponse answers a LoginPluginRequest this server never
// sends; accepted by the decoder but not acted on by any handler.
type LoginPluginResponse struct {
	MessageID int32
	Data      *[]byte
}

const LoginPluginResponseID int32 = 0x02

func (p *LoginPluginResponse) ID() int32 { return LoginPluginResponseID }

func (p *LoginPluginResponse) Encode(w io.Writer) error {
	if err := wire.EncodeVarInt(w, LoginPluginResponseID); err != nil {
		return err
	}
	if err := wire.EncodeVarInt(w, p.MessageID); err != nil {
		return err
	}
	present := p.Data != nil
	if err := wire.EncodeBool(w, present); err != nil {
		return err
	}
	if present {
		return wire.EncodeRaw(w, *p.Data)
	}
	return nil
}

func (p *LoginPluginResponse) Decode(r io.Reader) error {
	messageID, err := wire.DecodeVarInt(r)
	if err != nil {
		return err
	}
	present, err := wire.DecodeBool(r)
	if err != nil {
		return err
	}
	p.MessageID = messageID
	if !present {
		p.Data = nil
		return nil
	}
	data, err := wire.DecodeRaw(r)
	if err != nil {
		return err
	}
	p.Data = &data
	return nil
}

// Disconnect is sent to end a Login-state connection with a human
// readable reason.
type Disconnect struct {
	Reason Chat
}

const DisconnectID int32 = 0x00

func (p *Disconnect) ID() int32 { return DisconnectID }

func (p *Disconnect) Encode(w io.Writer) error {
	if err := wire.EncodeVarInt(w, DisconnectID); err != nil {
		return err
	}
	return p.Reason.Encode(w)
}

func (p *Disconnect) Decode(r io.Reader) error {
	var c Chat
	if err := c.Decode(r); err != nil {
		return err
	}
	p.Reason = c
	return nil
}

// SetCompression is declared for registry completeness; this server
// never enables compression, so it is never sent.
type SetCompression struct {
	Threshold int32
}

const SetCompressionID int32 = 0x03

func (p *SetCompression) ID() int32 { return SetCompressionID }

func (p *SetCompression) Encode(w io.Writer) error {
	if err := wire.EncodeVarInt(w, SetCompressionID); err != nil {
		return err
	}
	return wire.EncodeVarInt(w, p.Threshold)
}

func (p *SetCompression) Decode(r io.Reader) error {
	threshold, err := wire.DecodeVarInt(r)
	if err != nil {
		return err
	}
	p.Threshold = threshold
	return nil
}

// LoginPluginRequest is declared for registry completeness; this server
// never queries plugin channels, so it is never sent.
type LoginPluginRequest struct {
	MessageID int32
	Channel   string
	Data      []byte
}

const LoginPluginRequestID int32 = 0x04

func (p *LoginPluginRequest) ID() int32 { return LoginPluginRequestID }

func (p *LoginPluginRequest) Encode(w io.Writer) error {
	if err := wire.EncodeVarInt(w, LoginPluginRequestID); err != nil {
		return err
	}
	if err := wire.EncodeVarInt(w, p.MessageID); err != nil {
		return err
	}
	if err := wire.EncodeString(w, p.Channel); err != nil {
		return err
	}
	return wire.EncodeRaw(w, p.Data)
}

func (p *LoginPluginRequest) Decode(r io.Reader) error {
	messageID, err := wire.DecodeVarInt(r)
	if err != nil {
		return err
	}
	channel, err := wire.DecodeString(r)
	if err != nil {
		return err
	}
	data, err := wire.DecodeRaw(r)
	if err != nil {
		return err
	}
	p.MessageID = messageID
	p.Channel = channel
	p.Data = data
	return nil
}

// LoginServerboundGroup holds the Login-state, client-to-server packets.
var LoginServerboundGroup = Group{
	LoginStartID:          func() Packet { return &LoginStart{} },
	EncryptionResponseID:  func() Packet { return &EncryptionResponse{} },
	LoginPluginResponseID: func() Packet { return &LoginPluginResponse{} },
}

// LoginClientboundGroup holds the Login-state, server-to-client packets.
var LoginClientboundGroup = Group{
	DisconnectID:         func() Packet { return &Disconnect{} },
	SetCompressionID:     func() Packet { return &SetCompression{} },
	LoginPluginRequestID: func() Packet { return &LoginPluginRequest{} },
}
