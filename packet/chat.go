package packet

import (
	"io"

	"github.com/sycrosity/statik/codec"
	"github.com/sycrosity/statik/wire"
)

// Chat is a tagged JSON text component. On the wire it is a
// length-prefixed UTF-8 JSON string; the minimum shape understood and
// produced here is {"text": "<s>"}.
type Chat struct {
	Text string `json:"text"`
}

// NewChat wraps s as a plain Chat text component.
func NewChat(s string) Chat {
	return Chat{Text: s}
}

func (c Chat) Encode(w io.Writer) error {
	b, err := codec.JSON.Encode(c)
	if err != nil {
		return err
	}
	return wire.EncodeString(w, string(b))
}

func (c *Chat) Decode(r io.Reader) error {
	s, err := wire.DecodeString(r)
	if err != nil {
		return err
	}
	return codec.JSON.Decode([]byte(s), c)
}
