package packet

import "github.com/sycrosity/statik/codec"

// StatusVersion is the "version" object of a Server List Ping response.
type StatusVersion struct {
	Name     string `json:"name"`
	Protocol int32  `json:"protocol"`
}

// StatusPlayerSample is one entry of "players.sample" — a name/id shown in
// the client's hover tooltip. This server never populates the sample list
// with real players, but the field is part of the shape clients expect.
type StatusPlayerSample struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// StatusPlayers is the "players" object of a Server List Ping response.
// Max and Online are pointers so a hidden player count can omit them from
// the JSON entirely rather than publish a misleading zero.
type StatusPlayers struct {
	Max    *int32               `json:"max,omitempty"`
	Online *int32               `json:"online,omitempty"`
	Sample []StatusPlayerSample `json:"sample,omitempty"`
}

// StatusDescription is the "description" object, a Chat text component.
type StatusDescription struct {
	Text string `json:"text"`
}

// StatusPayload is the full JSON body of a StatusResponse packet.
type StatusPayload struct {
	Version            StatusVersion     `json:"version"`
	Players            StatusPlayers     `json:"players"`
	Description        StatusDescription `json:"description"`
	Favicon            string            `json:"favicon,omitempty"`
	EnforcesSecureChat bool              `json:"enforcesSecureChat"`
}

// Marshal renders the payload to the JSON string a StatusResponse carries.
func (p StatusPayload) Marshal() (string, error) {
	b, err := codec.JSON.Encode(p)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
