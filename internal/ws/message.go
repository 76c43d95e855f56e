package ws

import "encoding/json"

// Client -> Server message types
const (
	MsgInput uint8 = 0x01
	MsgPing  uint8 = 0x04
)

// Server -> Client message types
const (
	MsgSnapshot     uint8 = 0x81
	MsgSessionStart uint8 = 0x82
	MsgGameOver     uint8 = 0x83
	MsgPointScored  uint8 = 0x84
	MsgPong         uint8 = 0x86
)

type Message struct {
	Type    uint8           `json:"type"`
	Tick    uint32          `json:"tick"`
	Payload json.RawMessage `json:"payload"`
}

// InputPayload carries both players' controls; one browser tab is the
// keyboard for both sides of the court.
type InputPayload struct {
	Held     uint16  `json:"held" jsonschema:"description=Bitmask of buttons currently down"`
	Pressed  uint16  `json:"pressed" jsonschema:"description=Bitmask of buttons pressed since the previous message"`
	PointerX float64 `json:"pointerX"`
	PointerY float64 `json:"pointerY"`
}

type PingPayload struct {
	ClientTime uint64 `json:"clientTime"`
}

type PongPayload struct {
	ClientTime uint64 `json:"clientTime"`
	ServerTime uint64 `json:"serverTime"`
}

type SessionStartPayload struct {
	SessionID string    `json:"sessionId"`
	Names     [2]string `json:"names"`
	TickRate  int       `json:"tickRate"`
}

type PointScoredPayload struct {
	Scorer uint8     `json:"scorer" jsonschema:"description=1 for the left player and 2 for the right"`
	Kind   string    `json:"kind" jsonschema:"enum=point,enum=game,enum=set,enum=match,enum=none"`
	Labels [2]string `json:"labels"`
}

type GameOverPayload struct {
	Winner uint8  `json:"winner"`
	Sets   [2]int `json:"sets"`
}

func Encode(msg Message) ([]byte, error) {
	return json.Marshal(msg)
}

func Decode(data []byte) (Message, error) {
	var msg Message
	err := json.Unmarshal(data, &msg)
	return msg, err
}

func NewMessage(typ uint8, tick uint32, payload any) (Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{
		Type:    typ,
		Tick:    tick,
		Payload: json.RawMessage(data),
	}, nil
}
