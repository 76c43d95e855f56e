package ws

import (
	"fmt"
	"reflect"

	"github.com/invopop/jsonschema"
)

// PayloadSpec describes one message type of the protocol.
type PayloadSpec struct {
	Name      string
	Type      uint8
	Direction string // "client" or "server"
	Payload   any
}

// MessageSchema is the published description of one message type.
type MessageSchema struct {
	Name      string             `json:"name"`
	Type      uint8              `json:"type"`
	Direction string             `json:"direction"`
	Payload   *jsonschema.Schema `json:"payload"`
}

type ProtocolSchema struct {
	Title    string             `json:"title"`
	Envelope *jsonschema.Schema `json:"envelope"`
	Messages []MessageSchema    `json:"messages"`
}

// Payloads lists the messages whose payloads live in this package. Callers
// append their own (the snapshot) before building the schema.
func Payloads() []PayloadSpec {
	return []PayloadSpec{
		{Name: "input", Type: MsgInput, Direction: "client", Payload: InputPayload{}},
		{Name: "ping", Type: MsgPing, Direction: "client", Payload: PingPayload{}},
		{Name: "sessionStart", Type: MsgSessionStart, Direction: "server", Payload: SessionStartPayload{}},
		{Name: "gameOver", Type: MsgGameOver, Direction: "server", Payload: GameOverPayload{}},
		{Name: "pointScored", Type: MsgPointScored, Direction: "server", Payload: PointScoredPayload{}},
		{Name: "pong", Type: MsgPong, Direction: "server", Payload: PongPayload{}},
	}
}

func BuildSchema(specs []PayloadSpec) (*ProtocolSchema, error) {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		DoNotReference:             true,
	}

	envelope := reflector.ReflectFromType(reflect.TypeOf(Message{}))
	if envelope == nil {
		return nil, fmt.Errorf("failed to reflect message envelope")
	}

	doc := &ProtocolSchema{
		Title:    "Court tennis websocket protocol",
		Envelope: envelope,
	}
	for _, spec := range specs {
		s := reflector.ReflectFromType(reflect.TypeOf(spec.Payload))
		if s == nil {
			return nil, fmt.Errorf("failed to reflect %s payload", spec.Name)
		}
		s.Version = ""
		s.Title = spec.Name
		doc.Messages = append(doc.Messages, MessageSchema{
			Name:      spec.Name,
			Type:      spec.Type,
			Direction: spec.Direction,
			Payload:   s,
		})
	}
	return doc, nil
}
