package ws

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessage_EncodeDecode(t *testing.T) {
	msg, err := NewMessage(MsgPointScored, 42, PointScoredPayload{
		Scorer: 2,
		Kind:   "game",
		Labels: [2]string{"0", "0"},
	})
	require.NoError(t, err)

	data, err := Encode(msg)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"type":132,"tick":42,"payload":{"scorer":2,"kind":"game","labels":["0","0"]}}`,
		string(data))

	got, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, MsgPointScored, got.Type)
	assert.Equal(t, uint32(42), got.Tick)

	var p PointScoredPayload
	require.NoError(t, json.Unmarshal(got.Payload, &p))
	assert.Equal(t, uint8(2), p.Scorer)
}

func TestDecode_ClientInput(t *testing.T) {
	msg, err := Decode([]byte(`{"type":1,"tick":0,"payload":{"held":5,"pressed":256,"pointerX":10.5,"pointerY":20}}`))
	require.NoError(t, err)
	assert.Equal(t, MsgInput, msg.Type)

	var in InputPayload
	require.NoError(t, json.Unmarshal(msg.Payload, &in))
	assert.Equal(t, InputPayload{Held: 5, Pressed: 256, PointerX: 10.5, PointerY: 20}, in)
}

func TestDecode_Garbage(t *testing.T) {
	_, err := Decode([]byte(`not json`))
	assert.Error(t, err)
}

func TestNewMessage_UnencodablePayload(t *testing.T) {
	_, err := NewMessage(MsgSnapshot, 0, make(chan int))
	assert.Error(t, err)
}
