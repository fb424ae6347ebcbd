package ws

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelopeRoundTrip(t *testing.T) {
	raw := []byte(`{"type":"joinRoom","data":{"roomId":"room1","playerName":"Alice","roomPassword":"pw"}}`)

	var env Envelope
	require.NoError(t, json.Unmarshal(raw, &env))
	assert.Equal(t, CmdJoinRoom, env.Type)

	var d joinRoomData
	require.NoError(t, json.Unmarshal(env.Data, &d))
	assert.Equal(t, "room1", d.RoomID)
	assert.Equal(t, "Alice", d.PlayerName)
	assert.Equal(t, "pw", d.RoomPassword)
}

func TestEncodeEvent(t *testing.T) {
	frame, err := encodeEvent("roomCreated", map[string]string{"roomId": "room1"})
	require.NoError(t, err)

	var env Envelope
	require.NoError(t, json.Unmarshal(frame, &env))
	assert.Equal(t, "roomCreated", env.Type)
	assert.JSONEq(t, `{"roomId":"room1"}`, string(env.Data))
}
