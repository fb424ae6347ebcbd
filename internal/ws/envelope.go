package ws

import "encoding/json"

// Inbound command type constants
const (
	CmdCreateRoom       = "createRoom"
	CmdJoinRoom         = "joinRoom"
	CmdReconnect        = "reconnect"
	CmdSetImpostorCount = "setImpostorCount"
	CmdStartGame        = "startGame"
	CmdWordRevealed     = "wordRevealed"
	CmdPlayerReady      = "playerReady"
	CmdStartVoting      = "startVoting"
	CmdVote             = "vote"
	CmdForceEndVoting   = "forceEndVoting"
	CmdNextRound        = "nextRound"
	CmdPlayAgain        = "playAgain"
)

// Envelope frames every message in both directions as a typed JSON payload.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type createRoomData struct {
	RoomID       string `json:"roomId"`
	RoomPassword string `json:"roomPassword"`
}

type joinRoomData struct {
	RoomID       string `json:"roomId"`
	PlayerName   string `json:"playerName"`
	RoomPassword string `json:"roomPassword"`
}

type reconnectData struct {
	RoomID       string `json:"roomId"`
	PlayerID     string `json:"playerId"`
	RoomPassword string `json:"roomPassword"`
}

type impostorCountData struct {
	RoomID string `json:"roomId"`
	Count  int    `json:"count"`
}

type roomData struct {
	RoomID string `json:"roomId"`
}

type voteData struct {
	RoomID   string `json:"roomId"`
	TargetID string `json:"targetId"`
}

type errorData struct {
	Message string `json:"message"`
}

func encodeEvent(eventType string, data any) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Type: eventType, Data: raw})
}
