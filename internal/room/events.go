package room

// Outbound event type constants
const (
	EventRoomCreated          = "roomCreated"
	EventJoinedRoom           = "joinedRoom"
	EventPlayerJoined         = "playerJoined"
	EventPlayerLeft           = "playerLeft"
	EventReconnected          = "reconnected"
	EventImpostorCountUpdated = "impostorCountUpdated"
	EventGameStarted          = "gameStarted"
	EventPhaseChanged         = "phaseChanged"
	EventPlayerVoted          = "playerVoted"
	EventVotingComplete       = "votingComplete"
	EventGameReset            = "gameReset"
	EventError                = "error"
)

// Scope controls who receives an event.
type Scope int

const (
	// ScopeBroadcast delivers to every member of the room.
	ScopeBroadcast Scope = iota
	// ScopeCaller delivers only to the session that issued the command.
	ScopeCaller
	// ScopePlayer delivers to the single player named in Event.PlayerID.
	ScopePlayer
)

// Event is one outbound message produced by a command. Events are emitted
// exactly once per triggering state change, in transition order.
type Event struct {
	Type     string
	Scope    Scope
	PlayerID string // receiver, only for ScopePlayer
	Data     any
}

func broadcast(eventType string, data any) Event {
	return Event{Type: eventType, Scope: ScopeBroadcast, Data: data}
}

func toCaller(eventType string, data any) Event {
	return Event{Type: eventType, Scope: ScopeCaller, Data: data}
}

func toPlayer(playerID, eventType string, data any) Event {
	return Event{Type: eventType, Scope: ScopePlayer, PlayerID: playerID, Data: data}
}
