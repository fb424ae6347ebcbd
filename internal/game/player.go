package game

// Player represents one participant of a room. The ID is the transport
// session id and changes only through GameState.RebindPlayer; JoinOrder is
// assigned at join time and never changes, even across reconnections.
type Player struct {
	ID              string
	Name            string
	IsHost          bool
	IsImpostor      bool
	IsAlive         bool
	Score           int
	HasVoted        bool
	HasRevealedRole bool
	JoinOrder       int
}

// Vote is one ballot cast during a voting phase. Cleared every round.
type Vote struct {
	VoterID  string
	TargetID string
}
