package game

// Phase represents the current stage of a room's game loop
type Phase string

const (
	PhaseLobby      Phase = "lobby"
	PhaseReveal     Phase = "reveal"
	PhaseDiscussion Phase = "discussion"
	PhaseVoting     Phase = "voting"
	PhaseResults    Phase = "results"
	PhaseGameOver   Phase = "gameOver"
)
