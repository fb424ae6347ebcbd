package game

const (
	// MinPlayers is the minimum number of players required to start a game
	MinPlayers = 3

	// DefaultImpostorCount is the impostor count a fresh room starts with
	DefaultImpostorCount = 1

	// ImpostorWinPoints is awarded to each surviving impostor on an impostor win
	ImpostorWinPoints = 2

	// NormalWinPoints is awarded to each surviving normal when the impostors lose
	NormalWinPoints = 1
)
