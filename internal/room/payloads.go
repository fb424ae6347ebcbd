package room

import "wordimpostor/internal/game"

type roomCreatedPayload struct {
	RoomID string `json:"roomId"`
}

type joinedRoomPayload struct {
	PlayerID  string     `json:"playerId"`
	Player    PlayerView `json:"player"`
	GameState StateView  `json:"gameState"`
}

type playerJoinedPayload struct {
	Player  PlayerView   `json:"player"`
	Players []PlayerView `json:"players"`
}

type playerLeftPayload struct {
	PlayerID string       `json:"playerId"`
	Players  []PlayerView `json:"players"`
}

type impostorCountPayload struct {
	Count int `json:"count"`
}

// gameStartedPayload is per-recipient: impostors get the clue and never the
// word, normals get the word and never the clue.
type gameStartedPayload struct {
	Phase          game.Phase `json:"phase"`
	Category       string     `json:"category"`
	Word           *string    `json:"word"`
	WordEs         *string    `json:"wordEs"`
	ImpostorClue   *string    `json:"impostorClue"`
	ImpostorClueEs *string    `json:"impostorClueEs"`
	IsImpostor     bool       `json:"isImpostor"`
}

type phaseChangedPayload struct {
	Phase       game.Phase `json:"phase"`
	RoundNumber int        `json:"roundNumber"`
}

type playerVotedPayload struct {
	VoterID string       `json:"voterId"`
	Players []PlayerView `json:"players"`
}

// votingCompletePayload carries the resolution of a voting phase. Players is
// []RevealedPlayerView once the game is over (roles become public) and
// []PlayerView otherwise.
type votingCompletePayload struct {
	EliminatedPlayer *PlayerView `json:"eliminatedPlayer"`
	GameOver         bool        `json:"gameOver"`
	ImpostorsWin     *bool       `json:"impostorsWin"`
	Players          any         `json:"players"`
}

type gameResetPayload struct {
	GameState StateView `json:"gameState"`
}
