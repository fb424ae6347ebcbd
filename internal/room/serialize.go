package room

import (
	"wordimpostor/internal/game"
)

// PlayerView is the public shape of a player. Roles are confidential while a
// game is live, so there is no impostor field here; see RevealedPlayerView.
type PlayerView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IsHost    bool   `json:"isHost"`
	IsAlive   bool   `json:"isAlive"`
	Score     int    `json:"score"`
	HasVoted  bool   `json:"hasVoted"`
	JoinOrder int    `json:"joinOrder"`
}

// RevealedPlayerView includes the player's role. Emitted only once the game
// is over, when roles become public.
type RevealedPlayerView struct {
	PlayerView
	IsImpostor bool `json:"isImpostor"`
}

// StateView is the public snapshot of a room. The secret word never appears
// here; it travels only in per-player gameStarted payloads.
type StateView struct {
	RoomID        string       `json:"roomId"`
	Phase         game.Phase   `json:"phase"`
	Players       []PlayerView `json:"players"`
	ImpostorCount int          `json:"impostorCount"`
	Category      *string      `json:"category"`
	RoundNumber   int          `json:"roundNumber"`
	GameNumber    int          `json:"gameNumber"`
}

func newPlayerView(p *game.Player) PlayerView {
	return PlayerView{
		ID:        p.ID,
		Name:      p.Name,
		IsHost:    p.IsHost,
		IsAlive:   p.IsAlive,
		Score:     p.Score,
		HasVoted:  p.HasVoted,
		JoinOrder: p.JoinOrder,
	}
}

func playerViews(s *game.GameState) []PlayerView {
	ordered := s.PlayersByJoinOrder()
	views := make([]PlayerView, len(ordered))
	for i, p := range ordered {
		views[i] = newPlayerView(p)
	}
	return views
}

func revealedViews(s *game.GameState) []RevealedPlayerView {
	ordered := s.PlayersByJoinOrder()
	views := make([]RevealedPlayerView, len(ordered))
	for i, p := range ordered {
		views[i] = RevealedPlayerView{PlayerView: newPlayerView(p), IsImpostor: p.IsImpostor}
	}
	return views
}

func newStateView(s *game.GameState) StateView {
	var category *string
	if s.Category != nil {
		category = &s.Category.Name
	}
	return StateView{
		RoomID:        s.RoomID,
		Phase:         s.Phase,
		Players:       playerViews(s),
		ImpostorCount: s.ImpostorCount,
		Category:      category,
		RoundNumber:   s.RoundNumber,
		GameNumber:    s.GameNumber,
	}
}
