package game

import (
	"errors"
	"math/rand"
	"sort"

	"wordimpostor/internal/wordbank"
)

var (
	ErrNotEnoughPlayers  = errors.New("not enough players to start")
	ErrGameAlreadyActive = errors.New("game already in progress")
)

// GameState is the authoritative per-room aggregate. It is mutated only
// through the operations below, each of which runs to completion as a single
// pass; callers serialize commands per room.
type GameState struct {
	RoomID        string
	RoomPassword  string
	Phase         Phase
	Players       map[string]*Player
	ImpostorCount int

	// NextJoinOrder only ever increments, so join orders stay unique even
	// after players leave the lobby.
	NextJoinOrder int

	Category     *wordbank.Category
	SelectedWord *wordbank.WordEntry

	Votes              []Vote
	EliminatedPlayerID string // empty when no one was eliminated last round
	RoundNumber        int
	GameNumber         int
}

// WinResult is the outcome of a win-condition check.
type WinResult struct {
	GameOver     bool
	ImpostorsWin bool
}

// NewRoom creates a fresh lobby-phase state.
func NewRoom(roomID, password string) *GameState {
	return &GameState{
		RoomID:        roomID,
		RoomPassword:  password,
		Phase:         PhaseLobby,
		Players:       make(map[string]*Player),
		ImpostorCount: DefaultImpostorCount,
		GameNumber:    1,
	}
}

// AddPlayer appends a new player. The first player ever added becomes the
// host. Phase gating is the caller's responsibility so that reconnection
// flows can reuse the roster.
func (s *GameState) AddPlayer(playerID, name string) *Player {
	p := &Player{
		ID:        playerID,
		Name:      name,
		IsHost:    s.NextJoinOrder == 0,
		IsAlive:   true,
		JoinOrder: s.NextJoinOrder,
	}
	s.NextJoinOrder++
	s.Players[playerID] = p
	return p
}

// RemovePlayer drops a player from the roster. Returns false for unknown ids.
func (s *GameState) RemovePlayer(playerID string) bool {
	if _, ok := s.Players[playerID]; !ok {
		return false
	}
	delete(s.Players, playerID)
	return true
}

// RebindPlayer moves a player to a new transport session id, preserving
// every other field. This is the only way a player's id changes. Returns
// false if oldID is not present.
func (s *GameState) RebindPlayer(oldID, newID string) bool {
	p, ok := s.Players[oldID]
	if !ok {
		return false
	}
	delete(s.Players, oldID)
	p.ID = newID
	s.Players[newID] = p
	return true
}

// PlayersByJoinOrder returns the roster sorted by join order, the canonical
// order for every serialization.
func (s *GameState) PlayersByJoinOrder() []*Player {
	players := make([]*Player, 0, len(s.Players))
	for _, p := range s.Players {
		players = append(players, p)
	}
	sort.Slice(players, func(i, j int) bool {
		return players[i].JoinOrder < players[j].JoinOrder
	})
	return players
}

// Start begins a new game: requires a lobby-phase room with enough players,
// assigns impostors with the stored count and moves to the reveal phase.
func (s *GameState) Start(category wordbank.Category, word wordbank.WordEntry, rng *rand.Rand) error {
	if s.Phase != PhaseLobby {
		return ErrGameAlreadyActive
	}
	if len(s.Players) < MinPlayers {
		return ErrNotEnoughPlayers
	}
	s.Category = &category
	s.SelectedWord = &word
	s.SelectImpostors(rng, s.ImpostorCount)
	// Ready flags may carry over from commands sent while still in the
	// lobby; every player confirms their role fresh each game.
	for _, p := range s.Players {
		p.HasRevealedRole = false
	}
	s.Phase = PhaseReveal
	s.RoundNumber = 1
	return nil
}

// SelectImpostors resets all roles and marks min(count, players-1) non-host
// players as impostors. The host is never an impostor. Over-subscribed
// counts clamp silently.
func (s *GameState) SelectImpostors(rng *rand.Rand, count int) {
	candidates := make([]*Player, 0, len(s.Players))
	for _, p := range s.PlayersByJoinOrder() {
		p.IsImpostor = false
		if !p.IsHost {
			candidates = append(candidates, p)
		}
	}
	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	n := count
	if n > len(candidates) {
		n = len(candidates)
	}
	for i := 0; i < n; i++ {
		candidates[i].IsImpostor = true
	}
	s.ImpostorCount = count
}

// CheckWinCondition evaluates the game over alive players only. Impostors
// win when they equal or outnumber the remaining normals.
func (s *GameState) CheckWinCondition() WinResult {
	aliveImpostors, aliveNormals := 0, 0
	for _, p := range s.Players {
		if !p.IsAlive {
			continue
		}
		if p.IsImpostor {
			aliveImpostors++
		} else {
			aliveNormals++
		}
	}
	if aliveImpostors == 0 {
		return WinResult{GameOver: true, ImpostorsWin: false}
	}
	if aliveImpostors >= aliveNormals {
		return WinResult{GameOver: true, ImpostorsWin: true}
	}
	return WinResult{}
}

// TallyVotes counts ballots per target and returns the unique most-voted
// player id, or "" on a hung vote or an empty ballot box. Votes targeting
// ids no longer in the roster are ignored.
func (s *GameState) TallyVotes() string {
	counts := make(map[string]int)
	for _, v := range s.Votes {
		if _, ok := s.Players[v.TargetID]; !ok {
			continue
		}
		counts[v.TargetID]++
	}

	maxVotes := 0
	eliminated := ""
	tie := false
	for _, p := range s.PlayersByJoinOrder() {
		count := counts[p.ID]
		if count > maxVotes {
			maxVotes = count
			eliminated = p.ID
			tie = false
		} else if count == maxVotes && maxVotes > 0 {
			tie = true
		}
	}
	if tie {
		return ""
	}
	return eliminated
}

// EliminatePlayer marks the player dead and records the elimination. Unknown
// ids are ignored and leave the previous elimination record untouched.
func (s *GameState) EliminatePlayer(playerID string) {
	p, ok := s.Players[playerID]
	if !ok {
		return
	}
	p.IsAlive = false
	s.EliminatedPlayerID = playerID
}

// UpdateScores awards points for a finished game. Only living players score:
// surviving impostors on an impostor win, surviving normals otherwise.
func (s *GameState) UpdateScores(impostorsWin bool) {
	for _, p := range s.Players {
		if !p.IsAlive {
			continue
		}
		if impostorsWin && p.IsImpostor {
			p.Score += ImpostorWinPoints
		} else if !impostorsWin && !p.IsImpostor {
			p.Score += NormalWinPoints
		}
	}
}

// ResetForNextRound clears the round-scoped state ahead of another
// discussion. Scores, roles and aliveness are untouched.
func (s *GameState) ResetForNextRound() {
	s.Votes = nil
	s.EliminatedPlayerID = ""
	s.RoundNumber++
	for _, p := range s.Players {
		p.HasVoted = false
	}
}

// ResetForNextGame returns the room to the lobby for a rematch. Scores carry
// over; everything game-scoped is cleared.
func (s *GameState) ResetForNextGame() {
	s.Phase = PhaseLobby
	s.Category = nil
	s.SelectedWord = nil
	s.Votes = nil
	s.EliminatedPlayerID = ""
	s.RoundNumber = 0
	s.GameNumber++
	for _, p := range s.Players {
		p.IsImpostor = false
		p.IsAlive = true
		p.HasVoted = false
		p.HasRevealedRole = false
	}
}

// AlivePlayersReady reports whether every living player has confirmed their
// role, the reveal → discussion trigger.
func (s *GameState) AlivePlayersReady() bool {
	for _, p := range s.Players {
		if p.IsAlive && !p.HasRevealedRole {
			return false
		}
	}
	return true
}

// AllAliveVoted reports whether every living player has cast a ballot, the
// auto-resolution trigger for the voting phase.
func (s *GameState) AllAliveVoted() bool {
	for _, p := range s.Players {
		if p.IsAlive && !p.HasVoted {
			return false
		}
	}
	return true
}
