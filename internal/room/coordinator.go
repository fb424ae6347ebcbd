package room

import (
	"math/rand"
	"sync"

	"github.com/rs/zerolog"

	"wordimpostor/internal/game"
	"wordimpostor/internal/wordbank"
)

// Coordinator validates caller authority and phase gating for every inbound
// command, delegates the mutation to the room's GameState and produces the
// outbound events. Commands that fail authority or phase checks on
// fire-and-forget actions return no events and no error.
type Coordinator struct {
	registry *Registry
	bank     *wordbank.Bank
	rng      *rand.Rand
	log      zerolog.Logger
}

// NewCoordinator wires a coordinator to its registry and word catalog. The
// rng must be safe for concurrent use when rooms are served from multiple
// goroutines; see NewSeededRand.
func NewCoordinator(registry *Registry, bank *wordbank.Bank, rng *rand.Rand, log zerolog.Logger) *Coordinator {
	return &Coordinator{registry: registry, bank: bank, rng: rng, log: log}
}

// lockedSource makes a seeded rand source safe to share across rooms.
type lockedSource struct {
	mu  sync.Mutex
	src rand.Source64
}

func (s *lockedSource) Int63() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.Int63()
}

func (s *lockedSource) Uint64() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.Uint64()
}

func (s *lockedSource) Seed(seed int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.src.Seed(seed)
}

// NewSeededRand returns a concurrency-safe rand seeded deterministically,
// suitable both for production wiring and for flake-free tests.
func NewSeededRand(seed int64) *rand.Rand {
	return rand.New(&lockedSource{src: rand.NewSource(seed).(rand.Source64)})
}

// RoomExists reports whether a room id is live.
func (c *Coordinator) RoomExists(roomID string) bool {
	return c.registry.Exists(roomID)
}

// Registry exposes the coordinator's room registry.
func (c *Coordinator) Registry() *Registry {
	return c.registry
}

// withRoom runs fn with the room's command lock held. Unknown rooms reject
// with ErrRoomNotFound.
func (c *Coordinator) withRoom(roomID string, fn func(s *game.GameState) ([]Event, error)) ([]Event, error) {
	h, ok := c.registry.get(roomID)
	if !ok {
		return nil, ErrRoomNotFound
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return fn(h.state)
}

// silent runs fn like withRoom but treats an unknown room as a no-op, the
// contract for fire-and-forget commands.
func (c *Coordinator) silent(roomID string, fn func(s *game.GameState) []Event) []Event {
	h, ok := c.registry.get(roomID)
	if !ok {
		return nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return fn(h.state)
}

func isHost(s *game.GameState, callerID string) bool {
	p, ok := s.Players[callerID]
	return ok && p.IsHost
}

// CreateRoom registers a fresh lobby. An existing room under the same id is
// replaced, matching the reference behavior.
func (c *Coordinator) CreateRoom(callerID, roomID, password string) []Event {
	c.registry.set(roomID, game.NewRoom(roomID, password))
	c.log.Info().Str("room", roomID).Msg("room created")
	return []Event{toCaller(EventRoomCreated, roomCreatedPayload{RoomID: roomID})}
}

// JoinRoom admits a new player into a lobby-phase room.
func (c *Coordinator) JoinRoom(callerID, roomID, name, password string) ([]Event, error) {
	return c.withRoom(roomID, func(s *game.GameState) ([]Event, error) {
		if s.RoomPassword != password {
			return nil, ErrWrongPassword
		}
		if s.Phase != game.PhaseLobby {
			return nil, ErrGameInProgress
		}
		p := s.AddPlayer(callerID, name)
		c.log.Info().Str("room", roomID).Str("player", name).Int("joinOrder", p.JoinOrder).Msg("player joined")
		view := newPlayerView(p)
		return []Event{
			toCaller(EventJoinedRoom, joinedRoomPayload{PlayerID: p.ID, Player: view, GameState: newStateView(s)}),
			broadcast(EventPlayerJoined, playerJoinedPayload{Player: view, Players: playerViews(s)}),
		}, nil
	})
}

// Reconnect rebinds an existing player to the caller's new session id. Of
// two racing reconnects for the same stale id, the second fails with
// ErrPlayerNotFound because the first already removed the old key.
func (c *Coordinator) Reconnect(callerID, roomID, oldPlayerID, password string) ([]Event, error) {
	return c.withRoom(roomID, func(s *game.GameState) ([]Event, error) {
		if s.RoomPassword != password {
			return nil, ErrWrongPassword
		}
		if !s.RebindPlayer(oldPlayerID, callerID) {
			return nil, ErrPlayerNotFound
		}
		p := s.Players[callerID]
		c.log.Info().Str("room", roomID).Str("player", p.Name).Msg("player reconnected")
		return []Event{
			toCaller(EventReconnected, joinedRoomPayload{PlayerID: p.ID, Player: newPlayerView(p), GameState: newStateView(s)}),
		}, nil
	})
}

// LeaveRoom handles a session going away. Non-host players are dropped from
// lobby-phase rosters; during a game everyone stays so they can reconnect,
// and the host's seat is never vacated.
func (c *Coordinator) LeaveRoom(callerID, roomID string) []Event {
	return c.silent(roomID, func(s *game.GameState) []Event {
		if s.Phase != game.PhaseLobby {
			return nil
		}
		p, ok := s.Players[callerID]
		if !ok || p.IsHost {
			return nil
		}
		s.RemovePlayer(callerID)
		c.log.Info().Str("room", roomID).Str("player", p.Name).Msg("player left lobby")
		return []Event{broadcast(EventPlayerLeft, playerLeftPayload{PlayerID: callerID, Players: playerViews(s)})}
	})
}

// SetImpostorCount stores the impostor count for the next game. Host-only;
// counts below 1 are ignored. Over-subscribed counts are clamped later by
// impostor selection, not here.
func (c *Coordinator) SetImpostorCount(callerID, roomID string, count int) []Event {
	return c.silent(roomID, func(s *game.GameState) []Event {
		if !isHost(s, callerID) || count < 1 {
			return nil
		}
		s.ImpostorCount = count
		return []Event{broadcast(EventImpostorCountUpdated, impostorCountPayload{Count: count})}
	})
}

// StartGame begins a game: picks the category and word, assigns impostors
// and emits one gameStarted event per player with the confidential fields
// filtered for that recipient.
func (c *Coordinator) StartGame(callerID, roomID string) []Event {
	return c.silent(roomID, func(s *game.GameState) []Event {
		if !isHost(s, callerID) {
			return nil
		}
		category := c.bank.PickCategory(c.rng)
		word := c.bank.PickWord(c.rng, category)
		if err := s.Start(category, word, c.rng); err != nil {
			c.log.Debug().Str("room", roomID).Err(err).Msg("start rejected")
			return nil
		}
		c.log.Info().Str("room", roomID).Str("category", category.Name).Int("impostors", s.ImpostorCount).Msg("game started")

		events := make([]Event, 0, len(s.Players))
		for _, p := range s.PlayersByJoinOrder() {
			payload := gameStartedPayload{
				Phase:      s.Phase,
				Category:   category.Name,
				IsImpostor: p.IsImpostor,
			}
			if p.IsImpostor {
				payload.ImpostorClue = strPtr(word.ImpostorClue)
				payload.ImpostorClueEs = strPtr(word.ImpostorClueEs)
			} else {
				payload.Word = strPtr(word.Word)
				payload.WordEs = strPtr(word.WordEs)
			}
			events = append(events, toPlayer(p.ID, EventGameStarted, payload))
		}
		return events
	})
}

// MarkReady records that the caller has seen their role. When every living
// player is ready the room advances from reveal to discussion.
func (c *Coordinator) MarkReady(callerID, roomID string) []Event {
	return c.silent(roomID, func(s *game.GameState) []Event {
		p, ok := s.Players[callerID]
		if !ok {
			return nil
		}
		p.HasRevealedRole = true
		if s.Phase != game.PhaseReveal || !s.AlivePlayersReady() {
			return nil
		}
		s.Phase = game.PhaseDiscussion
		return []Event{broadcast(EventPhaseChanged, phaseChangedPayload{Phase: s.Phase, RoundNumber: s.RoundNumber})}
	})
}

// StartVoting moves a discussion into a voting phase with a clean ballot box.
func (c *Coordinator) StartVoting(callerID, roomID string) []Event {
	return c.silent(roomID, func(s *game.GameState) []Event {
		if !isHost(s, callerID) || s.Phase != game.PhaseDiscussion {
			return nil
		}
		s.Votes = nil
		for _, p := range s.Players {
			p.HasVoted = false
		}
		s.Phase = game.PhaseVoting
		return []Event{broadcast(EventPhaseChanged, phaseChangedPayload{Phase: s.Phase, RoundNumber: s.RoundNumber})}
	})
}

// Vote records a ballot from a living player who has not voted yet. When the
// last living player votes the round resolves immediately.
func (c *Coordinator) Vote(callerID, roomID, targetID string) []Event {
	return c.silent(roomID, func(s *game.GameState) []Event {
		if s.Phase != game.PhaseVoting {
			return nil
		}
		voter, ok := s.Players[callerID]
		if !ok || !voter.IsAlive || voter.HasVoted {
			return nil
		}
		s.Votes = append(s.Votes, game.Vote{VoterID: callerID, TargetID: targetID})
		voter.HasVoted = true

		events := []Event{broadcast(EventPlayerVoted, playerVotedPayload{VoterID: callerID, Players: playerViews(s)})}
		if s.AllAliveVoted() {
			events = append(events, c.resolveVoting(s)...)
		}
		return events
	})
}

// ForceEndVoting lets the host resolve a voting phase with however many
// ballots were cast.
func (c *Coordinator) ForceEndVoting(callerID, roomID string) []Event {
	return c.silent(roomID, func(s *game.GameState) []Event {
		if !isHost(s, callerID) || s.Phase != game.PhaseVoting {
			return nil
		}
		return c.resolveVoting(s)
	})
}

// resolveVoting tallies, eliminates, checks the win condition and applies
// scoring in one pass. Called with the room lock held.
func (c *Coordinator) resolveVoting(s *game.GameState) []Event {
	eliminatedID := s.TallyVotes()
	if eliminatedID != "" {
		s.EliminatePlayer(eliminatedID)
	}

	win := s.CheckWinCondition()
	if win.GameOver {
		s.Phase = game.PhaseGameOver
		s.UpdateScores(win.ImpostorsWin)
	} else {
		s.Phase = game.PhaseResults
	}

	payload := votingCompletePayload{GameOver: win.GameOver}
	if eliminatedID != "" {
		view := newPlayerView(s.Players[eliminatedID])
		payload.EliminatedPlayer = &view
	}
	if win.GameOver {
		payload.ImpostorsWin = &win.ImpostorsWin
		payload.Players = revealedViews(s)
	} else {
		payload.Players = playerViews(s)
	}
	c.log.Info().Str("room", s.RoomID).Bool("gameOver", win.GameOver).Str("eliminated", eliminatedID).Msg("voting resolved")
	return []Event{broadcast(EventVotingComplete, payload)}
}

// NextRound resets the round-scoped state and returns to discussion.
func (c *Coordinator) NextRound(callerID, roomID string) []Event {
	return c.silent(roomID, func(s *game.GameState) []Event {
		if !isHost(s, callerID) || s.Phase != game.PhaseResults {
			return nil
		}
		s.ResetForNextRound()
		s.Phase = game.PhaseDiscussion
		return []Event{broadcast(EventPhaseChanged, phaseChangedPayload{Phase: s.Phase, RoundNumber: s.RoundNumber})}
	})
}

// PlayAgain resets a finished game back to the lobby, keeping scores.
func (c *Coordinator) PlayAgain(callerID, roomID string) []Event {
	return c.silent(roomID, func(s *game.GameState) []Event {
		if !isHost(s, callerID) || s.Phase != game.PhaseGameOver {
			return nil
		}
		s.ResetForNextGame()
		return []Event{broadcast(EventGameReset, gameResetPayload{GameState: newStateView(s)})}
	})
}

// Snapshot returns an immutable public view of a room for display surfaces.
func (c *Coordinator) Snapshot(roomID string) (StateView, error) {
	var view StateView
	_, err := c.withRoom(roomID, func(s *game.GameState) ([]Event, error) {
		view = newStateView(s)
		return nil, nil
	})
	return view, err
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
