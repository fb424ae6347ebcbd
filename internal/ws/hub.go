package ws

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"wordimpostor/internal/room"
)

// Hub owns the live websocket sessions and routes coordinator events to
// them. Session ids double as the player ids the coordinator tracks.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]*Client
	rooms    map[string]map[string]*Client

	coord    *room.Coordinator
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

// NewHub creates a hub bound to the given coordinator.
func NewHub(coord *room.Coordinator, log zerolog.Logger) *Hub {
	return &Hub{
		sessions: make(map[string]*Client),
		rooms:    make(map[string]map[string]*Client),
		coord:    coord,
		log:      log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Room passwords are the access control; origins are open like
			// the reference server.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ServeWS upgrades the connection and starts the session's pumps.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	c := &Client{
		sessionID: uuid.New().String(),
		hub:       h,
		conn:      conn,
		send:      make(chan []byte, sendBufferSize),
		limiter:   newCommandLimiter(),
	}
	h.mu.Lock()
	h.sessions[c.sessionID] = c
	h.mu.Unlock()
	h.log.Info().Str("session", c.sessionID).Msg("client connected")

	go c.writePump()
	go c.readPump()
}

func (h *Hub) joinRoom(c *Client, roomID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	members, ok := h.rooms[roomID]
	if !ok {
		members = make(map[string]*Client)
		h.rooms[roomID] = members
	}
	members[c.sessionID] = c
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	delete(h.sessions, c.sessionID)
	if c.roomID != "" {
		if members, ok := h.rooms[c.roomID]; ok {
			delete(members, c.sessionID)
			if len(members) == 0 {
				delete(h.rooms, c.roomID)
			}
		}
	}
	h.mu.Unlock()

	c.close()
	h.log.Info().Str("session", c.sessionID).Msg("client disconnected")

	if c.roomID != "" {
		events := h.coord.LeaveRoom(c.sessionID, c.roomID)
		h.deliver(c.roomID, c, events)
	}
}

// dispatch decodes one inbound command and routes it to the coordinator.
func (h *Hub) dispatch(c *Client, env Envelope) {
	switch env.Type {
	case CmdCreateRoom:
		var d createRoomData
		if !h.decode(c, env.Data, &d) {
			return
		}
		h.deliver(d.RoomID, c, h.coord.CreateRoom(c.sessionID, d.RoomID, d.RoomPassword))

	case CmdJoinRoom:
		var d joinRoomData
		if !h.decode(c, env.Data, &d) {
			return
		}
		events, err := h.coord.JoinRoom(c.sessionID, d.RoomID, d.PlayerName, d.RoomPassword)
		if err != nil {
			h.sendError(c, err)
			return
		}
		c.roomID = d.RoomID
		h.joinRoom(c, d.RoomID)
		h.deliver(d.RoomID, c, events)

	case CmdReconnect:
		var d reconnectData
		if !h.decode(c, env.Data, &d) {
			return
		}
		events, err := h.coord.Reconnect(c.sessionID, d.RoomID, d.PlayerID, d.RoomPassword)
		if err != nil {
			h.sendError(c, err)
			return
		}
		c.roomID = d.RoomID
		h.joinRoom(c, d.RoomID)
		h.deliver(d.RoomID, c, events)

	case CmdSetImpostorCount:
		var d impostorCountData
		if !h.decode(c, env.Data, &d) {
			return
		}
		h.deliver(d.RoomID, c, h.coord.SetImpostorCount(c.sessionID, d.RoomID, d.Count))

	case CmdStartGame:
		var d roomData
		if !h.decode(c, env.Data, &d) {
			return
		}
		h.deliver(d.RoomID, c, h.coord.StartGame(c.sessionID, d.RoomID))

	case CmdWordRevealed, CmdPlayerReady:
		var d roomData
		if !h.decode(c, env.Data, &d) {
			return
		}
		h.deliver(d.RoomID, c, h.coord.MarkReady(c.sessionID, d.RoomID))

	case CmdStartVoting:
		var d roomData
		if !h.decode(c, env.Data, &d) {
			return
		}
		h.deliver(d.RoomID, c, h.coord.StartVoting(c.sessionID, d.RoomID))

	case CmdVote:
		var d voteData
		if !h.decode(c, env.Data, &d) {
			return
		}
		h.deliver(d.RoomID, c, h.coord.Vote(c.sessionID, d.RoomID, d.TargetID))

	case CmdForceEndVoting:
		var d roomData
		if !h.decode(c, env.Data, &d) {
			return
		}
		h.deliver(d.RoomID, c, h.coord.ForceEndVoting(c.sessionID, d.RoomID))

	case CmdNextRound:
		var d roomData
		if !h.decode(c, env.Data, &d) {
			return
		}
		h.deliver(d.RoomID, c, h.coord.NextRound(c.sessionID, d.RoomID))

	case CmdPlayAgain:
		var d roomData
		if !h.decode(c, env.Data, &d) {
			return
		}
		h.deliver(d.RoomID, c, h.coord.PlayAgain(c.sessionID, d.RoomID))

	default:
		h.log.Debug().Str("session", c.sessionID).Str("type", env.Type).Msg("unknown command")
	}
}

func (h *Hub) decode(c *Client, raw json.RawMessage, into any) bool {
	if err := json.Unmarshal(raw, into); err != nil {
		h.log.Debug().Str("session", c.sessionID).Err(err).Msg("malformed command data")
		return false
	}
	return true
}

// deliver fans the coordinator's events out per scope. Room membership is
// snapshotted under the lock and frames are sent without it.
func (h *Hub) deliver(roomID string, caller *Client, events []room.Event) {
	for _, ev := range events {
		frame, err := encodeEvent(ev.Type, ev.Data)
		if err != nil {
			h.log.Error().Str("event", ev.Type).Err(err).Msg("encoding event")
			continue
		}
		switch ev.Scope {
		case room.ScopeCaller:
			caller.trySend(frame)
		case room.ScopePlayer:
			h.mu.RLock()
			target, ok := h.sessions[ev.PlayerID]
			h.mu.RUnlock()
			if ok {
				target.trySend(frame)
			}
		case room.ScopeBroadcast:
			h.mu.RLock()
			members := make([]*Client, 0, len(h.rooms[roomID]))
			for _, m := range h.rooms[roomID] {
				members = append(members, m)
			}
			h.mu.RUnlock()
			for _, m := range members {
				m.trySend(frame)
			}
		}
	}
}

func (h *Hub) sendError(c *Client, err error) {
	frame, encErr := encodeEvent(room.EventError, errorData{Message: err.Error()})
	if encErr != nil {
		return
	}
	c.trySend(frame)
}
