package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"
)

const (
	// writeWait is the deadline for a single outbound write
	writeWait = 10 * time.Second

	// pongWait is how long a connection may stay silent before it is dropped
	pongWait = 60 * time.Second

	// pingPeriod must be shorter than pongWait
	pingPeriod = (pongWait * 9) / 10

	// maxMessageSize bounds inbound command frames
	maxMessageSize = 4096

	// sendBufferSize is the per-client outbox capacity; a full outbox drops
	// the message for that client only
	sendBufferSize = 32

	// commandsPerSecond / commandBurst throttle inbound command floods
	commandsPerSecond = 10
	commandBurst      = 20
)

// Client is one websocket session. Its session id is the player id the
// coordinator sees. roomID is only touched from the read pump goroutine.
type Client struct {
	sessionID string
	roomID    string
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	limiter   *rate.Limiter

	mu     sync.Mutex
	closed bool
}

func newCommandLimiter() *rate.Limiter {
	return rate.NewLimiter(rate.Limit(commandsPerSecond), commandBurst)
}

// trySend queues a frame without blocking. Slow consumers lose frames rather
// than stalling the room's command path. A broadcast may race the client's
// disconnect, so the outbox is only written with the closed flag held.
func (c *Client) trySend(msg []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- msg:
	default:
		c.hub.log.Warn().Str("session", c.sessionID).Msg("outbox full, dropping frame")
	}
}

// close shuts the outbox exactly once so the write pump drains and exits.
func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.log.Debug().Str("session", c.sessionID).Err(err).Msg("read error")
			}
			return
		}
		if !c.limiter.Allow() {
			c.hub.log.Warn().Str("session", c.sessionID).Msg("command rate exceeded, dropping")
			continue
		}
		var env Envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			c.hub.log.Debug().Str("session", c.sessionID).Err(err).Msg("malformed envelope")
			continue
		}
		c.hub.dispatch(c, env)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
