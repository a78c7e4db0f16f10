package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"minesweeper/internal/game"
	"minesweeper/internal/logger"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 30 * time.Second
	pingPeriod = 25 * time.Second
	tickPeriod = time.Second
)

// Sessions is the part of the session service a client drives.
type Sessions interface {
	View(id string) (game.Snapshot, error)
	LeftClick(ctx context.Context, id string, col, row int) (game.Snapshot, error)
	RightClick(ctx context.Context, id string, col, row int) (game.Snapshot, error)
	Restart(ctx context.Context, id string) (game.Snapshot, error)
}

// Client forwards clicks from one connection to one session. Board changes
// are fanned out through the hub to every connection of the session.
type Client struct {
	SessionID string
	Conn      *websocket.Conn
	Send      chan []byte

	sessions Sessions
	hub      *Hub
	log      *slog.Logger
	done     chan struct{}
	doneOnce sync.Once
}

func NewClient(sessionID string, conn *websocket.Conn, sessions Sessions, hub *Hub) *Client {
	return &Client{
		SessionID: sessionID,
		Conn:      conn,
		Send:      make(chan []byte, 64),
		sessions:  sessions,
		hub:       hub,
		log:       logger.With("session_id", sessionID),
		done:      make(chan struct{}),
	}
}

// Run pumps messages until the connection closes.
func (c *Client) Run() {
	c.hub.register(c)
	defer c.hub.unregister(c)

	go c.writePump()

	if snap, err := c.sessions.View(c.SessionID); err == nil {
		c.push(Message{Type: MsgState, Payload: NewStatePayload(c.SessionID, snap)})
	}

	c.readPump()
}

// read
func (c *Client) readPump() {
	defer c.close()

	c.Conn.SetReadLimit(4096)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Warn("ws read error", "error", err)
			}
			return
		}
		_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		c.handle(raw)
	}
}

func (c *Client) handle(raw []byte) {
	var in Incoming
	if err := json.Unmarshal(raw, &in); err != nil {
		c.push(Message{Type: MsgError, Payload: ErrorPayload{Error: "invalid message"}})
		return
	}

	if (in.Type == MsgReveal || in.Type == MsgFlag) && (in.Col == nil || in.Row == nil) {
		c.push(Message{Type: MsgError, Payload: ErrorPayload{Error: "col and row required"}})
		return
	}

	ctx := logger.NewContext(context.Background(), c.log)

	// successful changes reach this connection through the hub
	var err error
	switch in.Type {
	case MsgReveal:
		_, err = c.sessions.LeftClick(ctx, c.SessionID, *in.Col, *in.Row)
	case MsgFlag:
		_, err = c.sessions.RightClick(ctx, c.SessionID, *in.Col, *in.Row)
	case MsgRestart:
		_, err = c.sessions.Restart(ctx, c.SessionID)
	case MsgPing:
		c.push(Message{Type: MsgPong})
		return
	default:
		c.push(Message{Type: MsgError, Payload: ErrorPayload{Error: "unknown message type: " + in.Type}})
		return
	}

	if err != nil {
		c.log.Debug("ws move rejected", "type", in.Type, "error", err)
		c.push(Message{Type: MsgError, Payload: ErrorPayload{Error: err.Error()}})
	}
}

func (c *Client) push(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		c.log.Error("ws marshal error", "error", err)
		return
	}
	select {
	case c.Send <- data:
	case <-c.done:
	}
}

// enqueue is the non-blocking variant of push used by the hub
func (c *Client) enqueue(data []byte) bool {
	select {
	case c.Send <- data:
		return true
	case <-c.done:
		return true
	default:
		return false
	}
}

// write
func (c *Client) writePump() {
	ping := time.NewTicker(pingPeriod)
	tick := time.NewTicker(tickPeriod)
	defer func() {
		ping.Stop()
		tick.Stop()
		_ = c.Conn.Close()
	}()

	lastTick := -1
	for {
		select {
		case msg := <-c.Send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				c.log.Warn("ws write error", "error", err)
				c.close()
				return
			}

		case <-tick.C:
			// the timer display is cosmetic; it only reads the board
			snap, err := c.sessions.View(c.SessionID)
			if err != nil || snap.Phase != game.Playing || snap.ElapsedSeconds == lastTick {
				continue
			}
			lastTick = snap.ElapsedSeconds
			data, _ := json.Marshal(Message{Type: MsgTick, Payload: TickPayload{ElapsedSeconds: snap.ElapsedSeconds}})
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
				c.close()
				return
			}

		case <-ping.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.close()
				return
			}

		case <-c.done:
			_ = c.Conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
			return
		}
	}
}

func (c *Client) close() {
	c.doneOnce.Do(func() {
		close(c.done)
		c.log.Debug("ws client closed")
	})
}
