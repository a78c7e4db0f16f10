package ws

import (
	"encoding/json"
	"sync"
	"time"

	"minesweeper/internal/game"
	"minesweeper/internal/logger"
)

// Hub tracks the open connections of every session so a change made on one
// connection (or over REST) reaches all of them.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*Client]struct{}

	stop     chan struct{}
	stopOnce sync.Once
	stopped  chan struct{} // closed when the cleanup goroutine exits
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]map[*Client]struct{}),
		stop:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.clients[c.SessionID]
	if !ok {
		set = make(map[*Client]struct{})
		h.clients[c.SessionID] = set
	}
	set[c] = struct{}{}
	logger.Debug("Hub.register", "session_id", c.SessionID, "connections", len(set))
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.clients[c.SessionID]
	if !ok {
		return
	}
	delete(set, c)
	if len(set) == 0 {
		delete(h.clients, c.SessionID)
	}
}

// Connections returns how many clients are attached to a session
func (h *Hub) Connections(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[sessionID])
}

// Broadcast pushes the board to every connection of the session. Slow
// clients whose send buffer is full miss the update.
func (h *Hub) Broadcast(sessionID string, snap game.Snapshot) {
	data, err := json.Marshal(Message{Type: MsgState, Payload: NewStatePayload(sessionID, snap)})
	if err != nil {
		logger.Error("Hub.Broadcast: marshal failed", "session_id", sessionID, "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[sessionID] {
		if !c.enqueue(data) {
			logger.Warn("Hub.Broadcast: dropped update for slow client", "session_id", sessionID)
		}
	}
}

// CloseSession disconnects every client of a deleted session
func (h *Hub) CloseSession(sessionID string) {
	h.mu.Lock()
	set := h.clients[sessionID]
	delete(h.clients, sessionID)
	h.mu.Unlock()

	for c := range set {
		c.close()
	}
}

// StartCleanup drops connections whose session expired in the service,
// until Close is called. Call it at most once.
func (h *Hub) StartCleanup(sessions Sessions, every time.Duration) {
	go func() {
		defer close(h.stopped)
		ticker := time.NewTicker(every)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				h.cleanupStaleSessions(sessions)
			case <-h.stop:
				return
			}
		}
	}()
}

// Close stops the cleanup goroutine
func (h *Hub) Close() {
	h.stopOnce.Do(func() { close(h.stop) })
}

func (h *Hub) cleanupStaleSessions(sessions Sessions) int {
	h.mu.RLock()
	ids := make([]string, 0, len(h.clients))
	for id := range h.clients {
		ids = append(ids, id)
	}
	h.mu.RUnlock()

	closed := 0
	for _, id := range ids {
		if _, err := sessions.View(id); err != nil {
			h.CloseSession(id)
			closed++
		}
	}
	if closed > 0 {
		logger.Info("Hub.cleanup: closed connections of expired sessions", "sessions", closed)
	}
	return closed
}
