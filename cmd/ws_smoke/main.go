package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"minesweeper/internal/http/handlers"
	"minesweeper/internal/logger"
	"minesweeper/internal/ws"

	"github.com/gorilla/websocket"
)

// Plays a game against a running server over /ws, revealing cells in
// row order until the game ends.
func main() {
	addr := flag.String("addr", "", "server address (default 127.0.0.1:$APP_PORT)")
	preset := flag.String("preset", "beginner", "board preset")
	flag.Parse()

	logger.Init("debug", false)

	if *addr == "" {
		port := os.Getenv("APP_PORT")
		if port == "" {
			port = "8080"
		}
		// use 127.0.0.1 to prefer IPv4 (avoid resolving to [::1])
		*addr = "127.0.0.1:" + port
	}

	created, err := createGame(*addr, *preset)
	if err != nil {
		logger.Fatal("create game", "error", err)
	}
	logger.Info("game created", "session_id", created.SessionID, "width", created.State.Width, "height", created.State.Height)

	wsURL := fmt.Sprintf("ws://%s/ws?token=%s", *addr, created.Token)
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		logger.Fatal("dial", "error", err)
	}
	defer conn.Close()

	state, err := readState(conn)
	if err != nil {
		logger.Fatal("initial state", "error", err)
	}

	for state.Phase == "fresh" || state.Phase == "playing" {
		col, row, ok := nextHidden(state)
		if !ok {
			break
		}
		msg := ws.Click(ws.MsgReveal, col, row)
		if err := conn.WriteJSON(msg); err != nil {
			logger.Fatal("write", "error", err)
		}
		if state, err = readState(conn); err != nil {
			logger.Fatal("read", "error", err)
		}
		logger.Debug("revealed", "col", col, "row", row, "phase", state.Phase, "elapsed", state.ElapsedSeconds)
	}

	logger.Info("smoke test finished", "phase", state.Phase, "elapsed_seconds", state.ElapsedSeconds)
}

func createGame(addr, preset string) (*handlers.CreateGameResponse, error) {
	body, _ := json.Marshal(handlers.CreateGameRequest{Preset: preset})
	resp, err := http.Post("http://"+addr+"/api/v1/games", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	var out handlers.CreateGameResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// readState skips ticks and pongs until the next board state
func readState(conn *websocket.Conn) (ws.StatePayload, error) {
	for {
		conn.SetReadDeadline(time.Now().Add(3 * time.Second))
		var env struct {
			Type    string          `json:"type"`
			Payload json.RawMessage `json:"payload"`
		}
		if err := conn.ReadJSON(&env); err != nil {
			return ws.StatePayload{}, err
		}
		switch env.Type {
		case ws.MsgState:
			var st ws.StatePayload
			err := json.Unmarshal(env.Payload, &st)
			return st, err
		case ws.MsgError:
			return ws.StatePayload{}, fmt.Errorf("server error: %s", env.Payload)
		}
	}
}

func nextHidden(st ws.StatePayload) (int, int, bool) {
	for row, cells := range st.Cells {
		for col, c := range cells {
			if !c.Revealed && !c.Flagged {
				return col, row, true
			}
		}
	}
	return 0, 0, false
}
