package ws

const (
	// client - server
	MsgReveal  = "reveal"
	MsgFlag    = "flag"
	MsgRestart = "restart"
	MsgPing    = "ping"

	// server - client
	MsgState = "state"
	MsgTick  = "tick"
	MsgPong  = "pong"
	MsgError = "error"
)

// Message is the server → client envelope
type Message struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// Incoming is the client → server message. Col and Row are required for
// reveal and flag.
type Incoming struct {
	Type string `json:"type"`
	Col  *int   `json:"col,omitempty"`
	Row  *int   `json:"row,omitempty"`
}

// Click builds a reveal or flag message
func Click(msgType string, col, row int) Incoming {
	return Incoming{Type: msgType, Col: &col, Row: &row}
}
