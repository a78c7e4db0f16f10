package ws

import "minesweeper/internal/game"

type CellPayload struct {
	Content  string `json:"content"`
	Kind     string `json:"kind"`
	Revealed bool   `json:"revealed"`
	Flagged  bool   `json:"flagged"`
	Mine     *bool  `json:"mine,omitempty"` // only when revealed or game over
}

type StatePayload struct {
	SessionID      string          `json:"session_id"`
	Width          int             `json:"width"`
	Height         int             `json:"height"`
	Mines          int             `json:"mines"`
	Phase          string          `json:"phase"`
	RemainingMines int             `json:"remaining_mines"`
	ElapsedSeconds int             `json:"elapsed_seconds"`
	Cells          [][]CellPayload `json:"cells"` // [row][col]
}

type TickPayload struct {
	ElapsedSeconds int `json:"elapsed_seconds"`
}

type ErrorPayload struct {
	Error string `json:"error"`
}

// NewStatePayload converts a board snapshot for the wire.
func NewStatePayload(sessionID string, s game.Snapshot) StatePayload {
	p := StatePayload{
		SessionID:      sessionID,
		Width:          s.Width,
		Height:         s.Height,
		Mines:          s.Mines,
		Phase:          s.Phase.String(),
		RemainingMines: s.RemainingMines,
		ElapsedSeconds: s.ElapsedSeconds,
		Cells:          make([][]CellPayload, len(s.Cells)),
	}
	over := s.Phase.Over()
	for row, cells := range s.Cells {
		p.Cells[row] = make([]CellPayload, len(cells))
		for col, v := range cells {
			cp := CellPayload{
				Content:  v.Content.Glyph(),
				Kind:     v.Content.Kind.String(),
				Revealed: v.Revealed,
				Flagged:  v.Flagged,
			}
			if v.Revealed || over {
				mine := v.Mine
				cp.Mine = &mine
			}
			p.Cells[row][col] = cp
		}
	}
	return p
}
