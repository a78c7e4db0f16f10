package domain

import "time"

// GameResult - outcome of a finished game
type GameResult string

const (
	GameResultWin  GameResult = "win"
	GameResultLose GameResult = "lose"
)

// GameRecord - one finished game as stored in game_history
type GameRecord struct {
	ID             int64      `db:"id" json:"id"`
	SessionID      string     `db:"session_id" json:"session_id"`
	Width          int        `db:"width" json:"width"`
	Height         int        `db:"height" json:"height"`
	Mines          int        `db:"mines" json:"mines"`
	Result         GameResult `db:"result" json:"result"`
	ElapsedSeconds int        `db:"elapsed_seconds" json:"elapsed_seconds"`
	RevealedCells  int        `db:"revealed_cells" json:"revealed_cells"`
	FlagsPlaced    int        `db:"flags_placed" json:"flags_placed"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
}

// Stats - aggregate over game_history
type Stats struct {
	TotalGames     int  `json:"total_games"`
	Wins           int  `json:"wins"`
	Losses         int  `json:"losses"`
	BestWinSeconds *int `json:"best_win_seconds,omitempty"`
}
