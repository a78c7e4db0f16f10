package game

// CellState is the display state of a single cell.
type CellState uint8

const (
	Hidden CellState = iota
	Flagged
	Revealed
)

func (s CellState) String() string {
	switch s {
	case Hidden:
		return "hidden"
	case Flagged:
		return "flagged"
	case Revealed:
		return "revealed"
	default:
		return "unknown"
	}
}

// Cell is one grid position. Mine status and adjacent count are fixed once
// mines are placed; only the state changes during play.
type Cell struct {
	mine     bool
	adjacent int
	state    CellState
}

func (c *Cell) IsMine() bool       { return c.mine }
func (c *Cell) AdjacentMines() int { return c.adjacent }
func (c *Cell) State() CellState   { return c.state }
func (c *Cell) IsRevealed() bool   { return c.state == Revealed }
func (c *Cell) IsFlagged() bool    { return c.state == Flagged }

// ToggleFlag flips Hidden <-> Flagged and returns the delta to apply to the
// remaining-mines counter: -1 when a flag is placed, +1 when removed, 0 for a
// revealed cell.
func (c *Cell) ToggleFlag() int {
	switch c.state {
	case Hidden:
		c.state = Flagged
		return -1
	case Flagged:
		c.state = Hidden
		return 1
	default:
		return 0
	}
}

// Reveal moves a hidden cell to Revealed and reports whether it is a mine.
// Flagged and already revealed cells are left alone and report false.
func (c *Cell) Reveal() bool {
	if c.state != Hidden {
		return false
	}
	c.state = Revealed
	return c.mine
}

// Content derives what the cell shows. It never mutates the cell.
func (c *Cell) Content() Content {
	switch c.state {
	case Flagged:
		return Content{Kind: ContentFlag}
	case Hidden:
		return Content{Kind: ContentHidden}
	}
	if c.mine {
		return Content{Kind: ContentMine}
	}
	return Content{Kind: ContentCount, Count: c.adjacent}
}

func (c *Cell) reset() {
	*c = Cell{}
}
