package game

import "strconv"

// ContentKind classifies what a cell currently displays.
type ContentKind uint8

const (
	ContentHidden ContentKind = iota
	ContentFlag
	ContentMine
	ContentCount
)

func (k ContentKind) String() string {
	switch k {
	case ContentHidden:
		return "hidden"
	case ContentFlag:
		return "flag"
	case ContentMine:
		return "mine"
	case ContentCount:
		return "count"
	default:
		return "unknown"
	}
}

const (
	GlyphBlank = " "
	GlyphFlag  = "F"
	GlyphMine  = "M"
)

// Content is the display content of a cell.
type Content struct {
	Kind  ContentKind
	Count int // only meaningful for ContentCount
}

// Glyph renders the content as a single string. A revealed cell with no
// adjacent mines is blank, the same as a hidden one.
func (c Content) Glyph() string {
	switch c.Kind {
	case ContentFlag:
		return GlyphFlag
	case ContentMine:
		return GlyphMine
	case ContentCount:
		if c.Count == 0 {
			return GlyphBlank
		}
		return strconv.Itoa(c.Count)
	default:
		return GlyphBlank
	}
}

// CellView is the read-only state the presentation shell needs for one cell.
// Mine is only populated when the cell is revealed or the game is over.
type CellView struct {
	Coord    Coord
	Content  Content
	Revealed bool
	Flagged  bool
	Mine     bool
}

// Snapshot is a full read of the board after a mutation.
type Snapshot struct {
	Width          int
	Height         int
	Mines          int
	Phase          Phase
	RemainingMines int
	ElapsedSeconds int
	// Cells is indexed [row][col].
	Cells [][]CellView
}
