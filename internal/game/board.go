package game

import (
	"fmt"
	"time"

	"github.com/gammazero/deque"
)

// Phase is the lifecycle stage of a game session.
type Phase uint8

const (
	Fresh Phase = iota
	Playing
	Won
	Lost
)

func (p Phase) String() string {
	switch p {
	case Fresh:
		return "fresh"
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

// Over reports whether the game has ended.
func (p Phase) Over() bool {
	return p == Won || p == Lost
}

// Option configures a Board.
type Option func(*Board)

// WithPlacer sets the strategy used to lay mines on the first left click.
func WithPlacer(p MinePlacer) Option {
	return func(b *Board) { b.placer = p }
}

// WithSeed makes random mine placement reproducible.
func WithSeed(seed int64) Option {
	return func(b *Board) { b.placer = NewRandomPlacer(seed) }
}

// WithClock replaces time.Now for elapsed-time tracking.
func WithClock(now func() time.Time) Option {
	return func(b *Board) { b.now = now }
}

// Board is the rules engine for one game session. It is not safe for
// concurrent use; callers serialize access.
type Board struct {
	width  int
	height int
	mines  int
	cells  []Cell

	phase       Phase
	flagsPlaced int
	revealed    int
	startedAt   time.Time
	endedAt     time.Time

	placer MinePlacer
	now    func() time.Time
}

// NewBoard validates the configuration and returns a Fresh board with no
// mines placed.
func NewBoard(width, height, mines int, opts ...Option) (*Board, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d must be positive", ErrInvalidConfiguration, width, height)
	}
	if mines <= 0 || mines >= width*height {
		return nil, fmt.Errorf("%w: mine count %d must be between 1 and %d", ErrInvalidConfiguration, mines, width*height-1)
	}

	b := &Board{
		width:  width,
		height: height,
		mines:  mines,
		cells:  make([]Cell, width*height),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.placer == nil {
		b.placer = newTimeSeededPlacer()
	}
	return b, nil
}

func (b *Board) Width() int   { return b.width }
func (b *Board) Height() int  { return b.height }
func (b *Board) Mines() int   { return b.mines }
func (b *Board) Phase() Phase { return b.phase }

// RemainingMines is total mines minus flags placed. It goes negative when
// the player over-flags.
func (b *Board) RemainingMines() int {
	return b.mines - b.flagsPlaced
}

// FlagsPlaced returns the number of currently flagged cells.
func (b *Board) FlagsPlaced() int {
	return b.flagsPlaced
}

// RevealedCount returns the number of revealed cells.
func (b *Board) RevealedCount() int {
	return b.revealed
}

// ElapsedSeconds is 0 before the first click, runs while Playing and is
// frozen once the game is won or lost.
func (b *Board) ElapsedSeconds() int {
	switch b.phase {
	case Playing:
		return int(b.now().Sub(b.startedAt).Seconds())
	case Won, Lost:
		return int(b.endedAt.Sub(b.startedAt).Seconds())
	default:
		return 0
	}
}

// InBounds reports whether (col,row) lies on the grid.
func (b *Board) InBounds(col, row int) bool {
	return col >= 0 && col < b.width && row >= 0 && row < b.height
}

func (b *Board) index(c Coord) int {
	return c.Row*b.width + c.Col
}

func (b *Board) cell(c Coord) *Cell {
	return &b.cells[b.index(c)]
}

func (b *Board) checkBounds(col, row int) error {
	if !b.InBounds(col, row) {
		return fmt.Errorf("%w: (%d,%d) on %dx%d board", ErrOutOfBounds, col, row, b.width, b.height)
	}
	return nil
}

// Neighbors returns the up to 8 in-bounds cells around c.
func (b *Board) Neighbors(c Coord) []Coord {
	out := make([]Coord, 0, 8)
	for col := c.Col - 1; col <= c.Col+1; col++ {
		for row := c.Row - 1; row <= c.Row+1; row++ {
			if (col == c.Col && row == c.Row) || !b.InBounds(col, row) {
				continue
			}
			out = append(out, Coord{Col: col, Row: row})
		}
	}
	return out
}

// placeMines lays out mines away from the first clicked cell and bumps the
// adjacent count of every neighbor of each mine.
func (b *Board) placeMines(exclude Coord) error {
	layout := b.placer.Place(b.width, b.height, b.mines, exclude)
	if err := b.validateLayout(layout, exclude); err != nil {
		return err
	}
	for _, m := range layout {
		b.cell(m).mine = true
		for _, n := range b.Neighbors(m) {
			b.cell(n).adjacent++
		}
	}
	return nil
}

func (b *Board) validateLayout(layout []Coord, exclude Coord) error {
	if len(layout) != b.mines {
		return fmt.Errorf("%w: got %d mines, want %d", ErrInvalidPlacement, len(layout), b.mines)
	}
	seen := make(map[Coord]struct{}, len(layout))
	for _, m := range layout {
		if !b.InBounds(m.Col, m.Row) {
			return fmt.Errorf("%w: mine at %v is off the board", ErrInvalidPlacement, m)
		}
		if m == exclude {
			return fmt.Errorf("%w: mine at first click %v", ErrInvalidPlacement, m)
		}
		if _, dup := seen[m]; dup {
			return fmt.Errorf("%w: duplicate mine at %v", ErrInvalidPlacement, m)
		}
		seen[m] = struct{}{}
	}
	return nil
}

// LeftClick reveals a cell. The first left click of a session places mines
// and starts the clock. Clicks on flagged or revealed cells, and clicks after
// the game has ended, do nothing.
func (b *Board) LeftClick(col, row int) error {
	if err := b.checkBounds(col, row); err != nil {
		return err
	}
	if b.phase.Over() {
		return nil
	}

	at := Coord{Col: col, Row: row}
	if b.phase == Fresh {
		if err := b.placeMines(at); err != nil {
			return err
		}
		b.phase = Playing
		b.startedAt = b.now()
	}

	c := b.cell(at)
	if c.state != Hidden {
		return nil
	}

	if c.Reveal() {
		b.revealed++
		b.lose()
		return nil
	}
	b.revealed++

	if c.adjacent == 0 {
		b.cascade(at)
	}
	if b.allSafeRevealed() {
		b.phase = Won
		b.endedAt = b.now()
	}
	return nil
}

// cascade reveals the connected region of zero-count cells around start,
// plus its numbered border. Flagged cells are never opened.
func (b *Board) cascade(start Coord) {
	var work deque.Deque[Coord]
	work.PushBack(start)

	for work.Len() != 0 {
		at := work.PopFront()
		for _, n := range b.Neighbors(at) {
			nc := b.cell(n)
			if nc.state != Hidden {
				continue
			}
			nc.Reveal()
			b.revealed++
			if nc.adjacent == 0 {
				work.PushBack(n)
			}
		}
	}
}

func (b *Board) allSafeRevealed() bool {
	return b.revealed == b.width*b.height-b.mines
}

// lose ends the game and shows every unflagged mine.
func (b *Board) lose() {
	b.phase = Lost
	b.endedAt = b.now()
	for i := range b.cells {
		c := &b.cells[i]
		if c.mine && c.state == Hidden {
			c.state = Revealed
			b.revealed++
		}
	}
}

// RightClick toggles a flag. Flags can only change while Playing.
func (b *Board) RightClick(col, row int) error {
	if err := b.checkBounds(col, row); err != nil {
		return err
	}
	if b.phase != Playing {
		return nil
	}
	b.flagsPlaced -= b.cell(Coord{Col: col, Row: row}).ToggleFlag()
	return nil
}

// Restart returns the board to Fresh with the same dimensions and mine count.
func (b *Board) Restart() {
	for i := range b.cells {
		b.cells[i].reset()
	}
	b.phase = Fresh
	b.flagsPlaced = 0
	b.revealed = 0
	b.startedAt = time.Time{}
	b.endedAt = time.Time{}
}

// Cell returns the display state of one cell.
func (b *Board) Cell(col, row int) (CellView, error) {
	if err := b.checkBounds(col, row); err != nil {
		return CellView{}, err
	}
	return b.view(Coord{Col: col, Row: row}), nil
}

func (b *Board) view(at Coord) CellView {
	c := b.cell(at)
	v := CellView{
		Coord:    at,
		Content:  c.Content(),
		Revealed: c.IsRevealed(),
		Flagged:  c.IsFlagged(),
	}
	if c.IsRevealed() || b.phase.Over() {
		v.Mine = c.mine
	}
	return v
}

// Snapshot reads the whole board.
func (b *Board) Snapshot() Snapshot {
	s := Snapshot{
		Width:          b.width,
		Height:         b.height,
		Mines:          b.mines,
		Phase:          b.phase,
		RemainingMines: b.RemainingMines(),
		ElapsedSeconds: b.ElapsedSeconds(),
		Cells:          make([][]CellView, b.height),
	}
	for row := 0; row < b.height; row++ {
		s.Cells[row] = make([]CellView, b.width)
		for col := 0; col < b.width; col++ {
			s.Cells[row][col] = b.view(Coord{Col: col, Row: row})
		}
	}
	return s
}

// Contents dumps every cell glyph, indexed [row][col].
func (b *Board) Contents() [][]string {
	out := make([][]string, b.height)
	for row := 0; row < b.height; row++ {
		out[row] = make([]string, b.width)
		for col := 0; col < b.width; col++ {
			out[row][col] = b.cell(Coord{Col: col, Row: row}).Content().Glyph()
		}
	}
	return out
}

// MinePositions lists the mines in row-major order. Empty while Fresh.
func (b *Board) MinePositions() []Coord {
	var out []Coord
	for i := range b.cells {
		if b.cells[i].mine {
			out = append(out, Coord{Col: i % b.width, Row: i / b.width})
		}
	}
	return out
}
