package game

import (
	"errors"
	"testing"
	"time"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newFixed(t *testing.T, w, h int, mines ...Coord) *Board {
	t.Helper()
	b, err := NewBoard(w, h, len(mines), WithPlacer(FixedPlacer(mines)))
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	return b
}

func click(t *testing.T, b *Board, col, row int) {
	t.Helper()
	if err := b.LeftClick(col, row); err != nil {
		t.Fatalf("LeftClick(%d,%d): %v", col, row, err)
	}
}

func flag(t *testing.T, b *Board, col, row int) {
	t.Helper()
	if err := b.RightClick(col, row); err != nil {
		t.Fatalf("RightClick(%d,%d): %v", col, row, err)
	}
}

func view(t *testing.T, b *Board, col, row int) CellView {
	t.Helper()
	v, err := b.Cell(col, row)
	if err != nil {
		t.Fatalf("Cell(%d,%d): %v", col, row, err)
	}
	return v
}

func TestNewBoardRejectsBadConfig(t *testing.T) {
	cases := []struct {
		w, h, mines int
	}{
		{1, 1, 0},
		{1, 1, 1},
		{0, 5, 1},
		{5, -1, 1},
		{3, 3, 9},
		{3, 3, -2},
	}

	for _, tc := range cases {
		_, err := NewBoard(tc.w, tc.h, tc.mines)
		if !errors.Is(err, ErrInvalidConfiguration) {
			t.Fatalf("NewBoard(%d,%d,%d) err = %v; want ErrInvalidConfiguration", tc.w, tc.h, tc.mines, err)
		}
	}
}

func TestNewBoardIsFresh(t *testing.T) {
	b, err := NewBoard(4, 3, 2)
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	if b.Phase() != Fresh {
		t.Fatalf("phase = %s; want fresh", b.Phase())
	}
	if len(b.MinePositions()) != 0 {
		t.Fatalf("mines placed before first click")
	}
	if b.RemainingMines() != 2 || b.ElapsedSeconds() != 0 {
		t.Fatalf("remaining=%d elapsed=%d", b.RemainingMines(), b.ElapsedSeconds())
	}
}

func TestRandomPlacementProperties(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		b, err := NewBoard(8, 6, 12, WithSeed(seed))
		if err != nil {
			t.Fatalf("NewBoard: %v", err)
		}
		first := Coord{Col: int(seed) % 8, Row: int(seed) % 6}
		click(t, b, first.Col, first.Row)

		mines := b.MinePositions()
		if len(mines) != 12 {
			t.Fatalf("seed %d: %d mines; want 12", seed, len(mines))
		}
		isMine := make(map[Coord]bool)
		for _, m := range mines {
			isMine[m] = true
		}
		if isMine[first] {
			t.Fatalf("seed %d: first click %v is a mine", seed, first)
		}

		for row := 0; row < 6; row++ {
			for col := 0; col < 8; col++ {
				at := Coord{Col: col, Row: row}
				if isMine[at] {
					continue
				}
				want := 0
				for _, n := range b.Neighbors(at) {
					if isMine[n] {
						want++
					}
				}
				if got := b.cell(at).AdjacentMines(); got != want {
					t.Fatalf("seed %d: adjacent %v = %d; want %d", seed, at, got, want)
				}
			}
		}
	}
}

func TestFloodFillBoundary(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		b, err := NewBoard(10, 10, 10, WithSeed(seed))
		if err != nil {
			t.Fatalf("NewBoard: %v", err)
		}
		click(t, b, 0, 0)
		if b.Phase() == Lost {
			t.Fatalf("seed %d: lost on first click", seed)
		}

		for row := 0; row < 10; row++ {
			for col := 0; col < 10; col++ {
				c := b.cell(Coord{Col: col, Row: row})
				if c.IsRevealed() && c.IsMine() {
					t.Fatalf("seed %d: cascade revealed a mine at (%d,%d)", seed, col, row)
				}
				if !c.IsRevealed() || c.AdjacentMines() != 0 {
					continue
				}
				for _, n := range b.Neighbors(Coord{Col: col, Row: row}) {
					if b.cell(n).State() == Hidden {
						t.Fatalf("seed %d: zero cell (%d,%d) left neighbor %v hidden", seed, col, row, n)
					}
				}
			}
		}
	}
}

func TestThreeByThreeCenterClick(t *testing.T) {
	b := newFixed(t, 3, 3, Coord{Col: 2, Row: 0})
	click(t, b, 1, 1)

	if b.Phase() != Playing {
		t.Fatalf("phase = %s; want playing", b.Phase())
	}
	v := view(t, b, 1, 1)
	if !v.Revealed || v.Content.Count != 1 {
		t.Fatalf("center = %+v; want revealed count 1", v)
	}
	if b.RevealedCount() != 1 {
		t.Fatalf("revealed %d cells; want 1", b.RevealedCount())
	}
}

func TestCornerCascadeWins(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	b, err := NewBoard(5, 5, 1, WithPlacer(FixedPlacer{{Col: 4, Row: 4}}), WithClock(clock.now))
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}

	click(t, b, 0, 0)

	if b.Phase() != Won {
		t.Fatalf("phase = %s; want won", b.Phase())
	}
	if b.RevealedCount() != 24 {
		t.Fatalf("revealed %d; want 24", b.RevealedCount())
	}
	mine := view(t, b, 4, 4)
	if mine.Revealed || !mine.Mine {
		t.Fatalf("mine cell = %+v; want hidden mine", mine)
	}
	if b.RemainingMines() != 1 {
		t.Fatalf("remaining = %d; want 1 (no flags needed to win)", b.RemainingMines())
	}
}

func TestFlaggedCellsSurviveCascade(t *testing.T) {
	b := newFixed(t, 5, 5, Coord{Col: 4, Row: 4})

	click(t, b, 3, 3)
	if b.RevealedCount() != 1 {
		t.Fatalf("revealed %d; want 1", b.RevealedCount())
	}

	flag(t, b, 0, 0)
	click(t, b, 0, 0)
	if view(t, b, 0, 0).Revealed {
		t.Fatalf("left click revealed a flagged cell")
	}

	click(t, b, 0, 4)
	if v := view(t, b, 0, 0); v.Revealed || !v.Flagged {
		t.Fatalf("cascade touched flagged cell: %+v", v)
	}
	if b.Phase() != Playing {
		t.Fatalf("phase = %s; want playing while a safe cell is flagged", b.Phase())
	}

	flag(t, b, 0, 0)
	click(t, b, 0, 0)
	if b.Phase() != Won {
		t.Fatalf("phase = %s; want won", b.Phase())
	}
}

func TestLossRevealsUnflaggedMines(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	mines := FixedPlacer{{Col: 0, Row: 0}, {Col: 2, Row: 2}, {Col: 0, Row: 2}}
	b, err := NewBoard(3, 3, 3, WithPlacer(mines), WithClock(clock.now))
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}

	click(t, b, 1, 0)
	flag(t, b, 2, 2)
	clock.advance(7 * time.Second)
	click(t, b, 0, 0)

	if b.Phase() != Lost {
		t.Fatalf("phase = %s; want lost", b.Phase())
	}
	if v := view(t, b, 0, 2); !v.Revealed || v.Content.Kind != ContentMine {
		t.Fatalf("unflagged mine not shown: %+v", v)
	}
	if v := view(t, b, 2, 2); v.Revealed || v.Content.Kind != ContentFlag || !v.Mine {
		t.Fatalf("flagged mine = %+v; want flag kept", v)
	}

	clock.advance(30 * time.Second)
	if b.ElapsedSeconds() != 7 {
		t.Fatalf("elapsed = %d; want frozen at 7", b.ElapsedSeconds())
	}

	click(t, b, 1, 1)
	flag(t, b, 2, 1)
	if view(t, b, 1, 1).Revealed || view(t, b, 2, 1).Flagged {
		t.Fatalf("board changed after loss")
	}
}

func TestFlagToggleRoundTrip(t *testing.T) {
	b := newFixed(t, 4, 4, Coord{Col: 3, Row: 3}, Coord{Col: 3, Row: 2})
	click(t, b, 2, 2)

	before := view(t, b, 3, 3)
	remaining := b.RemainingMines()

	flag(t, b, 3, 3)
	if b.RemainingMines() != remaining-1 {
		t.Fatalf("remaining = %d; want %d", b.RemainingMines(), remaining-1)
	}
	flag(t, b, 3, 3)

	if got := view(t, b, 3, 3); got != before {
		t.Fatalf("cell = %+v; want %+v", got, before)
	}
	if b.RemainingMines() != remaining {
		t.Fatalf("remaining = %d; want %d", b.RemainingMines(), remaining)
	}
}

func TestWinWithFlaggedMine(t *testing.T) {
	b := newFixed(t, 2, 2, Coord{Col: 1, Row: 1})

	click(t, b, 0, 0)
	flag(t, b, 1, 1)
	click(t, b, 1, 0)
	if b.Phase() != Playing {
		t.Fatalf("phase = %v before the last safe cell; want playing", b.Phase())
	}

	click(t, b, 0, 1)
	if b.Phase() != Won {
		t.Fatalf("phase = %v; want won", b.Phase())
	}
	if b.RemainingMines() != 0 {
		t.Fatalf("remaining = %d; want 0", b.RemainingMines())
	}
	if v := view(t, b, 1, 1); !v.Flagged || v.Content.Kind != ContentFlag {
		t.Fatalf("flagged mine changed on win: %+v", v)
	}
}

func TestOverFlaggingGoesNegative(t *testing.T) {
	b := newFixed(t, 3, 3, Coord{Col: 2, Row: 2})
	click(t, b, 1, 1)

	flag(t, b, 0, 0)
	flag(t, b, 0, 1)
	if b.RemainingMines() != -1 {
		t.Fatalf("remaining = %d; want -1", b.RemainingMines())
	}
	flag(t, b, 1, 1) // revealed, no-op
	if b.RemainingMines() != -1 {
		t.Fatalf("flagging a revealed cell changed the counter")
	}
}

func TestRightClickBeforeStartIsNoop(t *testing.T) {
	b := newFixed(t, 3, 3, Coord{Col: 2, Row: 2})
	flag(t, b, 0, 0)

	if view(t, b, 0, 0).Flagged || b.RemainingMines() != 1 || b.Phase() != Fresh {
		t.Fatalf("right click changed a fresh board")
	}
}

func TestOutOfBounds(t *testing.T) {
	b := newFixed(t, 3, 2, Coord{Col: 0, Row: 0})

	for _, at := range []Coord{{-1, 0}, {3, 0}, {0, 2}, {0, -1}} {
		if err := b.LeftClick(at.Col, at.Row); !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("LeftClick%v err = %v", at, err)
		}
		if err := b.RightClick(at.Col, at.Row); !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("RightClick%v err = %v", at, err)
		}
		if _, err := b.Cell(at.Col, at.Row); !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("Cell%v err = %v", at, err)
		}
	}
	if b.Phase() != Fresh {
		t.Fatalf("out of bounds click started the game")
	}
}

func TestBadPlacerKeepsBoardFresh(t *testing.T) {
	cases := []FixedPlacer{
		{{Col: 1, Row: 1}},                   // on the first click
		{{Col: 5, Row: 5}},                   // off the board
		{{Col: 0, Row: 0}, {Col: 0, Row: 1}}, // wrong count
	}
	for _, p := range cases {
		b, err := NewBoard(3, 3, 1, WithPlacer(p))
		if err != nil {
			t.Fatalf("NewBoard: %v", err)
		}
		if err := b.LeftClick(1, 1); !errors.Is(err, ErrInvalidPlacement) {
			t.Fatalf("placer %v: err = %v", p, err)
		}
		if b.Phase() != Fresh || b.RevealedCount() != 0 {
			t.Fatalf("placer %v: board mutated", p)
		}
	}
}

func TestElapsedSeconds(t *testing.T) {
	clock := &fakeClock{t: time.Unix(500, 0)}
	b, err := NewBoard(4, 4, 1, WithPlacer(FixedPlacer{{Col: 3, Row: 3}}), WithClock(clock.now))
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}

	clock.advance(time.Minute)
	if b.ElapsedSeconds() != 0 {
		t.Fatalf("fresh elapsed = %d", b.ElapsedSeconds())
	}

	click(t, b, 2, 2)
	clock.advance(3 * time.Second)
	if b.ElapsedSeconds() != 3 {
		t.Fatalf("elapsed = %d; want 3", b.ElapsedSeconds())
	}

	clock.advance(2 * time.Second)
	click(t, b, 0, 0)
	if b.Phase() != Won {
		t.Fatalf("phase = %s; want won", b.Phase())
	}
	clock.advance(time.Hour)
	if b.ElapsedSeconds() != 5 {
		t.Fatalf("elapsed = %d; want frozen at 5", b.ElapsedSeconds())
	}
}

func TestRestart(t *testing.T) {
	b := newFixed(t, 3, 3, Coord{Col: 0, Row: 0})
	click(t, b, 2, 2)
	flag(t, b, 0, 0)

	b.Restart()

	if b.Phase() != Fresh || b.RemainingMines() != 1 || b.RevealedCount() != 0 {
		t.Fatalf("restart left state: phase=%s remaining=%d revealed=%d", b.Phase(), b.RemainingMines(), b.RevealedCount())
	}
	if len(b.MinePositions()) != 0 {
		t.Fatalf("mines survived restart")
	}

	click(t, b, 2, 2)
	if b.Phase() != Won {
		t.Fatalf("phase after replay = %s; want won", b.Phase())
	}
}

func TestNeighborsAtEdges(t *testing.T) {
	b := newFixed(t, 3, 3, Coord{Col: 0, Row: 0})

	cases := []struct {
		at   Coord
		want int
	}{
		{Coord{0, 0}, 3},
		{Coord{1, 0}, 5},
		{Coord{1, 1}, 8},
		{Coord{2, 2}, 3},
	}
	for _, tc := range cases {
		if got := len(b.Neighbors(tc.at)); got != tc.want {
			t.Fatalf("Neighbors(%v) = %d; want %d", tc.at, got, tc.want)
		}
	}
}

func TestSnapshotHidesMinesUntilOver(t *testing.T) {
	b := newFixed(t, 3, 1, Coord{Col: 2, Row: 0})
	click(t, b, 1, 0)

	s := b.Snapshot()
	if s.Phase != Playing || s.Cells[0][2].Mine {
		t.Fatalf("hidden mine leaked: %+v", s.Cells[0][2])
	}

	click(t, b, 2, 0)
	s = b.Snapshot()
	if s.Phase != Lost || !s.Cells[0][2].Mine {
		t.Fatalf("mine not visible after loss: %+v", s.Cells[0][2])
	}
	if got := b.Contents()[0]; got[0] != GlyphBlank || got[1] != "1" || got[2] != GlyphMine {
		t.Fatalf("contents = %q", got)
	}
}

func TestPresets(t *testing.T) {
	for _, p := range Presets() {
		if _, err := NewBoardFromPreset(p); err != nil {
			t.Fatalf("preset %s: %v", p.Name, err)
		}
	}
	if _, ok := PresetByName("expert"); !ok {
		t.Fatalf("expert preset missing")
	}
}
