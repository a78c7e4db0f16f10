package main

import (
	"strings"
	"testing"

	"minesweeper/internal/game"

	tea "github.com/charmbracelet/bubbletea"
)

func key(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m model, keys ...string) model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(model)
	}
	return m
}

func TestModelPlaysToWin(t *testing.T) {
	b, err := game.NewBoard(3, 3, 1, game.WithPlacer(game.FixedPlacer{{Col: 2, Row: 2}}))
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	m := newModel(b)

	// reveal (0,0): cascade uncovers every safe cell
	m = press(t, m, " ")
	if got := b.Phase(); got != game.Won {
		t.Fatalf("phase = %v; want won", got)
	}
	if !strings.Contains(m.View(), "YOU WIN") {
		t.Fatalf("view does not announce the win")
	}
}

func TestModelCursorStaysOnBoard(t *testing.T) {
	b, _ := game.NewBoard(2, 2, 1)
	m := newModel(b)

	m = press(t, m, "left", "up")
	if m.cursor != (game.Coord{}) {
		t.Fatalf("cursor moved off board: %v", m.cursor)
	}
	m = press(t, m, "right", "right", "down", "down")
	if m.cursor != (game.Coord{Col: 1, Row: 1}) {
		t.Fatalf("cursor = %v; want (1,1)", m.cursor)
	}
}

func TestModelFlagAndRestart(t *testing.T) {
	b, _ := game.NewBoard(4, 4, 1, game.WithPlacer(game.FixedPlacer{{Col: 3, Row: 3}}))
	m := newModel(b)

	m = press(t, m, "right", "right", "down", "down", " ") // (2,2) shows 1
	m = press(t, m, "right", "down", "f")
	if got := b.RemainingMines(); got != 0 {
		t.Fatalf("remaining = %d; want 0", got)
	}

	press(t, m, "r")
	if b.Phase() != game.Fresh || b.RemainingMines() != 1 {
		t.Fatalf("restart did not reset: phase %v remaining %d", b.Phase(), b.RemainingMines())
	}
}
