package main

import (
	"time"

	"minesweeper/internal/game"

	tea "github.com/charmbracelet/bubbletea"
)

type tickMsg struct{}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// model drives a single board from the keyboard. All board access happens
// on the bubbletea update goroutine.
type model struct {
	board   *game.Board
	cursor  game.Coord
	elapsed int
	err     error
}

func newModel(b *game.Board) model {
	return model{board: b}
}

func (m model) Init() tea.Cmd {
	return tick()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.elapsed = m.board.ElapsedSeconds()
		return m, tick()

	case tea.KeyMsg:
		m.err = nil
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "up", "k", "w":
			m.move(0, -1)
		case "down", "j", "s":
			m.move(0, 1)
		case "left", "h", "a":
			m.move(-1, 0)
		case "right", "l", "d":
			m.move(1, 0)
		case " ", "enter":
			m.err = m.board.LeftClick(m.cursor.Col, m.cursor.Row)
		case "f":
			m.err = m.board.RightClick(m.cursor.Col, m.cursor.Row)
		case "r":
			m.board.Restart()
		}
		m.elapsed = m.board.ElapsedSeconds()
	}
	return m, nil
}

// move clamps the cursor to the board
func (m *model) move(dc, dr int) {
	col, row := m.cursor.Col+dc, m.cursor.Row+dr
	if m.board.InBounds(col, row) {
		m.cursor = game.Coord{Col: col, Row: row}
	}
}
