package main

import (
	"fmt"
	"strings"

	"minesweeper/internal/game"

	"github.com/charmbracelet/lipgloss"
)

var (
	hiddenStyle   = lipgloss.NewStyle().Background(lipgloss.Color("240")).Foreground(lipgloss.Color("255"))
	revealedStyle = lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("252"))
	flagStyle     = lipgloss.NewStyle().Background(lipgloss.Color("240")).Foreground(lipgloss.Color("214")).Bold(true)
	mineStyle     = lipgloss.NewStyle().Background(lipgloss.Color("52")).Foreground(lipgloss.Color("196")).Bold(true)
	cursorStyle   = lipgloss.NewStyle().Background(lipgloss.Color("212")).Foreground(lipgloss.Color("235")).Bold(true)

	labelStyle = lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("255")).Bold(true).Padding(0, 1)
	valueStyle = lipgloss.NewStyle().Background(lipgloss.Color("235")).Foreground(lipgloss.Color("255")).Padding(0, 1)
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("248"))
	lostStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	wonStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)

	// xterm colors for 1..8
	countColors = []string{"", "39", "34", "196", "21", "124", "37", "255", "244"}
)

func (m model) View() string {
	snap := m.board.Snapshot()

	var grid strings.Builder
	for row, cells := range snap.Cells {
		for col, v := range cells {
			grid.WriteString(m.renderCell(v, col, row))
		}
		grid.WriteByte('\n')
	}

	status := lipgloss.JoinHorizontal(lipgloss.Top,
		labelStyle.Render("MINES"), valueStyle.Render(fmt.Sprintf("%d", snap.RemainingMines)), " ",
		labelStyle.Render("TIME"), valueStyle.Render(fmt.Sprintf("%d", m.elapsed)), " ",
		labelStyle.Render("STATE"), valueStyle.Render(snap.Phase.String()),
	)

	var help string
	switch snap.Phase {
	case game.Lost:
		help = lostStyle.Render("GAME OVER • r: restart • q: quit")
	case game.Won:
		help = wonStyle.Render("YOU WIN • r: restart • q: quit")
	default:
		help = helpStyle.Render("arrows: move • space: reveal • f: flag • r: restart • q: quit")
	}
	if m.err != nil {
		help = lostStyle.Render(m.err.Error())
	}

	return lipgloss.JoinVertical(lipgloss.Center,
		grid.String(),
		lipgloss.NewStyle().MarginTop(1).Render(status),
		lipgloss.NewStyle().MarginTop(1).Render(help),
	)
}

func (m model) renderCell(v game.CellView, col, row int) string {
	text := " " + v.Content.Glyph() + " "
	if col == m.cursor.Col && row == m.cursor.Row {
		return cursorStyle.Render(text)
	}

	switch v.Content.Kind {
	case game.ContentFlag:
		return flagStyle.Render(text)
	case game.ContentMine:
		return mineStyle.Render(text)
	case game.ContentCount:
		st := revealedStyle
		if n := v.Content.Count; n > 0 && n < len(countColors) {
			st = st.Foreground(lipgloss.Color(countColors[n]))
		}
		return st.Render(text)
	default:
		return hiddenStyle.Render(text)
	}
}
