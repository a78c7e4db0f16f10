package main

import (
	"flag"
	"fmt"
	"os"

	"minesweeper/internal/game"
	"minesweeper/internal/logger"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	preset := flag.String("preset", game.Classic.Name, "board preset (classic, beginner, intermediate, expert)")
	width := flag.Int("width", 0, "board width, overrides preset")
	height := flag.Int("height", 0, "board height, overrides preset")
	mines := flag.Int("mines", 0, "mine count, overrides preset")
	seed := flag.Int64("seed", 0, "random seed (0 = time based)")
	flag.Parse()

	// the terminal belongs to the UI, keep logs quiet
	logger.InitWriter(os.Stderr, "error", false)

	p, ok := game.PresetByName(*preset)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown preset %q\n", *preset)
		os.Exit(2)
	}
	if *width > 0 {
		p.Width = *width
	}
	if *height > 0 {
		p.Height = *height
	}
	if *mines > 0 {
		p.Mines = *mines
	}

	var opts []game.Option
	if *seed != 0 {
		opts = append(opts, game.WithSeed(*seed))
	}

	board, err := game.NewBoardFromPreset(p, opts...)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if _, err := tea.NewProgram(newModel(board), tea.WithAltScreen()).Run(); err != nil {
		logger.Fatal("terminal ui failed", "error", err)
	}
}
