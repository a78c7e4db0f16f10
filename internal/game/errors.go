package game

import "errors"

var (
	// ErrInvalidConfiguration is returned by NewBoard for non-positive
	// dimensions or a mine count outside (0, width*height).
	ErrInvalidConfiguration = errors.New("invalid board configuration")
	// ErrOutOfBounds is returned for coordinates outside the grid.
	ErrOutOfBounds = errors.New("coordinate out of bounds")
	// ErrInvalidPlacement is returned when a MinePlacer produces a layout
	// that breaks the placement rules.
	ErrInvalidPlacement = errors.New("invalid mine placement")
)
