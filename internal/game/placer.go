package game

import (
	"math/rand"
	"time"
)

// MinePlacer chooses mine positions for a fresh board. Implementations must
// return exactly mines distinct in-bounds coordinates, none equal to exclude.
type MinePlacer interface {
	Place(width, height, mines int, exclude Coord) []Coord
}

// RandomPlacer samples mine positions uniformly without replacement.
type RandomPlacer struct {
	rng *rand.Rand
}

func NewRandomPlacer(seed int64) *RandomPlacer {
	return &RandomPlacer{rng: rand.New(rand.NewSource(seed))}
}

func newTimeSeededPlacer() *RandomPlacer {
	return NewRandomPlacer(time.Now().UnixNano())
}

func (p *RandomPlacer) Place(width, height, mines int, exclude Coord) []Coord {
	candidates := make([]Coord, 0, width*height-1)
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			c := Coord{Col: col, Row: row}
			if c == exclude {
				continue
			}
			candidates = append(candidates, c)
		}
	}

	// partial Fisher-Yates: the first mines entries form the sample
	for i := 0; i < mines && i < len(candidates); i++ {
		j := i + p.rng.Intn(len(candidates)-i)
		candidates[i], candidates[j] = candidates[j], candidates[i]
	}
	if mines > len(candidates) {
		mines = len(candidates)
	}
	return candidates[:mines]
}

// FixedPlacer always returns the same layout. Used to set up known boards.
type FixedPlacer []Coord

func (p FixedPlacer) Place(_, _, _ int, _ Coord) []Coord {
	out := make([]Coord, len(p))
	copy(out, p)
	return out
}
