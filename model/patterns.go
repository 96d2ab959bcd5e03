package model

import (
	"math/rand"

	"github.com/pkg/errors"
)

// Pattern names accepted by Seed
const (
	PatternNone    = "none"
	PatternBlock   = "block"
	PatternBlinker = "blinker"
	PatternGlider  = "glider"
	PatternRandom  = "random"
)

// ErrUnknownPattern is returned by Seed for a pattern name it does not know
var ErrUnknownPattern = errors.New("unknown pattern")

var (
	blockPattern = [][]bool{
		{true, true},
		{true, true},
	}
	blinkerPattern = [][]bool{
		{true, true, true},
	}
	gliderPattern = [][]bool{
		{false, true, false},
		{false, false, true},
		{true, true, true},
	}
)

// IsPattern reports whether name is a pattern Seed understands
func IsPattern(name string) bool {
	switch name {
	case PatternNone, PatternBlock, PatternBlinker, PatternGlider, PatternRandom:
		return true
	}
	return false
}

// place stamps pattern with its top-left corner at (row, col). Nothing is written
// unless the whole pattern fits.
func (g *Grid) place(pattern [][]bool, row, col int) error {
	lastRow, lastCol := row+len(pattern)-1, col+len(pattern[0])-1
	if !g.InBounds(row, col) || !g.InBounds(lastRow, lastCol) {
		return errors.Wrapf(ErrOutOfBounds, "[place] %dx%d pattern at (%d, %d) does not fit %dx%d grid",
			len(pattern), len(pattern[0]), row, col, g.height, g.width)
	}
	for dr, line := range pattern {
		for dc, alive := range line {
			if alive {
				g.cells[row+dr][col+dc].Enliven()
			} else {
				g.cells[row+dr][col+dc].Kill()
			}
		}
	}
	return nil
}

// PlaceBlock adds a 2x2 still life with its top-left corner at (row, col)
func (g *Grid) PlaceBlock(row, col int) error {
	return g.place(blockPattern, row, col)
}

// PlaceBlinker adds a horizontal 1x3 oscillator starting at (row, col)
func (g *Grid) PlaceBlinker(row, col int) error {
	return g.place(blinkerPattern, row, col)
}

// PlaceGlider adds a glider heading down and to the right with its top-left corner at (row, col)
func (g *Grid) PlaceGlider(row, col int) error {
	return g.place(gliderPattern, row, col)
}

// Randomize sets every cell alive with probability density
func (g *Grid) Randomize(density float64, rng *rand.Rand) {
	for _, idx := range g.indexes() {
		if rng.Float64() < density {
			g.cellAt(idx).Enliven()
		} else {
			g.cellAt(idx).Kill()
		}
	}
}

// Seed clears the grid and fills it with the named pattern, centered where it applies
func Seed(g *Grid, name string, density float64, rng *rand.Rand) error {
	g.Clear()

	centerRow, centerCol := g.height/2, g.width/2
	switch name {
	case PatternNone:
		return nil
	case PatternBlock:
		return g.PlaceBlock(centerRow-1, centerCol-1)
	case PatternBlinker:
		return g.PlaceBlinker(centerRow, centerCol-1)
	case PatternGlider:
		return g.PlaceGlider(0, 0)
	case PatternRandom:
		g.Randomize(density, rng)
		return nil
	}
	return errors.Wrapf(ErrUnknownPattern, "[Seed] pattern: %+v", name)
}
