package model

import (
	"crypto/md5"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/gameolife/rules"
)

var (
	// ErrInvalidDimensions is returned when a grid is built with a non-positive height or width
	ErrInvalidDimensions = errors.New("grid dimensions must be positive")
	// ErrOutOfBounds is returned when a row or column lies outside the grid
	ErrOutOfBounds = errors.New("index out of grid bounds")
)

// neighborDeltas are the row/col offsets of the 8 cells surrounding a cell
var neighborDeltas = [...]index{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

type index struct {
	row, col int
}

// Grid is a fixed-size, non-wrapping board of cells
type Grid struct {
	height int
	width  int
	cells  [][]Cell
}

// NewGrid creates a grid of height rows and width columns with every cell dead
func NewGrid(height, width int) (*Grid, error) {
	if height <= 0 || width <= 0 {
		return nil, errors.Wrapf(ErrInvalidDimensions, "[NewGrid] height: %d, width: %d", height, width)
	}
	cells := make([][]Cell, height)
	for i := range cells {
		cells[i] = make([]Cell, width)
	}
	return &Grid{
		height: height,
		width:  width,
		cells:  cells,
	}, nil
}

// GetHeight returns the number of rows in the grid
func (g *Grid) GetHeight() int {
	return g.height
}

// GetWidth returns the number of columns in the grid
func (g *Grid) GetWidth() int {
	return g.width
}

// InBounds reports whether (row, col) addresses a cell of the grid
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.height && col >= 0 && col < g.width
}

// At returns the cell at (row, col). The cell stays owned by the grid.
func (g *Grid) At(row, col int) (*Cell, error) {
	if !g.InBounds(row, col) {
		return nil, errors.Wrapf(ErrOutOfBounds, "[At] (%d, %d) outside %dx%d grid", row, col, g.height, g.width)
	}
	return &g.cells[row][col], nil
}

func (g *Grid) cellAt(idx index) *Cell {
	return &g.cells[idx.row][idx.col]
}

// indexes lists every position of the grid in row-major order
func (g *Grid) indexes() []index {
	out := make([]index, 0, g.height*g.width)
	for row := range g.height {
		for col := range g.width {
			out = append(out, index{row, col})
		}
	}
	return out
}

// neighbors lists the in-bounds positions adjacent to idx
func (g *Grid) neighbors(idx index) []index {
	out := make([]index, 0, len(neighborDeltas))
	for _, d := range neighborDeltas {
		n := index{idx.row + d.row, idx.col + d.col}
		if !g.InBounds(n.row, n.col) {
			continue
		}
		out = append(out, n)
	}
	return out
}

func (g *Grid) aliveNeighbors(idx index) (count int) {
	for _, n := range g.neighbors(idx) {
		if g.cellAt(n).Alive() {
			count++
		}
	}
	return
}

// CountNeighbors returns the number of living cells adjacent to (row, col)
func (g *Grid) CountNeighbors(row, col int) (int, error) {
	if !g.InBounds(row, col) {
		return 0, errors.Wrapf(ErrOutOfBounds, "[CountNeighbors] (%d, %d) outside %dx%d grid", row, col, g.height, g.width)
	}
	return g.aliveNeighbors(index{row, col}), nil
}

// Evolve advances the grid by one generation.
// Every cell is classified against the current generation before any cell is changed.
func (g *Grid) Evolve() {
	var deaths, births []index

	for _, idx := range g.indexes() {
		alive := g.cellAt(idx).Alive()
		next := rules.ApplyConwayRules(g.aliveNeighbors(idx), alive)
		switch {
		case alive && !next:
			deaths = append(deaths, idx)
		case !alive && next:
			births = append(births, idx)
		}
	}

	for _, idx := range deaths {
		g.cellAt(idx).Kill()
	}
	for _, idx := range births {
		g.cellAt(idx).Enliven()
	}
}

// Clear kills every cell
func (g *Grid) Clear() {
	for _, idx := range g.indexes() {
		g.cellAt(idx).Kill()
	}
}

// CountLivingCells returns the total number of living cells
func (g *Grid) CountLivingCells() (count int) {
	for _, idx := range g.indexes() {
		if g.cellAt(idx).Alive() {
			count++
		}
	}
	return
}

// GetGridHash returns an MD5 hash of the current grid state
func (g *Grid) GetGridHash() string {
	h := md5.New()
	for row := range g.height {
		for col := range g.width {
			h.Write([]byte{g.cells[row][col].Code()})
		}
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// Dump returns the machine form of the grid: one line per row of '0' and '1'
func (g *Grid) Dump() string {
	var sb strings.Builder
	sb.Grow(g.height * (g.width + 1))
	for row := range g.height {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for col := range g.width {
			sb.WriteByte(g.cells[row][col].Code())
		}
	}
	return sb.String()
}

// String returns the display form of the grid, glyphs space separated, one line per row
func (g *Grid) String() string {
	lines := make([]string, g.height)
	for row := range g.height {
		glyphs := make([]string, g.width)
		for col := range g.width {
			glyphs[col] = g.cells[row][col].String()
		}
		lines[row] = strings.Join(glyphs, " ")
	}
	return strings.Join(lines, "\n")
}
