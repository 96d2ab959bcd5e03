package model

const (
	cellCodeAlive = '1'
	cellCodeDead  = '0'

	cellGlyphAlive = '♥'
	cellGlyphDead  = '‧'
)

// Cell is a single unit of life on the grid
type Cell struct {
	alive bool
}

// Alive reports whether the cell is alive
func (c *Cell) Alive() bool {
	return c.alive
}

// Kill marks the cell as dead
func (c *Cell) Kill() {
	c.alive = false
}

// Enliven marks the cell as alive
func (c *Cell) Enliven() {
	c.alive = true
}

// Toggle flips the cell between alive and dead
func (c *Cell) Toggle() {
	c.alive = !c.alive
}

// Code returns the machine form of the cell, '1' when alive and '0' when dead
func (c *Cell) Code() byte {
	if c.alive {
		return cellCodeAlive
	}
	return cellCodeDead
}

// Glyph returns the display form of the cell
func (c *Cell) Glyph() rune {
	if c.alive {
		return cellGlyphAlive
	}
	return cellGlyphDead
}

func (c *Cell) String() string {
	return string(c.Glyph())
}

func (c *Cell) GoString() string {
	return string(c.Code())
}
