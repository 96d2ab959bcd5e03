package model

import (
	"github.com/nsf/termbox-go"
	"github.com/pkg/errors"
)

const (
	// HeaderRows is the number of terminal rows drawn above the grid
	HeaderRows = 3

	titleText = "Welcome to the Game of Life!"

	aliveFg = termbox.ColorGreen | termbox.AttrBold
	deadFg  = termbox.ColorDefault
)

// Screen is the drawing surface the renderer writes to
type Screen interface {
	Clear() error
	SetCell(x, y int, ch rune, fg, bg termbox.Attribute)
	SetCursor(x, y int)
	HideCursor()
	Flush() error
	Size() (width, height int)
}

// TermboxScreen draws to the real terminal through termbox
type TermboxScreen struct{}

// OpenTermboxScreen puts the terminal in raw mode. The returned close func restores it.
func OpenTermboxScreen() (*TermboxScreen, func(), error) {
	if err := termbox.Init(); err != nil {
		return nil, nil, errors.Wrap(err, "[OpenTermboxScreen] failed to initialize terminal")
	}
	termbox.SetInputMode(termbox.InputEsc)
	return &TermboxScreen{}, termbox.Close, nil
}

func (s *TermboxScreen) Clear() error {
	return termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)
}

func (s *TermboxScreen) SetCell(x, y int, ch rune, fg, bg termbox.Attribute) {
	termbox.SetCell(x, y, ch, fg, bg)
}

func (s *TermboxScreen) SetCursor(x, y int) {
	termbox.SetCursor(x, y)
}

func (s *TermboxScreen) HideCursor() {
	termbox.HideCursor()
}

func (s *TermboxScreen) Flush() error {
	return termbox.Flush()
}

func (s *TermboxScreen) Size() (int, int) {
	return termbox.Size()
}

// GridSizeFor returns the largest grid that fits below the header on a screen
// of the given size, at one column per cell
func GridSizeFor(screenWidth, screenHeight int) (height, width int) {
	return screenHeight - HeaderRows, screenWidth
}

// TerminalRenderer draws a header and a grid onto a Screen
type TerminalRenderer struct {
	screen Screen
	help   string
	status string
}

// NewTerminalRenderer creates a renderer drawing onto screen
func NewTerminalRenderer(screen Screen) *TerminalRenderer {
	return &TerminalRenderer{screen: screen}
}

// SetHelp sets the help line shown under the title
func (r *TerminalRenderer) SetHelp(help string) {
	r.help = help
}

// SetStatus sets the status line shown above the grid
func (r *TerminalRenderer) SetStatus(status string) {
	r.status = status
}

// Display redraws the header and the grid and flushes the screen
func (r *TerminalRenderer) Display(g *Grid) error {
	if err := r.screen.Clear(); err != nil {
		return errors.Wrap(err, "[Display] failed to clear screen")
	}

	r.drawText(0, titleText)
	r.drawText(1, r.help)
	r.drawText(2, r.status)

	for row := range g.height {
		for col := range g.width {
			cell := &g.cells[row][col]
			fg := deadFg
			if cell.Alive() {
				fg = aliveFg
			}
			r.screen.SetCell(col, HeaderRows+row, cell.Glyph(), fg, termbox.ColorDefault)
		}
	}

	if err := r.screen.Flush(); err != nil {
		return errors.Wrap(err, "[Display] failed to flush screen")
	}
	return nil
}

// ShowCursor places the terminal cursor over the cell at (row, col)
func (r *TerminalRenderer) ShowCursor(row, col int) {
	r.screen.SetCursor(col, HeaderRows+row)
}

// HideCursor hides the terminal cursor
func (r *TerminalRenderer) HideCursor() {
	r.screen.HideCursor()
}

func (r *TerminalRenderer) drawText(y int, text string) {
	x := 0
	for _, ch := range text {
		r.screen.SetCell(x, y, ch, termbox.ColorDefault, termbox.ColorDefault)
		x++
	}
}
