// Package testutil provides in-memory fakes shared by package tests.
package testutil

import (
	"strings"
	"sync"

	"github.com/nsf/termbox-go"
)

// Cursor position reported when the cursor is hidden
const hiddenCursor = -1

// FakeScreen is an in-memory model.Screen. It keeps the last flushed frame.
type FakeScreen struct {
	mu sync.Mutex

	width, height int
	back          [][]rune
	front         [][]rune
	fgs           [][]termbox.Attribute

	cursorX, cursorY int
	flushes          int
}

// NewFakeScreen creates a blank screen of the given size
func NewFakeScreen(width, height int) *FakeScreen {
	s := &FakeScreen{width: width, height: height, cursorX: hiddenCursor, cursorY: hiddenCursor}
	s.back = blank(width, height)
	s.front = blank(width, height)
	s.fgs = make([][]termbox.Attribute, height)
	for y := range s.fgs {
		s.fgs[y] = make([]termbox.Attribute, width)
	}
	return s
}

func blank(width, height int) [][]rune {
	rows := make([][]rune, height)
	for y := range rows {
		rows[y] = []rune(strings.Repeat(" ", width))
	}
	return rows
}

func (s *FakeScreen) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.back = blank(s.width, s.height)
	return nil
}

func (s *FakeScreen) SetCell(x, y int, ch rune, fg, _ termbox.Attribute) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	s.back[y][x] = ch
	s.fgs[y][x] = fg
}

func (s *FakeScreen) SetCursor(x, y int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursorX, s.cursorY = x, y
}

func (s *FakeScreen) HideCursor() {
	s.SetCursor(hiddenCursor, hiddenCursor)
}

func (s *FakeScreen) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for y := range s.back {
		copy(s.front[y], s.back[y])
	}
	s.flushes++
	return nil
}

func (s *FakeScreen) Size() (int, int) {
	return s.width, s.height
}

// Line returns row y of the last flushed frame with trailing spaces removed
func (s *FakeScreen) Line(y int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return strings.TrimRight(string(s.front[y]), " ")
}

// Fg returns the foreground attribute last drawn at (x, y)
func (s *FakeScreen) Fg(x, y int) termbox.Attribute {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fgs[y][x]
}

// Cursor returns the current cursor position
func (s *FakeScreen) Cursor() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursorX, s.cursorY
}

// FlushCount returns how many frames have been flushed
func (s *FakeScreen) FlushCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flushes
}
