// Package ui drives a grid from terminal events: an edit mode where the user
// toggles cells under a cursor, and a simulate mode that evolves the grid on a
// fixed period until the user stops it.
package ui

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/nsf/termbox-go"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/gameolife/model"
	"github.com/sheikhrachel/gameolife/utils"
)

const (
	editHelp     = "Arrows move, <space> toggles a cell, <c> clears, <r> randomizes, <enter> starts, <q> quits."
	simulateHelp = "Press <enter> to stop the simulation."
)

// Options tune a Session
type Options struct {
	Period         time.Duration
	MaxGenerations int
	RandomDensity  float64
	Rand           *rand.Rand
}

// Session is the interactive loop around a single grid. It is the only writer
// of the grid while it runs.
type Session struct {
	grid     *model.Grid
	renderer *model.TerminalRenderer
	logger   *slog.Logger
	opts     Options

	row, col   int
	generation int
	status     string
	tracker    utils.Tracker
	stats      *utils.Stats
}

// NewSession creates a session editing and simulating grid
func NewSession(grid *model.Grid, renderer *model.TerminalRenderer, logger *slog.Logger, opts Options) *Session {
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Session{
		grid:     grid,
		renderer: renderer,
		logger:   logger,
		opts:     opts,
		status:   utils.StatusActive,
		stats:    utils.NewStats(),
	}
}

// Cursor returns the grid position under the cursor
func (s *Session) Cursor() (row, col int) {
	return s.row, s.col
}

// Generation returns the number of generations run since the last simulation started
func (s *Session) Generation() int {
	return s.generation
}

// Stats returns the performance stats of the current simulation run
func (s *Session) Stats() *utils.Stats {
	return s.stats
}

// Run alternates between edit and simulate mode until the user quits, events
// is closed or ctx is done
func (s *Session) Run(ctx context.Context, events <-chan termbox.Event) error {
	s.logger.Info("Session started.", "height", s.grid.GetHeight(), "width", s.grid.GetWidth())
	defer func() {
		s.logger.Info("Session finished.", "generations", s.stats.TotalGenerations)
	}()

	for {
		quit, err := s.edit(ctx, events)
		if err != nil || quit {
			return err
		}
		quit, err = s.simulate(ctx, events)
		if err != nil || quit {
			return err
		}
	}
}

// edit handles cursor movement and cell toggles. It reports quit=false when the
// user asks to start the simulation.
func (s *Session) edit(ctx context.Context, events <-chan termbox.Event) (quit bool, err error) {
	s.logger.Debug("Entering edit mode.")
	s.renderer.SetHelp(editHelp)
	if err := s.drawEdit(); err != nil {
		return true, err
	}

	for {
		select {
		case <-ctx.Done():
			return true, nil
		case ev, ok := <-events:
			if !ok {
				return true, nil
			}
			if ev.Type == termbox.EventError {
				return true, errors.Wrap(ev.Err, "[edit] terminal event error")
			}
			if ev.Type != termbox.EventKey {
				break
			}

			switch {
			case ev.Key == termbox.KeyArrowUp:
				s.moveCursor(-1, 0)
			case ev.Key == termbox.KeyArrowDown:
				s.moveCursor(1, 0)
			case ev.Key == termbox.KeyArrowLeft:
				s.moveCursor(0, -1)
			case ev.Key == termbox.KeyArrowRight:
				s.moveCursor(0, 1)
			case ev.Key == termbox.KeySpace:
				if err := s.toggleUnderCursor(); err != nil {
					return true, err
				}
			case ev.Key == termbox.KeyEnter:
				return false, nil
			case ev.Key == termbox.KeyEsc, ev.Key == termbox.KeyCtrlC, ev.Ch == 'q':
				return true, nil
			case ev.Ch == 'c':
				s.grid.Clear()
				s.logger.Debug("Grid cleared.")
			case ev.Ch == 'r':
				s.grid.Randomize(s.opts.RandomDensity, s.opts.Rand)
				s.logger.Debug("Grid randomized.", "density", s.opts.RandomDensity)
			}
		}

		if err := s.drawEdit(); err != nil {
			return true, err
		}
	}
}

// simulate draws, waits a period and evolves until stopped. It reports quit=false
// when the user stops the run and editing should resume.
func (s *Session) simulate(ctx context.Context, events <-chan termbox.Event) (quit bool, err error) {
	s.generation = 0
	s.stats = utils.NewStats()
	s.tracker.Reset()
	s.status = s.tracker.Observe(s.grid.GetGridHash(), s.grid.CountLivingCells())
	s.logger.Info("Simulation started.", "living", s.grid.CountLivingCells(), "period", s.opts.Period)

	s.renderer.SetHelp(simulateHelp)
	s.renderer.HideCursor()
	if err := s.drawSimulation(); err != nil {
		return true, err
	}

	ticker := time.NewTicker(s.opts.Period)
	defer ticker.Stop()
	lastFrame := time.Now()

	for {
		select {
		case <-ctx.Done():
			return true, nil
		case ev, ok := <-events:
			if !ok {
				return true, nil
			}
			switch {
			case ev.Type == termbox.EventError:
				return true, errors.Wrap(ev.Err, "[simulate] terminal event error")
			case ev.Type == termbox.EventResize:
				if err := s.drawSimulation(); err != nil {
					return true, err
				}
			case ev.Type == termbox.EventKey && isStopKey(ev):
				s.logger.Info("Simulation stopped.", "generation", s.generation)
				return false, nil
			}
		case now := <-ticker.C:
			s.step(now.Sub(lastFrame))
			lastFrame = now
			if err := s.drawSimulation(); err != nil {
				return true, err
			}
			if s.opts.MaxGenerations > 0 && s.generation >= s.opts.MaxGenerations {
				s.logger.Info("Reached maximum generations limit.", "max_generations", s.opts.MaxGenerations)
				return false, nil
			}
		}
	}
}

// step evolves the grid one generation and updates the run's bookkeeping
func (s *Session) step(frame time.Duration) {
	s.grid.Evolve()
	s.generation++

	living := s.grid.CountLivingCells()
	s.stats.Update(s.generation, living, frame)
	s.status = s.tracker.Observe(s.grid.GetGridHash(), living)

	s.logger.Debug("Generation evolved.", "generation", s.generation, "living", living, "status", s.status)
	if s.logger.Enabled(context.Background(), slog.LevelDebug) {
		s.logger.Debug("Grid state.", "generation", s.generation, "grid", "\n"+s.grid.String())
	}
}

func isStopKey(ev termbox.Event) bool {
	switch ev.Key {
	case termbox.KeyEnter, termbox.KeyEsc, termbox.KeySpace, termbox.KeyCtrlC:
		return true
	}
	return false
}

func (s *Session) moveCursor(dRow, dCol int) {
	s.row = min(max(s.row+dRow, 0), s.grid.GetHeight()-1)
	s.col = min(max(s.col+dCol, 0), s.grid.GetWidth()-1)
}

func (s *Session) toggleUnderCursor() error {
	cell, err := s.grid.At(s.row, s.col)
	if err != nil {
		return errors.Wrap(err, "[toggleUnderCursor] cursor outside grid")
	}
	cell.Toggle()
	s.logger.Debug("Cell toggled.", "row", s.row, "col", s.col, "alive", cell.Alive())
	return nil
}

func (s *Session) drawEdit() error {
	s.renderer.SetStatus(fmt.Sprintf("Editing | Living: %d | Cursor: (%d, %d)",
		s.grid.CountLivingCells(), s.row, s.col))
	s.renderer.ShowCursor(s.row, s.col)
	return s.renderer.Display(s.grid)
}

func (s *Session) drawSimulation() error {
	living := s.grid.CountLivingCells()
	density := float64(living) / float64(s.grid.GetHeight()*s.grid.GetWidth()) * 100
	s.renderer.SetStatus(fmt.Sprintf("Gen: %d | Living: %d | Density: %.1f%% | Status: %s | %.1f gen/sec",
		s.generation, living, density, s.status, s.stats.GenerationsPerSecond))
	return s.renderer.Display(s.grid)
}
