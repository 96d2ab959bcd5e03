package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/gameolife/model"
	"github.com/sheikhrachel/gameolife/ui"
	"github.com/sheikhrachel/gameolife/utils"
)

const (
	headlessHeight = 10
	headlessWidth  = 10
)

// initializeGrid builds the starting grid and seeds the configured pattern
func initializeGrid(config utils.Config, height, width int, rng *rand.Rand) (*model.Grid, error) {
	grid, err := model.NewGrid(height, width)
	if err != nil {
		if errors.Is(err, model.ErrInvalidDimensions) {
			return nil, &utils.ExitError{Code: 2, Message: err.Error()}
		}
		return nil, err
	}

	if err = model.Seed(grid, config.Pattern, config.RandomDensity, rng); err != nil {
		return nil, &utils.ExitError{Code: 2, Message: err.Error()}
	}
	return grid, nil
}

// gridSize picks the configured dimensions, falling back to fit for unset ones
func gridSize(config utils.Config, fitHeight, fitWidth int) (int, int) {
	height, width := config.Height, config.Width
	if height == 0 {
		height = fitHeight
	}
	if width == 0 {
		width = fitWidth
	}
	return height, width
}

// screenGridSize sizes an interactive grid. Dimensions left unset fill the
// screen below the header; explicit ones must fit on it.
func screenGridSize(config utils.Config, screenWidth, screenHeight int) (int, int, error) {
	fitHeight, fitWidth := model.GridSizeFor(screenWidth, screenHeight)
	height, width := gridSize(config, fitHeight, fitWidth)
	if height > fitHeight || width > fitWidth {
		return 0, 0, &utils.ExitError{
			Code:    2,
			Message: fmt.Sprintf("grid %dx%d does not fit the terminal, at most %dx%d", height, width, max(fitHeight, 0), fitWidth),
		}
	}
	return height, width, nil
}

// runInteractive opens the terminal and runs the edit/simulate session until the user quits
func runInteractive(ctx context.Context, config utils.Config, logger *slog.Logger) error {
	screen, closeScreen, err := model.OpenTermboxScreen()
	if err != nil {
		return err
	}
	defer closeScreen()

	screenWidth, screenHeight := screen.Size()
	height, width, err := screenGridSize(config, screenWidth, screenHeight)
	if err != nil {
		return err
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	grid, err := initializeGrid(config, height, width, rng)
	if err != nil {
		return err
	}

	session := ui.NewSession(grid, model.NewTerminalRenderer(screen), logger, ui.Options{
		Period:         config.PeriodDuration(),
		MaxGenerations: config.MaxGenerations,
		RandomDensity:  config.RandomDensity,
		Rand:           rng,
	})

	if err = ui.RunTerminal(ctx, session, ui.TermboxEvents()); err != nil {
		return errors.Wrap(err, "[runInteractive] session failed")
	}

	stats := session.Stats()
	logger.Info("Final stats.",
		"generations", stats.TotalGenerations,
		"gen_per_sec", stats.GenerationsPerSecond,
		"avg_population", stats.AveragePopulation,
		"runtime", stats.Runtime())
	return nil
}

// runHeadless prints the machine dump of every generation to outW
func runHeadless(ctx context.Context, outW io.Writer, config utils.Config, logger *slog.Logger) error {
	height, width := gridSize(config, headlessHeight, headlessWidth)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	grid, err := initializeGrid(config, height, width, rng)
	if err != nil {
		return err
	}

	var (
		stats     = utils.NewStats()
		tracker   utils.Tracker
		lastFrame = time.Now()
	)
	logger.Info("Headless run started.", "height", height, "width", width, "pattern", config.Pattern, "generations", config.Generations)

	for generation := 0; ; generation++ {
		living := grid.CountLivingCells()
		status := tracker.Observe(grid.GetGridHash(), living)
		if _, err = fmt.Fprintf(outW, "generation %d\n%s\n", generation, grid.Dump()); err != nil {
			return errors.Wrap(err, "[runHeadless] failed to write generation")
		}
		logger.Debug("Generation written.", "generation", generation, "living", living, "status", status)

		if generation >= config.Generations {
			break
		}
		if err = ctx.Err(); err != nil {
			logger.Info("Headless run interrupted.", "generation", generation)
			return nil
		}

		grid.Evolve()
		now := time.Now()
		stats.Update(generation+1, grid.CountLivingCells(), now.Sub(lastFrame))
		lastFrame = now
	}

	logger.Info("Headless run finished.",
		"generations", stats.TotalGenerations,
		"living", grid.CountLivingCells(),
		"avg_population", stats.AveragePopulation,
		"runtime", stats.Runtime())
	return nil
}
