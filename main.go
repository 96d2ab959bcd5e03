package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/gameolife/utils"
)

func main() {
	// Use a minimal logger until the configured one is built.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	os.Exit(exitCode(realMain()))
}

func realMain() error {
	// Handle Ctrl+C gracefully outside raw terminal mode (headless runs, SIGTERM)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return run(ctx, os.Stdout, os.Stderr, os.Args[1:])
}

// exitCode reports err on stderr and maps it to a process exit code
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *utils.ExitError
	if errors.As(err, &exitErr) {
		fmt.Fprintln(os.Stderr, exitErr.Message)
		return exitErr.Code
	}
	fmt.Fprintln(os.Stderr, err)
	return 1
}

// run encapsulates the main application logic for easier testing and error handling.
func run(ctx context.Context, outW, errW io.Writer, args []string) error {
	config, shouldExit, err := utils.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	logW, closeLog, err := utils.OpenLogOutput(*config, errW)
	if err != nil {
		return &utils.ExitError{Code: 1, Message: err.Error()}
	}
	defer closeLog()

	logger := utils.NewLogger(*config, logW)
	logger.Debug("Configuration resolved.", "config", *config)

	if config.Headless {
		return runHeadless(ctx, outW, *config, logger)
	}
	return runInteractive(ctx, *config, logger)
}
