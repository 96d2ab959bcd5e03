package utils

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// NewLogger builds the game's logger from the log_level and log_format settings
// of config, writing to outW. Unknown levels log at info and unknown formats as
// text; Validate rejects both before a run starts.
func NewLogger(config Config, outW io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if err := level.UnmarshalText([]byte(config.LogLevel)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(config.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(outW, opts))
	}
	return slog.New(slog.NewTextHandler(outW, opts))
}

// OpenLogOutput returns where logs should be written. The terminal belongs to the
// renderer, so interactive runs without a log file discard their logs.
func OpenLogOutput(config Config, stderr io.Writer) (io.Writer, func() error, error) {
	noop := func() error { return nil }
	if config.LogFile == "" {
		if config.Headless {
			return stderr, noop, nil
		}
		return io.Discard, noop, nil
	}

	f, err := os.OpenFile(config.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "[OpenLogOutput] failed to open log file: %+v", config.LogFile)
	}
	return f, f.Close, nil
}
