package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikhrachel/gameolife/model"
	"github.com/sheikhrachel/gameolife/utils"
)

func requireExitCode(t *testing.T, err error, code int) {
	t.Helper()
	var exitErr *utils.ExitError
	require.True(t, errors.As(err, &exitErr), "expected an ExitError, got %v", err)
	assert.Equal(t, code, exitErr.Code)
	assert.Equal(t, code, exitCode(err))
}

func TestRun_Help(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(context.Background(), out, &bytes.Buffer{}, []string{"-h"})

	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	assert.Contains(t, out.String(), "Usage:")
	assert.Contains(t, out.String(), "-period")
}

func TestRun_Version(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	require.NoError(t, run(context.Background(), out, &bytes.Buffer{}, []string{"--version"}))
	assert.Equal(t, "gameolife v"+utils.Version+"\n", out.String())
}

func TestRun_HeadlessBlinker(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	out, logs := &bytes.Buffer{}, &bytes.Buffer{}
	args := []string{"-headless", "-pattern", "blinker", "-generations", "2", "-y", "5", "-x", "5", "-log-level", "debug"}

	// --- Act ---
	err := run(context.Background(), out, logs, args)

	// --- Assert ---
	require.NoError(t, err)
	want := strings.Join([]string{
		"generation 0", "00000", "00000", "01110", "00000", "00000",
		"generation 1", "00000", "00100", "00100", "00100", "00000",
		"generation 2", "00000", "00000", "01110", "00000", "00000",
	}, "\n") + "\n"
	assert.Equal(t, want, out.String())
	assert.Contains(t, logs.String(), "Headless run finished.")
	assert.Contains(t, logs.String(), "status=Stagnant")
}

func TestRun_HeadlessDefaultsToSmallGrid(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	require.NoError(t, run(context.Background(), out, &bytes.Buffer{}, []string{"-headless", "-generations", "0"}))

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 1+headlessHeight)
	assert.Equal(t, "generation 0", lines[0])
	assert.Equal(t, strings.Repeat("0", headlessWidth), lines[1])
}

func TestRun_HeadlessStopsWhenCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := &bytes.Buffer{}
	require.NoError(t, run(ctx, out, &bytes.Buffer{}, []string{"-headless", "-generations", "50", "-y", "3", "-x", "3"}))
	assert.Equal(t, "generation 0\n000\n000\n000\n", out.String())
}

func TestRun_UsageErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"-bogus"}},
		{"negative height", []string{"-headless", "-y", "-1"}},
		{"zero period", []string{"-headless", "-p", "0"}},
		{"unknown pattern", []string{"-headless", "-pattern", "pulsar"}},
		{"pattern does not fit", []string{"-headless", "-pattern", "glider", "-y", "2", "-x", "2"}},
		{"missing config file", []string{"-headless", "-config", "/does/not/exist.json"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := run(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, tc.args)
			requireExitCode(t, err, 2)
		})
	}
}

func TestScreenGridSize(t *testing.T) {
	t.Parallel()

	// 4 columns, 2 grid rows below the header
	screenWidth, screenHeight := 4, model.HeaderRows+2

	tests := []struct {
		name          string
		height, width int
		wantH, wantW  int
	}{
		{"fills the screen when unset", 0, 0, 2, 4},
		{"keeps a size that fits", 1, 3, 1, 3},
		{"exact fit", 2, 4, 2, 4},
		{"fills only the unset dimension", 0, 2, 2, 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			config := utils.DefaultConfig()
			config.Height, config.Width = tc.height, tc.width

			height, width, err := screenGridSize(config, screenWidth, screenHeight)

			require.NoError(t, err)
			assert.Equal(t, tc.wantH, height)
			assert.Equal(t, tc.wantW, width)
		})
	}
}

func TestScreenGridSize_RejectsGridLargerThanScreen(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		height, width int
	}{
		{"too tall", 10, 0},
		{"too wide", 0, 10},
		{"both", 10, 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			config := utils.DefaultConfig()
			config.Height, config.Width = tc.height, tc.width

			_, _, err := screenGridSize(config, 4, model.HeaderRows+2)

			requireExitCode(t, err, 2)
			assert.Contains(t, err.Error(), "does not fit the terminal, at most 2x4")
		})
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	assert.Zero(t, exitCode(nil))
	assert.Equal(t, 1, exitCode(errors.New("boom")))
	assert.Equal(t, 3, exitCode(errors.Wrap(&utils.ExitError{Code: 3, Message: "wrapped"}, "context")))
}
