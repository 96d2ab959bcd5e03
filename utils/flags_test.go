package utils

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	t.Parallel()

	config, shouldExit, err := Parse(nil, &bytes.Buffer{})
	require.NoError(t, err)
	require.False(t, shouldExit)
	assert.Equal(t, DefaultConfig(), *config)
}

func TestParse_Flags(t *testing.T) {
	t.Parallel()

	args := []string{
		"-y", "12", "--width", "30", "-p", "0.25",
		"-pattern", "random", "-density", "0.4",
		"-max-generations", "50", "-headless", "-generations", "7",
		"-log-level", "DEBUG", "-log-format", "json", "-log-file", "game.log",
	}
	config, shouldExit, err := Parse(args, &bytes.Buffer{})
	require.NoError(t, err)
	require.False(t, shouldExit)

	assert.Equal(t, 12, config.Height)
	assert.Equal(t, 30, config.Width)
	assert.Equal(t, 250*time.Millisecond, config.PeriodDuration())
	assert.Equal(t, "random", config.Pattern)
	assert.Equal(t, 0.4, config.RandomDensity)
	assert.Equal(t, 50, config.MaxGenerations)
	assert.True(t, config.Headless)
	assert.Equal(t, 7, config.Generations)
	assert.Equal(t, "debug", config.LogLevel)
	assert.Equal(t, "json", config.LogFormat)
	assert.Equal(t, "game.log", config.LogFile)
}

func TestParse_FlagsOverrideConfigFile(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `{"height": 8, "width": 9, "period": "2s", "pattern": "block"}`)

	config, _, err := Parse([]string{"-config", path, "-x", "40"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, 8, config.Height, "file value kept")
	assert.Equal(t, 40, config.Width, "flag wins over file")
	assert.Equal(t, 2*time.Second, config.PeriodDuration())
	assert.Equal(t, "block", config.Pattern)
}

func TestParse_HelpAndVersion(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	config, shouldExit, err := Parse([]string{"-help"}, out)
	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Nil(t, config)
	assert.Contains(t, out.String(), "Usage:")

	out.Reset()
	_, shouldExit, err = Parse([]string{"-version"}, out)
	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Equal(t, "gameolife v"+Version+"\n", out.String())
}

func TestParse_SubNanosecondPeriodRoundsUp(t *testing.T) {
	t.Parallel()

	config, _, err := Parse([]string{"-p", "1e-10"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, time.Nanosecond, config.PeriodDuration())
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"-bogus"}},
		{"bad int", []string{"-y", "tall"}},
		{"positional argument", []string{"grid.txt"}},
		{"negative period", []string{"-p", "-1"}},
		{"zero period", []string{"-p", "0"}},
		{"NaN period", []string{"-p", "NaN"}},
		{"infinite period", []string{"-period", "+Inf"}},
		{"NaN density", []string{"-density", "NaN", "-pattern", "random"}},
		{"bad log format", []string{"-log-format", "xml"}},
		{"missing config", []string{"-config", "/nope/config.json"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			config, shouldExit, err := Parse(tc.args, &bytes.Buffer{})
			require.Error(t, err)
			assert.False(t, shouldExit)
			assert.Nil(t, config)

			exitErr, ok := err.(*ExitError)
			require.True(t, ok, "expected *ExitError, got %T", err)
			assert.Equal(t, 2, exitErr.Code)
		})
	}
}
