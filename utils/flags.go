package utils

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"
	"time"
)

const (
	// Project is the program name shown in usage and version output
	Project = "gameolife"
	// Version of the program
	Version = "0.3.0"
)

// ExitError is an error carrying the process exit code it should produce
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments into a Config. Values come from the
// defaults, then the -config file, then any flag given explicitly. The boolean
// result reports that the program should exit cleanly (help or version).
func Parse(args []string, output io.Writer) (*Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet(Project, flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
Game of life running on a terminal.

Usage:
  gameolife [options]

Edit the starting grid with the arrow keys and <space>, press <enter> to run
the simulation and <enter> again to stop it.

Options:
`)
		flagSet.PrintDefaults()
	}

	defaults := DefaultConfig()

	var (
		height, width int
		period        float64
	)
	flagSet.IntVar(&height, "height", 0, "The height of the game grid. 0 fits the terminal.")
	flagSet.IntVar(&height, "y", 0, "The height of the game grid (shorthand).")
	flagSet.IntVar(&width, "width", 0, "The width of the game grid. 0 fits the terminal.")
	flagSet.IntVar(&width, "x", 0, "The width of the game grid (shorthand).")
	flagSet.Float64Var(&period, "period", defaults.PeriodDuration().Seconds(), "The period of the simulation in seconds.")
	flagSet.Float64Var(&period, "p", defaults.PeriodDuration().Seconds(), "The period of the simulation in seconds (shorthand).")
	versionFlag := flagSet.Bool("version", false, "Print the version and exit.")
	configFlag := flagSet.String("config", "", "Path to a JSON configuration file.")
	patternFlag := flagSet.String("pattern", defaults.Pattern, "Starting pattern: none, block, blinker, glider or random.")
	densityFlag := flagSet.Float64("density", defaults.RandomDensity, "Share of living cells for the random pattern.")
	maxGenFlag := flagSet.Int("max-generations", defaults.MaxGenerations, "Stop each simulation run after this many generations. 0 is unlimited.")
	headlessFlag := flagSet.Bool("headless", false, "Print generations to stdout instead of opening the terminal UI.")
	generationsFlag := flagSet.Int("generations", defaults.Generations, "Number of generations to print in headless mode.")
	logLevelFlag := flagSet.String("log-level", defaults.LogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	logFormatFlag := flagSet.String("log-format", defaults.LogFormat, "Log output format. Options: 'text' or 'json'.")
	logFileFlag := flagSet.String("log-file", "", "Write logs to this file. Headless runs log to stderr by default.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if flagSet.NArg() > 0 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unexpected arguments: %s", strings.Join(flagSet.Args(), " "))}
	}
	slog.Debug("Arguments parsed successfully.")

	if *versionFlag {
		fmt.Fprintf(output, "%s v%s\n", Project, Version)
		return nil, true, nil
	}

	config := defaults
	if *configFlag != "" {
		loaded, err := LoadConfig(*configFlag)
		if err != nil {
			return nil, false, &ExitError{Code: 2, Message: err.Error()}
		}
		config = loaded
		slog.Debug("Config file loaded.", "path", *configFlag)
	}

	var periodErr error
	flagSet.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "height", "y":
			config.Height = height
		case "width", "x":
			config.Width = width
		case "period", "p":
			config.Period, periodErr = secondsToPeriod(period)
		case "pattern":
			config.Pattern = *patternFlag
		case "density":
			config.RandomDensity = *densityFlag
		case "max-generations":
			config.MaxGenerations = *maxGenFlag
		case "headless":
			config.Headless = *headlessFlag
		case "generations":
			config.Generations = *generationsFlag
		case "log-level":
			config.LogLevel = *logLevelFlag
		case "log-format":
			config.LogFormat = *logFormatFlag
		case "log-file":
			config.LogFile = *logFileFlag
		}
	})
	if periodErr != nil {
		return nil, false, &ExitError{Code: 2, Message: periodErr.Error()}
	}
	config.LogLevel = strings.ToLower(config.LogLevel)
	config.LogFormat = strings.ToLower(config.LogFormat)

	if err := config.Validate(); err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return &config, false, nil
}

// secondsToPeriod converts the -period flag. Positive values shorter than a
// nanosecond round up to one.
func secondsToPeriod(seconds float64) (Duration, error) {
	if math.IsNaN(seconds) || seconds <= 0 || seconds >= time.Duration(math.MaxInt64).Seconds() {
		return 0, fmt.Errorf("invalid value %v for flag -period: must be a positive number of seconds", seconds)
	}
	return Duration(max(time.Duration(seconds*float64(time.Second)), time.Nanosecond)), nil
}
