package utils

import (
	"encoding/json"
	"math"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/gameolife/model"
)

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = errors.New("invalid configuration")

// Duration is a time.Duration that reads from JSON either as a Go duration
// string ("150ms") or as a number of nanoseconds
type Duration time.Duration

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(err, "[Duration.UnmarshalJSON] failed to unmarshal duration")
	}
	switch v := raw.(type) {
	case float64:
		*d = Duration(time.Duration(v))
	case string:
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return errors.Wrapf(err, "[Duration.UnmarshalJSON] failed to parse duration: %+v", v)
		}
		*d = Duration(parsed)
	default:
		return errors.Errorf("[Duration.UnmarshalJSON] unsupported duration value: %s", data)
	}
	return nil
}

// Config holds the configuration for the game
type Config struct {
	Height         int      `json:"height"`
	Width          int      `json:"width"`
	Period         Duration `json:"period"`
	MaxGenerations int      `json:"max_generations"`
	Pattern        string   `json:"pattern"`
	RandomDensity  float64  `json:"random_density"`
	Headless       bool     `json:"headless"`
	Generations    int      `json:"generations"`
	LogLevel       string   `json:"log_level"`
	LogFormat      string   `json:"log_format"`
	LogFile        string   `json:"log_file"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Height:         0, // fit the terminal
		Width:          0,
		Period:         Duration(100 * time.Millisecond),
		MaxGenerations: 0,
		Pattern:        model.PatternNone,
		RandomDensity:  0.15,
		Generations:    10,
		LogLevel:       "info",
		LogFormat:      "text",
	}
}

// LoadConfig loads configuration from JSON file on top of the defaults
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, nil
}

// PeriodDuration returns the delay between generations
func (c Config) PeriodDuration() time.Duration {
	return time.Duration(c.Period)
}

// Validate checks every field for a usable value
func (c Config) Validate() error {
	switch {
	case c.Height < 0 || c.Width < 0:
		return errors.Wrapf(ErrInvalidConfig, "grid size must not be negative, got height %d and width %d", c.Height, c.Width)
	case c.Period <= 0:
		return errors.Wrapf(ErrInvalidConfig, "period must be positive, got %s", c.PeriodDuration())
	case c.MaxGenerations < 0:
		return errors.Wrapf(ErrInvalidConfig, "max generations must not be negative, got %d", c.MaxGenerations)
	case c.Generations < 0:
		return errors.Wrapf(ErrInvalidConfig, "generations must not be negative, got %d", c.Generations)
	case math.IsNaN(c.RandomDensity) || c.RandomDensity < 0 || c.RandomDensity > 1:
		return errors.Wrapf(ErrInvalidConfig, "random density must be within [0, 1], got %v", c.RandomDensity)
	case !model.IsPattern(c.Pattern):
		return errors.Wrapf(ErrInvalidConfig, "unknown pattern %q", c.Pattern)
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return errors.Wrapf(ErrInvalidConfig, "invalid log-level %q: must be 'debug', 'info', 'warn', or 'error'", c.LogLevel)
	}

	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return errors.Wrapf(ErrInvalidConfig, "invalid log-format %q: must be 'text' or 'json'", c.LogFormat)
	}
	return nil
}
