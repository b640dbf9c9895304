// Package config loads game settings from a YAML file, a .env file and
// LANESHIFT_* environment variables, in that order of precedence (later
// wins). Command-line flags are applied on top by the caller.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/plus3/laneshift/runner"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the complete application configuration.
type Config struct {
	UI        string        `yaml:"ui"`
	Seed      uint64        `yaml:"seed"`
	Tuning    runner.Tuning `yaml:"tuning"`
	Timestep  Timestep      `yaml:"timestep"`
	Window    Window        `yaml:"window"`
	Audio     Audio         `yaml:"audio"`
	HighScore HighScore     `yaml:"highscore"`
	Assets    Assets        `yaml:"assets"`
	Log       Log           `yaml:"log"`
}

// Timestep selects how frame time becomes game ticks.
type Timestep struct {
	Mode     string  `yaml:"mode"` // "variable" or "fixed"
	Rate     float64 `yaml:"rate"` // ticks per second in fixed mode
	MaxSteps int     `yaml:"maxSteps"`
}

// Window sizes the graphical front-end.
type Window struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// Audio toggles sound.
type Audio struct {
	Enabled bool    `yaml:"enabled"`
	Music   bool    `yaml:"music"`
	Volume  float64 `yaml:"volume"` // in beep's log2 volume units, 0 is unchanged
}

// HighScore locates the best-score file. An empty File keeps scores in memory.
type HighScore struct {
	File string `yaml:"file"`
}

// Assets points at optional art.
type Assets struct {
	PlayerSprite string `yaml:"playerSprite"`
}

// Log configures the process logger.
type Log struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

const (
	UIGui      = "gui"
	UITui      = "tui"
	UIHeadless = "headless"

	TimestepVariable = "variable"
	TimestepFixed    = "fixed"
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		UI:     UIGui,
		Tuning: runner.DefaultTuning(),
		Timestep: Timestep{
			Mode:     TimestepVariable,
			Rate:     60,
			MaxSteps: 5,
		},
		Window: Window{Width: 480, Height: 720, Title: "laneshift"},
		Audio:  Audio{Enabled: true, Music: true},
		HighScore: HighScore{
			File: DefaultHighScoreFile(),
		},
		Assets: Assets{PlayerSprite: "assets/runner.png"},
		Log:    Log{Level: "info"},
	}
}

// DefaultHighScoreFile is scores.toml under the user config directory, or
// empty when there is none.
func DefaultHighScoreFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "laneshift", "scores.toml")
}

// Load builds the configuration from defaults, the YAML file at path (if
// path is not empty), the .env files (missing files are skipped) and the
// environment.
func Load(path string, envFiles ...string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("reading config: %w", err)
		}
		if err := Decode(bytes.NewReader(data), &cfg); err != nil {
			return cfg, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("loading %s: %w", file, err)
		}
	}

	if err := ApplyEnv(&cfg, os.LookupEnv); err != nil {
		return cfg, err
	}

	return cfg, cfg.Validate()
}

// Decode merges YAML from r into cfg. Unknown keys are errors.
func Decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// ApplyEnv overrides cfg from LANESHIFT_* variables found through lookup.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}
	var errs []error
	parse := func(key string, set func(string) error) {
		v, ok := lookup(key)
		if !ok {
			return
		}
		if err := set(strings.TrimSpace(v)); err != nil {
			errs = append(errs, fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, key, v, err))
		}
	}

	str("LANESHIFT_UI", &cfg.UI)
	str("LANESHIFT_TIMESTEP", &cfg.Timestep.Mode)
	str("LANESHIFT_HIGHSCORE_FILE", &cfg.HighScore.File)
	str("LANESHIFT_PLAYER_SPRITE", &cfg.Assets.PlayerSprite)
	str("LANESHIFT_LOG_LEVEL", &cfg.Log.Level)
	str("LANESHIFT_LOG_FILE", &cfg.Log.File)

	parse("LANESHIFT_SEED", func(v string) (err error) {
		cfg.Seed, err = strconv.ParseUint(v, 10, 64)
		return err
	})
	parse("LANESHIFT_TIMESTEP_RATE", func(v string) (err error) {
		cfg.Timestep.Rate, err = strconv.ParseFloat(v, 64)
		return err
	})
	parse("LANESHIFT_AUDIO", func(v string) (err error) {
		cfg.Audio.Enabled, err = strconv.ParseBool(v)
		return err
	})
	parse("LANESHIFT_MUSIC", func(v string) (err error) {
		cfg.Audio.Music, err = strconv.ParseBool(v)
		return err
	})
	parse("LANESHIFT_SCORE_CEILING", func(v string) (err error) {
		cfg.Tuning.ScoreCeiling, err = strconv.ParseFloat(v, 64)
		return err
	})

	return errors.Join(errs...)
}

// Validate checks the configuration, tuning included.
func (c *Config) Validate() error {
	switch c.UI {
	case UIGui, UITui, UIHeadless:
	default:
		return fmt.Errorf("%w: unknown ui %q", ErrInvalidConfig, c.UI)
	}

	switch c.Timestep.Mode {
	case TimestepVariable:
	case TimestepFixed:
		if c.Timestep.Rate <= 0 || c.Timestep.MaxSteps < 1 {
			return fmt.Errorf("%w: fixed timestep needs a positive rate and maxSteps", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown timestep mode %q", ErrInvalidConfig, c.Timestep.Mode)
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}

	if _, err := c.Log.SlogLevel(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if err := c.Tuning.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Clock returns the tick driver selected by the timestep settings.
func (c *Config) Clock() runner.Clock {
	if c.Timestep.Mode == TimestepFixed {
		return runner.NewFixedClock(c.Timestep.Rate, c.Timestep.MaxSteps)
	}
	return runner.VariableClock{}
}

// SlogLevel parses the configured level name.
func (l Log) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return level, err
	}
	return level, nil
}
