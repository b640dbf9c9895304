package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/laneshift/runner"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func mapLookup(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, runner.DefaultTuning(), cfg.Tuning)
	assert.IsType(t, runner.VariableClock{}, cfg.Clock())
}

func TestDecodeMergesOverDefaults(t *testing.T) {
	cfg := Default()
	err := Decode(strings.NewReader(`
ui: tui
seed: 42
tuning:
  gravity: -0.03
  spawnProbabilities:
    obstacle: 0.5
  hitBox:
    dz: 1.5
timestep:
  mode: fixed
  rate: 120
`), &cfg)
	require.NoError(t, err)

	assert.Equal(t, UITui, cfg.UI)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, -0.03, cfg.Tuning.Gravity)
	assert.Equal(t, 0.5, cfg.Tuning.SpawnProbabilities.Obstacle)
	assert.Equal(t, 0.4, cfg.Tuning.SpawnProbabilities.Coin, "unset keys keep defaults")
	assert.Equal(t, 1.5, cfg.Tuning.HitBox.DZ)
	assert.Equal(t, 0.9, cfg.Tuning.HitBox.DX)
	assert.Equal(t, 0.45, cfg.Tuning.JumpVelocity)

	require.NoError(t, cfg.Validate())
	clock, ok := cfg.Clock().(*runner.FixedClock)
	require.True(t, ok)
	assert.InDelta(t, 1.0/120, clock.Step, 1e-12)
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	cfg := Default()
	err := Decode(strings.NewReader("tuning:\n  gravitee: -1\n"), &cfg)
	assert.Error(t, err)
}

func TestDecodeEmptyDocument(t *testing.T) {
	cfg := Default()
	require.NoError(t, Decode(strings.NewReader(""), &cfg))
	assert.Equal(t, Default(), cfg)
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := ApplyEnv(&cfg, mapLookup(map[string]string{
		"LANESHIFT_UI":            "headless",
		"LANESHIFT_SEED":          "7",
		"LANESHIFT_AUDIO":         "false",
		"LANESHIFT_TIMESTEP":      "fixed",
		"LANESHIFT_TIMESTEP_RATE": "30",
		"LANESHIFT_SCORE_CEILING": "1000",
		"LANESHIFT_LOG_LEVEL":     "debug",
	}))
	require.NoError(t, err)

	assert.Equal(t, UIHeadless, cfg.UI)
	assert.Equal(t, uint64(7), cfg.Seed)
	assert.False(t, cfg.Audio.Enabled)
	assert.True(t, cfg.Audio.Music)
	assert.Equal(t, TimestepFixed, cfg.Timestep.Mode)
	assert.Equal(t, 30.0, cfg.Timestep.Rate)
	assert.Equal(t, 1000.0, cfg.Tuning.ScoreCeiling)

	level, err := cfg.Log.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestApplyEnvReportsBadValues(t *testing.T) {
	cfg := Default()
	err := ApplyEnv(&cfg, mapLookup(map[string]string{
		"LANESHIFT_SEED":  "minus one",
		"LANESHIFT_AUDIO": "loud",
	}))
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "LANESHIFT_SEED")
	assert.Contains(t, err.Error(), "LANESHIFT_AUDIO")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown ui", func(c *Config) { c.UI = "vr" }},
		{"unknown timestep", func(c *Config) { c.Timestep.Mode = "elastic" }},
		{"fixed without rate", func(c *Config) { c.Timestep = Timestep{Mode: TimestepFixed, MaxSteps: 1} }},
		{"empty window", func(c *Config) { c.Window.Width = 0 }},
		{"bad log level", func(c *Config) { c.Log.Level = "chatty" }},
		{"bad tuning", func(c *Config) { c.Tuning.Gravity = 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}

	cfg := Default()
	cfg.Tuning.Gravity = 1
	assert.ErrorIs(t, cfg.Validate(), runner.ErrInvalidTuning)
}

func TestLoadLayersFileDotenvAndEnv(t *testing.T) {
	path := writeFile(t, "laneshift.yaml", "ui: tui\nseed: 1\nlog:\n  level: warn\n")
	dotenv := writeFile(t, ".env", "LANESHIFT_SEED=2\nLANESHIFT_LOG_LEVEL=error\n")
	t.Setenv("LANESHIFT_LOG_LEVEL", "debug")
	t.Setenv("LANESHIFT_HIGHSCORE_FILE", "")
	// Setenv restores the seed on cleanup; unset it so the .env value applies.
	t.Setenv("LANESHIFT_SEED", "")
	require.NoError(t, os.Unsetenv("LANESHIFT_SEED"))

	cfg, err := Load(path, dotenv, filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, UITui, cfg.UI)
	assert.Equal(t, uint64(2), cfg.Seed, ".env beats the file")
	assert.Equal(t, "debug", cfg.Log.Level, "environment beats .env")
	assert.Empty(t, cfg.HighScore.File)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := writeFile(t, "bad.yaml", "tuning: [1, 2\n")
	_, err = Load(bad)
	assert.Error(t, err)

	invalid := writeFile(t, "invalid.yaml", "tuning:\n  lanes: []\n")
	_, err = Load(invalid)
	assert.ErrorIs(t, err, runner.ErrInvalidTuning)
}

func TestExampleFileMatchesDefaults(t *testing.T) {
	t.Setenv("LANESHIFT_UI", "gui")

	cfg, err := Load(filepath.Join("..", "laneshift.example.yaml"))
	require.NoError(t, err)
	assert.Equal(t, runner.DefaultTuning(), cfg.Tuning)
	assert.Equal(t, Default().Timestep, cfg.Timestep)
	assert.Empty(t, cfg.HighScore.File)
}
