package main

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/laneshift/config"
	"github.com/plus3/laneshift/replay"
	"github.com/plus3/laneshift/runner"
)

func TestFlagsOverrideConfig(t *testing.T) {
	opts, err := parseFlags([]string{"-ui", "headless", "-seed", "42", "-log", "debug", "-ticks", "10"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 10, opts.ticks)

	cfg := config.Default()
	cfg.Seed = 7
	require.NoError(t, opts.apply(&cfg))
	assert.Equal(t, config.UIHeadless, cfg.UI)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestEmptyFlagsKeepConfig(t *testing.T) {
	opts, err := parseFlags(nil, io.Discard)
	require.NoError(t, err)

	cfg := config.Default()
	cfg.Seed = 7
	require.NoError(t, opts.apply(&cfg))
	assert.Equal(t, config.Default().UI, cfg.UI)
	assert.Equal(t, uint64(7), cfg.Seed)
}

func TestBadFlagValues(t *testing.T) {
	opts, err := parseFlags([]string{"-ui", "vr"}, io.Discard)
	require.NoError(t, err)
	cfg := config.Default()
	assert.ErrorIs(t, opts.apply(&cfg), config.ErrInvalidConfig)

	_, err = parseFlags([]string{"-seed", "minus one"}, io.Discard)
	assert.Error(t, err)
}

func TestTerminalLogsToFile(t *testing.T) {
	cfg := config.Default()
	cfg.UI = config.UITui
	cfg.Log.File = filepath.Join(t.TempDir(), "run.log")

	logger, closeLog, err := newLogger(cfg)
	require.NoError(t, err)
	logger.Info("hello")
	closeLog()

	assert.FileExists(t, cfg.Log.File)
}

func TestHeadlessRecordAndVerify(t *testing.T) {
	cfg := config.Default()
	cfg.UI = config.UIHeadless
	cfg.Tuning.ScoreCeiling = 40

	game, err := runner.NewGame(runner.GameConfig{Tuning: cfg.Tuning, Seed: 99})
	require.NoError(t, err)
	recorder := replay.NewRecorder(game, 99)
	pilot := runner.DefaultAutopilot()

	var out bytes.Buffer
	require.NoError(t, runHeadless(context.Background(), recorder, &pilot, cfg, 100000, &out))
	assert.Contains(t, out.String(), "score ")

	path := filepath.Join(t.TempDir(), "run.replay")
	require.NoError(t, replay.Save(path, recorder.Replay()))
	require.NoError(t, verifyReplay(path, nil))
}

func TestHeadlessStopsOnCancel(t *testing.T) {
	cfg := config.Default()
	game, err := runner.NewGame(runner.GameConfig{Tuning: cfg.Tuning, Seed: 1})
	require.NoError(t, err)
	pilot := runner.DefaultAutopilot()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	require.NoError(t, runHeadless(ctx, game, &pilot, cfg, 0, &out))
	assert.Contains(t, out.String(), "not-started")
}
