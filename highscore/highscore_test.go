package highscore

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/laneshift/runner"
)

var (
	_ runner.ScoreKeeper = (*FileStore)(nil)
	_ runner.ScoreKeeper = (*MemoryStore)(nil)
)

func TestFileStoreMissingFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "nested", "scores.toml"))

	best, err := store.Best()
	require.NoError(t, err)
	assert.Zero(t, best)
}

func TestFileStoreKeepsBest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "scores.toml")
	store := NewFileStore(path)
	store.now = func() time.Time { return time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC) }

	improved, err := store.Submit(120.5)
	require.NoError(t, err)
	assert.True(t, improved)

	improved, err = store.Submit(80)
	require.NoError(t, err)
	assert.False(t, improved)

	reopened := NewFileStore(path)
	best, err := reopened.Best()
	require.NoError(t, err)
	assert.Equal(t, 120.5, best)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[laneshift_highscore]")
	assert.Contains(t, string(data), "2026-10-15T12:00:00Z")
}

func TestFileStorePreservesOtherTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.toml")
	seed := "[other_game]\nscore = 9000.0\nplayer = \"ada\"\nlevel = 7\n"
	require.NoError(t, os.WriteFile(path, []byte(seed), 0o644))

	store := NewFileStore(path)
	improved, err := store.Submit(10)
	require.NoError(t, err)
	require.True(t, improved)

	var doc map[string]map[string]any
	_, err = toml.DecodeFile(path, &doc)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"score": 9000.0, "player": "ada", "level": int64(7)}, doc["other_game"])
	assert.Equal(t, 10.0, doc[Key]["score"])

	best, err := store.Best()
	require.NoError(t, err)
	assert.Equal(t, 10.0, best)
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.toml")
	require.NoError(t, os.WriteFile(path, []byte("this is = = not toml"), 0o644))

	store := NewFileStore(path)
	_, err := store.Best()
	assert.Error(t, err)
	_, err = store.Submit(1)
	assert.Error(t, err)
}

func TestMemoryStore(t *testing.T) {
	var store MemoryStore

	improved, err := store.Submit(5)
	require.NoError(t, err)
	assert.True(t, improved)

	improved, _ = store.Submit(5)
	assert.False(t, improved)

	best, _ := store.Best()
	assert.Equal(t, 5.0, best)
}

func TestGameSubmitsToFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.toml")
	tuning := runner.DefaultTuning()
	tuning.ScoreCeiling = 0.01

	g, err := runner.NewGame(runner.GameConfig{Tuning: tuning, Scores: NewFileStore(path)})
	require.NoError(t, err)
	require.True(t, g.Start())
	g.Tick(1.0 / 60)
	require.Equal(t, runner.PhaseEnded, g.Phase())

	best, err := NewFileStore(path).Best()
	require.NoError(t, err)
	assert.InDelta(t, 0.012, best, 1e-9)
}
