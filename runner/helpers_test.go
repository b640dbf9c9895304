package runner

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const frameDt = 1.0 / 60

// scriptedRand replays fixed draws and fails the test when it runs dry.
type scriptedRand struct {
	t      *testing.T
	floats []float64
	ints   []int
}

func (r *scriptedRand) Float64() float64 {
	require.NotEmpty(r.t, r.floats, "scripted Float64 exhausted")
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func (r *scriptedRand) IntN(n int) int {
	require.NotEmpty(r.t, r.ints, "scripted IntN exhausted")
	v := r.ints[0]
	r.ints = r.ints[1:]
	require.Less(r.t, v, n)
	return v
}

// quietTuning never spawns anything on its own.
func quietTuning() Tuning {
	t := DefaultTuning()
	t.SpawnProbabilities = SpawnProbabilities{}
	return t
}

func newTestGame(t *testing.T, tuning Tuning) *Game {
	t.Helper()
	g, err := NewGame(GameConfig{Tuning: tuning, Seed: 7})
	require.NoError(t, err)
	return g
}

func startedGame(t *testing.T, tuning Tuning) *Game {
	t.Helper()
	g := newTestGame(t, tuning)
	require.True(t, g.Start())
	return g
}

func spawnObstacle(g *Game, seq uint64, x, y, z float64) {
	g.Storage().Spawn(Position{X: x, Y: y, Z: z}, Obstacle{Size: 2 * y}, Spawned{Seq: seq})
}

func spawnCoin(g *Game, seq uint64, lane int, x, y, z float64) {
	g.Storage().Spawn(Position{X: x, Y: y, Z: z}, Coin{Lane: lane}, Spawned{Seq: seq})
}

func kinds(events []Event) []EventKind {
	out := make([]EventKind, 0, len(events))
	for _, e := range events {
		out = append(out, e.Kind)
	}
	return out
}

// memoryScores is an in-memory ScoreKeeper.
type memoryScores struct {
	best      float64
	submitted []float64
}

func (m *memoryScores) Best() (float64, error) {
	return m.best, nil
}

func (m *memoryScores) Submit(score float64) (bool, error) {
	m.submitted = append(m.submitted, score)
	if score <= m.best {
		return false, nil
	}
	m.best = score
	return true, nil
}
