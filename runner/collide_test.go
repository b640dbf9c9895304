package runner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHitsObstacle(t *testing.T) {
	box := DefaultTuning().HitBox
	player := &Player{Y: 1}

	tests := []struct {
		name string
		pos  Position
		hit  bool
	}{
		{"same spot", Position{Y: 0.5}, true},
		{"just inside depth", Position{Y: 0.5, Z: -1.19}, true},
		{"too far ahead", Position{Y: 0.5, Z: -1.2}, false},
		{"adjacent lane", Position{X: 2.2, Y: 0.5}, false},
		{"edge of width", Position{X: 0.9, Y: 0.5}, false},
		{"tall obstacle", Position{Y: 0.7}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.hit, hitsObstacle(player, &tt.pos, &box))
		})
	}

	airborne := &Player{Y: 1.5}
	assert.False(t, hitsObstacle(airborne, &Position{Y: 0.5}, &box), "cleared by jumping")
}

func TestTouchesCoin(t *testing.T) {
	player := &Player{Y: 1}
	assert.True(t, touchesCoin(player, &Position{Y: 1.1}, 1))
	assert.True(t, touchesCoin(player, &Position{X: 0.6, Y: 1, Z: 0.6}, 1))
	assert.False(t, touchesCoin(player, &Position{X: 0.8, Y: 1, Z: 0.8}, 1))
}

func TestCoinCollection(t *testing.T) {
	g := startedGame(t, quietTuning())
	spawnCoin(g, 1, 1, 0, 1, 0)

	events := g.Tick(0)

	snap := g.Snapshot()
	assert.Empty(t, snap.Entities)
	assert.Equal(t, 1, snap.Session.Collected)
	assert.InDelta(t, 0.61, snap.Session.Speed, 1e-9)
	assert.InDelta(t, 50+0.02*0.61, snap.Session.Score, 1e-9)
	assert.Equal(t, 50, snap.Scoreboard.Score)
	assert.Contains(t, kinds(events), EventCoinCollected)
}

func TestCoinBoostsStack(t *testing.T) {
	g := startedGame(t, quietTuning())
	spawnCoin(g, 1, 1, 0, 1, 0)
	spawnCoin(g, 2, 1, 0, 1.2, 0)

	g.Tick(0)
	assert.InDelta(t, 0.62, g.Snapshot().Session.Speed, 1e-9)
}

func TestObstacleEndsSession(t *testing.T) {
	tuning := quietTuning()
	g := startedGame(t, tuning)
	spawnObstacle(g, 1, 0, 0.5, 0)
	spawnObstacle(g, 2, -2.2, 0.5, -50)

	events := g.Tick(0)

	snap := g.Snapshot()
	assert.Equal(t, PhaseEnded, snap.Session.Phase)
	assert.Equal(t, OutcomeCollided, snap.Session.Outcome)
	assert.Zero(t, snap.Session.Score)
	require.Contains(t, kinds(events), EventSessionEnded)

	// Nothing spawns, moves or scores after the end.
	for range 200 {
		assert.Empty(t, g.Tick(frameDt))
	}
	after := g.Snapshot()
	assert.Equal(t, snap.Entities, after.Entities)
	assert.Equal(t, snap.Session, after.Session)
}

func TestObstacleTakesPrecedenceOverCoin(t *testing.T) {
	g := startedGame(t, quietTuning())
	spawnCoin(g, 1, 1, 0, 1, 0)
	spawnObstacle(g, 2, 0, 0.5, 0)

	events := g.Tick(0)

	snap := g.Snapshot()
	assert.Equal(t, PhaseEnded, snap.Session.Phase)
	assert.Zero(t, snap.Session.Collected)
	assert.Zero(t, snap.Session.Score)
	assert.Equal(t, 0.6, snap.Session.Speed)
	assert.Len(t, snap.Entities, 2, "coin is left in place")
	assert.NotContains(t, kinds(events), EventCoinCollected)
}

func TestJumpClearsObstacle(t *testing.T) {
	g := startedGame(t, quietTuning())
	require.True(t, g.Jump())
	for range 10 {
		g.Tick(0)
	}
	spawnObstacle(g, 1, 0, 0.5, 0)

	g.Tick(0)
	assert.Equal(t, PhaseRunning, g.Phase())
}
