package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/laneshift/runner"
)

func TestProjectPerspective(t *testing.T) {
	p := NewProjector(DefaultCamera(), 480, 720)

	cx, _, nearScale, ok := p.Project(0, 1, 0)
	require.True(t, ok)
	assert.Equal(t, 240.0, cx)

	_, _, farScale, ok := p.Project(0, 1, -100)
	require.True(t, ok)
	assert.Less(t, farScale, nearScale, "far things are smaller")

	left, _, _, _ := p.Project(-2.2, 1, 0)
	right, _, _, _ := p.Project(2.2, 1, 0)
	assert.InDelta(t, 240-left, right-240, 1e-9)

	_, _, _, ok = p.Project(0, 0, -300)
	assert.False(t, ok, "beyond the far plane")
	_, _, _, ok = p.Project(0, 0, 8)
	assert.False(t, ok, "behind the camera")
}

func TestProjectGroundRecedesToHorizon(t *testing.T) {
	p := NewProjector(DefaultCamera(), 480, 720)
	_, nearY, _, _ := p.Project(0, 0, 0)
	_, farY, _, _ := p.Project(0, 0, -200)

	horizon := 720 * p.Horizon
	assert.Greater(t, nearY, farY)
	assert.Greater(t, farY, horizon)
}

func TestSceneOrdersFarToNear(t *testing.T) {
	snap := runner.Snapshot{
		Player: runner.Player{TargetLane: 1, Y: 1},
		Entities: []runner.EntitySnapshot{
			{Kind: runner.KindObstacle, Seq: 1, X: 0, Y: 0.5, Z: -20, Size: 1},
			{Kind: runner.KindCoin, Seq: 2, X: 2.2, Y: 1.1, Z: -150},
			{Kind: runner.KindObstacle, Seq: 3, X: 0, Y: 0.5, Z: -500, Size: 1},
		},
	}

	sprites := Scene(snap, NewProjector(DefaultCamera(), 480, 720))
	require.Len(t, sprites, 3, "culled the far obstacle")
	assert.Equal(t, []SpriteKind{SpriteCoin, SpriteObstacle, SpritePlayer},
		[]SpriteKind{sprites[0].Kind, sprites[1].Kind, sprites[2].Kind})
	assert.Less(t, sprites[0].Size, sprites[1].Size)
}

func TestLaneLines(t *testing.T) {
	p := NewProjector(DefaultCamera(), 480, 720)
	lines := LaneLines([]float64{-2.2, 0, 2.2}, p)
	require.Len(t, lines, 4)
	assert.InDelta(t, 240-lines[0].X0, lines[3].X0-240, 1e-9)
	assert.Nil(t, LaneLines(nil, p))
}

func TestClassifySwipe(t *testing.T) {
	tests := []struct {
		dx, dy float64
		want   runner.Input
		ok     bool
	}{
		{40, 5, runner.InputRight, true},
		{-40, 10, runner.InputLeft, true},
		{5, -60, runner.InputJump, true},
		{5, 60, 0, false},
		{20, 0, 0, false},
		{30, 0, 0, false},
		{0, 0, 0, false},
	}
	for _, tt := range tests {
		got, ok := ClassifySwipe(tt.dx, tt.dy)
		assert.Equal(t, tt.ok, ok, "dx=%v dy=%v", tt.dx, tt.dy)
		assert.Equal(t, tt.want, got, "dx=%v dy=%v", tt.dx, tt.dy)
	}
}

func TestBanner(t *testing.T) {
	title, _ := Banner(runner.Snapshot{})
	assert.Equal(t, "LANESHIFT", title)

	title, hint := Banner(runner.Snapshot{Session: runner.Session{Phase: runner.PhaseRunning}})
	assert.Empty(t, title)
	assert.Empty(t, hint)

	ended := runner.Snapshot{
		Session:    runner.Session{Phase: runner.PhaseEnded, Outcome: runner.OutcomeCollided},
		Scoreboard: runner.Scoreboard{Final: 123},
	}
	title, _ = Banner(ended)
	assert.Equal(t, "GAME OVER  123", title)

	ended.Session.Outcome = runner.OutcomeWon
	title, _ = Banner(ended)
	assert.Equal(t, "YOU WIN  123", title)
}

func TestHUD(t *testing.T) {
	assert.Equal(t, "SCORE 12   WAVE 2   SPEED 0.68   BEST 40",
		HUD(runner.Scoreboard{Score: 12, Wave: 2, Speed: 0.68, Best: 40.9}))
}
