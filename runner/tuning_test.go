package runner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTuningIsValid(t *testing.T) {
	tuning := DefaultTuning()
	require.NoError(t, tuning.Validate())
	assert.Equal(t, 0.0, tuning.LaneX(tuning.StartLane))
	assert.Equal(t, 2, tuning.LastLane())
}

func TestTuningValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Tuning)
	}{
		{"no lanes", func(t *Tuning) { t.Lanes = nil }},
		{"start lane out of range", func(t *Tuning) { t.StartLane = 3 }},
		{"negative start lane", func(t *Tuning) { t.StartLane = -1 }},
		{"zero gravity", func(t *Tuning) { t.Gravity = 0 }},
		{"upward gravity", func(t *Tuning) { t.Gravity = 0.02 }},
		{"no jump", func(t *Tuning) { t.JumpVelocity = 0 }},
		{"probability above one", func(t *Tuning) { t.SpawnProbabilities.Obstacle = 1.5 }},
		{"negative probability", func(t *Tuning) { t.SpawnProbabilities.Coin = -0.1 }},
		{"zero wave threshold", func(t *Tuning) { t.WaveBaseThreshold = 0 }},
		{"floor above start interval", func(t *Tuning) { t.MinSpawnInterval = 40 }},
		{"zero spawn period", func(t *Tuning) { t.MinSpawnPeriod = 0 }},
		{"negative ceiling", func(t *Tuning) { t.ScoreCeiling = -1 }},
		{"zero hit box", func(t *Tuning) { t.HitBox.DZ = 0 }},
		{"tween overshoots", func(t *Tuning) { t.LaneTweenSpeed = 1.5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tuning := DefaultTuning()
			tt.mutate(&tuning)
			assert.ErrorIs(t, tuning.Validate(), ErrInvalidTuning)
		})
	}
}

func TestWaveThreshold(t *testing.T) {
	tuning := DefaultTuning()
	assert.Equal(t, 550.0, tuning.WaveThreshold(1))
	assert.Equal(t, 1200.0, tuning.WaveThreshold(2))
}

func TestNewGameRejectsInvalidTuning(t *testing.T) {
	tuning := DefaultTuning()
	tuning.Gravity = 1

	_, err := NewGame(GameConfig{Tuning: tuning})
	assert.ErrorIs(t, err, ErrInvalidTuning)
}
