package runner

import (
	"errors"
	"fmt"
)

// SpawnProbabilities are the independent per-attempt spawn chances.
type SpawnProbabilities struct {
	Obstacle float64 `yaml:"obstacle" msgpack:"obstacle"`
	Coin     float64 `yaml:"coin" msgpack:"coin"`
}

// HitBox is the axis-aligned proximity box of the obstacle test.
type HitBox struct {
	DX float64 `yaml:"dx" msgpack:"dx"`
	DZ float64 `yaml:"dz" msgpack:"dz"`
	DY float64 `yaml:"dy" msgpack:"dy"`
}

// Depth is near - rand*spread.
type Depth struct {
	Near   float64 `yaml:"near" msgpack:"near"`
	Spread float64 `yaml:"spread" msgpack:"spread"`
}

// Range is min + rand*spread.
type Range struct {
	Min    float64 `yaml:"min" msgpack:"min"`
	Spread float64 `yaml:"spread" msgpack:"spread"`
}

// Tuning holds every gameplay constant.
type Tuning struct {
	Lanes     []float64 `yaml:"lanes" msgpack:"lanes"`
	StartLane int       `yaml:"startLane" msgpack:"startLane"`
	GroundY   float64   `yaml:"groundY" msgpack:"groundY"`

	LaneTweenSpeed float64 `yaml:"laneTweenSpeed" msgpack:"laneTweenSpeed"`
	JumpVelocity   float64 `yaml:"jumpVelocity" msgpack:"jumpVelocity"`
	Gravity        float64 `yaml:"gravity" msgpack:"gravity"`

	InitialSpeed           float64 `yaml:"initialSpeed" msgpack:"initialSpeed"`
	InitialSpawnInterval   int     `yaml:"initialSpawnInterval" msgpack:"initialSpawnInterval"`
	MinSpawnInterval       int     `yaml:"minSpawnInterval" msgpack:"minSpawnInterval"`
	SpawnIntervalDecrement int     `yaml:"spawnIntervalDecrement" msgpack:"spawnIntervalDecrement"`
	MinSpawnPeriod         int     `yaml:"minSpawnPeriod" msgpack:"minSpawnPeriod"`
	SpawnSpeedEpsilon      float64 `yaml:"spawnSpeedEpsilon" msgpack:"spawnSpeedEpsilon"`

	SpawnProbabilities SpawnProbabilities `yaml:"spawnProbabilities" msgpack:"spawnProbabilities"`
	ObstacleDepth      float64            `yaml:"obstacleDepth" msgpack:"obstacleDepth"`
	ObstacleSize       Range              `yaml:"obstacleSize" msgpack:"obstacleSize"`

	CoinDepth  Depth   `yaml:"coinDepth" msgpack:"coinDepth"`
	CoinHeight float64 `yaml:"coinHeight" msgpack:"coinHeight"`
	CoinSpin   float64 `yaml:"coinSpin" msgpack:"coinSpin"`

	MovementScale float64 `yaml:"movementScale" msgpack:"movementScale"`
	DespawnZ      float64 `yaml:"despawnZ" msgpack:"despawnZ"`

	DodgeBonus     float64 `yaml:"dodgeBonus" msgpack:"dodgeBonus"`
	CoinBonus      float64 `yaml:"coinBonus" msgpack:"coinBonus"`
	CoinSpeedBoost float64 `yaml:"coinSpeedBoost" msgpack:"coinSpeedBoost"`
	PickupRadius   float64 `yaml:"pickupRadius" msgpack:"pickupRadius"`
	HitBox         HitBox  `yaml:"hitBox" msgpack:"hitBox"`

	WaveBaseThreshold  float64 `yaml:"waveBaseThreshold" msgpack:"waveBaseThreshold"`
	WaveIncrement      float64 `yaml:"waveIncrement" msgpack:"waveIncrement"`
	WaveSpeedIncrement float64 `yaml:"waveSpeedIncrement" msgpack:"waveSpeedIncrement"`
	DistanceScoreRate  float64 `yaml:"distanceScoreRate" msgpack:"distanceScoreRate"`

	// ScoreCeiling ends the session as won once reached. Zero disables it.
	ScoreCeiling float64 `yaml:"scoreCeiling" msgpack:"scoreCeiling"`
}

// DefaultTuning returns the stock arcade constants.
func DefaultTuning() Tuning {
	return Tuning{
		Lanes:     []float64{-2.2, 0, 2.2},
		StartLane: 1,
		GroundY:   1,

		LaneTweenSpeed: 0.25,
		JumpVelocity:   0.45,
		Gravity:        -0.02,

		InitialSpeed:           0.6,
		InitialSpawnInterval:   30,
		MinSpawnInterval:       30,
		SpawnIntervalDecrement: 6,
		MinSpawnPeriod:         10,
		SpawnSpeedEpsilon:      0.2,

		SpawnProbabilities: SpawnProbabilities{Obstacle: 0.7, Coin: 0.4},
		ObstacleDepth:      -220,
		ObstacleSize:       Range{Min: 0.6, Spread: 0.8},
		CoinDepth:          Depth{Near: -200, Spread: 60},
		CoinHeight:         1.1,
		CoinSpin:           0.12,

		MovementScale: 100,
		DespawnZ:      10,

		DodgeBonus:     2,
		CoinBonus:      50,
		CoinSpeedBoost: 0.01,
		PickupRadius:   1,
		HitBox:         HitBox{DX: 0.9, DZ: 1.2, DY: 0.9},

		WaveBaseThreshold:  500,
		WaveIncrement:      50,
		WaveSpeedIncrement: 0.08,
		DistanceScoreRate:  0.02,
	}
}

// ErrInvalidTuning wraps every tuning validation failure.
var ErrInvalidTuning = errors.New("invalid tuning")

// Validate reports the first inconsistent constant.
func (t *Tuning) Validate() error {
	fail := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalidTuning, fmt.Sprintf(format, args...))
	}

	switch {
	case len(t.Lanes) == 0:
		return fail("at least one lane is required")
	case t.StartLane < 0 || t.StartLane >= len(t.Lanes):
		return fail("startLane %d outside [0, %d]", t.StartLane, len(t.Lanes)-1)
	case t.LaneTweenSpeed <= 0 || t.LaneTweenSpeed > 1:
		return fail("laneTweenSpeed %v outside (0, 1]", t.LaneTweenSpeed)
	case t.Gravity >= 0:
		return fail("gravity %v must be negative", t.Gravity)
	case t.JumpVelocity <= 0:
		return fail("jumpVelocity %v must be positive", t.JumpVelocity)
	case t.InitialSpeed <= 0:
		return fail("initialSpeed %v must be positive", t.InitialSpeed)
	case t.MinSpawnInterval <= 0:
		return fail("minSpawnInterval %d must be positive", t.MinSpawnInterval)
	case t.MinSpawnInterval > t.InitialSpawnInterval:
		return fail("minSpawnInterval %d above initialSpawnInterval %d", t.MinSpawnInterval, t.InitialSpawnInterval)
	case t.SpawnIntervalDecrement < 0:
		return fail("spawnIntervalDecrement %d must not be negative", t.SpawnIntervalDecrement)
	case t.MinSpawnPeriod < 1:
		return fail("minSpawnPeriod %d must be at least 1", t.MinSpawnPeriod)
	case t.SpawnSpeedEpsilon < 0:
		return fail("spawnSpeedEpsilon %v must not be negative", t.SpawnSpeedEpsilon)
	case !isProbability(t.SpawnProbabilities.Obstacle) || !isProbability(t.SpawnProbabilities.Coin):
		return fail("spawn probabilities %+v outside [0, 1]", t.SpawnProbabilities)
	case t.ObstacleSize.Min <= 0 || t.ObstacleSize.Spread < 0:
		return fail("obstacleSize %+v must be positive", t.ObstacleSize)
	case t.CoinDepth.Spread < 0:
		return fail("coinDepth spread %v must not be negative", t.CoinDepth.Spread)
	case t.MovementScale <= 0:
		return fail("movementScale %v must be positive", t.MovementScale)
	case t.DespawnZ <= 0:
		return fail("despawnZ %v must be behind the player", t.DespawnZ)
	case t.PickupRadius <= 0:
		return fail("pickupRadius %v must be positive", t.PickupRadius)
	case t.HitBox.DX <= 0 || t.HitBox.DZ <= 0 || t.HitBox.DY <= 0:
		return fail("hitBox %+v must be positive", t.HitBox)
	case t.WaveBaseThreshold <= 0 || t.WaveIncrement < 0:
		return fail("wave thresholds %v/%v must be positive", t.WaveBaseThreshold, t.WaveIncrement)
	case t.WaveSpeedIncrement < 0 || t.CoinSpeedBoost < 0:
		return fail("speed increments must not be negative")
	case t.DodgeBonus < 0 || t.CoinBonus < 0 || t.DistanceScoreRate < 0:
		return fail("score rewards must not be negative")
	case t.ScoreCeiling < 0:
		return fail("scoreCeiling %v must not be negative", t.ScoreCeiling)
	}
	return nil
}

// LaneX maps a lane index to its world x.
func (t *Tuning) LaneX(lane int) float64 {
	return t.Lanes[lane]
}

// LastLane is the highest valid lane index.
func (t *Tuning) LastLane() int {
	return len(t.Lanes) - 1
}

// WaveThreshold is the score that must be exceeded to leave wave.
func (t *Tuning) WaveThreshold(wave int) float64 {
	w := float64(wave)
	return w * (t.WaveBaseThreshold + w*t.WaveIncrement)
}

func isProbability(p float64) bool {
	return p >= 0 && p <= 1
}
