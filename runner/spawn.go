package runner

import (
	"math"

	"github.com/plus3/laneshift/ecs"
)

// Rand is the randomness the spawner draws from. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// SpawnSystem periodically places obstacles and coins ahead of the player.
// Draw order per attempt is fixed: obstacle roll, lane, size, then coin roll,
// lane, depth.
type SpawnSystem struct {
	Session ecs.Singleton[Session]
	Tuning  ecs.Singleton[Tuning]

	Rand Rand
}

func (s *SpawnSystem) Execute(frame *ecs.UpdateFrame) {
	session := s.Session.Get()
	if !session.Running() {
		return
	}

	t := s.Tuning.Get()
	session.Frame++
	if session.Frame%uint64(SpawnPeriod(t, session.SpawnInterval, session.Speed)) != 0 {
		return
	}

	if s.Rand.Float64() < t.SpawnProbabilities.Obstacle {
		lane := s.Rand.IntN(len(t.Lanes))
		size := t.ObstacleSize.Min + s.Rand.Float64()*t.ObstacleSize.Spread
		frame.Commands.Spawn(
			Position{X: t.LaneX(lane), Y: size / 2, Z: t.ObstacleDepth},
			Obstacle{Lane: lane, Size: size},
			Spawned{Seq: session.nextSeq()},
		)
	}

	if s.Rand.Float64() < t.SpawnProbabilities.Coin {
		lane := s.Rand.IntN(len(t.Lanes))
		z := t.CoinDepth.Near - s.Rand.Float64()*t.CoinDepth.Spread
		frame.Commands.Spawn(
			Position{X: t.LaneX(lane), Y: t.CoinHeight, Z: z},
			Coin{Lane: lane},
			Spawned{Seq: session.nextSeq()},
		)
	}
}

// SpawnPeriod is the number of running frames between spawn attempts at the
// given interval and speed.
func SpawnPeriod(t *Tuning, interval int, speed float64) int {
	period := int(math.Floor(float64(interval) / (speed + t.SpawnSpeedEpsilon)))
	return max(t.MinSpawnPeriod, period)
}

func (s *Session) nextSeq() uint64 {
	s.NextSeq++
	return s.NextSeq
}
