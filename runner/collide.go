package runner

import (
	"cmp"
	"math"

	"github.com/plus3/laneshift/ecs"
)

// CollisionSystem tests the player against every obstacle, newest first, and
// then against every coin. An obstacle hit ends the session before any coin
// is considered.
type CollisionSystem struct {
	Session ecs.Singleton[Session]
	Player  ecs.Singleton[Player]
	Tuning  ecs.Singleton[Tuning]
	Events  ecs.Singleton[EventLog]

	Obstacles ecs.Query[obstacleView]
	Coins     ecs.Query[coinView]
}

type obstacleView struct {
	*Position
	*Obstacle
	*Spawned
}

type coinView struct {
	*Position
	*Coin
	*Spawned
}

func (s *CollisionSystem) Execute(frame *ecs.UpdateFrame) {
	session := s.Session.Get()
	if !session.Running() {
		return
	}

	player := s.Player.Get()
	t := s.Tuning.Get()
	events := s.Events.Get()

	s.Obstacles.SortFunc(func(a, b obstacleView) int {
		return cmp.Compare(a.Spawned.Seq, b.Spawned.Seq)
	})

	for _, o := range s.Obstacles.Backward() {
		if hitsObstacle(player, o.Position, &t.HitBox) {
			endSession(session, events, OutcomeCollided)
			return
		}
	}

	for id, c := range s.Coins.Iter() {
		if !touchesCoin(player, c.Position, t.PickupRadius) {
			continue
		}
		frame.Commands.Delete(id)
		session.Score += t.CoinBonus
		session.Speed += t.CoinSpeedBoost
		session.Collected++
		events.emit(Event{Kind: EventCoinCollected, Tick: session.Ticks, Value: t.CoinBonus})
	}
}

// hitsObstacle is the box-proximity test. The vertical test is one sided: a
// player high enough above the obstacle clears it.
func hitsObstacle(p *Player, o *Position, box *HitBox) bool {
	return math.Abs(p.Z-o.Z) < box.DZ &&
		math.Abs(p.X-o.X) < box.DX &&
		p.Y < o.Y+box.DY
}

func touchesCoin(p *Player, c *Position, radius float64) bool {
	dx, dy, dz := p.X-c.X, p.Y-c.Y, p.Z-c.Z
	return math.Sqrt(dx*dx+dy*dy+dz*dz) < radius
}

func endSession(session *Session, events *EventLog, outcome Outcome) {
	session.Phase = PhaseEnded
	session.Outcome = outcome
	events.emit(Event{Kind: EventSessionEnded, Tick: session.Ticks, Value: session.Score, Outcome: outcome})
}
