package runner

import "github.com/plus3/laneshift/ecs"

// MoveSystem scrolls spawned entities toward the player and retires the ones
// that pass behind it. Passing an obstacle counts as a dodge.
type MoveSystem struct {
	Session ecs.Singleton[Session]
	Tuning  ecs.Singleton[Tuning]
	Events  ecs.Singleton[EventLog]

	Obstacles ecs.Query[obstacleView]
	Coins     ecs.Query[coinView]
}

func (s *MoveSystem) Execute(frame *ecs.UpdateFrame) {
	session := s.Session.Get()
	if !session.Running() {
		return
	}

	t := s.Tuning.Get()
	step := session.Speed * t.MovementScale * frame.DeltaTime

	for id, o := range s.Obstacles.Iter() {
		o.Position.Z += step
		if o.Position.Z <= t.DespawnZ {
			continue
		}
		frame.Commands.Delete(id)
		session.Score += t.DodgeBonus
		session.Dodged++
		s.Events.Get().emit(Event{Kind: EventObstacleDodged, Tick: session.Ticks, Value: t.DodgeBonus})
	}

	for id, c := range s.Coins.Iter() {
		c.Position.Z += step
		c.Coin.Spin += t.CoinSpin
		if c.Position.Z > t.DespawnZ {
			frame.Commands.Delete(id)
		}
	}
}
