package runner

import "github.com/plus3/laneshift/ecs"

// PlayerSystem eases the player toward its target lane and integrates the
// jump arc.
type PlayerSystem struct {
	Session ecs.Singleton[Session]
	Player  ecs.Singleton[Player]
	Tuning  ecs.Singleton[Tuning]
	Events  ecs.Singleton[EventLog]
}

func (s *PlayerSystem) Execute(frame *ecs.UpdateFrame) {
	session := s.Session.Get()
	if !session.Running() {
		return
	}

	player := s.Player.Get()
	if stepPlayer(player, s.Tuning.Get()) {
		s.Events.Get().emit(Event{Kind: EventLanded, Tick: session.Ticks})
	}
}

// newPlayer places the player on the ground in the start lane.
func newPlayer(t *Tuning) Player {
	return Player{
		TargetLane: t.StartLane,
		X:          t.LaneX(t.StartLane),
		Y:          t.GroundY,
	}
}

// stepPlayer advances the player by one tick and reports whether it landed.
func stepPlayer(p *Player, t *Tuning) bool {
	p.X += (t.LaneX(p.TargetLane) - p.X) * t.LaneTweenSpeed

	if !p.Airborne {
		return false
	}

	p.Y += p.VerticalVelocity
	p.VerticalVelocity += t.Gravity
	if p.Y > t.GroundY {
		return false
	}

	p.Y = t.GroundY
	p.VerticalVelocity = 0
	p.Airborne = false
	return true
}

// shiftLane moves the target lane one step, clamped to the corridor. It
// returns false when the player is already at the edge.
func shiftLane(p *Player, t *Tuning, direction int) bool {
	lane := min(max(p.TargetLane+direction, 0), t.LastLane())
	if lane == p.TargetLane {
		return false
	}
	p.TargetLane = lane
	return true
}

// jump starts a jump unless one is already in flight.
func jump(p *Player, t *Tuning) bool {
	if p.Airborne {
		return false
	}
	p.Airborne = true
	p.VerticalVelocity = t.JumpVelocity
	return true
}
