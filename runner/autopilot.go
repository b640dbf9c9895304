package runner

import "context"

// Autopilot plays the game for demo mode and soak runs. It leaves lanes with
// an obstacle coming, jumps when no lane is free and drifts toward coins
// otherwise.
type Autopilot struct {
	// Lookahead is how far ahead, in world units, a lane counts as blocked.
	Lookahead float64
	// JumpDistance is how close an unavoidable obstacle gets before jumping.
	JumpDistance float64
	// Clearance is how far behind the player an obstacle still blocks its lane.
	Clearance float64
}

// DefaultAutopilot is tuned for the stock constants at 60 ticks per second.
func DefaultAutopilot() Autopilot {
	return Autopilot{Lookahead: 40, JumpDistance: 12, Clearance: DefaultTuning().HitBox.DZ}
}

// Decide picks the inputs for the current state.
func (a Autopilot) Decide(snap Snapshot) []Input {
	switch snap.Session.Phase {
	case PhaseNotStarted:
		return []Input{InputStart}
	case PhaseRunning:
	default:
		return nil
	}

	lane := snap.Player.TargetLane
	lastLane := len(snap.Lanes) - 1
	nearest := a.nearestObstacle(snap, lane)
	if nearest != nil {
		for _, dir := range []int{-1, 1} {
			next := lane + dir
			if next < 0 || next > lastLane {
				continue
			}
			if a.nearestObstacle(snap, next) == nil {
				return []Input{directionInput(dir)}
			}
		}
		if !snap.Player.Airborne && -nearest.Z < a.JumpDistance {
			return []Input{InputJump}
		}
		return nil
	}

	if coin := a.nearestCoin(snap); coin != nil && coin.Lane != lane {
		dir := 1
		if coin.Lane < lane {
			dir = -1
		}
		if a.nearestObstacle(snap, lane+dir) == nil {
			return []Input{directionInput(dir)}
		}
	}
	return nil
}

// Drive decides and applies inputs to d, returning what it applied.
func (a Autopilot) Drive(d Driver) []Input {
	inputs := a.Decide(d.Snapshot())
	for _, in := range inputs {
		d.Apply(in)
	}
	return inputs
}

// PlaySession restarts an ended session, then drives d at a fixed dt until
// the session ends. It stops early after maxTicks ticks (0 means no limit) or
// when ctx is done, returning ctx.Err() in the latter case.
func (a Autopilot) PlaySession(ctx context.Context, d Driver, dt float64, maxTicks int) (Snapshot, error) {
	if d.Snapshot().Session.Phase == PhaseEnded {
		d.Apply(InputRestart)
	}
	for ticks := 0; maxTicks == 0 || ticks < maxTicks; ticks++ {
		if err := ctx.Err(); err != nil {
			return d.Snapshot(), err
		}
		a.Drive(d)
		d.Tick(dt)
		if d.Snapshot().Session.Phase == PhaseEnded {
			break
		}
	}
	return d.Snapshot(), nil
}

func (a Autopilot) nearestObstacle(snap Snapshot, lane int) *EntitySnapshot {
	var nearest *EntitySnapshot
	for i := range snap.Entities {
		e := &snap.Entities[i]
		if e.Kind != KindObstacle || e.Lane != lane {
			continue
		}
		if e.Z < -a.Lookahead || e.Z > a.Clearance {
			continue
		}
		if nearest == nil || e.Z > nearest.Z {
			nearest = e
		}
	}
	return nearest
}

func (a Autopilot) nearestCoin(snap Snapshot) *EntitySnapshot {
	var nearest *EntitySnapshot
	for i := range snap.Entities {
		e := &snap.Entities[i]
		if e.Kind != KindCoin || e.Z > 0 || e.Z < -a.Lookahead {
			continue
		}
		if nearest == nil || e.Z > nearest.Z {
			nearest = e
		}
	}
	return nearest
}

func directionInput(dir int) Input {
	if dir < 0 {
		return InputLeft
	}
	return InputRight
}
