package runner

// Input is one player command. Front-ends translate keys and gestures into
// inputs; replays record them.
type Input uint8

const (
	InputLeft Input = iota + 1
	InputRight
	InputJump
	InputStart
	InputRestart
	InputPause
)

func (in Input) String() string {
	switch in {
	case InputLeft:
		return "left"
	case InputRight:
		return "right"
	case InputJump:
		return "jump"
	case InputStart:
		return "start"
	case InputRestart:
		return "restart"
	case InputPause:
		return "pause"
	}
	return "unknown"
}

// Driver is what front-ends play through: a Game, or a wrapper around one
// such as a replay recorder.
type Driver interface {
	Apply(in Input) bool
	Tick(dt float64) []Event
	Snapshot() Snapshot
}

// Apply dispatches in to the matching game operation and reports whether it
// changed anything.
func (g *Game) Apply(in Input) bool {
	switch in {
	case InputLeft:
		changed, _ := g.ChangeLane(-1)
		return changed
	case InputRight:
		changed, _ := g.ChangeLane(1)
		return changed
	case InputJump:
		return g.Jump()
	case InputStart:
		return g.Start()
	case InputRestart:
		g.Restart()
		return true
	case InputPause:
		return g.TogglePause()
	}
	return false
}
