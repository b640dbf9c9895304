package runner

// Position is a world-space location. The player sits at Z=0 and the world
// scrolls toward +Z.
type Position struct {
	X, Y, Z float64
}

// Obstacle marks a spawned hazard. Lane records where it was placed; the
// collision test uses Position only.
type Obstacle struct {
	Lane int
	Size float64
}

// Coin marks a spawned pickup. Spin is cosmetic.
type Coin struct {
	Lane int
	Spin float64
}

// Spawned carries the per-session spawn sequence number of an entity.
type Spawned struct {
	Seq uint64
}

// Player is the runner's kinematic state.
type Player struct {
	TargetLane       int
	X, Y, Z          float64
	VerticalVelocity float64
	Airborne         bool
}

// Phase is the session state-machine state.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseRunning
	PhasePaused
	PhaseEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not-started"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseEnded:
		return "ended"
	}
	return "unknown"
}

// Outcome says why a session ended.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeCollided
	OutcomeWon
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeCollided:
		return "collided"
	case OutcomeWon:
		return "won"
	}
	return "unknown"
}

// Session is the session-scoped game state.
type Session struct {
	Phase   Phase
	Outcome Outcome

	Score         float64
	Speed         float64
	SpawnInterval int
	Wave          int

	// Frame counts running ticks for the spawn cadence.
	Frame   uint64
	Ticks   uint64
	Elapsed float64
	NextSeq uint64

	Dodged    int
	Collected int
}

// Running reports whether gameplay systems should act this tick.
func (s *Session) Running() bool {
	return s.Phase == PhaseRunning
}

// Scoreboard is what the HUD shows, refreshed once per tick.
type Scoreboard struct {
	Score int
	Wave  int
	Speed float64
	Best  float64
	// Final is the rounded score shown once the session has ended.
	Final int
}
