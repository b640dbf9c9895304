package runner

import (
	"math"

	"github.com/plus3/laneshift/ecs"
)

// ScoreboardSystem refreshes the HUD figures. It runs in every phase so a
// paused or finished session still shows its last state. Best only takes a
// session's score once it has ended, the same moment it is submitted to the
// ScoreKeeper.
type ScoreboardSystem struct {
	Session    ecs.Singleton[Session]
	Scoreboard ecs.Singleton[Scoreboard]
}

func (s *ScoreboardSystem) Execute(frame *ecs.UpdateFrame) {
	session := s.Session.Get()
	board := s.Scoreboard.Get()

	board.Score = int(math.Floor(session.Score))
	board.Wave = session.Wave
	board.Speed = session.Speed
	if session.Phase == PhaseEnded {
		board.Best = max(board.Best, session.Score)
		board.Final = int(math.Round(session.Score))
	} else {
		board.Final = 0
	}
}
