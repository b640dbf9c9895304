package runner

import "github.com/plus3/laneshift/ecs"

// DifficultySystem adds the distance trickle and escalates waves. It also
// ends the session as won once a configured score ceiling is reached.
type DifficultySystem struct {
	Session ecs.Singleton[Session]
	Tuning  ecs.Singleton[Tuning]
	Events  ecs.Singleton[EventLog]
}

func (s *DifficultySystem) Execute(frame *ecs.UpdateFrame) {
	session := s.Session.Get()
	if !session.Running() {
		return
	}

	t := s.Tuning.Get()
	events := s.Events.Get()

	session.Score += t.DistanceScoreRate * session.Speed

	if session.Score > t.WaveThreshold(session.Wave) {
		session.Wave++
		session.Speed += t.WaveSpeedIncrement
		session.SpawnInterval = max(t.MinSpawnInterval, session.SpawnInterval-t.SpawnIntervalDecrement)
		events.emit(Event{Kind: EventWaveAdvanced, Tick: session.Ticks, Value: float64(session.Wave)})
	}

	if t.ScoreCeiling > 0 && session.Score >= t.ScoreCeiling {
		endSession(session, events, OutcomeWon)
	}
}
