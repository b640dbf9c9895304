package runner

// EventKind identifies a gameplay event.
type EventKind int

const (
	EventSessionStarted EventKind = iota
	EventSessionPaused
	EventSessionResumed
	EventSessionEnded
	EventLaneChanged
	EventJumped
	EventLanded
	EventObstacleDodged
	EventCoinCollected
	EventWaveAdvanced
)

var eventNames = [...]string{
	EventSessionStarted: "session-started",
	EventSessionPaused:  "session-paused",
	EventSessionResumed: "session-resumed",
	EventSessionEnded:   "session-ended",
	EventLaneChanged:    "lane-changed",
	EventJumped:         "jumped",
	EventLanded:         "landed",
	EventObstacleDodged: "obstacle-dodged",
	EventCoinCollected:  "coin-collected",
	EventWaveAdvanced:   "wave-advanced",
}

func (k EventKind) String() string {
	if k < 0 || int(k) >= len(eventNames) {
		return "unknown"
	}
	return eventNames[k]
}

// Event is one thing that happened during a tick. Value carries the
// kind-specific payload: the new lane, the points awarded, the new wave or
// the final score.
type Event struct {
	Kind    EventKind
	Tick    uint64
	Value   float64
	Outcome Outcome
}

// EventLog collects events until the game hands them out at the end of a
// tick.
type EventLog struct {
	Events []Event
}

func (l *EventLog) emit(e Event) {
	l.Events = append(l.Events, e)
}

// drain returns the collected events and empties the log.
func (l *EventLog) drain() []Event {
	if len(l.Events) == 0 {
		return nil
	}
	out := make([]Event, len(l.Events))
	copy(out, l.Events)
	l.Events = l.Events[:0]
	return out
}
