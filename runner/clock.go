package runner

import "math"

// Clock turns wall-clock frame time into game ticks.
type Clock interface {
	// Advance calls tick zero or more times for elapsed seconds of real time.
	Advance(elapsed float64, tick func(dt float64)) int
}

// VariableClock runs exactly one tick per frame with the frame's delta.
type VariableClock struct{}

func (VariableClock) Advance(elapsed float64, tick func(dt float64)) int {
	tick(elapsed)
	return 1
}

// FixedClock runs ticks of a constant length, carrying leftover time to the
// next frame. At most MaxSteps ticks run per frame; a larger backlog is
// dropped so a stalled frame cannot cause a burst of catch-up work.
type FixedClock struct {
	Step     float64
	MaxSteps int

	acc float64
}

// NewFixedClock returns a clock ticking rate times per second.
func NewFixedClock(rate float64, maxSteps int) *FixedClock {
	return &FixedClock{Step: 1 / rate, MaxSteps: max(maxSteps, 1)}
}

func (c *FixedClock) Advance(elapsed float64, tick func(dt float64)) int {
	c.acc += max(elapsed, 0)

	steps := 0
	for c.acc >= c.Step && steps < c.MaxSteps {
		tick(c.Step)
		c.acc -= c.Step
		steps++
	}
	if c.acc >= c.Step {
		c.acc = math.Mod(c.acc, c.Step)
	}
	return steps
}

// Pending is the carried-over time not yet simulated.
func (c *FixedClock) Pending() float64 {
	return c.acc
}

// Advance drives d with clock for one frame and returns every event raised.
func Advance(d Driver, clock Clock, elapsed float64) []Event {
	var events []Event
	clock.Advance(elapsed, func(dt float64) {
		events = append(events, d.Tick(dt)...)
	})
	return events
}

// Advance drives the game with clock for one frame.
func (g *Game) Advance(clock Clock, elapsed float64) []Event {
	return Advance(g, clock, elapsed)
}
