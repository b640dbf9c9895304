package view

import (
	"math"

	"github.com/plus3/laneshift/runner"
)

// SwipeThreshold is the shortest drag, in pixels, that counts as a swipe.
const SwipeThreshold = 30

// ClassifySwipe maps a drag along its dominant axis to an input: sideways
// changes lane and upward jumps. Short and downward drags map to nothing.
func ClassifySwipe(dx, dy float64) (runner.Input, bool) {
	if math.Abs(dx) >= math.Abs(dy) {
		switch {
		case dx > SwipeThreshold:
			return runner.InputRight, true
		case dx < -SwipeThreshold:
			return runner.InputLeft, true
		}
		return 0, false
	}
	if dy < -SwipeThreshold {
		return runner.InputJump, true
	}
	return 0, false
}
