package gui

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/laneshift/runner"
	"github.com/plus3/laneshift/view"
)

type keyBinding struct {
	keys  []ebiten.Key
	input runner.Input
}

var bindings = []keyBinding{
	{[]ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}, runner.InputLeft},
	{[]ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}, runner.InputRight},
	{[]ebiten.Key{ebiten.KeySpace, ebiten.KeyArrowUp, ebiten.KeyW}, runner.InputJump},
	{[]ebiten.Key{ebiten.KeyP}, runner.InputPause},
	{[]ebiten.Key{ebiten.KeyR}, runner.InputRestart},
}

// keyInputs maps this frame's key presses to inputs. Space on the title
// screen starts the session and nothing else.
func keyInputs(pressed func(ebiten.Key) bool, phase runner.Phase) []runner.Input {
	if phase == runner.PhaseNotStarted && pressed(ebiten.KeySpace) {
		return []runner.Input{runner.InputStart}
	}

	var inputs []runner.Input
	for _, b := range bindings {
		if slices.ContainsFunc(b.keys, pressed) {
			inputs = append(inputs, b.input)
		}
	}
	return inputs
}

// pointerInput maps a finished drag to an input. A drag too short to be a
// swipe is a tap, which starts or restarts a session.
func pointerInput(dx, dy float64, phase runner.Phase) (runner.Input, bool) {
	if in, ok := view.ClassifySwipe(dx, dy); ok {
		return in, true
	}
	if dx*dx+dy*dy > view.SwipeThreshold*view.SwipeThreshold {
		return 0, false
	}
	switch phase {
	case runner.PhaseNotStarted:
		return runner.InputStart, true
	case runner.PhaseEnded:
		return runner.InputRestart, true
	}
	return 0, false
}

// mousePointer keys the mouse alongside touch IDs.
const mousePointer = -1

type point struct{ x, y int }

// swipes remembers where each touch or mouse drag began.
type swipes struct {
	starts map[int]point
}

func (s *swipes) begin(id, x, y int) {
	if s.starts == nil {
		s.starts = make(map[int]point)
	}
	s.starts[id] = point{x, y}
}

// end returns the drag vector for id, or false if it never began.
func (s *swipes) end(id, x, y int) (dx, dy float64, ok bool) {
	start, ok := s.starts[id]
	if !ok {
		return 0, 0, false
	}
	delete(s.starts, id)
	return float64(x - start.x), float64(y - start.y), true
}
