package tui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/plus3/laneshift/runner"
)

type action int

const (
	actionNone action = iota
	actionInput
	actionMusic
	actionQuit
)

// keyAction maps a key press. Space on the title screen starts the session.
func keyAction(ev *tcell.EventKey, phase runner.Phase) (action, runner.Input) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return actionQuit, 0
	case tcell.KeyLeft:
		return actionInput, runner.InputLeft
	case tcell.KeyRight:
		return actionInput, runner.InputRight
	case tcell.KeyUp:
		return actionInput, runner.InputJump
	case tcell.KeyRune:
	default:
		return actionNone, 0
	}

	switch ev.Rune() {
	case 'q', 'Q':
		return actionQuit, 0
	case 'a', 'A':
		return actionInput, runner.InputLeft
	case 'd', 'D':
		return actionInput, runner.InputRight
	case ' ':
		if phase == runner.PhaseNotStarted {
			return actionInput, runner.InputStart
		}
		return actionInput, runner.InputJump
	case 'w', 'W':
		return actionInput, runner.InputJump
	case 'p', 'P':
		return actionInput, runner.InputPause
	case 'r', 'R':
		return actionInput, runner.InputRestart
	case 'm', 'M':
		return actionMusic, 0
	}
	return actionNone, 0
}
