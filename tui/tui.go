// Package tui is the terminal front-end, built on tcell.
package tui

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/plus3/laneshift/runner"
	"github.com/plus3/laneshift/view"
)

const (
	// FrameInterval is the redraw period, about 60 per second.
	FrameInterval = 16 * time.Millisecond
	maxFrame      = 0.25
	// cellAspect is how much taller a terminal cell is than it is wide.
	cellAspect = 2.0
)

// Sound reacts to game events. *audio.Player implements it.
type Sound interface {
	HandleEvents([]runner.Event)
	ToggleMusic() bool
}

type silence struct{}

func (silence) HandleEvents([]runner.Event) {}
func (silence) ToggleMusic() bool           { return false }

// Options configures the terminal front-end.
type Options struct {
	Clock  runner.Clock
	Pilot  *runner.Autopilot
	Sound  Sound
	Logger *slog.Logger
}

var (
	groundStyle   = tcell.StyleDefault.Foreground(tcell.ColorDarkSlateGray)
	laneStyle     = tcell.StyleDefault.Foreground(tcell.ColorSlateGray)
	obstacleStyle = tcell.StyleDefault.Foreground(tcell.ColorRed)
	coinStyle     = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	playerStyle   = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	hudStyle      = tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true)
	bannerStyle   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
)

// App draws a runner.Driver onto a tcell screen.
type App struct {
	screen tcell.Screen
	driver runner.Driver
	clock  runner.Clock
	pilot  *runner.Autopilot
	sound  Sound
	logger *slog.Logger

	snap runner.Snapshot
}

// New wraps an initialised screen. The caller owns the screen and calls Fini.
func New(screen tcell.Screen, driver runner.Driver, opts Options) *App {
	a := &App{
		screen: screen,
		driver: driver,
		clock:  opts.Clock,
		pilot:  opts.Pilot,
		sound:  opts.Sound,
		logger: opts.Logger,
	}
	if a.clock == nil {
		a.clock = runner.VariableClock{}
	}
	if a.sound == nil {
		a.sound = silence{}
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	a.snap = driver.Snapshot()
	return a
}

// Run redraws every FrameInterval until the player quits or ctx is done.
func (a *App) Run(ctx context.Context) error {
	ticker := time.NewTicker(FrameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	last := time.Now()
	a.draw()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !a.handle(ev) {
				return nil
			}
		case now := <-ticker.C:
			dt := math.Min(now.Sub(last).Seconds(), maxFrame)
			last = now
			a.step(dt)
			a.draw()
		}
	}
}

// handle applies one terminal event and reports whether to keep running.
func (a *App) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		act, in := keyAction(ev, a.snap.Session.Phase)
		switch act {
		case actionQuit:
			return false
		case actionMusic:
			a.logger.Debug("music", "playing", a.sound.ToggleMusic())
		case actionInput:
			if a.pilot == nil {
				a.driver.Apply(in)
				a.snap = a.driver.Snapshot()
			}
		}
	case *tcell.EventResize:
		a.screen.Sync()
	}
	return true
}

func (a *App) step(dt float64) {
	if a.pilot != nil {
		a.pilot.Drive(a.driver)
		if a.snap.Session.Phase == runner.PhaseEnded {
			a.driver.Apply(runner.InputRestart)
		}
	}
	events := runner.Advance(a.driver, a.clock, dt)
	a.sound.HandleEvents(events)
	for _, e := range events {
		if e.Kind == runner.EventSessionEnded {
			a.logger.Info("run over", "score", e.Value, "outcome", e.Outcome)
		}
	}
	a.snap = a.driver.Snapshot()
}

func (a *App) projector() view.Projector {
	w, h := a.screen.Size()
	p := view.NewProjector(view.DefaultCamera(), float64(w), float64(h))
	p.Aspect = cellAspect
	return p
}

func (a *App) draw() {
	a.screen.Clear()
	w, h := a.screen.Size()
	p := a.projector()

	for y := int(p.Height * p.Horizon); y < h; y++ {
		for x := range w {
			a.screen.SetContent(x, y, '.', nil, groundStyle)
		}
	}
	for _, s := range view.LaneLines(a.snap.Lanes, p) {
		a.line(s)
	}
	for _, s := range view.Scene(a.snap, p) {
		a.sprite(s)
	}

	a.print(0, 0, padRight(" "+view.HUD(a.snap.Scoreboard), w), hudStyle)
	if title, hint := view.Banner(a.snap); title != "" {
		a.print((w-len(title))/2, h/2-1, title, bannerStyle)
		a.print((w-len(hint))/2, h/2+1, hint, bannerStyle)
	}
	a.screen.Show()
}

func (a *App) line(s view.Segment) {
	steps := int(math.Max(math.Abs(s.X1-s.X0), math.Abs(s.Y1-s.Y0)))
	for i := 0; i <= steps; i++ {
		t := 0.0
		if steps > 0 {
			t = float64(i) / float64(steps)
		}
		x := int(math.Round(s.X0 + (s.X1-s.X0)*t))
		y := int(math.Round(s.Y0 + (s.Y1-s.Y0)*t))
		a.screen.SetContent(x, y, '|', nil, laneStyle)
	}
}

func (a *App) sprite(s view.Sprite) {
	halfH := math.Max(s.Size/2, 0.5)
	halfW := math.Max(s.Size*cellAspect/2, 0.5)

	var glyph rune
	var style tcell.Style
	switch s.Kind {
	case view.SpriteObstacle:
		glyph, style = '█', obstacleStyle
	case view.SpriteCoin:
		glyph, style = coinGlyph(s.Spin), coinStyle
		halfW *= math.Max(math.Abs(math.Cos(s.Spin)), 0.3)
	case view.SpritePlayer:
		glyph, style = '▲', playerStyle
	}

	x0, x1 := int(math.Round(s.X-halfW)), int(math.Round(s.X+halfW))
	y0, y1 := int(math.Round(s.Y-halfH)), int(math.Round(s.Y+halfH))
	x1, y1 = max(x1, x0+1), max(y1, y0+1)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			a.screen.SetContent(x, y, glyph, nil, style)
		}
	}
}

// coinGlyph fakes the coin's rotation.
func coinGlyph(spin float64) rune {
	c := math.Abs(math.Cos(spin))
	switch {
	case c > 0.7:
		return 'O'
	case c > 0.3:
		return 'o'
	}
	return '|'
}

func (a *App) print(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		a.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func padRight(s string, width int) string {
	for len(s) < width {
		s += " "
	}
	return s
}
