// Package gui is the windowed front-end, built on Ebiten.
package gui

import (
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	debugui_ebiten "github.com/plus3/laneshift/ecs/debugui/ebiten"
	"github.com/plus3/laneshift/runner"
	"github.com/plus3/laneshift/view"
)

// maxFrame caps the time one Update may integrate, so a stalled window does
// not teleport the world.
const maxFrame = 0.25

// demoRestartDelay is how long demo mode lingers on the game-over screen.
const demoRestartDelay = 2.0

// Sound reacts to game events. *audio.Player implements it.
type Sound interface {
	HandleEvents([]runner.Event)
	ToggleMusic() bool
}

type silence struct{}

func (silence) HandleEvents([]runner.Event) {}
func (silence) ToggleMusic() bool           { return false }

// Options configures the window.
type Options struct {
	Title         string
	Width, Height int
	PlayerSprite  string
	Clock         runner.Clock
	// Pilot, if set, plays the game instead of the keyboard.
	Pilot *runner.Autopilot
	// Overlay, if set, is toggled with F1.
	Overlay *debugui_ebiten.Overlay
	Sound   Sound
	Logger  *slog.Logger
}

// App implements ebiten.Game around a runner.Driver.
type App struct {
	driver  runner.Driver
	opts    Options
	logger  *slog.Logger
	sound   Sound
	clock   runner.Clock
	overlay *debugui_ebiten.Overlay

	proj    view.Projector
	painter painter
	swipes  swipes
	snap    runner.Snapshot

	last     time.Time
	endedFor float64
	touches  []ebiten.TouchID
}

// New prepares the window front-end. The sprite is loaded here so a missing
// file is reported before the window opens.
func New(driver runner.Driver, opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	sound := opts.Sound
	if sound == nil {
		sound = silence{}
	}
	clock := opts.Clock
	if clock == nil {
		clock = runner.VariableClock{}
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 480, 720
	}

	return &App{
		driver:  driver,
		opts:    opts,
		logger:  logger,
		sound:   sound,
		clock:   clock,
		overlay: opts.Overlay,
		proj:    view.NewProjector(view.DefaultCamera(), float64(opts.Width), float64(opts.Height)),
		painter: painter{sprite: loadSprite(opts.PlayerSprite, logger)},
		snap:    driver.Snapshot(),
	}
}

// Run opens the window and blocks until it is closed.
func (a *App) Run() error {
	if a.overlay == nil {
		ebiten.SetWindowSize(a.opts.Width, a.opts.Height)
		ebiten.SetWindowTitle(a.opts.Title)
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(a)
}

func (a *App) elapsed() float64 {
	now := time.Now()
	if a.last.IsZero() {
		a.last = now
		return 1 / float64(ebiten.TPS())
	}
	dt := now.Sub(a.last).Seconds()
	a.last = now
	return min(dt, maxFrame)
}

func (a *App) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyQ) || ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	dt := a.elapsed()

	if inpututil.IsKeyJustPressed(ebiten.KeyF1) && a.overlay != nil {
		shown := a.overlay.Toggle()
		a.logger.Debug("debug overlay", "shown", shown)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		a.logger.Debug("music", "playing", a.sound.ToggleMusic())
	}

	mouse, keyboard := false, false
	if a.overlay != nil {
		mouse, keyboard = a.overlay.CapturesInput()
	}

	phase := a.snap.Session.Phase
	if a.opts.Pilot != nil {
		a.autoplay(dt, phase)
	} else {
		if !keyboard {
			for _, in := range keyInputs(inpututil.IsKeyJustPressed, phase) {
				a.driver.Apply(in)
			}
		}
		if !mouse {
			a.pointers(phase)
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

	if a.overlay != nil {
		a.overlay.Update(dt)
	}
	return nil
}

func (a *App) autoplay(dt float64, phase runner.Phase) {
	if phase != runner.PhaseEnded {
		a.endedFor = 0
		a.opts.Pilot.Drive(a.driver)
		return
	}
	a.endedFor += dt
	if a.endedFor >= demoRestartDelay {
		a.endedFor = 0
		a.driver.Apply(runner.InputRestart)
	}
}

func (a *App) pointers(phase runner.Phase) {
	a.touches = inpututil.AppendJustPressedTouchIDs(a.touches[:0])
	for _, id := range a.touches {
		x, y := ebiten.TouchPosition(id)
		a.swipes.begin(int(id), x, y)
	}
	a.touches = inpututil.AppendJustReleasedTouchIDs(a.touches[:0])
	for _, id := range a.touches {
		x, y := inpututil.TouchPositionInPreviousTick(id)
		a.release(int(id), x, y, phase)
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		a.swipes.begin(mousePointer, x, y)
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		a.release(mousePointer, x, y, phase)
	}
}

func (a *App) release(id, x, y int, phase runner.Phase) {
	dx, dy, ok := a.swipes.end(id, x, y)
	if !ok {
		return
	}
	if in, ok := pointerInput(dx, dy, phase); ok {
		a.driver.Apply(in)
	}
}

func (a *App) Draw(screen *ebiten.Image) {
	a.painter.background(screen, a.proj)
	a.painter.lanes(screen, view.LaneLines(a.snap.Lanes, a.proj))
	for _, s := range view.Scene(a.snap, a.proj) {
		a.painter.draw(screen, s)
	}
	title, hint := view.Banner(a.snap)
	a.painter.text(screen, a.proj, view.HUD(a.snap.Scoreboard), title, hint)

	if a.overlay != nil {
		a.overlay.Draw(screen)
	}
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if float64(outsideWidth) != a.proj.Width || float64(outsideHeight) != a.proj.Height {
		a.proj = view.NewProjector(a.proj.Camera, float64(outsideWidth), float64(outsideHeight))
	}
	if a.overlay != nil {
		a.overlay.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
