// Package ebiten runs the debug overlay inside an Ebiten game loop.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/laneshift/ecs"
	"github.com/plus3/laneshift/ecs/debugui"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// NewImguiBackend creates the backend and sizes the Ebiten window. ImGui's
// ini persistence is disabled.
func NewImguiBackend(title string, width, height int) ImguiBackend {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")
	return ImguiBackend{EbitenBackend: backend}
}

// Overlay is a self-contained overlay world: panel entities, the ImGui
// system and the backend singleton.
type Overlay struct {
	storage    *ecs.Storage
	scheduler  *ecs.Scheduler
	backend    *ecs.Singleton[ImguiBackend]
	visibility *ecs.Singleton[debugui.Visibility]
	input      *ecs.Singleton[debugui.ImguiInputState]
}

// NewOverlay builds the standard panels for target.
func NewOverlay(backend ImguiBackend, target debugui.Target) *Overlay {
	registry := ecs.NewComponentRegistry()
	debugui.RegisterDebugUIComponents(registry)
	storage := ecs.NewStorage(registry)

	debugui.SpawnDebugUI(storage, target)

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&debugui.ImguiSystem{})

	return &Overlay{
		storage:    storage,
		scheduler:  scheduler,
		backend:    ecs.NewSingleton(storage, backend),
		visibility: ecs.NewSingleton[debugui.Visibility](storage),
		input:      ecs.NewSingleton[debugui.ImguiInputState](storage),
	}
}

// Toggle shows or hides the overlay and reports the new state.
func (o *Overlay) Toggle() bool {
	v := o.visibility.Get()
	v.Shown = !v.Shown
	return v.Shown
}

// Shown reports whether the overlay is drawn.
func (o *Overlay) Shown() bool {
	return o.visibility.Get().Shown
}

// Update builds one ImGui frame. Call it from ebiten.Game.Update.
func (o *Overlay) Update(dt float64) {
	backend := o.backend.Get()
	backend.BeginFrame()
	o.scheduler.Once(dt)
	backend.EndFrame()
}

// Draw paints the overlay on top of screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	o.backend.Get().Draw(screen)
}

// Layout forwards the outside size to the backend.
func (o *Overlay) Layout(outsideWidth, outsideHeight int) {
	o.backend.Get().Layout(outsideWidth, outsideHeight)
}

// CapturesInput reports whether ImGui wants the mouse or keyboard.
func (o *Overlay) CapturesInput() (mouse, keyboard bool) {
	state := o.input.Get()
	return state.WantCaptureMouse, state.WantCaptureKeyboard
}
