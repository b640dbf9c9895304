// Package debugui draws Dear ImGui debug panels for an ECS world. The panels
// live as entities in a small overlay world of their own and inspect the
// target world read-only.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/laneshift/ecs"
)

// ImguiItem is a component that holds a Dear ImGui render function. It is
// called with the overlay's frame time.
type ImguiItem struct {
	Render func(dt float64)
}

// ImguiInputState tracks whether ImGui wants the mouse or keyboard this
// frame. Front-ends should not treat captured input as game input.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Visibility toggles the whole overlay.
type Visibility struct {
	Shown bool
}

// ImguiSystem queues every ImguiItem's render function while the overlay is
// shown and refreshes ImguiInputState.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]
	Visibility ecs.Singleton[Visibility]
}

func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	state := i.InputState.Get()
	if !i.Visibility.Get().Shown {
		*state = ImguiInputState{}
		return
	}

	state.WantCaptureMouse = imgui.CurrentIO().WantCaptureMouse()
	state.WantCaptureKeyboard = imgui.CurrentIO().WantCaptureKeyboard()

	dt := frame.DeltaTime
	for item := range i.Items.Values() {
		render := item.Render
		frame.Commands.Defer(func() { render(dt) })
	}
}
