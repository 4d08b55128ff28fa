// Package debugui provides immediate-mode GUI windows for inspecting a running
// simulation using Dear ImGui.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/fixedsim/ecs"
)

// ImguiItem holds a Dear ImGui render function run once per frame.
type ImguiItem struct {
	Render func()
}

// ImguiInputState tracks whether Dear ImGui is consuming mouse or keyboard
// input. Hosts check it before forwarding input to the simulation.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem is a frame system that refreshes the input capture state and
// runs every registered item. It must execute between the backend's
// BeginFrame and EndFrame.
type ImguiSystem struct {
	Items      []ImguiItem
	InputState ImguiInputState

	deltaTime float32
}

// Add registers a render function.
func (i *ImguiSystem) Add(render func()) {
	i.Items = append(i.Items, ImguiItem{Render: render})
}

// Execute updates input state and runs all ImGui render functions.
func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	i.InputState.WantCaptureMouse = imgui.CurrentIO().WantCaptureMouse()
	i.InputState.WantCaptureKeyboard = imgui.CurrentIO().WantCaptureKeyboard()
	i.deltaTime = float32(frame.DeltaTime)

	for _, item := range i.Items {
		item.Render()
	}
}

// DeltaTime returns the frame time seen by the last Execute, in seconds.
func (i *ImguiSystem) DeltaTime() float32 {
	return i.deltaTime
}
