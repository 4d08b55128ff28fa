package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/fixedsim/ecs/debugui"
	"github.com/plus3/fixedsim/sim"
)

var keyMap = map[sim.Key]ebiten.Key{
	sim.KeyW: ebiten.KeyW,
	sim.KeyA: ebiten.KeyA,
	sim.KeyS: ebiten.KeyS,
	sim.KeyD: ebiten.KeyD,
	sim.KeyL: ebiten.KeyL,
	sim.KeyB: ebiten.KeyB,
}

// keyboardInput reads the simulation keys from Ebiten unless the overlay is
// capturing the keyboard.
type keyboardInput struct {
	capture *debugui.ImguiInputState
}

func (k keyboardInput) Pressed(key sim.Key) bool {
	if k.capture != nil && k.capture.WantCaptureKeyboard {
		return false
	}
	ek, ok := keyMap[key]
	return ok && ebiten.IsKeyPressed(ek)
}

// mouseDrag turns right-button drags into look deltas.
type mouseDrag struct {
	dragging bool
	lastX    int
	lastY    int
}

// Delta returns the cursor movement since the previous call while the right
// button is held.
func (m *mouseDrag) Delta(capture *debugui.ImguiInputState) (dx, dy float64) {
	mx, my := ebiten.CursorPosition()
	held := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) && !capture.WantCaptureMouse

	if held && m.dragging {
		dx = float64(mx - m.lastX)
		dy = float64(my - m.lastY)
	}
	m.dragging = held
	m.lastX, m.lastY = mx, my
	return dx, dy
}
