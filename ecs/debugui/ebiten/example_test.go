package ebiten_test

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/fixedsim/ecs"
	"github.com/plus3/fixedsim/ecs/debugui"
	debugui_ebiten "github.com/plus3/fixedsim/ecs/debugui/ebiten"
)

// Game implements ebiten.Game and runs a loop whose frame systems include
// the ImGui overlay.
type Game struct {
	loop  *ecs.Loop
	imgui *debugui_ebiten.ImguiBackend
}

func (g *Game) Update() error {
	g.imgui.Frame(func() {
		g.loop.Frame(1.0 / 60.0)
	})
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	// Draw game content to screen first.
	g.imgui.Overlay(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.imgui.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func Example() {
	backend := debugui_ebiten.NewImguiBackend("Loop ImGui Example", 1280, 720)

	ui := &debugui.ImguiSystem{}
	ui.Add(func() {
		imgui.Begin("Debug Window")
		imgui.Text("Hello from the loop!")
		imgui.End()
	})

	loop := ecs.NewLoop(1.0 / 60.0)
	loop.AddFrameSystem(ui)

	game := &Game{loop: loop, imgui: backend}
	if err := ebiten.RunGame(game); err != nil {
		panic(err)
	}
}
