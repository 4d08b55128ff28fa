// Command sandbox runs the simulation in an Ebiten window with a top-down
// view and the Dear ImGui debug overlay.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/fixedsim/config"
	"github.com/plus3/fixedsim/content"
	"github.com/plus3/fixedsim/ecs/debugui"
	debugui_ebiten "github.com/plus3/fixedsim/ecs/debugui/ebiten"
	"github.com/plus3/fixedsim/sim"
	"go.uber.org/zap"
)

const (
	screenWidth  = 1280
	screenHeight = 720
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// Game implements ebiten.Game. Update measures the real frame time and runs
// one world frame inside the ImGui frame; Draw paints what the renderer
// recorded.
type Game struct {
	world    *sim.World
	renderer *topDownRenderer
	backend  *debugui_ebiten.ImguiBackend
	ui       *debugui.ImguiSystem
	mouse    mouseDrag
	last     time.Time
}

func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	now := time.Now()
	dt := now.Sub(g.last).Seconds()
	g.last = now

	if dx, dy := g.mouse.Delta(&g.ui.InputState); dx != 0 || dy != 0 {
		g.world.MouseMove(dx, dy)
	}

	g.backend.Frame(func() {
		g.world.Frame(dt)
	})
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.world)
	g.backend.Overlay(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.backend.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func run() error {
	configPath := flag.String("config", "", "Path to a TOML config file. Defaults are used when empty.")
	objects := flag.Float64("objects", -1, "Override benchmark.objects_per_second.")
	flag.Parse()

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		return err
	}
	if *objects >= 0 {
		cfg.Benchmark.ObjectsPerSecond = *objects
	}

	log, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer log.Sync()

	manifest, err := content.LoadOrDefault(cfg.Content.Manifest)
	if err != nil {
		return err
	}
	prefabs, err := manifest.BuildPrefabs()
	if err != nil {
		return err
	}

	backend := debugui_ebiten.NewImguiBackend("fixedsim sandbox", screenWidth, screenHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	ui := &debugui.ImguiSystem{}
	renderer := &topDownRenderer{}
	world, err := sim.NewWorld(cfg, prefabs, renderer,
		sim.WithLogger(log),
		sim.WithInput(keyboardInput{capture: &ui.InputState}),
	)
	if err != nil {
		return err
	}

	debugui.SpawnDebugUI(ui, world.Loop(), world.Registry(), worldInspector{world: world}, counters(world))
	world.Loop().AddFrameSystem(ui)

	game := &Game{
		world:    world,
		renderer: renderer,
		backend:  backend,
		ui:       ui,
		last:     time.Now(),
	}

	log.Info("starting sandbox", zap.Int("width", screenWidth), zap.Int("height", screenHeight))
	if err := ebiten.RunGame(game); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}
