package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/fixedsim/sim"
)

// Pixels per world unit.
const pixelsPerUnit = 3

var prefabColors = map[string]color.RGBA{
	sim.PrefabGround:   {60, 70, 60, 255},
	sim.PrefabTestObj:  {179, 229, 252, 255},
	sim.PrefabTestObj2: {255, 179, 186, 255},
}

type rect struct {
	x, z, w, d float32
	c          color.RGBA
}

// topDownRenderer records the batches handed over during Update as
// rectangles on the XZ plane and paints them in Draw.
type topDownRenderer struct {
	rects     []rect
	camera    sim.Camera
	particles []sim.Collapsed
	bloom     bool
}

func (r *topDownRenderer) Render(frame *sim.RenderFrame) {
	r.rects = r.rects[:0]
	r.camera = frame.Camera
	r.bloom = frame.Toggle("bloom")

	for _, batch := range frame.Batches {
		c, ok := prefabColors[batch.Prefab.Name]
		if !ok {
			c = color.RGBA{200, 200, 200, 255}
		}
		size := batch.Prefab.Bounds.Max.Sub(batch.Prefab.Bounds.Min)
		for _, inst := range batch.Instances {
			w, d := size.X()*inst.Scale, size.Z()*inst.Scale
			r.rects = append(r.rects, rect{
				x: inst.Position.X() - w/2,
				z: inst.Position.Z() - d/2,
				w: w,
				d: d,
				c: c,
			})
		}
	}
}

// toScreen maps a world XZ position to screen pixels with the camera at the
// center.
func (r *topDownRenderer) toScreen(screen *ebiten.Image, x, z float32) (float32, float32) {
	b := screen.Bounds()
	cx, cz := r.camera.Position.X(), r.camera.Position.Z()
	return float32(b.Dx())/2 + (x-cx)*pixelsPerUnit, float32(b.Dy())/2 - (z-cz)*pixelsPerUnit
}

func (r *topDownRenderer) Draw(screen *ebiten.Image, world *sim.World) {
	screen.Fill(color.RGBA{20, 20, 24, 255})

	for _, rc := range r.rects {
		sx, sy := r.toScreen(screen, rc.x, rc.z+rc.d)
		vector.DrawFilledRect(screen, sx, sy, rc.w*pixelsPerUnit, rc.d*pixelsPerUnit, rc.c, false)
	}

	particleColor := color.RGBA{255, 223, 186, 255}
	if r.bloom {
		particleColor = color.RGBA{255, 255, 220, 255}
	}
	for _, p := range world.Particles.Collapsed() {
		if !world.Particles.Active(p.Handle) {
			continue
		}
		sx, sy := r.toScreen(screen, p.Position.X(), p.Position.Z())
		vector.DrawFilledRect(screen, sx, sy, 1, 1, particleColor, false)
	}

	if t := world.Transforms.Get1(world.Player()); t != nil {
		sx, sy := r.toScreen(screen, t.Position.X(), t.Position.Z())
		vector.DrawFilledCircle(screen, sx, sy, pixelsPerUnit*1.5, color.RGBA{186, 255, 201, 255}, false)
	}
}
