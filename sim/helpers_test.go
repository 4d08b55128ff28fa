package sim_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/fixedsim/config"
	"github.com/plus3/fixedsim/sim"
	"github.com/stretchr/testify/require"
)

type fakeContent struct {
	meshes    map[string]sim.MeshInfo
	materials map[string]sim.MaterialHandle
}

func (c fakeContent) Mesh(name string) (sim.MeshInfo, error) {
	info, ok := c.meshes[name]
	if !ok {
		return sim.MeshInfo{}, sim.ErrUnknownMesh
	}
	return info, nil
}

func (c fakeContent) Material(name string) (sim.MaterialHandle, error) {
	handle, ok := c.materials[name]
	if !ok {
		return 0, sim.ErrUnknownMaterial
	}
	return handle, nil
}

func unitBox(half float32) sim.AABB {
	return sim.AABB{
		Min: mgl32.Vec3{-half, -half, -half},
		Max: mgl32.Vec3{half, half, half},
	}
}

func testContent() fakeContent {
	return fakeContent{
		meshes: map[string]sim.MeshInfo{
			"ground.obj": {Handle: 1, Bounds: sim.AABB{Min: mgl32.Vec3{-100, -1, -100}, Max: mgl32.Vec3{100, 0, 100}}},
			"player.obj": {Handle: 2, Bounds: unitBox(0.5)},
			"cone.obj":   {Handle: 3, Bounds: unitBox(1)},
			"cube.obj":   {Handle: 4, Bounds: unitBox(0.5)},
		},
		materials: map[string]sim.MaterialHandle{
			"Default": 1,
		},
	}
}

func testPrefabDefs() []sim.PrefabDef {
	return []sim.PrefabDef{
		{Name: sim.PrefabGround, Mesh: "ground.obj", Material: "Default"},
		{Name: sim.PrefabPlayer, Mesh: "player.obj", Material: "Default"},
		{Name: sim.PrefabTestObj, Mesh: "cone.obj", Material: "Default"},
		{Name: sim.PrefabTestObj2, Mesh: "cube.obj", Material: "Default"},
	}
}

func testPrefabs(t *testing.T) *sim.Prefabs {
	t.Helper()
	prefabs, err := sim.BuildPrefabs(testContent(), testPrefabDefs())
	require.NoError(t, err)
	return prefabs
}

func testConfig() *config.Config {
	cfg := config.Defaults()
	cfg.Sim.Step = 0.02
	cfg.Particles.SpawnCount = 10
	cfg.Particles.Workers = 2
	return cfg
}

func newTestWorld(t *testing.T, cfg *config.Config, opts ...sim.Option) (*sim.World, *recordingRenderer) {
	t.Helper()
	renderer := &recordingRenderer{}
	world, err := sim.NewWorld(cfg, testPrefabs(t), renderer, opts...)
	require.NoError(t, err)
	return world, renderer
}

type renderedBatch struct {
	Prefab    string
	Instances int
}

type recordedFrame struct {
	DeltaTime float64
	Camera    sim.Camera
	Batches   []renderedBatch
	FXAA      bool
	Bloom     bool
}

// recordingRenderer copies what it needs out of each frame, since frames are
// only valid during Render.
type recordingRenderer struct {
	frames []recordedFrame
}

func (r *recordingRenderer) Render(frame *sim.RenderFrame) {
	rec := recordedFrame{
		DeltaTime: frame.DeltaTime,
		Camera:    frame.Camera,
		FXAA:      frame.Toggle("fxaa"),
		Bloom:     frame.Toggle("bloom"),
	}
	for _, b := range frame.Batches {
		rec.Batches = append(rec.Batches, renderedBatch{Prefab: b.Prefab.Name, Instances: len(b.Instances)})
	}
	r.frames = append(r.frames, rec)
}

func (r *recordingRenderer) last() recordedFrame {
	return r.frames[len(r.frames)-1]
}
