package sim_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/fixedsim/ecs"
	"github.com/plus3/fixedsim/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewWorld(t *testing.T) {
	world, _ := newTestWorld(t, testConfig(), sim.WithLogger(zap.NewNop()))

	assert.Equal(t, 2, world.Registry().Count())
	assert.Equal(t, []ecs.Kind{ecs.KindTransform, ecs.KindCollision, ecs.KindRendering}, world.Registry().Kinds(world.Ground()))
	assert.Equal(t, []ecs.Kind{ecs.KindTransform, ecs.KindCollision}, world.Registry().Kinds(world.Player()))
	assert.False(t, world.Rendering.Has(world.Player()))

	stats := world.Loop().GetStats()
	names := make([]string, 0, len(stats.Systems))
	for _, s := range stats.Systems {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{
		"BenchmarkSpawner", "TransformSystem", "CollisionSystem", "PickupSystem",
		"ParticleSystem", "RenderingSystem",
	}, names)
}

func TestNewWorldErrors(t *testing.T) {
	t.Run("missing prefab", func(t *testing.T) {
		defs := testPrefabDefs()[:3]
		prefabs, err := sim.BuildPrefabs(testContent(), defs)
		require.NoError(t, err)

		_, err = sim.NewWorld(testConfig(), prefabs, nil)
		assert.ErrorIs(t, err, sim.ErrUnknownPrefab)
	})

	t.Run("invalid config", func(t *testing.T) {
		cfg := testConfig()
		cfg.Sim.Step = 0
		_, err := sim.NewWorld(cfg, testPrefabs(t), nil)
		assert.Error(t, err)
	})
}

func TestWorldMovement(t *testing.T) {
	keys := sim.KeySet{sim.KeyW: true}
	world, _ := newTestWorld(t, testConfig(), sim.WithInput(keys))
	player := world.Player()

	// the first tick only picks up the intent
	world.Frame(0.02)
	_, physics := world.Transforms.Get(player)
	assertVec3(t, mgl32.Vec3{0, 0, 20}, physics.Velocity)
	assertVec3(t, mgl32.Vec3{0, 1, 0}, world.Transforms.Get1(player).Position)

	world.Frame(0.02)
	assertVec3(t, mgl32.Vec3{0, 1, 0.4}, world.Transforms.Get1(player).Position)
	assertVec3(t, mgl32.Vec3{0, sim.CameraHeight, 0.4}, world.Camera().Position)

	delete(keys, sim.KeyW)
	world.Frame(0.02)
	world.Frame(0.02)
	_, physics = world.Transforms.Get(player)
	assert.Equal(t, mgl32.Vec3{}, physics.Velocity)
	assertVec3(t, mgl32.Vec3{0, 1, 0.8}, world.Transforms.Get1(player).Position)
}

func TestWorldMouseSteersMovement(t *testing.T) {
	keys := sim.KeySet{sim.KeyW: true}
	world, _ := newTestWorld(t, testConfig(), sim.WithInput(keys))

	// yaw a quarter turn so forward points along +X
	pixels := (3.14159265 / 2) / sim.MouseSensitivity
	world.MouseMove(pixels, 0)
	world.Frame(0.02)

	_, physics := world.Transforms.Get(world.Player())
	assertVec3(t, mgl32.Vec3{20, 0, 0}, physics.Velocity)
	assert.Equal(t, world.Look().Rotation(), world.Transforms.Get1(world.Player()).Rotation)
	assert.Equal(t, world.Transforms.Get1(world.Player()).Rotation, world.Camera().Rotation)
}

func TestWorldPickup(t *testing.T) {
	world, _ := newTestWorld(t, testConfig())
	cube := world.CreateTestObject2()
	cone := world.CreateTestObject()

	at := world.Transforms.Get1(world.Player()).Position
	world.Transforms.Get1(cube).Position = at
	world.Transforms.Get1(cone).Position = at
	world.Transforms.Get2(cube).RotationalVelocity = mgl32.Vec3{}
	world.Transforms.Get2(cone).RotationalVelocity = mgl32.Vec3{}

	var seenDuringFrame bool
	world.Loop().AddFrameSystem(ecs.SystemFunc(func(frame *ecs.UpdateFrame) {
		seenDuringFrame = world.Transforms.Has(cube) && world.Registry().Queued(cube)
	}))

	result := world.Frame(0.02)

	assert.True(t, seenDuringFrame, "queued pickup must stay live until the frame ends")
	assert.Equal(t, 1, result.Removed)
	assert.Equal(t, uint64(1), world.Pickups())

	assert.False(t, world.Registry().Alive(cube))
	assert.False(t, world.Transforms.Has(cube))
	assert.False(t, world.Collisions.Has(cube))
	assert.False(t, world.Rendering.Has(cube))

	assert.True(t, world.Registry().Alive(cone))
	assert.True(t, world.Collisions.Has(cone))
}

func TestWorldQueueRemove(t *testing.T) {
	world, _ := newTestWorld(t, testConfig())
	cone := world.CreateTestObject()
	coneId, _ := world.Prefabs().Lookup(sim.PrefabTestObj)
	require.Equal(t, 1, world.Rendering.Instances(coneId))

	world.QueueRemove(cone)
	world.QueueRemove(ecs.EntityId(999))
	world.Frame(0.001)

	assert.False(t, world.Registry().Alive(cone))
	assert.Equal(t, 0, world.Rendering.Instances(coneId))

	// the freed id is handed out first
	assert.Equal(t, cone, world.CreateTestObject2())
}

func TestWorldBenchmarkSpawner(t *testing.T) {
	cfg := testConfig()
	cfg.Benchmark.ObjectsPerSecond = 100
	world, _ := newTestWorld(t, cfg)

	// 100 per second at a 0.02 step is two of each object per tick
	world.Frame(0.02)
	world.Frame(0.02)

	stats := world.Stats()
	assert.Equal(t, 2+8, stats.Objects)
	assert.Equal(t, 2+8, stats.Entities)
}

func TestWorldToggles(t *testing.T) {
	keys := sim.KeySet{}
	world, renderer := newTestWorld(t, testConfig(), sim.WithInput(keys))

	world.Frame(0.02)
	assert.False(t, renderer.last().FXAA)

	keys[sim.KeyL] = true
	world.Frame(0.02)
	world.Frame(0.02)
	assert.True(t, world.Toggle("fxaa"))
	assert.True(t, renderer.last().FXAA)
	assert.False(t, renderer.last().Bloom)

	keys[sim.KeyL] = false
	keys[sim.KeyB] = true
	world.Frame(0.02)
	assert.True(t, renderer.last().FXAA)
	assert.True(t, renderer.last().Bloom)
}

func TestWorldRendersEveryFrame(t *testing.T) {
	world, renderer := newTestWorld(t, testConfig())
	world.CreateTestObject()
	world.CreateTestObject()

	world.Frame(0.005)
	world.Frame(1.0)

	require.Len(t, renderer.frames, 2)
	assert.Equal(t, 0.005, renderer.frames[0].DeltaTime)
	assert.Equal(t, 1.0, renderer.frames[1].DeltaTime)
	assert.Equal(t, []renderedBatch{
		{Prefab: sim.PrefabGround, Instances: 1},
		{Prefab: sim.PrefabTestObj, Instances: 2},
	}, renderer.last().Batches)
}

func TestWorldParticlesRunPerFrame(t *testing.T) {
	world, _ := newTestWorld(t, testConfig())

	world.Frame(0.05)

	assert.Equal(t, uint64(1), world.Particles.Updates())
	assert.Equal(t, uint64(2), world.Loop().Ticks())
}

func TestWorldRemoveUnknownKind(t *testing.T) {
	world, _ := newTestWorld(t, testConfig())
	assert.Panics(t, func() {
		world.RemoveComponents(ecs.Kind(200), world.Player())
	})
}

func TestWorldCreateObject(t *testing.T) {
	world, _ := newTestWorld(t, testConfig())
	before := world.Registry().Count()

	t.Run("unknown prefab creates nothing", func(t *testing.T) {
		_, err := world.CreateObject("missing", sim.NewTransform(mgl32.Vec3{}), sim.Physics{}, sim.CollisionNone, true)
		require.ErrorIs(t, err, sim.ErrUnknownPrefab)
		assert.Equal(t, before, world.Registry().Count())
		assert.Equal(t, before, world.Transforms.Count())
	})

	t.Run("known prefab is collided and rendered", func(t *testing.T) {
		id, err := world.CreateObject(sim.PrefabTestObj2, sim.NewTransform(mgl32.Vec3{3, 0, 3}), sim.Physics{}, sim.CollisionPickup, true)
		require.NoError(t, err)

		prefab, err := world.Prefabs().Require(sim.PrefabTestObj2)
		require.NoError(t, err)
		assert.Equal(t, before+1, world.Registry().Count())
		assert.Equal(t, sim.CollisionPickup, world.Collisions.Get(id).Type)
		assert.Equal(t, world.Prefabs().Get(prefab).Bounds, world.Collisions.Get(id).Bounds)
		assert.Equal(t, prefab, world.Rendering.Get(id).Prefab)
	})
}
