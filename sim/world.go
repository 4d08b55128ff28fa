package sim

import (
	"fmt"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/fixedsim/config"
	"github.com/plus3/fixedsim/ecs"
	"go.uber.org/zap"
)

// Prefab names the world needs from the content collaborator.
const (
	PrefabGround   = "ground"
	PrefabPlayer   = "player"
	PrefabTestObj  = "testObj"
	PrefabTestObj2 = "testObj2"
)

// Option configures a World.
type Option func(*World)

// WithLogger sets the world logger. The loop logs through it too.
func WithLogger(log *zap.Logger) Option {
	return func(w *World) {
		if log != nil {
			w.log = log
		}
	}
}

// WithInput sets the key-state source polled for movement and toggles.
func WithInput(in Input) Option {
	return func(w *World) {
		if in != nil {
			w.input = in
		}
	}
}

type prefabSet struct {
	ground, player, testObj, testObj2 PrefabId
}

// World owns the concrete systems and wires them into a fixed-step loop:
// per tick the benchmark spawner, transforms, collisions and pickups run,
// then player input is applied; per frame particles and rendering run; then
// queued removals are applied.
type World struct {
	cfg   *config.Config
	log   *zap.Logger
	input Input
	rng   *rand.Rand

	registry *ecs.Registry
	loop     *ecs.Loop
	prefabs  *Prefabs
	ids      prefabSet

	Transforms *TransformSystem
	Collisions *CollisionSystem
	Particles  *ParticleSystem
	Rendering  *RenderingSystem

	spawner *BenchmarkSpawner
	pickups *PickupSystem

	camera  Camera
	look    Look
	toggles []Toggle

	player ecs.EntityId
	ground ecs.EntityId
}

// NewWorld builds the systems from cfg, registers them with a new loop and
// creates the ground and the player. prefabs must hold the ground, player,
// testObj and testObj2 prefabs. renderer may be nil for headless runs.
func NewWorld(cfg *config.Config, prefabs *Prefabs, renderer Renderer, opts ...Option) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	w := &World{
		cfg:      cfg,
		log:      zap.NewNop(),
		input:    NoInput{},
		rng:      rand.New(rand.NewPCG(cfg.Sim.Seed, cfg.Sim.Seed+1)),
		registry: ecs.NewRegistry(),
		prefabs:  prefabs,
		camera:   Camera{Rotation: mgl32.QuatIdent()},
		toggles:  DefaultToggles(),
	}
	for _, opt := range opts {
		opt(w)
	}

	var err error
	if w.ids.ground, err = prefabs.Require(PrefabGround); err != nil {
		return nil, err
	}
	if w.ids.player, err = prefabs.Require(PrefabPlayer); err != nil {
		return nil, err
	}
	if w.ids.testObj, err = prefabs.Require(PrefabTestObj); err != nil {
		return nil, err
	}
	if w.ids.testObj2, err = prefabs.Require(PrefabTestObj2); err != nil {
		return nil, err
	}

	pc := cfg.Particles
	w.Transforms = NewTransformSystem()
	w.Collisions = NewCollisionSystem(w.Transforms, cfg.Collision.CellSize)
	w.Particles = NewParticleSystem(ParticleConfig{
		SpawnCount:  pc.SpawnCount,
		DeathChance: pc.DeathChance,
		Workers:     pc.Workers,
		Bounds:      AABB{Min: pc.BoundsMin, Max: pc.BoundsMax},
		Speed:       pc.Speed,
		Seed:        cfg.Sim.Seed,
	})
	w.Rendering = NewRenderingSystem(prefabs, w.Transforms, renderer)
	w.Rendering.SetView(&w.camera, w.toggles)
	w.spawner = &BenchmarkSpawner{world: w, rate: cfg.Benchmark.ObjectsPerSecond}
	w.pickups = &PickupSystem{world: w}

	w.loop = ecs.NewLoop(cfg.Sim.Step,
		ecs.WithLogger(w.log),
		ecs.WithMaxCatchUp(cfg.Sim.MaxCatchUp),
		ecs.WithRegistry(w.registry, w),
	)
	w.loop.AddTickSystem(w.spawner)
	w.loop.AddTickSystem(w.Transforms)
	w.loop.AddTickSystem(w.Collisions)
	w.loop.AddTickSystem(w.pickups)
	w.loop.SetInput(w.applyInput)
	w.loop.AddFrameSystem(w.Particles)
	w.loop.AddFrameSystem(w.Rendering)

	w.ground = w.CreateGround(mgl32.Vec3{}, 1)
	w.player = w.CreatePlayer()

	w.log.Info("world ready",
		zap.Int("prefabs", prefabs.Len()),
		zap.Uint32("player", uint32(w.player)),
		zap.Float64("step", cfg.Sim.Step),
		zap.Float64("objects_per_second", cfg.Benchmark.ObjectsPerSecond),
	)
	return w, nil
}

// Frame checks the toggles, then advances the loop by dt seconds of real
// time.
func (w *World) Frame(dt float64) ecs.FrameResult {
	for i := range w.toggles {
		if w.toggles[i].Check(w.input) {
			w.log.Debug("toggle changed", zap.String("name", w.toggles[i].Name), zap.Bool("on", w.toggles[i].On))
		}
	}
	return w.loop.Frame(dt)
}

// applyInput turns movement intent into player velocity and moves the
// camera with the player. It runs once per tick.
func (w *World) applyInput(frame *ecs.UpdateFrame) {
	t, p := w.Transforms.Get(w.player)
	if t == nil {
		return
	}
	direction := w.look.Heading().Rotate(Intent(w.input))
	p.Velocity = direction.Mul(w.cfg.Player.Speed)
	w.camera.Follow(t)
}

// MouseMove applies a look drag of dx, dy pixels to the player.
func (w *World) MouseMove(dx, dy float64) {
	w.look.Drag(dx, dy)
	if t := w.Transforms.Get1(w.player); t != nil {
		t.Rotation = w.look.Rotation()
	}
}

// QueueRemove schedules id for removal at the end of the current frame.
func (w *World) QueueRemove(id ecs.EntityId) {
	w.registry.QueueRemove(id)
}

// RemoveComponents removes id from the system identified by kind.
func (w *World) RemoveComponents(kind ecs.Kind, id ecs.EntityId) {
	switch kind {
	case ecs.KindTransform:
		w.Transforms.Remove(id)
	case ecs.KindCollision:
		w.Collisions.Remove(id)
	case ecs.KindRendering:
		w.Rendering.Remove(id)
	default:
		panic(fmt.Sprintf("sim: no system for component kind %v", kind))
	}
}

func (w *World) Loop() *ecs.Loop { return w.loop }
func (w *World) Registry() *ecs.Registry { return w.registry }
func (w *World) Prefabs() *Prefabs { return w.prefabs }
func (w *World) Player() ecs.EntityId { return w.player }
func (w *World) Ground() ecs.EntityId { return w.ground }
func (w *World) Camera() Camera { return w.camera }
func (w *World) Look() Look { return w.look }
func (w *World) Toggles() []Toggle { return w.toggles }
func (w *World) Config() *config.Config { return w.cfg }
func (w *World) Pickups() uint64 { return w.pickups.count }

// Toggle reports the named toggle's state.
func (w *World) Toggle(name string) bool {
	for _, t := range w.toggles {
		if t.Name == name {
			return t.On
		}
	}
	return false
}

// Stats is a snapshot of world population counters.
type Stats struct {
	Entities      int
	Objects       int
	Particles     int
	OccupiedCells int
	Contacts      int
	Pickups       uint64
}

func (w *World) Stats() Stats {
	return Stats{
		Entities:      w.registry.Count(),
		Objects:       w.Transforms.Count(),
		Particles:     w.Particles.Count(),
		OccupiedCells: w.Collisions.OccupiedCells(),
		Contacts:      len(w.Collisions.Contacts()),
		Pickups:       w.pickups.count,
	}
}

// BenchmarkSpawner creates one of each test object per tick at the
// configured rate. Fractional objects carry over between ticks.
type BenchmarkSpawner struct {
	world *World
	rate  float64
	owed  float64
}

func (s *BenchmarkSpawner) Execute(frame *ecs.UpdateFrame) {
	if s.rate <= 0 {
		return
	}
	s.owed += s.rate * frame.DeltaTime
	for s.owed >= 1 {
		s.world.CreateTestObject()
		s.world.CreateTestObject2()
		s.owed--
	}
}

// PickupSystem queues every pickup the player touched during the tick's
// collision pass.
type PickupSystem struct {
	world *World
	count uint64
}

func (s *PickupSystem) Execute(frame *ecs.UpdateFrame) {
	player := s.world.player
	for _, c := range s.world.Collisions.Contacts() {
		other, kind, ok := c.Involves(player)
		if !ok || kind != CollisionPickup || frame.Entities.Queued(other) {
			continue
		}
		frame.Entities.QueueRemove(other)
		s.count++
	}
}
