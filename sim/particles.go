package sim

import (
	"math"
	"math/rand/v2"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/fixedsim/ecs"
	"golang.org/x/sync/errgroup"
)

// Particle is a free-flying point. Particles are not entities and never go
// through the registry.
type Particle struct {
	Position mgl32.Vec3
	Velocity mgl32.Vec3
}

// Collapsed is a snapshot of one live particle and the slot it came from.
type Collapsed struct {
	Particle
	Handle int
}

type ParticleConfig struct {
	SpawnCount  int
	DeathChance float64
	Workers     int
	Bounds      AABB
	Speed       float32
	Seed        uint64
}

// ParticleSystem spawns a fixed number of particles per update and integrates
// all live ones in parallel. Particles that drift out of the bounds wrap
// around to the opposite face; the only way a particle dies is its death
// roll. Workers read their own snapshot from the
// collapsed view and write only to that particle's slot, so the only shared
// mutation is the death path, serialized by freeMu.
type ParticleSystem struct {
	cfg       ParticleConfig
	threshold uint64

	particles ecs.FreeList[Particle]
	active    []bool
	collapsed []Collapsed

	freeMu sync.Mutex
	rng    *rand.Rand

	updates uint64
	deaths  uint64
}

func NewParticleSystem(cfg ParticleConfig) *ParticleSystem {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	chance := math.Min(math.Max(cfg.DeathChance, 0), 1)
	return &ParticleSystem{
		cfg:       cfg,
		threshold: uint64(chance * (1 << 32)),
		rng:       rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
	}
}

func (s *ParticleSystem) Execute(frame *ecs.UpdateFrame) {
	s.Update(frame.DeltaTime)
}

// Update runs one spawn, collapse and integrate pass.
func (s *ParticleSystem) Update(dt float64) {
	s.updates++
	s.Spawn()
	s.Collapse()
	s.Integrate(dt)
}

// Spawn adds SpawnCount particles at random positions inside the bounds,
// reusing freed slots first.
func (s *ParticleSystem) Spawn() {
	b := s.cfg.Bounds
	for range s.cfg.SpawnCount {
		p := Particle{
			Position: mgl32.Vec3{
				s.between(b.Min[0], b.Max[0]),
				s.between(b.Min[1], b.Max[1]),
				s.between(b.Min[2], b.Max[2]),
			},
			Velocity: mgl32.Vec3{
				s.between(-s.cfg.Speed, s.cfg.Speed),
				s.between(-s.cfg.Speed, s.cfg.Speed),
				s.between(-s.cfg.Speed, s.cfg.Speed),
			},
		}

		index := s.particles.Add(p)
		if index == len(s.active) {
			s.active = append(s.active, true)
		} else {
			s.active[index] = true
		}
	}
}

func (s *ParticleSystem) between(lo, hi float32) float32 {
	return lo + s.rng.Float32()*(hi-lo)
}

// Collapse rebuilds the contiguous view of live particles.
func (s *ParticleSystem) Collapse() {
	s.collapsed = s.collapsed[:0]
	for handle, live := range s.active {
		if live {
			s.collapsed = append(s.collapsed, Collapsed{
				Particle: *s.particles.At(handle),
				Handle:   handle,
			})
		}
	}
}

// Integrate moves every collapsed particle by its velocity, fanning the view
// out over at most Workers goroutines, and frees the particles that die.
// It joins all workers before returning.
func (s *ParticleSystem) Integrate(dt float64) {
	n := len(s.collapsed)
	if n == 0 {
		return
	}

	workers := min(s.cfg.Workers, n)
	chunk := (n + workers - 1) / workers

	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		g.Go(func() error {
			s.integrateRange(s.collapsed[start:end], float32(dt))
			return nil
		})
	}
	_ = g.Wait()
}

func (s *ParticleSystem) integrateRange(view []Collapsed, dt float32) {
	for i := range view {
		cp := &view[i]
		position := s.wrap(cp.Position.Add(cp.Velocity.Mul(dt)))

		slot := s.particles.At(cp.Handle)
		slot.Position = position
		slot.Velocity = cp.Velocity

		if s.dies(cp.Handle) {
			s.free(cp.Handle)
		}
	}
}

// dies rolls a particle's death from the seed, the update number and its
// handle only, so the result does not depend on how the view was split
// between workers.
func (s *ParticleSystem) dies(handle int) bool {
	return uint64(hash3(s.cfg.Seed, s.updates, uint32(handle))) < s.threshold
}

// wrap folds position back into the bounds on every axis with a positive
// extent.
func (s *ParticleSystem) wrap(position mgl32.Vec3) mgl32.Vec3 {
	b := s.cfg.Bounds
	for axis := range 3 {
		lo, extent := b.Min[axis], b.Max[axis]-b.Min[axis]
		if extent <= 0 {
			continue
		}
		if p := position[axis]; p < lo || p > b.Max[axis] {
			offset := float32(math.Mod(float64(p-lo), float64(extent)))
			if offset < 0 {
				offset += extent
			}
			position[axis] = lo + offset
		}
	}
	return position
}

func (s *ParticleSystem) free(handle int) {
	s.freeMu.Lock()
	s.active[handle] = false
	s.particles.Free(handle)
	s.deaths++
	s.freeMu.Unlock()
}

// Count returns the number of live particles.
func (s *ParticleSystem) Count() int {
	return s.particles.Count()
}

// Collapsed returns the view built by the last update. It includes the
// particles that died during that update's integration.
func (s *ParticleSystem) Collapsed() []Collapsed {
	return s.collapsed
}

// Active reports whether the slot at handle holds a live particle.
func (s *ParticleSystem) Active(handle int) bool {
	return handle >= 0 && handle < len(s.active) && s.active[handle]
}

// Particle returns the particle in the slot at handle, or false if the slot
// is not live.
func (s *ParticleSystem) Particle(handle int) (Particle, bool) {
	if !s.Active(handle) {
		return Particle{}, false
	}
	return *s.particles.At(handle), true
}

// Deaths returns the number of particles freed since creation.
func (s *ParticleSystem) Deaths() uint64 {
	return s.deaths
}

// Updates returns the number of update passes run.
func (s *ParticleSystem) Updates() uint64 {
	return s.updates
}
