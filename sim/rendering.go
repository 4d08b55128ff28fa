package sim

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/fixedsim/ecs"
)

// RenderComponent ties an entity to a prefab and to its slot in that
// prefab's instance list.
type RenderComponent struct {
	Prefab   PrefabId
	Instance int
}

// InstanceTransform is the read-only transform data of one drawn instance.
type InstanceTransform struct {
	Entity   ecs.EntityId
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    float32
}

// Batch is every instance of one prefab drawn this frame.
type Batch struct {
	Prefab    *Prefab
	Instances []InstanceTransform
}

// RenderFrame is everything a Renderer gets for one frame. It and its
// slices are only valid during the Render call.
type RenderFrame struct {
	DeltaTime float64
	Camera    Camera
	Batches   []Batch
	Toggles   []Toggle
}

// Toggle reports the named toggle's state.
func (f *RenderFrame) Toggle(name string) bool {
	for _, t := range f.Toggles {
		if t.Name == name {
			return t.On
		}
	}
	return false
}

// Renderer draws a frame. It is the boundary to the graphics device.
type Renderer interface {
	Render(frame *RenderFrame)
}

// RenderingSystem groups rendered entities by prefab and hands the batches to
// a Renderer once per frame. Each prefab keeps a free list of the entities
// instanced from it, so batching walks dense instance lists instead of every
// render component.
type RenderingSystem struct {
	*ecs.Store[RenderComponent]

	prefabs    *Prefabs
	transforms *TransformSystem
	renderer   Renderer
	instances  []*ecs.FreeList[ecs.EntityId]

	camera  *Camera
	toggles []Toggle
	frame   RenderFrame
}

func NewRenderingSystem(prefabs *Prefabs, transforms *TransformSystem, renderer Renderer) *RenderingSystem {
	return &RenderingSystem{
		Store:      ecs.NewStore[RenderComponent](),
		prefabs:    prefabs,
		transforms: transforms,
		renderer:   renderer,
	}
}

// SetView sets the camera and toggles read by Execute. Both are read, never
// written.
func (s *RenderingSystem) SetView(camera *Camera, toggles []Toggle) {
	s.camera = camera
	s.toggles = toggles
}

// Execute renders once per frame with the frame's real delta time.
func (s *RenderingSystem) Execute(frame *ecs.UpdateFrame) {
	var camera Camera
	if s.camera != nil {
		camera = *s.camera
	}
	s.Render(frame.DeltaTime, camera, s.toggles)
}

// CreateInstance adds a render component for id instanced from prefab.
func (s *RenderingSystem) CreateInstance(id ecs.EntityId, prefab PrefabId) (int, error) {
	if s.prefabs.Get(prefab) == nil {
		return 0, ErrUnknownPrefab
	}
	for int(prefab) >= len(s.instances) {
		s.instances = append(s.instances, &ecs.FreeList[ecs.EntityId]{})
	}
	instance := s.instances[prefab].Add(id)
	return s.Create(id, RenderComponent{Prefab: prefab, Instance: instance}), nil
}

// Remove frees id's render component and its instance slot.
func (s *RenderingSystem) Remove(id ecs.EntityId) {
	rc := s.Get(id)
	if rc == nil {
		return
	}
	s.instances[rc.Prefab].Free(rc.Instance)
	s.Store.Remove(id)
}

// Instances returns the number of live instances of prefab.
func (s *RenderingSystem) Instances(prefab PrefabId) int {
	if prefab < 0 || int(prefab) >= len(s.instances) {
		return 0
	}
	return s.instances[prefab].Count()
}

// Batches builds the per-prefab batches for the current transforms. The
// result is reused by the next call.
func (s *RenderingSystem) Batches() []Batch {
	s.frame.Batches = s.frame.Batches[:0]
	for p, list := range s.instances {
		if list.Count() == 0 {
			continue
		}

		batch := s.nextBatch()
		batch.Prefab = s.prefabs.Get(PrefabId(p))
		for handle := range list.Iter() {
			owner := *list.At(handle)
			t := s.transforms.Get1(owner)
			if t == nil {
				continue
			}
			batch.Instances = append(batch.Instances, InstanceTransform{
				Entity:   owner,
				Position: t.Position,
				Rotation: t.Rotation,
				Scale:    t.Scale,
			})
		}
	}
	return s.frame.Batches
}

func (s *RenderingSystem) nextBatch() *Batch {
	n := len(s.frame.Batches)
	if n < cap(s.frame.Batches) {
		s.frame.Batches = s.frame.Batches[:n+1]
		s.frame.Batches[n].Instances = s.frame.Batches[n].Instances[:0]
	} else {
		s.frame.Batches = append(s.frame.Batches, Batch{})
	}
	return &s.frame.Batches[n]
}

// Render builds the batches and hands them to the renderer.
func (s *RenderingSystem) Render(dt float64, camera Camera, toggles []Toggle) {
	s.Batches()
	if s.renderer == nil {
		return
	}
	s.frame.DeltaTime = dt
	s.frame.Camera = camera
	s.frame.Toggles = toggles
	s.renderer.Render(&s.frame)
}
