package sim

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/fixedsim/ecs"
)

// Test objects spin up to this fast around each axis, in radians per second.
const testObjectSpin = 30

// CreateGround places the ground prefab at position. It collides as static
// geometry.
func (w *World) CreateGround(position mgl32.Vec3, scale float32) ecs.EntityId {
	t := NewTransform(position)
	t.Scale = scale
	return w.mustCreate(t, Physics{}, w.ids.ground, CollisionStatic, true)
}

// CreatePlayer places the player above the origin. The camera is the
// player's view, so it has no render component.
func (w *World) CreatePlayer() ecs.EntityId {
	return w.mustCreate(NewTransform(mgl32.Vec3{0, 1, 0}), Physics{}, w.ids.player, CollisionPlayer, false)
}

// CreateTestObject spawns a spinning cone at a random position. Cones do not
// react to the player.
func (w *World) CreateTestObject() ecs.EntityId {
	return w.mustCreate(w.randomTransform(), w.randomSpin(), w.ids.testObj, CollisionNone, true)
}

// CreateTestObject2 spawns a spinning cube at a random position. The player
// picks cubes up on contact.
func (w *World) CreateTestObject2() ecs.EntityId {
	return w.mustCreate(w.randomTransform(), w.randomSpin(), w.ids.testObj2, CollisionPickup, true)
}

// CreateObject spawns an entity instanced from the named prefab. Its collider
// takes the prefab's bounds; rendered adds a render component. Nothing is
// created when the prefab is unknown.
func (w *World) CreateObject(name string, t Transform, p Physics, collision CollisionType, rendered bool) (ecs.EntityId, error) {
	prefab, err := w.prefabs.Require(name)
	if err != nil {
		return 0, err
	}
	return w.createObject(t, p, prefab, collision, rendered)
}

// mustCreate is createObject for the prefabs NewWorld already resolved.
func (w *World) mustCreate(t Transform, p Physics, prefab PrefabId, collision CollisionType, rendered bool) ecs.EntityId {
	id, err := w.createObject(t, p, prefab, collision, rendered)
	if err != nil {
		panic(fmt.Sprintf("sim: create %v object: %v", collision, err))
	}
	return id
}

func (w *World) createObject(t Transform, p Physics, prefab PrefabId, collision CollisionType, rendered bool) (ecs.EntityId, error) {
	def := w.prefabs.Get(prefab)
	if def == nil {
		return 0, fmt.Errorf("%w: id %d", ErrUnknownPrefab, prefab)
	}

	kinds := []ecs.Kind{ecs.KindTransform, ecs.KindCollision}
	if rendered {
		kinds = append(kinds, ecs.KindRendering)
	}
	id := w.registry.CreateEntity(kinds...)

	w.Transforms.Create(id, t, p)
	w.Collisions.Create(id, Collider{
		Bounds: def.Bounds,
		Type:   collision,
	})
	if rendered {
		if _, err := w.Rendering.CreateInstance(id, prefab); err != nil {
			return 0, err
		}
	}
	return id, nil
}

func (w *World) randomTransform() Transform {
	b := AABB{Min: w.cfg.Particles.BoundsMin, Max: w.cfg.Particles.BoundsMax}
	return NewTransform(mgl32.Vec3{
		w.between(b.Min[0], b.Max[0]),
		w.between(b.Min[1], b.Max[1]),
		w.between(b.Min[2], b.Max[2]),
	})
}

func (w *World) randomSpin() Physics {
	return Physics{
		RotationalVelocity: mgl32.Vec3{
			w.between(-testObjectSpin, testObjectSpin),
			w.between(-testObjectSpin, testObjectSpin),
			w.between(-testObjectSpin, testObjectSpin),
		},
	}
}

func (w *World) between(lo, hi float32) float32 {
	return lo + w.rng.Float32()*(hi-lo)
}
