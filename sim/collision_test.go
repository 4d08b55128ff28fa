package sim_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/fixedsim/ecs"
	"github.com/plus3/fixedsim/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type collisionFixture struct {
	transforms *sim.TransformSystem
	collisions *sim.CollisionSystem
}

func newCollisionFixture(cellSize float32) *collisionFixture {
	transforms := sim.NewTransformSystem()
	return &collisionFixture{
		transforms: transforms,
		collisions: sim.NewCollisionSystem(transforms, cellSize),
	}
}

func (f *collisionFixture) add(id ecs.EntityId, at mgl32.Vec3, half float32, kind sim.CollisionType) {
	f.transforms.Create(id, sim.NewTransform(at), sim.Physics{})
	f.collisions.Create(id, sim.Collider{Bounds: unitBox(half), Type: kind})
}

func (f *collisionFixture) tick() []sim.Contact {
	f.collisions.Execute(&ecs.UpdateFrame{DeltaTime: 0.02, Fixed: true})
	return f.collisions.Contacts()
}

func TestCollisionContacts(t *testing.T) {
	t.Run("overlapping pair is reported once", func(t *testing.T) {
		f := newCollisionFixture(1)
		// both boxes span several cells, so the pair shares many buckets
		f.add(0, mgl32.Vec3{0, 0, 0}, 2, sim.CollisionPlayer)
		f.add(1, mgl32.Vec3{1, 1, 1}, 2, sim.CollisionPickup)

		contacts := f.tick()
		require.Len(t, contacts, 1)
		assert.Equal(t, sim.Contact{A: 0, B: 1, TypeA: sim.CollisionPlayer, TypeB: sim.CollisionPickup}, contacts[0])
	})

	t.Run("same cell without overlap", func(t *testing.T) {
		f := newCollisionFixture(100)
		f.add(0, mgl32.Vec3{50, 50, 50}, 1, sim.CollisionPlayer)
		f.add(1, mgl32.Vec3{60, 50, 50}, 1, sim.CollisionPickup)

		assert.Empty(t, f.tick())
		assert.Equal(t, 1, f.collisions.OccupiedCells())
	})

	t.Run("untyped pairs are skipped", func(t *testing.T) {
		f := newCollisionFixture(10)
		f.add(0, mgl32.Vec3{}, 1, sim.CollisionNone)
		f.add(1, mgl32.Vec3{}, 1, sim.CollisionNone)
		f.add(2, mgl32.Vec3{}, 1, sim.CollisionStatic)
		f.add(3, mgl32.Vec3{}, 1, sim.CollisionStatic)

		contacts := f.tick()
		// none-static pairs count; none-none and static-static do not
		assert.Len(t, contacts, 4)
		for _, c := range contacts {
			assert.NotEqual(t, c.TypeA, c.TypeB)
		}
	})

	t.Run("negative coordinates", func(t *testing.T) {
		f := newCollisionFixture(4)
		f.add(0, mgl32.Vec3{-50, -3, -70}, 1, sim.CollisionPlayer)
		f.add(1, mgl32.Vec3{-51, -3, -70.5}, 1, sim.CollisionPickup)

		assert.Len(t, f.tick(), 1)
	})

	t.Run("results are rebuilt each tick", func(t *testing.T) {
		f := newCollisionFixture(10)
		f.add(0, mgl32.Vec3{}, 1, sim.CollisionPlayer)
		f.add(1, mgl32.Vec3{}, 1, sim.CollisionPickup)
		require.Len(t, f.tick(), 1)

		f.transforms.Get1(1).Position = mgl32.Vec3{55, 5, 5}
		assert.Empty(t, f.tick())

		f.collisions.Remove(0)
		assert.Empty(t, f.tick())
		assert.Equal(t, 1, f.collisions.OccupiedCells())
	})
}

func TestCollisionWorldBounds(t *testing.T) {
	f := newCollisionFixture(10)
	f.transforms.Create(0, sim.Transform{Position: mgl32.Vec3{5, 0, 0}, Rotation: mgl32.QuatIdent(), Scale: 2}, sim.Physics{})
	f.collisions.Create(0, sim.Collider{Bounds: unitBox(1), Type: sim.CollisionPlayer})

	// no transform: bounds are taken as world space
	f.collisions.Create(1, sim.Collider{Bounds: unitBox(3), Type: sim.CollisionStatic})

	contacts := f.tick()
	require.Len(t, contacts, 1)

	bounds, ok := f.collisions.WorldBounds(0)
	require.True(t, ok)
	assertVec3(t, mgl32.Vec3{3, -2, -2}, bounds.Min)
	assertVec3(t, mgl32.Vec3{7, 2, 2}, bounds.Max)

	bounds, ok = f.collisions.WorldBounds(1)
	require.True(t, ok)
	assert.Equal(t, unitBox(3), bounds)

	_, ok = f.collisions.WorldBounds(9)
	assert.False(t, ok)
}

func TestContactInvolves(t *testing.T) {
	c := sim.Contact{A: 3, B: 8, TypeA: sim.CollisionPlayer, TypeB: sim.CollisionPickup}

	other, kind, ok := c.Involves(3)
	assert.True(t, ok)
	assert.Equal(t, ecs.EntityId(8), other)
	assert.Equal(t, sim.CollisionPickup, kind)

	other, kind, ok = c.Involves(8)
	assert.True(t, ok)
	assert.Equal(t, ecs.EntityId(3), other)
	assert.Equal(t, sim.CollisionPlayer, kind)

	_, _, ok = c.Involves(4)
	assert.False(t, ok)
}

func TestAABBOverlaps(t *testing.T) {
	a := unitBox(1)
	assert.True(t, a.Overlaps(unitBox(0.1)))
	assert.True(t, a.Overlaps(sim.AABB{Min: mgl32.Vec3{1, 1, 1}, Max: mgl32.Vec3{2, 2, 2}}), "touching corners overlap")
	assert.False(t, a.Overlaps(sim.AABB{Min: mgl32.Vec3{1.1, 0, 0}, Max: mgl32.Vec3{2, 1, 1}}))
	assert.Equal(t, "pickup", sim.CollisionPickup.String())
}
