package sim

import "github.com/go-gl/mathgl/mgl32"

// Transform is an entity's placement in the world.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    float32
}

// NewTransform returns an unrotated, unit-scale transform at position.
func NewTransform(position mgl32.Vec3) Transform {
	return Transform{
		Position: position,
		Rotation: mgl32.QuatIdent(),
		Scale:    1,
	}
}

// Physics holds the motion integrated into a Transform every tick.
// RotationalVelocity is in radians per second around the X, Y and Z axes.
type Physics struct {
	Velocity           mgl32.Vec3
	Acceleration       mgl32.Vec3
	RotationalVelocity mgl32.Vec3
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// Overlaps reports whether the boxes intersect. Touching faces count.
func (b AABB) Overlaps(o AABB) bool {
	return b.Min[0] <= o.Max[0] && b.Max[0] >= o.Min[0] &&
		b.Min[1] <= o.Max[1] && b.Max[1] >= o.Min[1] &&
		b.Min[2] <= o.Max[2] && b.Max[2] >= o.Min[2]
}

// Place moves local bounds into world space. Rotation is ignored, so the
// result stays axis aligned.
func (b AABB) Place(t *Transform) AABB {
	return AABB{
		Min: t.Position.Add(b.Min.Mul(t.Scale)),
		Max: t.Position.Add(b.Max.Mul(t.Scale)),
	}
}

// CollisionType selects how a collider takes part in contacts.
type CollisionType uint8

const (
	// CollisionNone colliders only report contacts with typed colliders.
	CollisionNone CollisionType = iota
	CollisionPlayer
	CollisionPickup
	CollisionStatic
)

func (c CollisionType) String() string {
	switch c {
	case CollisionNone:
		return "none"
	case CollisionPlayer:
		return "player"
	case CollisionPickup:
		return "pickup"
	case CollisionStatic:
		return "static"
	default:
		return "unknown"
	}
}

// Collider is the collision component: mesh bounds in local space plus the
// collision type copied in at creation.
type Collider struct {
	Bounds AABB
	Type   CollisionType
}
