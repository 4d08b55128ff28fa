package sim

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/fixedsim/ecs"
)

// TransformSystem integrates physics into transforms once per tick. The two
// components live in a paired store so each entity's pair shares one slot.
type TransformSystem struct {
	*ecs.PairedStore[Transform, Physics]
}

func NewTransformSystem() *TransformSystem {
	return &TransformSystem{
		PairedStore: ecs.NewPairedStore[Transform, Physics](),
	}
}

func (s *TransformSystem) Execute(frame *ecs.UpdateFrame) {
	dt := float32(frame.DeltaTime)
	for index := range s.Components1().Iter() {
		t, p := s.At(index)
		Integrate(t, p, dt)
	}
}

// Integrate advances one transform by dt seconds.
func Integrate(t *Transform, p *Physics, dt float32) {
	p.Velocity = p.Velocity.Add(p.Acceleration.Mul(dt))
	t.Position = t.Position.Add(p.Velocity.Mul(dt))

	if p.RotationalVelocity != (mgl32.Vec3{}) {
		spin := p.RotationalVelocity.Mul(dt)
		delta := mgl32.AnglesToQuat(spin[0], spin[1], spin[2], mgl32.XYZ)
		t.Rotation = delta.Mul(t.Rotation).Normalize()
	}
}
