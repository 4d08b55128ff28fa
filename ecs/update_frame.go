package ecs

type UpdateFrame struct {
	// DeltaTime is the fixed step for tick systems and the real frame time for
	// frame systems, in seconds.
	DeltaTime float64
	// Tick counts fixed steps executed since the loop was created.
	Tick uint64
	// Fixed is true while tick systems run.
	Fixed    bool
	Entities *Registry
}

func newUpdateFrame(dt float64, tick uint64, fixed bool, entities *Registry) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Tick:      tick,
		Fixed:     fixed,
		Entities:  entities,
	}
}
