package ecs_test

import "github.com/plus3/fixedsim/ecs"

// Common test component types
type Position struct {
	X, Y, Z float32
}

type Velocity struct {
	DX, DY, DZ float32
}

type Health struct {
	Current int
	Max     int
}

// recordingRemover collects the removal fan-out driven by a Registry.
type recordingRemover struct {
	calls []removeCall
}

type removeCall struct {
	Kind ecs.Kind
	Id   ecs.EntityId
}

func (r *recordingRemover) RemoveComponents(kind ecs.Kind, id ecs.EntityId) {
	r.calls = append(r.calls, removeCall{Kind: kind, Id: id})
}
