package ecs_test

import (
	"context"
	"fmt"
	"time"

	"github.com/plus3/fixedsim/ecs"
)

type Body struct {
	X, Y float64
}

type Motion struct {
	DX, DY float64
}

type MovementSystem struct {
	Bodies *ecs.PairedStore[Body, Motion]
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	for _, ref := range s.Bodies.Iter() {
		ref.First.X += ref.Second.DX * frame.DeltaTime
		ref.First.Y += ref.Second.DY * frame.DeltaTime
	}
}

// ExampleLoop demonstrates a fixed-step loop. Tick systems always see the
// constant step no matter how long the frame was; leftover time carries over
// to the next frame.
func ExampleLoop() {
	bodies := ecs.NewPairedStore[Body, Motion]()
	bodies.Create(0, Body{}, Motion{DX: 10, DY: 5})

	loop := ecs.NewLoop(0.25)
	loop.AddTickSystem(&MovementSystem{Bodies: bodies})

	result := loop.Frame(0.6)
	body := bodies.Get1(0)

	fmt.Printf("Steps: %d, leftover: %.2f\n", result.Steps, result.Accumulator)
	fmt.Printf("Position: (%.1f, %.1f)\n", body.X, body.Y)

	// Output:
	// Steps: 2, leftover: 0.10
	// Position: (5.0, 2.5)
}

type removeAll struct {
	bodies *ecs.PairedStore[Body, Motion]
}

func (r removeAll) RemoveComponents(kind ecs.Kind, id ecs.EntityId) {
	if kind == ecs.KindTransform {
		r.bodies.Remove(id)
	}
}

// ExampleLoop_removals demonstrates deferred removal. Entities queued while
// systems run are removed from every system they belong to once the frame
// has finished.
func ExampleLoop_removals() {
	registry := ecs.NewRegistry()
	bodies := ecs.NewPairedStore[Body, Motion]()

	for range 3 {
		id := registry.CreateEntity(ecs.KindTransform)
		bodies.Create(id, Body{}, Motion{})
	}

	loop := ecs.NewLoop(0.1, ecs.WithRegistry(registry, removeAll{bodies: bodies}))
	loop.AddFrameSystem(ecs.SystemFunc(func(frame *ecs.UpdateFrame) {
		frame.Entities.QueueRemove(1)
		fmt.Printf("During frame: %d bodies\n", bodies.Count())
	}))

	result := loop.Frame(0.1)
	fmt.Printf("After frame: %d bodies, %d removed\n", bodies.Count(), result.Removed)
	fmt.Printf("Next id: %d\n", registry.CreateEntity(ecs.KindTransform))

	// Output:
	// During frame: 3 bodies
	// After frame: 2 bodies, 1 removed
	// Next id: 1
}

// ExampleLoop_Run demonstrates driving the loop from wall-clock time until
// the context is cancelled.
func ExampleLoop_Run() {
	loop := ecs.NewLoop(1.0 / 60.0)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	loop.Run(ctx, 16*time.Millisecond)

	fmt.Println("Loop stopped")
	// Output:
	// Loop stopped
}
