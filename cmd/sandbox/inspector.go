package main

import (
	"github.com/plus3/fixedsim/ecs"
	"github.com/plus3/fixedsim/ecs/debugui"
	"github.com/plus3/fixedsim/sim"
)

// worldInspector exposes an entity's components from the world's systems to
// the component inspector.
type worldInspector struct {
	world *sim.World
}

func (wi worldInspector) Components(id ecs.EntityId) []debugui.Component {
	var out []debugui.Component
	for _, kind := range wi.world.Registry().Kinds(id) {
		switch kind {
		case ecs.KindTransform:
			if t, p := wi.world.Transforms.Get(id); t != nil {
				out = append(out,
					debugui.Component{Name: "Transform", Value: t},
					debugui.Component{Name: "Physics", Value: p},
				)
			}
		case ecs.KindCollision:
			if c := wi.world.Collisions.Get(id); c != nil {
				out = append(out, debugui.Component{Name: "Collider", Value: c})
			}
		case ecs.KindRendering:
			if r := wi.world.Rendering.Get(id); r != nil {
				out = append(out, debugui.Component{Name: "Render", Value: r})
			}
		}
	}
	return out
}

func counters(world *sim.World) func() []debugui.Counter {
	return func() []debugui.Counter {
		s := world.Stats()
		return []debugui.Counter{
			{Label: "Entities", Value: s.Entities},
			{Label: "Objects", Value: s.Objects},
			{Label: "Particles", Value: s.Particles},
			{Label: "Occupied Cells", Value: s.OccupiedCells},
			{Label: "Contacts", Value: s.Contacts},
			{Label: "Pickups", Value: int(s.Pickups)},
		}
	}
}
