package ecs

// EntityId is a handle unique among live entities. Ids are recycled once an
// entity's removal is finalized.
type EntityId uint32

// Kind names one of the statically known component systems an entity can
// participate in. The set is closed; removal fan-out switches over it.
type Kind uint8

const (
	KindTransform Kind = iota
	KindCollision
	KindRendering
)

func (k Kind) String() string {
	switch k {
	case KindTransform:
		return "transform"
	case KindCollision:
		return "collision"
	case KindRendering:
		return "rendering"
	default:
		return "unknown"
	}
}

// ComponentData is the bookkeeping record kept index-aligned with a system's
// component storage. Active is true iff the slot has not been freed.
type ComponentData struct {
	EntityId EntityId
	Active   bool
}
