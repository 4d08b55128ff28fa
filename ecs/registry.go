package ecs

import (
	"iter"
	"slices"
)

// Remover removes an entity's components from the system identified by kind.
// The implementation owns the concrete systems and switches over every Kind.
type Remover interface {
	RemoveComponents(kind Kind, id EntityId)
}

type entityRecord struct {
	kinds []Kind
}

// Registry allocates entity ids, remembers which systems each entity has
// components in, and applies queued removals at the frame barrier.
type Registry struct {
	entities FreeList[entityRecord]
	removals removalQueue
}

// NewRegistry creates an empty entity registry.
func NewRegistry() *Registry {
	return &Registry{
		removals: newRemovalQueue(),
	}
}

// CreateEntity allocates an id, preferring the lowest recycled one, and records
// the systems the entity takes part in. Removal visits them in this order.
func (r *Registry) CreateEntity(kinds ...Kind) EntityId {
	index := r.entities.Add(entityRecord{kinds: slices.Clone(kinds)})
	return EntityId(index)
}

// QueueRemove marks id for removal at the next FinalizeRemovals. Ids outside
// the allocated range, ids that are not live and ids already queued are
// ignored.
func (r *Registry) QueueRemove(id EntityId) {
	if int(id) >= r.entities.Len() || !r.entities.Has(int(id)) {
		return
	}
	r.removals.push(id)
}

// Queued reports whether id is waiting for removal.
func (r *Registry) Queued(id EntityId) bool {
	return r.removals.has(id)
}

// Pending returns the number of queued removals.
func (r *Registry) Pending() int {
	return r.removals.len()
}

// FinalizeRemovals removes every queued entity from each of its systems
// through rm, then recycles its id. It must only be called while no system is
// updating. Returns the number of entities removed.
func (r *Registry) FinalizeRemovals(rm Remover) int {
	return r.removals.drain(func(id EntityId) bool {
		if !r.entities.Has(int(id)) {
			return false
		}
		rec := r.entities.At(int(id))
		for _, kind := range rec.kinds {
			rm.RemoveComponents(kind, id)
		}
		rec.kinds = nil
		r.entities.Free(int(id))
		return true
	})
}

// Alive reports whether id is currently allocated.
func (r *Registry) Alive(id EntityId) bool {
	return r.entities.Has(int(id))
}

// Kinds returns the systems id was created with, or nil if it is not live.
func (r *Registry) Kinds(id EntityId) []Kind {
	if !r.entities.Has(int(id)) {
		return nil
	}
	return r.entities.At(int(id)).kinds
}

// Count returns the number of live entities.
func (r *Registry) Count() int {
	return r.entities.Count()
}

// Len returns the allocated id range; every live id is below it.
func (r *Registry) Len() int {
	return r.entities.Len()
}

// Iter yields every live entity id in ascending order.
func (r *Registry) Iter() iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		for index := range r.entities.Iter() {
			if !yield(EntityId(index)) {
				return
			}
		}
	}
}
