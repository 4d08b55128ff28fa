package ecs

import (
	"iter"

	"github.com/kamstrup/intmap"
)

// PairedStore is a two-component system whose stores are always allocated and
// freed together, so for every live entity both components sit at the same
// index. There are no single-store mutators.
type PairedStore[T, U any] struct {
	bookkeeping
	components1 FreeList[T]
	components2 FreeList[U]
	handles     *intmap.Map[EntityId, int]
}

// NewPairedStore creates an empty paired store.
func NewPairedStore[T, U any]() *PairedStore[T, U] {
	return &PairedStore[T, U]{
		handles: intmap.New[EntityId, int](256),
	}
}

// Create stores both components for id at one shared index and returns it.
func (s *PairedStore[T, U]) Create(id EntityId, first T, second U) int {
	index := s.components1.Add(first)
	if other := s.components2.Add(second); other != index {
		panic("ecs: paired component stores out of sync")
	}
	s.handles.Put(id, index)
	s.record(index, id)
	return index
}

// Remove frees both components owned by id. Entities without components here
// are ignored.
func (s *PairedStore[T, U]) Remove(id EntityId) {
	index, ok := s.handles.Get(id)
	if !ok {
		return
	}
	s.deactivate(index)
	s.components1.Free(index)
	s.components2.Free(index)
	s.handles.Del(id)
}

// Get1 returns the first component owned by id, or nil.
func (s *PairedStore[T, U]) Get1(id EntityId) *T {
	index, ok := s.handles.Get(id)
	if !ok {
		return nil
	}
	return s.components1.At(index)
}

// Get2 returns the second component owned by id, or nil.
func (s *PairedStore[T, U]) Get2(id EntityId) *U {
	index, ok := s.handles.Get(id)
	if !ok {
		return nil
	}
	return s.components2.At(index)
}

// Get returns both components owned by id, or two nils.
func (s *PairedStore[T, U]) Get(id EntityId) (*T, *U) {
	index, ok := s.handles.Get(id)
	if !ok {
		return nil, nil
	}
	return s.components1.At(index), s.components2.At(index)
}

// Index returns the slot shared by id's components.
func (s *PairedStore[T, U]) Index(id EntityId) (int, bool) {
	return s.handles.Get(id)
}

// Has reports whether id owns components in this store.
func (s *PairedStore[T, U]) Has(id EntityId) bool {
	_, ok := s.handles.Get(id)
	return ok
}

// At returns both components in slot index without a liveness check.
func (s *PairedStore[T, U]) At(index int) (*T, *U) {
	return s.components1.At(index), s.components2.At(index)
}

// Count returns the number of live entities.
func (s *PairedStore[T, U]) Count() int {
	return s.components1.Count()
}

// Components1 exposes the first slot store for read access and iteration.
// Slots are only allocated and freed through Create and Remove.
func (s *PairedStore[T, U]) Components1() FreeListView[T] {
	return s.components1.View()
}

// Components2 exposes the second slot store for read access and iteration.
func (s *PairedStore[T, U]) Components2() FreeListView[U] {
	return s.components2.View()
}

// Iter yields every live entity with both of its components, in slot order.
func (s *PairedStore[T, U]) Iter() iter.Seq2[EntityId, PairedRef[T, U]] {
	return func(yield func(EntityId, PairedRef[T, U]) bool) {
		for index := range s.components1.Iter() {
			ref := PairedRef[T, U]{
				First:  s.components1.At(index),
				Second: s.components2.At(index),
			}
			if !yield(s.data[index].EntityId, ref) {
				return
			}
		}
	}
}

// PairedRef points at the two components of one entity in a PairedStore.
type PairedRef[T, U any] struct {
	First  *T
	Second *U
}
