package ecs

import (
	"iter"

	"github.com/kamstrup/intmap"
)

// Store is a single-component system: one FreeList of T, its bookkeeping and
// an entity id to slot index map.
type Store[T any] struct {
	bookkeeping
	components FreeList[T]
	handles    *intmap.Map[EntityId, int]
}

// NewStore creates an empty store.
func NewStore[T any]() *Store[T] {
	return &Store[T]{
		handles: intmap.New[EntityId, int](256),
	}
}

// Create stores value for id and returns the slot it occupies. The entity must
// not already have a component in this store.
func (s *Store[T]) Create(id EntityId, value T) int {
	index := s.components.Add(value)
	s.handles.Put(id, index)
	s.record(index, id)
	return index
}

// Remove frees the component owned by id. Entities without a component here
// are ignored.
func (s *Store[T]) Remove(id EntityId) {
	index, ok := s.handles.Get(id)
	if !ok {
		return
	}
	s.deactivate(index)
	s.components.Free(index)
	s.handles.Del(id)
}

// Get returns the component owned by id, or nil if id has none in this store.
func (s *Store[T]) Get(id EntityId) *T {
	index, ok := s.handles.Get(id)
	if !ok {
		return nil
	}
	return s.components.At(index)
}

// Index returns the slot owned by id.
func (s *Store[T]) Index(id EntityId) (int, bool) {
	return s.handles.Get(id)
}

// Has reports whether id owns a component in this store.
func (s *Store[T]) Has(id EntityId) bool {
	_, ok := s.handles.Get(id)
	return ok
}

// At returns the component in slot index without a liveness check.
func (s *Store[T]) At(index int) *T {
	return s.components.At(index)
}

// Count returns the number of live components.
func (s *Store[T]) Count() int {
	return s.components.Count()
}

// Components exposes the underlying slot store for read access and iteration.
func (s *Store[T]) Components() FreeListView[T] {
	return s.components.View()
}

// Iter yields every live component with its owner, in slot order.
func (s *Store[T]) Iter() iter.Seq2[EntityId, *T] {
	return func(yield func(EntityId, *T) bool) {
		for index := range s.components.Iter() {
			if !yield(s.data[index].EntityId, s.components.At(index)) {
				return
			}
		}
	}
}
