package ecs

import (
	"container/heap"
	"iter"
)

const (
	freeListBlockSize = 64
)

// FreeList is a block-allocated, index-addressed slot store. Removal leaves a
// hole instead of compacting, so an index returned by Add stays assigned to its
// value until it is explicitly freed. Blocks are allocated individually, which
// also keeps pointers returned by At valid while the store grows.
//
// The zero value is ready to use.
type FreeList[T any] struct {
	blocks    []*[freeListBlockSize]T
	filled    []*[freeListBlockSize]bool
	freeSlots indexHeap
	nextIndex int
	count     int
}

// Add stores value and returns its index. The lowest freed index is reused
// before the store grows.
func (fl *FreeList[T]) Add(value T) int {
	var index int
	if fl.freeSlots.Len() > 0 {
		index = heap.Pop(&fl.freeSlots).(int)
	} else {
		index = fl.nextIndex
		fl.nextIndex++
		if index/freeListBlockSize >= len(fl.blocks) {
			fl.blocks = append(fl.blocks, new([freeListBlockSize]T))
			fl.filled = append(fl.filled, new([freeListBlockSize]bool))
		}
	}

	blockIdx := index / freeListBlockSize
	slotIdx := index % freeListBlockSize

	fl.blocks[blockIdx][slotIdx] = value
	fl.filled[blockIdx][slotIdx] = true
	fl.count++
	return index
}

// Free marks the slot at index as reclaimable. The value is left in place.
// Freeing an index that is not live corrupts the free list; callers track
// liveness through their bookkeeping.
func (fl *FreeList[T]) Free(index int) {
	fl.filled[index/freeListBlockSize][index%freeListBlockSize] = false
	heap.Push(&fl.freeSlots, index)
	fl.count--
}

// At returns a pointer to the slot at index without checking that it is live.
// This is the trusted fast path for indices verified through bookkeeping;
// indices past Len panic.
func (fl *FreeList[T]) At(index int) *T {
	return &fl.blocks[index/freeListBlockSize][index%freeListBlockSize]
}

// Get returns a pointer to the live slot at index.
func (fl *FreeList[T]) Get(index int) (*T, error) {
	if index < 0 || index >= fl.nextIndex {
		return nil, ErrSlotOutOfRange
	}
	if !fl.filled[index/freeListBlockSize][index%freeListBlockSize] {
		return nil, ErrSlotFreed
	}
	return fl.At(index), nil
}

// Has reports whether index refers to a live slot.
func (fl *FreeList[T]) Has(index int) bool {
	if index < 0 || index >= fl.nextIndex {
		return false
	}
	return fl.filled[index/freeListBlockSize][index%freeListBlockSize]
}

// Count returns the number of live slots.
func (fl *FreeList[T]) Count() int {
	return fl.count
}

// Len returns the high-water mark: the number of slots ever allocated.
func (fl *FreeList[T]) Len() int {
	return fl.nextIndex
}

// Iter yields the indices of live slots in ascending order.
func (fl *FreeList[T]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < fl.nextIndex; i++ {
			if fl.filled[i/freeListBlockSize][i%freeListBlockSize] {
				if !yield(i) {
					return
				}
			}
		}
	}
}

// View returns read access to the list.
func (fl *FreeList[T]) View() FreeListView[T] {
	return FreeListView[T]{list: fl}
}

// FreeListView exposes a FreeList without Add and Free, for owners whose
// bookkeeping must stay the only path that allocates or frees slots. Slot
// contents can still be modified through At.
type FreeListView[T any] struct {
	list *FreeList[T]
}

func (v FreeListView[T]) At(index int) *T { return v.list.At(index) }
func (v FreeListView[T]) Get(index int) (*T, error) { return v.list.Get(index) }
func (v FreeListView[T]) Has(index int) bool { return v.list.Has(index) }
func (v FreeListView[T]) Count() int { return v.list.Count() }
func (v FreeListView[T]) Len() int { return v.list.Len() }
func (v FreeListView[T]) Iter() iter.Seq[int] { return v.list.Iter() }

// indexHeap is a min-heap of freed indices.
type indexHeap []int

func (h indexHeap) Len() int           { return len(h) }
func (h indexHeap) Less(i, j int) bool { return h[i] < h[j] }
func (h indexHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *indexHeap) Push(x any) { *h = append(*h, x.(int)) }

func (h *indexHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
