package sim

import (
	"math"

	"github.com/kamstrup/intmap"
	"github.com/plus3/fixedsim/ecs"
)

const (
	// Cell coordinates are packed into 21 bits per axis.
	cellBits = 21
	cellMask = 1<<cellBits - 1
	cellBias = 1 << (cellBits - 1)
)

// Contact is one overlapping pair of colliders found during a tick.
type Contact struct {
	A, B         ecs.EntityId
	TypeA, TypeB CollisionType
}

// Involves reports whether either side of the contact is id, and returns the
// other side.
func (c Contact) Involves(id ecs.EntityId) (ecs.EntityId, CollisionType, bool) {
	switch id {
	case c.A:
		return c.B, c.TypeB, true
	case c.B:
		return c.A, c.TypeA, true
	}
	return 0, 0, false
}

// CollisionSystem finds overlapping colliders every tick using a uniform
// spatial hash grid rebuilt from scratch. Colliders whose entity has no
// transform are treated as already being in world space.
type CollisionSystem struct {
	*ecs.Store[Collider]

	transforms *TransformSystem
	cellSize   float32

	cells   *intmap.Map[uint64, int]
	buckets [][]int
	used    int
	world   []AABB
	pairs   *intmap.Map[uint64, struct{}]

	contacts []Contact
}

func NewCollisionSystem(transforms *TransformSystem, cellSize float32) *CollisionSystem {
	if cellSize <= 0 {
		panic("sim: collision cell size must be positive")
	}
	return &CollisionSystem{
		Store:      ecs.NewStore[Collider](),
		transforms: transforms,
		cellSize:   cellSize,
		cells:      intmap.New[uint64, int](1024),
		pairs:      intmap.New[uint64, struct{}](1024),
	}
}

func (s *CollisionSystem) Execute(frame *ecs.UpdateFrame) {
	s.cells.Clear()
	s.pairs.Clear()
	for i := 0; i < s.used; i++ {
		s.buckets[i] = s.buckets[i][:0]
	}
	s.used = 0
	s.contacts = s.contacts[:0]

	colliders := s.Components()
	if n := colliders.Len(); n > len(s.world) {
		s.world = append(s.world, make([]AABB, n-len(s.world))...)
	}

	data := s.Data()
	for index := range colliders.Iter() {
		bounds := colliders.At(index).Bounds
		if t := s.transforms.Get1(data[index].EntityId); t != nil {
			bounds = bounds.Place(t)
		}
		s.world[index] = bounds
		s.insert(index, bounds)
	}

	for b := 0; b < s.used; b++ {
		s.collide(s.buckets[b])
	}
}

func (s *CollisionSystem) insert(index int, bounds AABB) {
	minX, minY, minZ := s.cellOf(bounds.Min[0]), s.cellOf(bounds.Min[1]), s.cellOf(bounds.Min[2])
	maxX, maxY, maxZ := s.cellOf(bounds.Max[0]), s.cellOf(bounds.Max[1]), s.cellOf(bounds.Max[2])

	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			for z := minZ; z <= maxZ; z++ {
				key := packCell(x, y, z)
				bucket, ok := s.cells.Get(key)
				if !ok {
					bucket = s.used
					s.used++
					if bucket == len(s.buckets) {
						s.buckets = append(s.buckets, nil)
					}
					s.cells.Put(key, bucket)
				}
				s.buckets[bucket] = append(s.buckets[bucket], index)
			}
		}
	}
}

func (s *CollisionSystem) collide(bucket []int) {
	colliders := s.Components()
	data := s.Data()

	for i := 0; i < len(bucket); i++ {
		a := bucket[i]
		typeA := colliders.At(a).Type
		for j := i + 1; j < len(bucket); j++ {
			b := bucket[j]
			typeB := colliders.At(b).Type
			if typeA == CollisionNone && typeB == CollisionNone {
				continue
			}
			if typeA == CollisionStatic && typeB == CollisionStatic {
				continue
			}

			key := pairKey(a, b)
			if s.pairs.Has(key) {
				continue
			}
			s.pairs.Put(key, struct{}{})

			if s.world[a].Overlaps(s.world[b]) {
				s.contacts = append(s.contacts, Contact{
					A:     data[a].EntityId,
					B:     data[b].EntityId,
					TypeA: typeA,
					TypeB: typeB,
				})
			}
		}
	}
}

func (s *CollisionSystem) cellOf(v float32) int32 {
	return int32(math.Floor(float64(v / s.cellSize)))
}

// Contacts returns the pairs found by the last tick. Each pair appears once.
// The slice is reused by the next tick.
func (s *CollisionSystem) Contacts() []Contact {
	return s.contacts
}

// OccupiedCells returns the number of grid cells holding at least one
// collider after the last tick.
func (s *CollisionSystem) OccupiedCells() int {
	return s.used
}

// WorldBounds returns the world-space bounds computed for id in the last tick.
func (s *CollisionSystem) WorldBounds(id ecs.EntityId) (AABB, bool) {
	index, ok := s.Index(id)
	if !ok || index >= len(s.world) {
		return AABB{}, false
	}
	return s.world[index], true
}

func packCell(x, y, z int32) uint64 {
	return uint64(uint32(x+cellBias)&cellMask) |
		uint64(uint32(y+cellBias)&cellMask)<<cellBits |
		uint64(uint32(z+cellBias)&cellMask)<<(2*cellBits)
}

func pairKey(a, b int) uint64 {
	if a > b {
		a, b = b, a
	}
	return uint64(a)<<32 | uint64(b)
}
