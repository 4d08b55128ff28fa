package ecs

// bookkeeping holds the per-slot records shared by Store and PairedStore.
type bookkeeping struct {
	data []ComponentData
}

func (b *bookkeeping) record(index int, id EntityId) {
	rec := ComponentData{EntityId: id, Active: true}
	if index >= len(b.data) {
		b.data = append(b.data, rec)
		return
	}
	b.data[index] = rec
}

func (b *bookkeeping) deactivate(index int) {
	b.data[index].Active = false
}

// Data returns the bookkeeping records, index-aligned with component storage.
// The slice must not be modified.
func (b *bookkeeping) Data() []ComponentData {
	return b.data
}

// Size returns the capacity of the system: the number of bookkeeping records,
// live or not.
func (b *bookkeeping) Size() int {
	return len(b.data)
}

// SearchForEntityId probes forward from *index, wrapping at the end, for the
// active slot owned by id. It gives up after one full pass. On success *index
// holds the slot and the result is true.
//
// The id map is the canonical lookup. Searching is only worth it when the
// caller holds an index close to the entity's slot, for example when walking
// entities in the order of a previous frame.
func (b *bookkeeping) SearchForEntityId(index *int, id EntityId) bool {
	n := len(b.data)
	if n == 0 {
		return false
	}

	i := *index
	if i < 0 || i >= n {
		i = 0
	}

	for probed := 0; probed < n; probed++ {
		rec := b.data[i]
		if rec.Active && rec.EntityId == id {
			*index = i
			return true
		}
		i++
		if i == n {
			i = 0
		}
	}
	return false
}
