package ecs

import "github.com/kamstrup/intmap"

// removalQueue buffers entity removals until the end of a frame so that no
// system sees a slot freed during its own update. An id is held at most once.
type removalQueue struct {
	ids    []EntityId
	queued *intmap.Map[EntityId, struct{}]
}

func newRemovalQueue() removalQueue {
	return removalQueue{
		queued: intmap.New[EntityId, struct{}](64),
	}
}

func (q *removalQueue) push(id EntityId) {
	if _, ok := q.queued.Get(id); ok {
		return
	}
	q.queued.Put(id, struct{}{})
	q.ids = append(q.ids, id)
}

func (q *removalQueue) has(id EntityId) bool {
	_, ok := q.queued.Get(id)
	return ok
}

func (q *removalQueue) len() int {
	return len(q.ids)
}

// drain hands the queued ids to fn in queue order and resets the buffer. Ids
// pushed while draining are kept for the next drain. Returns how many calls to
// fn reported true.
func (q *removalQueue) drain(fn func(EntityId) bool) int {
	ids := q.ids
	q.ids = nil
	q.queued.Clear()

	n := 0
	for _, id := range ids {
		if fn(id) {
			n++
		}
	}

	if q.ids == nil {
		q.ids = ids[:0]
	}
	return n
}
