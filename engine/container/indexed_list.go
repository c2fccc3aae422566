package container

import "github.com/corvidgfx/tracer-go/engine/objects"

// indexedList stores values addressed by a single ObjectUid each
// (parallelograms, SDF instances — one uid names exactly one entry, unlike
// a triangle mesh where one uid owns many triangles). Removal is swap-pop:
// order among surviving entries is irrelevant since every serialized
// collection is re-walked in full on every EvaluateSerialized call, and the
// BVH addresses primitives by their position in that walk, not by a stable
// slot number.
type indexedList[T any] struct {
	uids    []objects.ObjectUid
	values  []T
	indexOf map[objects.ObjectUid]int
}

func newIndexedList[T any]() indexedList[T] {
	return indexedList[T]{indexOf: make(map[objects.ObjectUid]int)}
}

// add appends value under uid. Panics if uid is already present.
func (l *indexedList[T]) add(uid objects.ObjectUid, value T) {
	if _, exists := l.indexOf[uid]; exists {
		panic("container: duplicate object uid in indexed list")
	}
	l.indexOf[uid] = len(l.values)
	l.uids = append(l.uids, uid)
	l.values = append(l.values, value)
}

// remove deletes uid's entry, reports whether it was present.
func (l *indexedList[T]) remove(uid objects.ObjectUid) bool {
	i, exists := l.indexOf[uid]
	if !exists {
		return false
	}
	last := len(l.values) - 1
	l.values[i] = l.values[last]
	l.uids[i] = l.uids[last]
	l.indexOf[l.uids[i]] = i
	l.values = l.values[:last]
	l.uids = l.uids[:last]
	delete(l.indexOf, uid)
	return true
}

// get returns uid's current value.
func (l *indexedList[T]) get(uid objects.ObjectUid) (T, bool) {
	i, exists := l.indexOf[uid]
	if !exists {
		var zero T
		return zero, false
	}
	return l.values[i], true
}

// set overwrites uid's current value in place, reports whether uid existed.
func (l *indexedList[T]) set(uid objects.ObjectUid, value T) bool {
	i, exists := l.indexOf[uid]
	if !exists {
		return false
	}
	l.values[i] = value
	return true
}

// clear empties the list.
func (l *indexedList[T]) clear() {
	l.uids = l.uids[:0]
	l.values = l.values[:0]
	for k := range l.indexOf {
		delete(l.indexOf, k)
	}
}

// len returns the number of live entries.
func (l *indexedList[T]) len() int { return len(l.values) }

// items returns the live values in no particular stable order.
func (l *indexedList[T]) items() []T { return l.values }

// liveUids returns the live uids in the same order as items/values — the
// order add/remove's swap-pop scheme keeps in lockstep with each entry's
// buffer index, which is exactly the newOrder shape
// animation.TimeTracker.Track/Forget expect.
func (l *indexedList[T]) liveUids() []objects.ObjectUid { return l.uids }
