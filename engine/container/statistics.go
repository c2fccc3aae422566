package container

import (
	"github.com/corvidgfx/tracer-go/engine/objects"
	"github.com/corvidgfx/tracer-go/engine/util"
)

// kindStats tracks the per-kind count and version the container's
// invariants are defined over: per_kind_count[K] must always equal the
// number of container entries with that kind, and version must strictly
// increase across every state-changing mutation of that kind and never
// move on a read-only operation.
type kindStats struct {
	count   int
	version util.Version
}

// statistics holds one kindStats per DataKind, indexed directly by the
// DataKind's own integer value.
type statistics struct {
	byKind [objects.KindCount]kindStats
}

func newStatistics() statistics {
	return statistics{}
}

// count returns the current object count for kind.
func (s *statistics) count(kind objects.DataKind) int {
	return s.byKind[kind].count
}

// version returns the current data version for kind.
func (s *statistics) version(kind objects.DataKind) util.Version {
	return s.byKind[kind].version
}

// bump advances kind's version by one, without touching its count. Used for
// mutations (e.g. set_material) that change a kind's serialized contents
// without changing its membership.
func (s *statistics) bump(kind objects.DataKind) {
	s.byKind[kind].version = s.byKind[kind].version.Next()
}

// inserted records one new object of kind: increments count and bumps
// version.
func (s *statistics) inserted(kind objects.DataKind) {
	s.byKind[kind].count++
	s.bump(kind)
}

// removed records one fewer object of kind: decrements count and bumps
// version.
func (s *statistics) removed(kind objects.DataKind) {
	s.byKind[kind].count--
	s.bump(kind)
}

// isEmpty reports whether every kind's count is zero.
func (s *statistics) isEmpty() bool {
	for _, stat := range s.byKind {
		if stat.count != 0 {
			return false
		}
	}
	return true
}

// clear zeroes every kind's count and bumps every kind's version, matching
// clear_objects' "bumps all versions" contract.
func (s *statistics) clear() {
	for k := range s.byKind {
		s.byKind[k].count = 0
		s.byKind[k].version = s.byKind[k].version.Next()
	}
}
