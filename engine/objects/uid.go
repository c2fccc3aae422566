// Package objects holds the small identity and linkage value types shared by
// every renderable entity in the scene: object identifiers, material indices,
// and the (ObjectUid, MaterialIndex) pair every primitive carries so the GPU
// can map a hit back to host-side identity.
package objects

import "fmt"

// ObjectUid is an opaque, non-zero identifier for an object owned by the
// scene container. Zero is reserved to mean "no object" and is never handed
// out by a UidGenerator.
type ObjectUid uint32

// String implements fmt.Stringer for readable panics and log lines.
func (u ObjectUid) String() string {
	return fmt.Sprintf("#%d", uint32(u))
}

// IsNone reports whether u is the reserved "no object" sentinel.
func (u ObjectUid) IsNone() bool {
	return u == 0
}

// UidGenerator hands out ObjectUid values starting at 1 and reuses values
// returned via PutBack before minting new ones, so a long-lived scene that
// repeatedly adds and deletes objects doesn't grow its identifier space
// without bound.
type UidGenerator struct {
	next uint32
	free []ObjectUid
}

// NewUidGenerator creates a generator whose first minted id is 1.
func NewUidGenerator() *UidGenerator {
	return &UidGenerator{next: 1}
}

// Next allocates a fresh ObjectUid, preferring a previously freed value.
func (g *UidGenerator) Next() ObjectUid {
	if n := len(g.free); n > 0 {
		uid := g.free[n-1]
		g.free = g.free[:n-1]
		return uid
	}
	uid := ObjectUid(g.next)
	g.next++
	return uid
}

// PutBack returns uid to the free pool so a future Next call can reuse it.
func (g *UidGenerator) PutBack(uid ObjectUid) {
	g.free = append(g.free, uid)
}
