package geometry

import "math"

// padDelta is the half-width added on each side of a degenerate (zero extent)
// axis when Pad is applied, so a flat triangle or axis-aligned parallelogram
// still has a non-zero-volume bounding box for BVH traversal.
const padDelta = 0.0001 / 2.0

// Aabb is an axis-aligned bounding box. The zero value is not a valid empty
// box — use MakeNullAabb, which represents "no extent yet" with an inverted
// min/max so the first Union collapses to its operand.
type Aabb struct {
	min Point
	max Point
}

// MakeNullAabb returns the identity element for Union: a box with min set to
// +infinity and max set to -infinity on every axis, so unioning it with any
// real box yields that box unchanged.
func MakeNullAabb() Aabb {
	inf := math.Inf(1)
	return Aabb{
		min: Point{inf, inf, inf},
		max: Point{-inf, -inf, -inf},
	}
}

// MakeMinimalAabb returns the smallest box enclosing a single point, padded by
// padDelta on every axis so it has non-zero volume.
func MakeMinimalAabb(p Point) Aabb {
	return Aabb{min: p, max: p}.Pad()
}

// MakeAabb builds a box directly from explicit corners. Callers are
// responsible for min being component-wise <= max; use FromPoints when that
// isn't already known.
func MakeAabb(min, max Point) Aabb {
	return Aabb{min: min, max: max}
}

// FromTriangle returns the bounding box of a triangle's three vertices,
// padded so a flat triangle still has non-zero volume.
func FromTriangle(a, b, c Point) Aabb {
	return FromPoints([]Point{a, b, c}).Pad()
}

// FromPoints returns the bounding box enclosing every point in ps. Panics if
// ps is empty — callers always have at least one vertex when this is called.
func FromPoints(ps []Point) Aabb {
	if len(ps) == 0 {
		panic("geometry: FromPoints called with no points")
	}
	box := Aabb{min: ps[0], max: ps[0]}
	for _, p := range ps[1:] {
		box.min = box.min.ComponentWiseMin(p)
		box.max = box.max.ComponentWiseMax(p)
	}
	return box
}

// Min returns the box's minimum corner.
func (b Aabb) Min() Point { return b.min }

// Max returns the box's maximum corner.
func (b Aabb) Max() Point { return b.max }

// Center returns the midpoint between min and max.
func (b Aabb) Center() Point {
	return Point{
		X: (b.min.X + b.max.X) / 2,
		Y: (b.min.Y + b.max.Y) / 2,
		Z: (b.min.Z + b.max.Z) / 2,
	}
}

// Extent returns the per-axis size (max - min) as a vector.
func (b Aabb) Extent() Vector {
	return b.max.Sub(b.min)
}

// Axis returns the [min, max] interval of the box along the given axis.
func (b Aabb) Axis(axis Axis) (min, max float64) {
	return b.min.Component(axis), b.max.Component(axis)
}

// Union returns the smallest box enclosing both b and other.
func (b Aabb) Union(other Aabb) Aabb {
	return Aabb{
		min: b.min.ComponentWiseMin(other.min),
		max: b.max.ComponentWiseMax(other.max),
	}
}

// Intersection returns the overlap of b and other. If the boxes don't
// overlap on some axis the result has min > max on that axis; callers that
// care should check IsEmpty.
func (b Aabb) Intersection(other Aabb) Aabb {
	return Aabb{
		min: Point{
			X: math.Max(b.min.X, other.min.X),
			Y: math.Max(b.min.Y, other.min.Y),
			Z: math.Max(b.min.Z, other.min.Z),
		},
		max: Point{
			X: math.Min(b.max.X, other.max.X),
			Y: math.Min(b.max.Y, other.max.Y),
			Z: math.Min(b.max.Z, other.max.Z),
		},
	}
}

// IsEmpty reports whether b has a negative extent on some axis, meaning it
// encloses no volume (e.g. the result of intersecting disjoint boxes).
func (b Aabb) IsEmpty() bool {
	return b.min.X > b.max.X || b.min.Y > b.max.Y || b.min.Z > b.max.Z
}

// Translate returns b shifted by v.
func (b Aabb) Translate(v Vector) Aabb {
	return Aabb{min: b.min.Add(v), max: b.max.Add(v)}
}

// Transform returns the bounding box of b after applying affine to every one
// of its 8 corners. An AABB is not closed under rotation, so a rotated box is
// recomputed from the swept corner set rather than transformed analytically.
func (b Aabb) Transform(affine Affine) Aabb {
	corners := [8]Point{
		{b.min.X, b.min.Y, b.min.Z},
		{b.max.X, b.min.Y, b.min.Z},
		{b.min.X, b.max.Y, b.min.Z},
		{b.max.X, b.max.Y, b.min.Z},
		{b.min.X, b.min.Y, b.max.Z},
		{b.max.X, b.min.Y, b.max.Z},
		{b.min.X, b.max.Y, b.max.Z},
		{b.max.X, b.max.Y, b.max.Z},
	}
	out := affine.TransformPoint(corners[0])
	result := Aabb{min: out, max: out}
	for _, c := range corners[1:] {
		p := affine.TransformPoint(c)
		result.min = result.min.ComponentWiseMin(p)
		result.max = result.max.ComponentWiseMax(p)
	}
	return result
}

// Offset grows (or shrinks, for a negative delta) the box by delta on every
// axis, in both directions.
func (b Aabb) Offset(delta float64) Aabb {
	return b.OffsetPerComponent(Vector{delta, delta, delta})
}

// OffsetPerComponent grows the box by a distinct delta per axis.
func (b Aabb) OffsetPerComponent(delta Vector) Aabb {
	return Aabb{
		min: Point{b.min.X - delta.X, b.min.Y - delta.Y, b.min.Z - delta.Z},
		max: Point{b.max.X + delta.X, b.max.Y + delta.Y, b.max.Z + delta.Z},
	}
}

// ExtentRelativeInflate grows each axis by factor times that axis's own
// extent, so a thin box grows less in absolute terms than a wide one.
func (b Aabb) ExtentRelativeInflate(factor float64) Aabb {
	extent := b.Extent()
	return b.OffsetPerComponent(Vector{extent.X * factor, extent.Y * factor, extent.Z * factor})
}

// Pad widens any axis whose extent is zero by padDelta on each side, so a
// perfectly flat box still has positive volume for BVH intersection tests.
func (b Aabb) Pad() Aabb {
	extent := b.Extent()
	delta := Vector{}
	if extent.X == 0 {
		delta.X = padDelta
	}
	if extent.Y == 0 {
		delta.Y = padDelta
	}
	if extent.Z == 0 {
		delta.Z = padDelta
	}
	if delta == (Vector{}) {
		return b
	}
	return b.OffsetPerComponent(delta)
}
