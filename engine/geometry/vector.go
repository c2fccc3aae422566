package geometry

import "math"

// Vector represents a 3D displacement in double precision. Scene-side math is
// carried in float64 throughout; only the GPU-facing serialization layer
// narrows to float32.
type Vector struct {
	X, Y, Z float64
}

// Point represents a 3D position in double precision.
type Point struct {
	X, Y, Z float64
}

// NewVector builds a Vector from components.
func NewVector(x, y, z float64) Vector { return Vector{X: x, Y: y, Z: z} }

// NewPoint builds a Point from components.
func NewPoint(x, y, z float64) Point { return Point{X: x, Y: y, Z: z} }

// ZeroVector is the additive identity.
var ZeroVector = Vector{}

// OriginPoint is the coordinate-space origin.
var OriginPoint = Point{}

// UnitX, UnitY, UnitZ are the standard basis vectors.
var (
	UnitX = Vector{X: 1}
	UnitY = Vector{Y: 1}
	UnitZ = Vector{Z: 1}
)

// Add returns the point offset by v.
func (p Point) Add(v Vector) Point {
	return Point{p.X + v.X, p.Y + v.Y, p.Z + v.Z}
}

// Sub returns the vector from other to p.
func (p Point) Sub(other Point) Vector {
	return Vector{p.X - other.X, p.Y - other.Y, p.Z - other.Z}
}

// ToVector reinterprets a point's coordinates as a vector (its offset from
// the origin).
func (p Point) ToVector() Vector {
	return Vector{p.X, p.Y, p.Z}
}

// Component returns the coordinate for the given axis.
func (p Point) Component(axis Axis) float64 {
	switch axis {
	case AxisX:
		return p.X
	case AxisY:
		return p.Y
	default:
		return p.Z
	}
}

// ComponentWiseMin returns the per-axis minimum of p and other.
func (p Point) ComponentWiseMin(other Point) Point {
	return Point{math.Min(p.X, other.X), math.Min(p.Y, other.Y), math.Min(p.Z, other.Z)}
}

// ComponentWiseMax returns the per-axis maximum of p and other.
func (p Point) ComponentWiseMax(other Point) Point {
	return Point{math.Max(p.X, other.X), math.Max(p.Y, other.Y), math.Max(p.Z, other.Z)}
}

// Add returns the sum of two vectors.
func (v Vector) Add(other Vector) Vector {
	return Vector{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub returns v minus other.
func (v Vector) Sub(other Vector) Vector {
	return Vector{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Scale returns v scaled by factor.
func (v Vector) Scale(factor float64) Vector {
	return Vector{v.X * factor, v.Y * factor, v.Z * factor}
}

// Component returns the coordinate for the given axis.
func (v Vector) Component(axis Axis) float64 {
	switch axis {
	case AxisX:
		return v.X
	case AxisY:
		return v.Y
	default:
		return v.Z
	}
}

// MaxAxis returns the axis with the largest magnitude extent, the tie-break
// preferring X, then Y, then Z — matching the BVH builder's axis choice off
// the enclosing AABB's extent.
func (v Vector) MaxAxis() Axis {
	best := AxisX
	bestValue := v.X
	if v.Y > bestValue {
		best = AxisY
		bestValue = v.Y
	}
	if v.Z > bestValue {
		best = AxisZ
	}
	return best
}

// Length returns the Euclidean norm of v.
func (v Vector) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}
