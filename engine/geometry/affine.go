package geometry

import "math"

// Affine is a 3D affine transform: a 3x3 linear part plus a translation.
// Scene objects carry one of these to place their local-space geometry (and,
// for SDFs, their distance field) into world space.
type Affine struct {
	// m is row-major: m[row][col].
	m   [3][3]float64
	t   Vector
}

// Identity returns the transform that leaves every point and vector
// unchanged.
func Identity() Affine {
	return Affine{
		m: [3][3]float64{
			{1, 0, 0},
			{0, 1, 0},
			{0, 0, 1},
		},
	}
}

// Translation returns a pure translation by v.
func Translation(v Vector) Affine {
	a := Identity()
	a.t = v
	return a
}

// Scaling returns a pure, axis-aligned scale.
func Scaling(sx, sy, sz float64) Affine {
	return Affine{
		m: [3][3]float64{
			{sx, 0, 0},
			{0, sy, 0},
			{0, 0, sz},
		},
	}
}

// UniformScaling returns a pure uniform scale.
func UniformScaling(s float64) Affine {
	return Scaling(s, s, s)
}

// RotationAroundAxis returns a right-handed rotation of angleRadians about
// the given axis, via Rodrigues' formula.
func RotationAroundAxis(axis Vector, angleRadians float64) Affine {
	length := axis.Length()
	if length == 0 {
		return Identity()
	}
	k := axis.Scale(1 / length)
	sin, cos := math.Sin(angleRadians), math.Cos(angleRadians)
	oneMinusCos := 1 - cos

	var m [3][3]float64
	m[0][0] = cos + k.X*k.X*oneMinusCos
	m[0][1] = k.X*k.Y*oneMinusCos - k.Z*sin
	m[0][2] = k.X*k.Z*oneMinusCos + k.Y*sin

	m[1][0] = k.Y*k.X*oneMinusCos + k.Z*sin
	m[1][1] = cos + k.Y*k.Y*oneMinusCos
	m[1][2] = k.Y*k.Z*oneMinusCos - k.X*sin

	m[2][0] = k.Z*k.X*oneMinusCos - k.Y*sin
	m[2][1] = k.Z*k.Y*oneMinusCos + k.X*sin
	m[2][2] = cos + k.Z*k.Z*oneMinusCos

	return Affine{m: m}
}

// Then composes a followed by next: the returned transform applies a's
// linear part and translation first, then next's.
func (a Affine) Then(next Affine) Affine {
	var m [3][3]float64
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			var sum float64
			for k := 0; k < 3; k++ {
				sum += next.m[row][k] * a.m[k][col]
			}
			m[row][col] = sum
		}
	}
	translated := next.transformLinear(a.t).Add(next.t)
	return Affine{m: m, t: translated}
}

// transformLinear applies only the 3x3 linear part (no translation) — used
// for transforming vectors and normals, and for composition.
func (a Affine) transformLinear(v Vector) Vector {
	return Vector{
		X: a.m[0][0]*v.X + a.m[0][1]*v.Y + a.m[0][2]*v.Z,
		Y: a.m[1][0]*v.X + a.m[1][1]*v.Y + a.m[1][2]*v.Z,
		Z: a.m[2][0]*v.X + a.m[2][1]*v.Y + a.m[2][2]*v.Z,
	}
}

// TransformPoint maps a point through the full affine transform.
func (a Affine) TransformPoint(p Point) Point {
	v := a.transformLinear(Vector{p.X, p.Y, p.Z}).Add(a.t)
	return Point{v.X, v.Y, v.Z}
}

// TransformVector maps a vector through the linear part only; translation
// does not apply to displacements.
func (a Affine) TransformVector(v Vector) Vector {
	return a.transformLinear(v)
}

// TransformNormal maps a normal vector using the inverse-transpose of the
// linear part, which keeps normals perpendicular to their surface under
// non-uniform scale. For the rotation/translation/uniform-scale transforms
// this package constructs, the inverse-transpose coincides with the forward
// linear part up to a scalar factor that normalization removes, but a
// general caller composing transforms should still route normals through
// this method rather than TransformVector.
func (a Affine) TransformNormal(n Vector) Vector {
	inv, ok := a.inverseLinear()
	if !ok {
		return a.transformLinear(n)
	}
	return Vector{
		X: inv[0][0]*n.X + inv[1][0]*n.Y + inv[2][0]*n.Z,
		Y: inv[0][1]*n.X + inv[1][1]*n.Y + inv[2][1]*n.Z,
		Z: inv[0][2]*n.X + inv[1][2]*n.Y + inv[2][2]*n.Z,
	}
}

// inverseLinear returns the inverse of the 3x3 linear part via the adjugate
// method, or ok=false if it is singular.
func (a Affine) inverseLinear() (inv [3][3]float64, ok bool) {
	m := a.m
	det := m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
	if det == 0 {
		return inv, false
	}
	invDet := 1 / det
	inv[0][0] = (m[1][1]*m[2][2] - m[1][2]*m[2][1]) * invDet
	inv[0][1] = (m[0][2]*m[2][1] - m[0][1]*m[2][2]) * invDet
	inv[0][2] = (m[0][1]*m[1][2] - m[0][2]*m[1][1]) * invDet
	inv[1][0] = (m[1][2]*m[2][0] - m[1][0]*m[2][2]) * invDet
	inv[1][1] = (m[0][0]*m[2][2] - m[0][2]*m[2][0]) * invDet
	inv[1][2] = (m[0][2]*m[1][0] - m[0][0]*m[1][2]) * invDet
	inv[2][0] = (m[1][0]*m[2][1] - m[1][1]*m[2][0]) * invDet
	inv[2][1] = (m[0][1]*m[2][0] - m[0][0]*m[2][1]) * invDet
	inv[2][2] = (m[0][0]*m[1][1] - m[0][1]*m[1][0]) * invDet
	return inv, true
}

// Translation returns the transform's translation component.
func (a Affine) Translation() Vector { return a.t }
