// Package camera computes the two matrices a ray-generation shader needs:
// the camera-to-world transform the uniform layout serializes, and an
// inverse view-projection used to reconstruct each pixel's primary ray
// origin and direction. It intentionally carries none of a scene-graph
// camera's input/FPS-controller plumbing — the renderer orchestration is the
// only caller, once per resize and once per frame.
package camera

import "github.com/corvidgfx/tracer-go/common"

// Camera describes a perspective eye: position, look target, up vector,
// vertical field of view and near/far planes, plus the aspect ratio the
// owning renderer keeps in sync via SetAspect on resize.
type Camera struct {
	eyeX, eyeY, eyeZ          float32
	centerX, centerY, centerZ float32
	upX, upY, upZ             float32
	fovY                      float32
	aspect                    float32
	near, far                 float32
}

// NewCamera builds a camera looking from eye toward center, oriented by up,
// with the given vertical field of view (radians) and clip planes.
func NewCamera(eyeX, eyeY, eyeZ, centerX, centerY, centerZ, upX, upY, upZ, fovY, near, far float32) *Camera {
	return &Camera{
		eyeX: eyeX, eyeY: eyeY, eyeZ: eyeZ,
		centerX: centerX, centerY: centerY, centerZ: centerZ,
		upX: upX, upY: upY, upZ: upZ,
		fovY: fovY, aspect: 1.0, near: near, far: far,
	}
}

// SetAspect updates the camera's aspect ratio, called by the owning
// renderer whenever the window surface is resized.
func (c *Camera) SetAspect(aspect float32) { c.aspect = aspect }

// ViewProjection writes the camera's combined view * projection matrix
// (column-major, 16 floats) into out.
func (c *Camera) ViewProjection(out []float32) {
	var view, proj [16]float32
	common.LookAt(view[:], c.eyeX, c.eyeY, c.eyeZ, c.centerX, c.centerY, c.centerZ, c.upX, c.upY, c.upZ)
	common.Perspective(proj[:], c.fovY, c.aspect, c.near, c.far)
	common.Mul4(out, proj[:], view[:])
}

// InverseViewProjection writes the inverse of ViewProjection into out — the
// ray generation shader uses it to unproject screen-space pixel coordinates
// back into world-space ray directions. Panics if the view-projection matrix
// is singular, which only happens for a degenerate (zero-length look)
// camera.
func (c *Camera) InverseViewProjection(out []float32) {
	var vp [16]float32
	c.ViewProjection(vp[:])
	if !common.Invert4(out, vp[:]) {
		panic("camera: view-projection matrix is singular")
	}
}

// Eye returns the camera's world-space position.
func (c *Camera) Eye() (x, y, z float32) { return c.eyeX, c.eyeY, c.eyeZ }
