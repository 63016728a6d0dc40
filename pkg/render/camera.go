package render

import (
	"github.com/taigrr/softras/pkg/math3d"
)

// Camera describes the viewer of a scene: a look-at eye, a projection
// distance and the transform applied to the model before viewing.
// Change it through the setters after construction; the matrices are
// cached.
type Camera struct {
	Eye    math3d.Vec3
	Center math3d.Vec3
	Up     math3d.Vec3

	// Distance is the projection parameter c: w becomes 1 - z/c.
	Distance float64

	// ModelScale uniformly scales the model before the look-at.
	ModelScale float64
	// Spin rotates the model around the Y axis (radians).
	Spin float64

	// Cached matrices (computed on demand)
	modelView math3d.Mat4
	proj      math3d.Mat4
	viewDirty bool
	projDirty bool
}

// NewCamera creates a camera at eye looking at center.
func NewCamera(eye, center, up math3d.Vec3, distance float64) *Camera {
	return &Camera{
		Eye:        eye,
		Center:     center,
		Up:         up,
		Distance:   distance,
		ModelScale: 1,
		viewDirty:  true,
		projDirty:  true,
	}
}

// SetEye moves the camera.
func (c *Camera) SetEye(eye math3d.Vec3) {
	c.Eye = eye
	c.viewDirty = true
}

// SetSpin sets the model rotation around Y.
func (c *Camera) SetSpin(angle float64) {
	c.Spin = angle
	c.viewDirty = true
}

// SetModelScale sets the uniform model scale.
func (c *Camera) SetModelScale(s float64) {
	c.ModelScale = s
	c.viewDirty = true
}

// SetDistance sets the projection distance.
func (c *Camera) SetDistance(d float64) {
	c.Distance = d
	c.projDirty = true
}

// ModelView returns LookAt * RotateY(Spin) * Scale(ModelScale).
func (c *Camera) ModelView() math3d.Mat4 {
	if c.viewDirty {
		c.modelView = math3d.LookAt(c.Eye, c.Center, c.Up).
			Mul(math3d.RotateY(c.Spin)).
			Mul(math3d.ScaleUniform(c.ModelScale))
		c.viewDirty = false
	}
	return c.modelView
}

// ProjectionMatrix returns the projection matrix.
func (c *Camera) ProjectionMatrix() math3d.Mat4 {
	if c.projDirty {
		c.proj = math3d.Projection(c.Distance)
		c.projDirty = false
	}
	return c.proj
}

// Apply writes the camera matrices and a full-canvas viewport with the
// given depth range into ctx.
func (c *Camera) Apply(ctx *Context, width, height int, depth float64) {
	ctx.ModelView = c.ModelView()
	ctx.Projection = c.ProjectionMatrix()
	ctx.Viewport = math3d.Viewport(0, 0, float64(width), float64(height), depth)
	ctx.Prepare()
}

// WorldToScreen runs a point through the camera chain of ctx.
// Returns (screenX, screenY, depth, visible).
func WorldToScreen(ctx *Context, p math3d.Vec3, width, height int) (x, y, depth float64, visible bool) {
	s := ctx.Screen().MulVec(p.Embed4(1))

	// Behind the projection center
	if s.W <= 0 {
		return 0, 0, 0, false
	}
	s = s.WNormalize()
	visible = s.X >= 0 && s.X < float64(width) && s.Y >= 0 && s.Y < float64(height)
	return s.X, s.Y, s.Z, visible
}
