package render

import (
	"github.com/taigrr/softras/pkg/math3d"
)

// Wireframe draws mesh edges as lines, without depth testing.
type Wireframe struct {
	ctx    *Context
	canvas *Canvas
}

// NewWireframe creates a wireframe renderer for the camera chain of ctx.
func NewWireframe(ctx *Context, canvas *Canvas) *Wireframe {
	return &Wireframe{
		ctx:    ctx,
		canvas: canvas,
	}
}

// DrawLine3D draws a line between two object space points.
func (w *Wireframe) DrawLine3D(p1, p2 math3d.Vec3, color Color) {
	x1, y1, _, vis1 := WorldToScreen(w.ctx, p1, w.canvas.Width, w.canvas.Height)
	x2, y2, _, vis2 := WorldToScreen(w.ctx, p2, w.canvas.Width, w.canvas.Height)

	// Simple clipping: only draw if at least one point is visible
	// (proper line clipping would be more complex)
	if !vis1 && !vis2 {
		return
	}

	w.canvas.DrawLine(int(x1), int(y1), int(x2), int(y2), color)
}

// DrawMesh draws the three edges of every face of the context mesh.
func (w *Wireframe) DrawMesh(color Color) error {
	if err := w.ctx.Validate(); err != nil {
		return err
	}
	w.ctx.Prepare()
	mesh := w.ctx.Mesh
	for face := range mesh.FaceCount() {
		for corner := range 3 {
			w.DrawLine3D(mesh.Position(face, corner), mesh.Position(face, (corner+1)%3), color)
		}
	}
	return nil
}

// DrawAxes draws the coordinate axes at the origin.
func (w *Wireframe) DrawAxes(length float64) {
	origin := math3d.Vec3{}
	w.DrawLine3D(origin, math3d.V3(length, 0, 0), ColorRed)   // X axis
	w.DrawLine3D(origin, math3d.V3(0, length, 0), ColorGreen) // Y axis
	w.DrawLine3D(origin, math3d.V3(0, 0, length), ColorBlue)  // Z axis
}
