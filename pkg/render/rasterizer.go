package render

import (
	"errors"
	"fmt"
	"math"

	"github.com/taigrr/softras/pkg/math3d"
)

// Stats counts what happened during the passes since the last Clear.
type Stats struct {
	Faces       int // Faces submitted
	Degenerate  int // Faces skipped for zero area or non-finite corners
	Tested      int // Covered pixels that reached the depth test
	DepthFailed int // Pixels hidden by an earlier, closer fragment
	Discarded   int // Pixels the fragment stage discarded
	Written     int // Pixels written to the canvas
}

// Rasterizer fills triangles into a color canvas and its depth buffer.
type Rasterizer struct {
	Canvas *Canvas
	Depth  *DepthBuffer
	Stats  Stats
}

// NewRasterizer creates a rasterizer with a fresh canvas and depth buffer.
func NewRasterizer(width, height int) *Rasterizer {
	return &Rasterizer{
		Canvas: NewCanvas(width, height),
		Depth:  NewDepthBuffer(width, height),
	}
}

// NewRasterizerFor wraps existing buffers, which must have equal sizes.
func NewRasterizerFor(canvas *Canvas, depth *DepthBuffer) (*Rasterizer, error) {
	if canvas == nil || depth == nil {
		return nil, errors.New("render: nil canvas or depth buffer")
	}
	if canvas.Width != depth.Width || canvas.Height != depth.Height {
		return nil, fmt.Errorf("render: canvas %dx%d does not match depth buffer %dx%d",
			canvas.Width, canvas.Height, depth.Width, depth.Height)
	}
	return &Rasterizer{Canvas: canvas, Depth: depth}, nil
}

// Width returns the canvas width.
func (r *Rasterizer) Width() int {
	return r.Canvas.Width
}

// Height returns the canvas height.
func (r *Rasterizer) Height() int {
	return r.Canvas.Height
}

// Clear fills the canvas with bg, resets the depth buffer and the stats.
func (r *Rasterizer) Clear(bg Color) {
	r.Canvas.Clear(bg)
	r.Depth.Reset()
	r.Stats = Stats{}
}

// Barycentric returns the weights of p with respect to the triangle
// (a, b, c), solved in closed form with c as the origin. The weights sum
// to one; a negative weight means p is outside. A zero-area triangle
// yields non-finite weights.
func Barycentric(a, b, c, p math3d.Vec2) math3d.Vec3 {
	det := (b.Y-c.Y)*(a.X-c.X) + (c.X-b.X)*(a.Y-c.Y)
	l0 := ((b.Y-c.Y)*(p.X-c.X) + (c.X-b.X)*(p.Y-c.Y)) / det
	l1 := ((c.Y-a.Y)*(p.X-c.X) + (a.X-c.X)*(p.Y-c.Y)) / det
	return math3d.V3(l0, l1, 1-l0-l1)
}

// DrawTriangle fills one triangle whose corners are already divided by w,
// in pixel coordinates with the viewport depth in Z.
//
// Every integer pixel in the bounding box is sampled at its integer
// coordinates. Pixels with a negative weight or outside the canvas are
// skipped. The interpolated depth must be strictly greater than the stored
// depth; larger is closer. A discarded fragment leaves color and depth
// untouched.
func (r *Rasterizer) DrawTriangle(pts [3]math3d.Vec4, sh Shader) {
	r.Stats.Faces++

	a, b, c := pts[0].Proj2(), pts[1].Proj2(), pts[2].Proj2()
	if !finite2(a) || !finite2(b) || !finite2(c) {
		r.Stats.Degenerate++
		return
	}
	if (b.Y-c.Y)*(a.X-c.X)+(c.X-b.X)*(a.Y-c.Y) == 0 {
		r.Stats.Degenerate++
		return
	}

	w, h := r.Canvas.Width, r.Canvas.Height

	// The box starts inverted at (w, h)-(0, 0) and grows over the
	// truncated corners, so it never starts right of the canvas or ends
	// left of it. Corners are clamped in float first: converting a huge
	// finite coordinate to int is implementation-specific.
	fw, fh := float64(w), float64(h)
	minX, minY := w, h
	maxX, maxY := 0, 0
	for _, p := range pts {
		x := int(math.Max(-1, math.Min(fw, p.X)))
		y := int(math.Max(-1, math.Min(fh, p.Y)))
		minX, minY = min(minX, x), min(minY, y)
		maxX, maxY = max(maxX, x), max(maxY, y)
	}

	// Columns and rows outside the canvas can never pass the per-pixel
	// bounds test; skipping them bounds the work for huge triangles.
	minX, minY = max(minX, 0), max(minY, 0)
	maxX, maxY = min(maxX, w-1), min(maxY, h-1)

	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			bar := Barycentric(a, b, c, math3d.V2(float64(x), float64(y)))
			if bar.X < 0 || bar.Y < 0 || bar.Z < 0 {
				continue // Outside the triangle
			}
			if !r.Canvas.InBounds(x, y) {
				continue // Outside the canvas
			}

			r.Stats.Tested++
			i := y*w + x
			z := bar.X*pts[0].Z + bar.Y*pts[1].Z + bar.Z*pts[2].Z
			if !(z > r.Depth.Pix[i]) {
				r.Stats.DepthFailed++
				continue
			}

			col, discard := sh.Fragment(bar)
			if discard {
				r.Stats.Discarded++
				continue
			}
			r.Canvas.Pix[i] = col
			r.Depth.Pix[i] = z
			r.Stats.Written++
		}
	}
}

func finite2(v math3d.Vec2) bool {
	return !math.IsInf(v.X, 0) && !math.IsNaN(v.X) && !math.IsInf(v.Y, 0) && !math.IsNaN(v.Y)
}

// DrawOption configures a render pass.
type DrawOption func(*drawOptions)

type drawOptions struct {
	progress func(done, total int)
}

// WithProgress calls fn after every face with the number of faces drawn
// so far and the face count.
func WithProgress(fn func(done, total int)) DrawOption {
	return func(o *drawOptions) {
		o.progress = fn
	}
}

// Draw runs one render pass: for every face it calls the shader's Vertex
// stage for the three corners, divides by w and fills the triangle. The
// mesh is validated first; nothing is drawn if it is unusable.
func (r *Rasterizer) Draw(ctx *Context, sh Shader, opts ...DrawOption) error {
	if ctx == nil {
		return errors.New("render: nil context")
	}
	if sh == nil {
		return errors.New("render: nil shader")
	}
	if err := ctx.Validate(); err != nil {
		return err
	}

	var o drawOptions
	for _, opt := range opts {
		opt(&o)
	}

	ctx.Prepare()
	n := ctx.Mesh.FaceCount()
	var pts [3]math3d.Vec4
	for face := range n {
		for corner := range 3 {
			pts[corner] = sh.Vertex(face, corner).WNormalize()
		}
		r.DrawTriangle(pts, sh)
		if o.progress != nil {
			o.progress(face+1, n)
		}
	}
	return nil
}
